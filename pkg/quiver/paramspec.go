package quiver

import "github.com/veldran/quiver/internal/paramspec"

// ParseParams turns declarative parameter spec strings into descriptors:
//
//	quiver.ParseParams("offset:int=0", "limit:int=20", "quality:string@settings")
//
// Supported types are string, int, bool, float, and uuid, each optionally
// prefixed with [] for list parameters. Defaults are coerced with the
// parameter's own coercer, so "offset:int=abc" fails here rather than at
// dispatch. The only recognized scope is @settings. Any malformed spec
// yields a *ConfigurationError.
func ParseParams(specs ...string) ([]Param, error) {
	params := make([]Param, 0, len(specs))
	for _, s := range specs {
		p, err := parseParam(s)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// MustParams is like ParseParams but panics on error. Intended for the
// startup path.
func MustParams(specs ...string) []Param {
	params, err := ParseParams(specs...)
	if err != nil {
		panic(err)
	}
	return params
}

func parseParam(s string) (Param, error) {
	spec, err := paramspec.Parse(s)
	if err != nil {
		return Param{}, &ConfigurationError{Message: "cannot parse parameter spec", Err: err}
	}

	var p Param
	switch spec.TypeName {
	case "string", "str":
		p = String(spec.Name)
	case "int":
		p = Int(spec.Name)
	case "bool":
		p = Bool(spec.Name)
	case "float", "float64":
		p = Float(spec.Name)
	case "uuid":
		p = UUID(spec.Name)
	default:
		return Param{}, NewConfigurationError("parameter %q: unsupported type %q", spec.Name, spec.TypeName)
	}

	if spec.Key != "" {
		p = p.WithKey(spec.Key)
	}
	if spec.List {
		p = p.AsList()
	}

	switch spec.Scope {
	case "":
	case "settings":
		p = p.FromSettings()
	default:
		return Param{}, NewConfigurationError("parameter %q: unknown scope %q", spec.Name, spec.Scope)
	}

	if spec.HasDefault {
		if spec.List {
			return Param{}, NewConfigurationError("parameter %q: list parameters cannot carry a default in spec form", spec.Name)
		}
		v, err := coercerFor(p.Type)(spec.RawDefault)
		if err != nil {
			return Param{}, NewConfigurationError("parameter %q: default %q is not a valid %s", spec.Name, spec.RawDefault, p.Type)
		}
		p = p.WithDefault(v)
	}
	return p, nil
}
