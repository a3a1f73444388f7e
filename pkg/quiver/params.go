package quiver

// Scope identifies where a parameter's value is drawn from.
type Scope int

const (
	// ScopeQuery parameters are read from the inbound query string.
	ScopeQuery Scope = iota

	// ScopeSettings parameters are resolved from the Settings collaborator.
	// They are never required from the query string and never emitted into
	// built URLs.
	ScopeSettings
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeSettings:
		return "settings"
	default:
		return "query"
	}
}

// ParamType identifies the coercion applied to a parameter's raw value.
type ParamType int

const (
	TypeString ParamType = iota
	TypeInt
	TypeBool
	TypeFloat
	TypeUUID
	TypeCustom
)

// String returns the type name as used in parameter spec strings.
func (t ParamType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeFloat:
		return "float"
	case TypeUUID:
		return "uuid"
	default:
		return "custom"
	}
}

// Coercer converts a raw query-string value into a typed argument.
type Coercer func(string) (any, error)

// Param describes a single handler argument: where its value comes from, how
// the raw string is coerced, and which default applies when the caller omits
// it. Params are declared at registration time, validated once, and cached
// on the route.
type Param struct {
	// Name is the argument name handlers use to look the value up in Args.
	Name string

	// Key is the external query-string key when it differs from Name.
	Key string

	Type  ParamType
	List  bool
	Scope Scope

	// Default applies when the key is absent from the query string.
	// HasDefault distinguishes an explicit zero default from "no default".
	Default    any
	HasDefault bool

	// Coerce overrides the coercion inferred from Type. Required for
	// TypeCustom.
	Coerce Coercer
}

// String declares a string parameter.
func String(name string) Param { return Param{Name: name, Type: TypeString} }

// Int declares an integer parameter.
func Int(name string) Param { return Param{Name: name, Type: TypeInt} }

// Bool declares a boolean parameter. Coercion is total: any value outside
// the truthy set is false.
func Bool(name string) Param { return Param{Name: name, Type: TypeBool} }

// Float declares a float64 parameter.
func Float(name string) Param { return Param{Name: name, Type: TypeFloat} }

// UUID declares a uuid.UUID parameter.
func UUID(name string) Param { return Param{Name: name, Type: TypeUUID} }

// Custom declares a parameter with a caller-supplied coercion function.
func Custom(name string, coerce Coercer) Param {
	return Param{Name: name, Type: TypeCustom, Coerce: coerce}
}

// WithDefault returns a copy of the parameter with a default value, making
// it optional.
func (p Param) WithDefault(v any) Param {
	p.Default = v
	p.HasDefault = true
	return p
}

// WithKey returns a copy of the parameter whose external query-string key
// differs from its internal name.
func (p Param) WithKey(key string) Param {
	p.Key = key
	return p
}

// FromSettings returns a copy of the parameter scoped to the settings
// collaborator. Settings-scoped parameters are never read from the query
// string.
func (p Param) FromSettings() Param {
	p.Scope = ScopeSettings
	return p
}

// AsList returns a copy of the parameter that accepts repeated keys and
// binds to a slice.
func (p Param) AsList() Param {
	p.List = true
	return p
}

// Required reports whether the caller must supply the parameter: true iff it
// has no default and is not settings-scoped.
func (p Param) Required() bool {
	return !p.HasDefault && p.Scope != ScopeSettings
}

// queryKey returns the external key used on the wire.
func (p Param) queryKey() string {
	if p.Key != "" {
		return p.Key
	}
	return p.Name
}

// finalize validates the descriptor and resolves its coercer. Called once at
// route registration.
func (p *Param) finalize() error {
	if p.Name == "" {
		return NewConfigurationError("parameter with empty name")
	}
	if p.Coerce == nil {
		if p.Type == TypeCustom {
			return NewConfigurationError("parameter %q: custom type requires a coercion function", p.Name)
		}
		p.Coerce = coercerFor(p.Type)
	}
	if p.Scope == ScopeSettings && p.List {
		return NewConfigurationError("parameter %q: settings-scoped parameters cannot be lists", p.Name)
	}
	return nil
}
