package quiver

import (
	"strconv"

	"github.com/google/uuid"
)

// CoerceString returns the raw value unchanged.
func CoerceString(raw string) (any, error) {
	return raw, nil
}

// CoerceInt parses the raw value as a base-10 integer.
func CoerceInt(raw string) (any, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// CoerceBool interprets the raw value with the query-string truthiness rules.
// It is total and never returns an error.
func CoerceBool(raw string) (any, error) {
	return truthy(raw), nil
}

// CoerceFloat parses the raw value as a float64.
func CoerceFloat(raw string) (any, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CoerceUUID parses the raw value as a uuid.UUID.
func CoerceUUID(raw string) (any, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return id, nil
}

func coercerFor(t ParamType) Coercer {
	switch t {
	case TypeInt:
		return CoerceInt
	case TypeBool:
		return CoerceBool
	case TypeFloat:
		return CoerceFloat
	case TypeUUID:
		return CoerceUUID
	default:
		return CoerceString
	}
}
