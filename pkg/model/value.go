package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrInvalidNumber reports a value that cannot be read as a number.
	ErrInvalidNumber = errors.New("not a number")
	// ErrInvalidBool reports a value that cannot be read as a yes/no flag.
	ErrInvalidBool = errors.New("not a boolean")
	// ErrOutOfRange reports a number outside the field bounds.
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidChoice reports a value that is not one of the field choices.
	ErrInvalidChoice = errors.New("not one of the choices")
)

// ParseValue converts submitted form text into the field's value domain and
// validates it.
func ParseValue(field Field, raw string) (any, error) {
	return CoerceValue(field, raw)
}

// CoerceValue converts raw form text or a decoded JSON value into the field's
// value domain (string, float64 or bool) and validates it against the field
// constraints. A nil value resolves to the field default.
func CoerceValue(field Field, value any) (any, error) {
	if value == nil {
		value = field.DefaultValue()
	}

	var (
		out any
		err error
	)
	switch field.Kind.ValueType() {
	case ValueTypeNumber:
		out, err = coerceNumber(field, value)
	case ValueTypeBool:
		out, err = coerceBool(value)
	default:
		out, err = coerceString(value)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(field, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks an already coerced value against the field constraints.
func Validate(field Field, value any) error {
	switch field.Kind.ValueType() {
	case ValueTypeNumber:
		n, ok := value.(float64)
		if !ok {
			return fmt.Errorf("%w: %v", ErrInvalidNumber, value)
		}
		if field.Min != nil && n < *field.Min {
			return fmt.Errorf("%w: %s is below %s", ErrOutOfRange, FormatNumber(n), FormatNumber(*field.Min))
		}
		if field.Max != nil && n > *field.Max {
			return fmt.Errorf("%w: %s is above %s", ErrOutOfRange, FormatNumber(n), FormatNumber(*field.Max))
		}
	case ValueTypeBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: %v", ErrInvalidBool, value)
		}
	default:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected text, got %T", value)
		}
		if field.Kind.HasChoices() && s != "" && !slices.Contains(field.Choices, s) {
			return fmt.Errorf("%w: %q", ErrInvalidChoice, s)
		}
	}
	return nil
}

// FormatNumber renders a float without trailing zeros.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func coerceNumber(field Field, value any) (any, error) {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return coerceNumber(field, field.DefaultValue())
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, v)
		}
		return checkFinite(n)
	case float64:
		return checkFinite(v)
	case float32:
		return checkFinite(float64(v))
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, value)
	}
}

func checkFinite(n float64) (any, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, n)
	}
	return n, nil
}

func coerceBool(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "off", "no", "false", "0":
			return false, nil
		case "on", "yes", "true", "1":
			return true, nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidBool, v)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBool, value)
	}
}

func coerceString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, float64, float32, int, int64, int32:
		return fmt.Sprint(v), nil
	default:
		return nil, fmt.Errorf("expected text, got %T", value)
	}
}
