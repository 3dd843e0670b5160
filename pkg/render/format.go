package render

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-formbind/pkg/model"
)

// InputValue renders a value the way it must be echoed back into an editable
// control: plain, locale independent, so the next submission parses again.
func InputValue(field model.Field, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return model.FormatNumber(v)
	case float32:
		return model.FormatNumber(float64(v))
	default:
		if n, ok := toFloat(v); ok {
			return model.FormatNumber(n)
		}
		return fmt.Sprint(v)
	}
}

// FormatValue renders a value for display in a read-only output. Numbers use
// the grouping and decimal separators of locale; an empty or unknown locale
// falls back to the plain representation.
func FormatValue(value any, locale string) string {
	n, ok := toFloat(value)
	if !ok {
		if value == nil {
			return ""
		}
		if s, isString := value.(string); isString {
			return s
		}
		if b, isBool := value.(bool); isBool {
			if b {
				return "true"
			}
			return "false"
		}
		return fmt.Sprint(value)
	}

	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		return model.FormatNumber(n)
	}
	printer := message.NewPrinter(tag)
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return printer.Sprint(number.Decimal(int64(n)))
	}
	return printer.Sprint(number.Decimal(n, number.MaxFractionDigits(6)))
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
