// Package numeric is the single entry point for turning stat values into
// exact decimals. Binary floats are converted through their shortest text
// form so 0.1 stays 0.1.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

var (
	// Zero is the decimal 0
	Zero = decimal.Zero
	// One is the decimal 1
	One = decimal.NewFromInt(1)
	// Hundred is the decimal 100
	Hundred = decimal.NewFromInt(100)
)

// FromInt converts an integer losslessly
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromString parses plain or scientific notation ("42.5", "1.5E+3")
func FromString(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, calcerr.InvalidNumberf("empty numeric literal")
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, calcerr.WrapWithCode(err, calcerr.CodeInvalidNumber,
			"invalid numeric literal "+strconv.Quote(s))
	}
	return d, nil
}

// MustString parses s and panics on failure. Only for literals in code.
func MustString(s string) decimal.Decimal {
	d, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromFloat converts a binary float through its shortest round-trip text
func FromFloat(f float64) (decimal.Decimal, error) {
	return fromFloatBits(f, 64)
}

func fromFloatBits(f float64, bitSize int) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, calcerr.InvalidNumberf("non-finite float %v", f)
	}
	return FromString(strconv.FormatFloat(f, 'f', -1, bitSize))
}

// FromAny converts any supported stat representation
func FromAny(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case int:
		return FromInt(int64(n)), nil
	case int8:
		return FromInt(int64(n)), nil
	case int16:
		return FromInt(int64(n)), nil
	case int32:
		return FromInt(int64(n)), nil
	case int64:
		return FromInt(n), nil
	case uint:
		return FromString(strconv.FormatUint(uint64(n), 10))
	case uint8:
		return FromInt(int64(n)), nil
	case uint16:
		return FromInt(int64(n)), nil
	case uint32:
		return FromInt(int64(n)), nil
	case uint64:
		return FromString(strconv.FormatUint(n, 10))
	case float32:
		return fromFloatBits(float64(n), 32)
	case float64:
		return fromFloatBits(n, 64)
	case string:
		return FromString(n)
	case json.Number:
		return FromString(n.String())
	case nil:
		return decimal.Zero, calcerr.InvalidNumberf("missing numeric value")
	default:
		return decimal.Zero, calcerr.InvalidNumberf("unsupported numeric type %T", v)
	}
}

// Percent turns a whole-number percentage into a fraction (42 -> 0.42)
func Percent(d decimal.Decimal) decimal.Decimal {
	return d.Shift(-2)
}
