package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CoerceCount converts a loosely typed count column to int64.
// nil, empty, non-numeric and out-of-range values yield 0.
func CoerceCount(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case int64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float64:
		return floatCount(x)
	case float32:
		return floatCount(float64(x))
	case []byte:
		return parseCount(string(x))
	case string:
		return parseCount(x)
	default:
		return 0
	}
}

func parseCount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return floatCount(f)
}

// floatCount treats values outside the int64 range as malformed.
func floatCount(f float64) int64 {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

// CoerceString renders a scanned column as a string; nil becomes "".
func CoerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return ""
	}
}

// CoerceDate returns the YYYY-MM-DD form of a date column. Dates arrive as
// time.Time from a DATE column or as text.
func CoerceDate(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(DateLayout)
	default:
		s := strings.TrimSpace(CoerceString(v))
		if len(s) > len(DateLayout) {
			s = s[:len(DateLayout)]
		}
		return s
	}
}

// Truthy is the permissive flag check used for site enablement:
// true, 1, "1" and "true" count as enabled.
func Truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x == 1
	case int:
		return x == 1
	case int32:
		return x == 1
	case float64:
		return x == 1
	case []byte:
		return truthyString(string(x))
	case string:
		return truthyString(x)
	default:
		return false
	}
}

func truthyString(s string) bool {
	return s == "1" || s == "true"
}
