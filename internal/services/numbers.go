package services

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"games_api/internal/models"
)

// ParseFloat reads the longest decimal prefix of s, after leading
// whitespace. It accepts an optional sign, digits with an optional fraction
// and exponent, or "Infinity". Input without such a prefix yields NaN.
func ParseFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}

	// exponent only counts when at least one digit follows
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}
	return f
}

// ParseID reads a leading integer from s the way a lenient path parser
// would: "12abc" is 12, "0x1f" is 31, anything without digits is rejected.
func ParseID(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && digitVal(s[end]) < base {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// PriceOf converts a stored price to a number. JSON numbers are used as is,
// JSON strings go through ParseFloat, everything else is NaN.
func PriceOf(f models.Field) float64 {
	if !f.IsSet() {
		return math.NaN()
	}
	if s, ok := f.String(); ok {
		return ParseFloat(s)
	}

	var n json.Number
	if err := json.Unmarshal(f.Raw(), &n); err != nil {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(n.String(), 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}
	return v
}

// FormatFixed renders v with two decimals. Exact halves round away from
// zero; non-finite values use the JavaScript spellings.
func FormatFixed(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	if v == 0 {
		v = 0 // -0 prints as 0.00
	}
	if isExactHalf(v) {
		v = math.Nextafter(v, math.Copysign(math.Inf(1), v))
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// isExactHalf reports whether v lies exactly between two hundredths.
func isExactHalf(v float64) bool {
	x := new(big.Float).SetPrec(128).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(1000))
	if !x.IsInt() {
		return false
	}
	n, _ := x.Int(nil)
	return new(big.Int).Mod(n, big.NewInt(10)).Int64() == 5
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func digitVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 99
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
