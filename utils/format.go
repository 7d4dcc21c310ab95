package utils

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	secondsPerDay   = 60 * 60 * 24
	secondsPerMonth = secondsPerDay * 30
	secondsPerYear  = secondsPerDay * 365
)

// Round rounds half toward positive infinity (2.5 -> 3, -2.5 -> -2)
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// ToFixed formats x with the given number of decimals.
// Exact decimal ties round away from zero (0.25 -> "0.3"); strconv would round them to even.
func ToFixed(x float64, digits int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	neg := x < 0
	if neg {
		x = -x
	}

	scale := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	f := new(big.Float).SetPrec(256).SetFloat64(x)
	f.Mul(f, scale)
	f.Add(f, big.NewFloat(0.5))
	n, _ := f.Int(nil)

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg && n.Sign() != 0 {
		s = "-" + s
	}
	return s
}

// ParseNumber reads a formatted metric back into a float; unparsable input is 0
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatFloat renders a float with the fewest digits needed, without exponent or trailing zeros
func FormatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// FormatNumber abbreviates large counts to K and M
func FormatNumber(n float64) string {
	switch {
	case n >= 1e6:
		return ToFixed(n/1e6, 1) + "M"
	case n >= 1e3:
		return ToFixed(n/1e3, 1) + "K"
	default:
		return FormatFloat(n)
	}
}

// AgeSeconds returns the seconds elapsed between createdUTC and now
func AgeSeconds(createdUTC float64, now time.Time) float64 {
	return float64(now.UnixMilli())/1000 - createdUTC
}

// AccountAge renders an account age like "3 years, 2 months"
func AccountAge(createdUTC float64, now time.Time) string {
	s := AgeSeconds(createdUTC, now)
	y := int(math.Floor(s / secondsPerYear))
	m := int(math.Floor(math.Mod(s, secondsPerYear) / secondsPerMonth))

	switch {
	case y == 0:
		return fmt.Sprintf("%d month%s", m, plural(m))
	case m == 0:
		return fmt.Sprintf("%d year%s", y, plural(y))
	default:
		return fmt.Sprintf("%d year%s, %d month%s", y, plural(y), m, plural(m))
	}
}

// AgeInMonths returns the account age in 30-day months
func AgeInMonths(createdUTC float64, now time.Time) float64 {
	return AgeSeconds(createdUTC, now) / secondsPerMonth
}

// AgeInYears returns the account age in 365-day years
func AgeInYears(createdUTC float64, now time.Time) float64 {
	return AgeSeconds(createdUTC, now) / secondsPerYear
}

func plural(n int) string {
	if n != 1 {
		return "s"
	}
	return ""
}
