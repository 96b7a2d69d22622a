package recoil

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/recoil/parameter"
)

// FormatSensitivity renders v with SensitivityPrecision fractional digits, trailing zeros trimmed
// At least one fractional digit is kept: 5 -> "5.0", 6.66666 -> "6.66666", 0.25 -> "0.25"
// The last digit is rounded, not truncated: 1.123456 -> "1.12346"
// Non-positive values render as "0"
func FormatSensitivity(v float64) string {
	if !(v > 0) {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', parameter.SensitivityPrecision, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// FormatFieldOfView renders the integer part of v without a decimal point
func FormatFieldOfView(v float64) string {
	return strconv.Itoa(int(v))
}
