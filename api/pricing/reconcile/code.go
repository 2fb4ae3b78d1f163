package reconcile

import "strings"

// CanonicalCode strips the supplier-assigned variant suffix from a material
// code: a trailing dot followed by exactly three digits ("130.000" -> "130",
// "AB-12.500" -> "AB-12"). Codes without the suffix pass through unchanged.
func CanonicalCode(code string) string {
	code = strings.TrimSpace(code)
	if len(code) < 4 {
		return code
	}
	tail := code[len(code)-4:]
	if tail[0] != '.' {
		return code
	}
	for i := 1; i < 4; i++ {
		if tail[i] < '0' || tail[i] > '9' {
			return code
		}
	}
	return code[:len(code)-4]
}
