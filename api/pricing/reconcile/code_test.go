package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"130.000", "130"},
		{"100.001", "100"},
		{"AB-12.500", "AB-12"},
		{"130", "130"},
		{"130.00", "130.00"},     // only two digits after the dot
		{"130.0000", "130.0000"}, // four digits, not the supplier suffix
		{"130.ABC", "130.ABC"},
		{"  130.000  ", "130"},
		{".000", ""},
		{"", ""},
		{"AB", "AB"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanonicalCode(tc.in), "input %q", tc.in)
	}
}

func TestCanonicalCodeIdempotent(t *testing.T) {
	for _, code := range []string{"130.000", "AB-12.500", "100.001", "X", ""} {
		once := CanonicalCode(code)
		assert.Equal(t, once, CanonicalCode(once), "normalizing %q twice", code)
	}
}
