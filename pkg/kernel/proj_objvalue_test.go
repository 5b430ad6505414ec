package kernel_test

import (
	"testing"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

func TestNITIsValid(t *testing.T) {
	cases := []struct {
		nit   kernel.NIT
		valid bool
	}{
		{"900123456-7", true},
		{"123456789", true},
		{"900.123.456-7", true},
		{"12345678", true},     // 8 digits, lower bound
		{"1234567890", true},   // 10 digits, upper bound
		{"1234567", false},     // below the bound
		{"12345678901", false}, // above the bound
		{"900123456-77", false},
		{"900123456-X", false},
		{"90012345A", false},
		{"", false},
	}
	for _, c := range cases {
		if got := c.nit.IsValid(); got != c.valid {
			t.Errorf("NIT(%q).IsValid() = %v, want %v", c.nit, got, c.valid)
		}
	}
}
