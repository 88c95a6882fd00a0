package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		from, want int
	}{
		{"first page", 1, 10, 0, 10},
		{"second page", 2, 10, 10, 10},
		{"zero page clamps", 0, 10, 0, 10},
		{"negative size uses default", 1, -5, 0, DefaultPageSize},
		{"oversized page size uses default", 1, 500, 0, DefaultPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			from, limit := Calculate(tc.page, tc.size)
			require.Equal(t, tc.from, from)
			require.Equal(t, tc.want, limit)
		})
	}
}
