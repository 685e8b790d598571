package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
		ok   bool
	}{
		{raw: "tech", want: CategoryTech, ok: true},
		{raw: "  Fashion ", want: CategoryFashion, ok: true},
		{raw: "ENTERTAINMENT", want: CategoryEntertainment, ok: true},
		{raw: "sports"},
		{raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseCategory(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryNames(t *testing.T) {
	assert.Equal(t, []string{"tech", "fashion", "education", "business", "health", "entertainment", "other"}, CategoryNames())
}
