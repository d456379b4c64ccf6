package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil input", nil, []string{}},
		{"trim and lowercase", []string{"Outdoors ", " TRAVEL"}, []string{"outdoors", "travel"}},
		{"order preserved", []string{"b", "a", "c"}, []string{"b", "a", "c"}},
		{"duplicates preserved", []string{"a", "A ", "a"}, []string{"a", "a", "a"}},
		{"blank dropped", []string{"", "  ", "x"}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}
