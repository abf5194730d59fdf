package taxonomy_test

import (
	"testing"

	"github.com/netgrove/invsync/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name unchanged", "Site01", "Site01"},
		{"slash becomes dash", "Virtual/Physical Router", "Virtual-Physical Router"},
		{"parentheses stripped", "Rack 12 (east)", "Rack 12 east"},
		{"mixed", "core/agg (row 3)", "core-agg row 3"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, taxonomy.Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Virtual/Physical Switch",
		"lab (staging)",
		"plain",
		"a/b/(c)",
	}
	for _, in := range inputs {
		once := taxonomy.Normalize(in)
		assert.Equal(t, once, taxonomy.Normalize(once), "normalize must be idempotent for %q", in)
	}
}
