package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobMatchType(t *testing.T) {
	tests := []struct {
		in   string
		want JobMatchType
		ok   bool
	}{
		{"PII", JobMatchPII, true},
		{"pii", JobMatchPII, true},
		{"digital", JobMatchDigital, true},
		{"TRANSACTION", JobMatchTransaction, true},
		{"", "", false},
		{"email", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseJobMatchType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttributeConfigClone_Categorical(t *testing.T) {
	orig := AttributeConfig{
		AttributeName: "Gender",
		Type:          AttributeCategorical,
		Categorical: &CategoricalConfig{
			Selected: []string{"Female"},
			Options:  []string{"Male", "Female"},
		},
	}

	c := orig.Clone()
	c.Categorical.Selected[0] = "Male"
	c.Categorical.Options = append(c.Categorical.Options, "Other")

	assert.Equal(t, []string{"Female"}, orig.Categorical.Selected)
	assert.Len(t, orig.Categorical.Options, 2)
}

func TestAttributeConfigClone_Range(t *testing.T) {
	orig := AttributeConfig{AttributeName: "Age", Type: AttributeRange, Range: &RangeConfig{Min: 18, Max: 65}}

	c := orig.Clone()
	require.NotNil(t, c.Range)
	c.Range.Max = 99

	assert.InDelta(t, 65, orig.Range.Max, 0.001)
	assert.Nil(t, c.Categorical)
}
