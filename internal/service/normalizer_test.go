package service

import (
	"testing"

	"trivia-harvester/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    []domain.RawItem
		expected []domain.NormalizedItem
	}{
		{
			name:     "nil input yields empty slice",
			input:    nil,
			expected: []domain.NormalizedItem{},
		},
		{
			name:     "boolean items are excluded",
			input:    []domain.RawItem{rawBoolean("Is water wet?", "True")},
			expected: []domain.NormalizedItem{},
		},
		{
			name: "entities are decoded and order kept",
			input: []domain.RawItem{
				rawMultiple("Who wrote &quot;Hamlet&quot;?", "William Shakespeare"),
				rawBoolean("The sky is blue.", "True"),
				rawMultiple("What does &lt;br&gt; do?", "Line break &amp; more"),
				rawMultiple("Caf&eacute; or caf&#233;?", "Both&#039;s fine"),
			},
			expected: []domain.NormalizedItem{
				{Question: `Who wrote "Hamlet"?`, Answer: "William Shakespeare"},
				{Question: "What does <br> do?", Answer: "Line break & more"},
				{Question: "Café or café?", Answer: "Both's fine"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			assert.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first := Normalize([]domain.RawItem{
		rawMultiple("Tom &amp; Jerry", "Cat &amp; mouse"),
		rawMultiple("Plain", "Text"),
	})

	again := make([]domain.RawItem, 0, len(first))
	for _, item := range first {
		again = append(again, rawMultiple(item.Question, item.Answer))
	}

	assert.Equal(t, first, Normalize(again))
}
