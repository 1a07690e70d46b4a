package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	s := NewSimpleSegmenter()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"han runes split individually", "金城花园", []string{"金", "城", "花", "园"}},
		{"ascii run groups", "7号楼B2", []string{"7", "号", "楼", "b2"}},
		{"full-width folded", "１２Ａ号", []string{"12a", "号"}},
		{"punctuation separates", "金-城 3a", []string{"金", "城", "3a"}},
		{"mixed", "A座102室", []string{"a", "座", "102", "室"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Segment(tt.text))
		})
	}
}
