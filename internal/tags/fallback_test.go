package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBasicTags(t *testing.T) {
	tests := []struct {
		name        string
		productName string
		description string
		want        []string
	}{
		{
			name:        "single keyword match",
			productName: "Wireless Mouse",
			description: "A sleek electronics accessory",
			want:        []string{"electronics"},
		},
		{
			name:        "matches follow vocabulary order, capped at 3",
			productName: "Premium organic kitchen set",
			description: "Modern home and garden essentials",
			want:        []string{"home", "kitchen", "garden"},
		},
		{
			name:        "case-insensitive",
			productName: "BOOKS for BABY",
			description: "",
			want:        []string{"books", "baby"},
		},
		{
			name:        "no matches",
			productName: "Widget",
			description: "A thing",
			want:        []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBasicTags(tt.productName, tt.description))
		})
	}
}
