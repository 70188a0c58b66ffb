package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"biodegradable", CategoryBiodegradable},
		{"Recyclable", CategoryRecyclable},
		{"  HAZARDOUS ", CategoryHazardous},
		{"compostable", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.input))
		})
	}
}

func TestCategory_Presentation(t *testing.T) {
	tests := []struct {
		category  Category
		wantLabel string
		wantColor string
		wantKnown bool
	}{
		{CategoryBiodegradable, "Biodegradable", ColorGreen, true},
		{CategoryRecyclable, "Recyclable", ColorBlue, true},
		{CategoryHazardous, "Hazardous", ColorRed, true},
		{Category("glass"), "Unknown", ColorGrey, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.wantLabel, tt.category.Label())
			assert.Equal(t, tt.wantColor, tt.category.Color())
			assert.Equal(t, tt.wantKnown, tt.category.IsKnown())
		})
	}
}

func TestCategories_Order(t *testing.T) {
	assert.Equal(t, []Category{CategoryBiodegradable, CategoryRecyclable, CategoryHazardous}, Categories())
}

func TestSustainabilityLevel(t *testing.T) {
	tests := []struct {
		want  string
		score float64
	}{
		{SustainabilityHigh, 10},
		{SustainabilityHigh, 7.0},
		{SustainabilityMedium, 6.9},
		{SustainabilityMedium, 4.0},
		{SustainabilityLow, 3.9},
		{SustainabilityLow, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SustainabilityLevel(tt.score), "score %.1f", tt.score)
	}
}
