package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the classification output domain.
type Category string

// Known categories. CategoryUnknown is the explicit fallback for anything the
// service returns that is not one of the three known values.
const (
	CategoryBiodegradable Category = "biodegradable"
	CategoryRecyclable    Category = "recyclable"
	CategoryHazardous     Category = "hazardous"
	CategoryUnknown       Category = "unknown"
)

// Palette colors used by charts and badges.
const (
	ColorGreen = "#4CAF50"
	ColorBlue  = "#2196F3"
	ColorRed   = "#F44336"
	ColorGrey  = "#9E9E9E"
)

// Sustainability tiers.
const (
	SustainabilityHigh   = "high"
	SustainabilityMedium = "medium"
	SustainabilityLow    = "low"
)

var titleCaser = cases.Title(language.English)

// Categories returns the known categories in enumeration order. The order is
// load-bearing: it fixes bar series order and insight tie-breaks.
func Categories() []Category {
	return []Category{CategoryBiodegradable, CategoryRecyclable, CategoryHazardous}
}

// ParseCategory maps a service category name onto the enumeration.
// Matching is case-insensitive; unrecognized names map to CategoryUnknown.
func ParseCategory(name string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(name))) {
	case CategoryBiodegradable:
		return CategoryBiodegradable
	case CategoryRecyclable:
		return CategoryRecyclable
	case CategoryHazardous:
		return CategoryHazardous
	default:
		return CategoryUnknown
	}
}

// IsKnown reports whether c is one of the three known categories.
func (c Category) IsKnown() bool {
	return ParseCategory(string(c)) != CategoryUnknown
}

// Label returns the capitalized display name.
func (c Category) Label() string {
	return titleCaser.String(string(ParseCategory(string(c))))
}

// Color returns the chart color for the category.
func (c Category) Color() string {
	switch ParseCategory(string(c)) {
	case CategoryBiodegradable:
		return ColorGreen
	case CategoryRecyclable:
		return ColorBlue
	case CategoryHazardous:
		return ColorRed
	default:
		return ColorGrey
	}
}

// SustainabilityLevel tiers a sustainability score.
func SustainabilityLevel(score float64) string {
	switch {
	case score >= 7:
		return SustainabilityHigh
	case score >= 4:
		return SustainabilityMedium
	default:
		return SustainabilityLow
	}
}
