// Package model defines the core domain models used throughout the application.
package model

import (
	"encoding/json"
	"fmt"
)

// Result is a classification returned by the service. It is treated as
// immutable once decoded; use Clone before handing it to another owner.
type Result struct {
	ID                  string   `json:"id,omitempty"`
	Category            Category `json:"category"`
	EnvironmentalImpact string   `json:"environmental_impact"`
	DisposalTips        []string `json:"disposal_tips"`
	Confidence          float64  `json:"confidence"`
	SustainabilityScore float64  `json:"sustainability_score"`
}

// UnmarshalJSON normalizes the category name onto the enumeration.
func (r *Result) UnmarshalJSON(data []byte) error {
	type alias Result
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode classification result: %w", err)
	}
	raw.Category = ParseCategory(string(raw.Category))
	*r = Result(raw)
	return nil
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	out := r
	if r.DisposalTips != nil {
		out.DisposalTips = append([]string(nil), r.DisposalTips...)
	}
	return out
}

// SustainabilityLevel returns the tier of the result's score.
func (r Result) SustainabilityLevel() string {
	return SustainabilityLevel(r.SustainabilityScore)
}

// ConfidencePercent returns the confidence as a percentage.
func (r Result) ConfidencePercent() float64 {
	return r.Confidence * 100
}

// Tips is the disposal guidance the service returns for a category.
type Tips struct {
	Category Category `json:"category"`
	Impact   string   `json:"impact"`
	Tips     []string `json:"tips"`
	Score    float64  `json:"score"`
}

// ServiceInfo describes the running classification service.
type ServiceInfo struct {
	Endpoints map[string]string `json:"endpoints"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
}
