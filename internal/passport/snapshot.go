package passport

import (
	"encoding/json"
	"fmt"

	"gozai/internal/assess"
)

// Snapshot is the machine-readable export of an assessment, mirroring
// the fields the PDF renders.
type Snapshot struct {
	UUID               string                  `json:"uuid"`
	PassportID         string                  `json:"passport_id"`
	Product            string                  `json:"product"`
	Brand              string                  `json:"brand"`
	Category           string                  `json:"category"`
	Manufacturer       string                  `json:"manufacturer"`
	Origin             string                  `json:"origin"`
	DamageLevel        int                     `json:"damage_level"`
	DamageType         string                  `json:"damage_type"`
	RecommendedAction  string                  `json:"recommended_action"`
	RepairCost         int                     `json:"repair_cost"`
	MarketValue        int                     `json:"market_value"`
	EstimatedValue     int                     `json:"estimated_value"`
	Confidence         float64                 `json:"confidence"`
	RepairabilityScore string                  `json:"repairability_score"`
	Materials          map[string]string       `json:"materials"`
	LifecycleEvents    []assess.LifecycleEvent `json:"lifecycle_events"`
}

// NewSnapshot flattens a result into its export form.
func NewSnapshot(r *assess.Result) Snapshot {
	return Snapshot{
		UUID:               r.UUID,
		PassportID:         r.PassportID,
		Product:            r.ProductName,
		Brand:              r.Brand,
		Category:           string(r.Category),
		Manufacturer:       r.Manufacturer,
		Origin:             r.Origin,
		DamageLevel:        r.DamageLevel,
		DamageType:         r.DamageType,
		RecommendedAction:  string(r.Action),
		RepairCost:         r.RepairCost,
		MarketValue:        r.MarketValue,
		EstimatedValue:     r.EstimatedValue,
		Confidence:         r.Confidence,
		RepairabilityScore: fmt.Sprintf("%.1f/10", r.RepairabilityScore),
		Materials:          r.Materials,
		LifecycleEvents:    r.Lifecycle,
	}
}

// MarshalIndent renders the snapshot as indented JSON for on-screen
// display.
func (s Snapshot) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot %s: %w", s.PassportID, err)
	}
	return data, nil
}
