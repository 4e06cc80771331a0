// Package assess implements the simulated damage assessment. Nothing
// here inspects the uploaded image; every figure is drawn from an
// injected random source so tests can run deterministically.
package assess

import (
	"time"

	"gozai/internal/catalog"
)

// Action is the recommendation derived from the damage level.
type Action string

const (
	ActionSell    Action = "SELL"
	ActionRepair  Action = "REPAIR"
	ActionDispose Action = "DISPOSE"
)

// ActionForLevel classifies a damage level in [1,8]:
// level <= 2 sells, 3..5 repairs, >= 6 disposes.
func ActionForLevel(level int) Action {
	switch {
	case level <= 2:
		return ActionSell
	case level <= 5:
		return ActionRepair
	default:
		return ActionDispose
	}
}

// LifecycleEvent is one entry in the product's passport history.
type LifecycleEvent struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

// Result is a completed assessment. Created once per analysis and
// immutable afterwards; the session holds it until reset.
type Result struct {
	UUID       string
	PassportID string

	ProductName string
	Brand       string
	Category    catalog.Category

	DamageLevel int
	DamageType  string
	Action      Action

	RepairCost     int
	MarketValue    int
	EstimatedValue int
	Confidence     float64

	// Digital product passport fields.
	Manufacturer       string
	Origin             string
	RepairabilityScore float64
	Materials          map[string]string
	Lifecycle          []LifecycleEvent

	CreatedAt time.Time
}

// EstimatedValue derives the post-damage value: each damage level knocks
// 150 currency units off the market value, floored at zero.
func EstimatedValue(marketValue, level int) int {
	v := marketValue - level*150
	if v < 0 {
		return 0
	}
	return v
}
