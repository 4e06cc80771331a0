package assess

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"gozai/internal/catalog"
)

func newTestAssessor(c *catalog.Catalogue) *Assessor {
	rng := rand.New(rand.NewSource(1))
	return New(c, rng, NopPacer{}, "PL")
}

func TestActionForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  Action
	}{
		{1, ActionSell},
		{2, ActionSell},
		{3, ActionRepair},
		{4, ActionRepair},
		{5, ActionRepair},
		{6, ActionDispose},
		{7, ActionDispose},
		{8, ActionDispose},
	}
	for _, tt := range tests {
		if got := ActionForLevel(tt.level); got != tt.want {
			t.Errorf("ActionForLevel(%d) = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func TestEstimatedValue(t *testing.T) {
	if got := EstimatedValue(1000, 4); got != 400 {
		t.Errorf("EstimatedValue(1000, 4) = %d, want 400", got)
	}
	if got := EstimatedValue(100, 8); got != 0 {
		t.Errorf("EstimatedValue(100, 8) = %d, want 0 (floored)", got)
	}
	for level := 1; level <= 8; level++ {
		for _, market := range []int{0, 50, 500, 5000} {
			if got := EstimatedValue(market, level); got < 0 {
				t.Errorf("EstimatedValue(%d, %d) = %d, negative", market, level, got)
			}
		}
	}
}

func TestEvaluateRepairLevel(t *testing.T) {
	a := newTestAssessor(&catalog.Catalogue{})
	product := catalog.Product{
		Name: "Phone", Brand: "Acme",
		Category: catalog.CategoryElectronics, MarketValue: 1000,
	}

	res := a.Evaluate(product, "cracked_screen", 4)

	if res.Action != ActionRepair {
		t.Errorf("Action = %s, want REPAIR", res.Action)
	}
	if res.EstimatedValue != 400 {
		t.Errorf("EstimatedValue = %d, want 400", res.EstimatedValue)
	}
	if res.RepairCost < 200 || res.RepairCost > 800 {
		t.Errorf("RepairCost = %d, want in [200, 800]", res.RepairCost)
	}
	if res.Confidence < 0.85 || res.Confidence > 0.99 {
		t.Errorf("Confidence = %v, want in [0.85, 0.99]", res.Confidence)
	}
	if res.RepairabilityScore < 4.0 || res.RepairabilityScore > 9.0 {
		t.Errorf("RepairabilityScore = %v, want in [4.0, 9.0]", res.RepairabilityScore)
	}
	if !strings.HasPrefix(res.PassportID, "DPP-PL-") || len(res.PassportID) != len("DPP-PL-00000") {
		t.Errorf("PassportID = %q, want DPP-PL-NNNNN", res.PassportID)
	}
	if res.UUID == "" {
		t.Error("UUID is empty")
	}
	if len(res.Lifecycle) != 2 || res.Lifecycle[1].Type != "Damage_Detected_AI" {
		t.Errorf("unexpected lifecycle: %+v", res.Lifecycle)
	}
	if len(res.Materials) == 0 {
		t.Error("Materials is empty for a known category")
	}
	if res.Origin == "" {
		t.Error("Origin is empty for a known category")
	}
}

func TestEvaluateNoRepairCostOutsideRepair(t *testing.T) {
	a := newTestAssessor(&catalog.Catalogue{})
	product := catalog.Product{Name: "Phone", Category: catalog.CategoryElectronics, MarketValue: 1000}

	for _, level := range []int{1, 2, 6, 7, 8} {
		res := a.Evaluate(product, "dent", level)
		if res.RepairCost != 0 {
			t.Errorf("level %d: RepairCost = %d, want 0", level, res.RepairCost)
		}
	}
}

func TestAnalyzeEmptyCatalogueFallsBack(t *testing.T) {
	a := newTestAssessor(&catalog.Catalogue{})

	var stages []Stage
	res, err := a.Analyze(context.Background(), "photo.jpg", func(st Stage) {
		stages = append(stages, st)
	})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if res.ProductName != "Unidentified device" {
		t.Errorf("ProductName = %q, want fallback", res.ProductName)
	}
	if res.Category != catalog.CategoryElectronics {
		t.Errorf("Category = %s, want electronics", res.Category)
	}
	if res.MarketValue != 2000 {
		t.Errorf("MarketValue = %d, want 2000", res.MarketValue)
	}
	if res.DamageType != "general_damage" {
		t.Errorf("DamageType = %q, want general_damage", res.DamageType)
	}
	if res.DamageLevel < 1 || res.DamageLevel > 8 {
		t.Errorf("DamageLevel = %d, want in [1, 8]", res.DamageLevel)
	}

	if len(stages) != len(Stages) {
		t.Fatalf("got %d stages, want %d", len(stages), len(Stages))
	}
	if last := stages[len(stages)-1]; last.Percent != 100 {
		t.Errorf("final stage percent = %d, want 100", last.Percent)
	}
}

func TestAnalyzePicksFromCatalogue(t *testing.T) {
	c := &catalog.Catalogue{Products: []catalog.Product{
		{Name: "Chair", Brand: "Sit", Category: catalog.CategoryFurniture,
			MarketValue: 300, CommonDamage: []string{"broken_leg"}},
	}}
	a := newTestAssessor(c)

	res, err := a.Analyze(context.Background(), "chair.png", nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if res.ProductName != "Chair" || res.DamageType != "broken_leg" {
		t.Errorf("got product %q damage %q, want the single fixture", res.ProductName, res.DamageType)
	}
	if res.Manufacturer != "Sit" {
		t.Errorf("Manufacturer = %q, want brand", res.Manufacturer)
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	a := newTestAssessor(&catalog.Catalogue{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Analyze(ctx, "photo.jpg", nil); err == nil {
		t.Error("Analyze on cancelled context returned nil error")
	}
}

func TestSleepPacerCancelled(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewSleepPacer(rng, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := p.Pace(ctx, Stages[0])
	if err != context.Canceled {
		t.Errorf("Pace on cancelled context = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Pace took %v after cancellation", elapsed)
	}
}

func TestNewSleepPacerSwappedBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewSleepPacer(rng, time.Millisecond, 0)
	if err := p.Pace(context.Background(), Stages[0]); err != nil {
		t.Errorf("Pace with swapped bounds returned error: %v", err)
	}
}
