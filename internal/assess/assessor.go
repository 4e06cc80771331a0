package assess

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"gozai/internal/catalog"
	"gozai/internal/logging"
)

// fallbackProduct is assessed when the catalogue has no products.
var fallbackProduct = catalog.Product{
	Name:        "Unidentified device",
	Brand:       "Unknown",
	Category:    catalog.CategoryElectronics,
	MarketValue: 2000,
}

const fallbackDamage = "general_damage"

// originByCategory feeds the passport origin line.
var originByCategory = map[catalog.Category]string{
	catalog.CategoryElectronics: "Designed in California, Assembled in China",
	catalog.CategoryFurniture:   "Manufactured in Poland",
	catalog.CategoryAppliance:   "Assembled in EU",
}

// materialsByCategory feeds the passport materials block.
var materialsByCategory = map[catalog.Category]map[string]string{
	catalog.CategoryElectronics: {
		"glass":    "Front/Back",
		"aluminum": "Frame (Recycled 100%)",
		"cobalt":   "Battery",
	},
	catalog.CategoryFurniture: {
		"wood":    "Frame (FSC certified)",
		"textile": "Upholstery",
		"steel":   "Fittings",
	},
	catalog.CategoryAppliance: {
		"steel":   "Housing (Recycled 60%)",
		"copper":  "Wiring",
		"plastic": "Internals",
	},
}

// Assessor runs the fake damage analysis. All randomness flows through
// the injected source; all pacing flows through the injected Pacer.
type Assessor struct {
	catalogue *catalog.Catalogue
	rng       *rand.Rand
	pacer     Pacer
	prefix    string
}

// New builds an Assessor over the given catalogue. countryPrefix is
// embedded in generated passport identifiers.
func New(catalogue *catalog.Catalogue, rng *rand.Rand, pacer Pacer, countryPrefix string) *Assessor {
	return &Assessor{
		catalogue: catalogue,
		rng:       rng,
		pacer:     pacer,
		prefix:    countryPrefix,
	}
}

// Analyze runs the staged assessment for the uploaded image. The image
// content is never read; the path is accepted only because the upload is
// what triggers an analysis. onStage, if non-nil, is invoked after each
// stage completes its pace. The only error is context cancellation
// during pacing; an empty catalogue falls back to a stock product.
func (a *Assessor) Analyze(ctx context.Context, imagePath string, onStage func(Stage)) (*Result, error) {
	timer := logging.StartTimer(logging.CategoryAssess, "analyze")
	defer timer.Stop()

	for _, st := range Stages {
		if err := a.pacer.Pace(ctx, st); err != nil {
			return nil, err
		}
		if onStage != nil {
			onStage(st)
		}
	}

	product := fallbackProduct
	if n := len(a.catalogue.Products); n > 0 {
		product = a.catalogue.Products[a.rng.Intn(n)]
	}

	damageType := fallbackDamage
	if n := len(product.CommonDamage); n > 0 {
		damageType = product.CommonDamage[a.rng.Intn(n)]
	}

	level := 1 + a.rng.Intn(8)

	result := a.Evaluate(product, damageType, level)
	logging.Assess("analyzed %q (%s): level=%d action=%s estimated=%d passport=%s",
		product.Name, imagePath, level, result.Action, result.EstimatedValue, result.PassportID)
	return result, nil
}

// Evaluate derives the full assessment for a product at a fixed damage
// level. Split out from Analyze so callers can pin the level.
func (a *Assessor) Evaluate(product catalog.Product, damageType string, level int) *Result {
	action := ActionForLevel(level)

	repairCost := 0
	if action == ActionRepair {
		repairCost = 200 + a.rng.Intn(601)
	}

	confidence := math.Round((0.85+a.rng.Float64()*0.14)*100) / 100

	now := time.Now()
	activated := now.AddDate(-1-a.rng.Intn(3), 0, -a.rng.Intn(300))

	return &Result{
		UUID:        uuid.NewString(),
		PassportID:  a.newPassportID(),
		ProductName: product.Name,
		Brand:       product.Brand,
		Category:    product.Category,

		DamageLevel: level,
		DamageType:  damageType,
		Action:      action,

		RepairCost:     repairCost,
		MarketValue:    product.MarketValue,
		EstimatedValue: EstimatedValue(product.MarketValue, level),
		Confidence:     confidence,

		Manufacturer:       product.Brand,
		Origin:             originByCategory[product.Category],
		RepairabilityScore: math.Round((4.0+a.rng.Float64()*5.0)*10) / 10,
		Materials:          materialsByCategory[product.Category],
		Lifecycle: []LifecycleEvent{
			{Date: activated.Format("2006-01-02"), Type: "Activation"},
			{Date: now.Format("2006-01-02"), Type: "Damage_Detected_AI"},
		},

		CreatedAt: now,
	}
}

// newPassportID formats a passport identifier from the country prefix
// and a random 5-digit number. Identifiers are display-only; no
// uniqueness check is performed, the UUID field is the stable key.
func (a *Assessor) newPassportID() string {
	return fmt.Sprintf("DPP-%s-%05d", a.prefix, a.rng.Intn(100000))
}
