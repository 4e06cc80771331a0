package passport

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"gozai/internal/assess"
	"gozai/internal/catalog"
)

func testResult() *assess.Result {
	return &assess.Result{
		UUID:        "3f6f9a2e-0000-0000-0000-000000000001",
		PassportID:  "DPP-PL-00042",
		ProductName: "Phone",
		Brand:       "Acme",
		Category:    catalog.CategoryElectronics,

		DamageLevel: 4,
		DamageType:  "cracked_screen",
		Action:      assess.ActionRepair,

		RepairCost:     350,
		MarketValue:    1000,
		EstimatedValue: 400,
		Confidence:     0.93,

		Manufacturer:       "Acme",
		Origin:             "Assembled in EU",
		RepairabilityScore: 7.5,
		Materials:          map[string]string{"glass": "Front", "aluminum": "Frame"},
		Lifecycle: []assess.LifecycleEvent{
			{Date: "2024-03-01", Type: "Activation"},
			{Date: "2026-08-29", Type: "Damage_Detected_AI"},
		},

		CreatedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	res := testResult()
	now := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)

	data, err := Render(res, now)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header: %q", data[:8])
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestFilename(t *testing.T) {
	got := Filename(testResult())
	want := "passport_DPP-PL-00042.pdf"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestSnapshot(t *testing.T) {
	data, err := NewSnapshot(testResult()).MarshalIndent()
	if err != nil {
		t.Fatalf("MarshalIndent returned error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}

	want := map[string]any{
		"passport_id":         "DPP-PL-00042",
		"product":             "Phone",
		"category":            "electronics",
		"recommended_action":  "REPAIR",
		"repairability_score": "7.5/10",
		"origin":              "Assembled in EU",
	}
	for key, value := range want {
		if decoded[key] != value {
			t.Errorf("snapshot[%q] = %v, want %v", key, decoded[key], value)
		}
	}
	if decoded["estimated_value"].(float64) != 400 {
		t.Errorf("snapshot[estimated_value] = %v, want 400", decoded["estimated_value"])
	}

	events, ok := decoded["lifecycle_events"].([]any)
	if !ok || len(events) != 2 {
		t.Fatalf("snapshot[lifecycle_events] = %v, want 2 entries", decoded["lifecycle_events"])
	}
}
