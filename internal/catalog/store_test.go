package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file returned error: %v", err)
	}
	if len(c.Products)+len(c.RepairShops)+len(c.Buyers)+len(c.Recyclers) != 0 {
		t.Errorf("Load on missing file returned non-empty catalogue: %+v", c)
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("products: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load on malformed yaml returned nil error")
	}
}

func TestLoad(t *testing.T) {
	doc := `
products:
  - name: Phone
    brand: Acme
    category: electronics
    market_value: 1200
    common_damage: [cracked_screen]
repair_shops:
  - name: FixIt
    address: Main St 1
    geo: { lat: 52.1, lon: 21.0 }
    specialization: [electronics]
    rating: 4.5
    avg_price: 300
    response_time: 24h
buyers:
  - name: PartsCo
    category: electronics
    offer_percent: 0.5
    rating: 4.0
    delivery_time: 2 days
recyclers:
  - name: EcoPoint
    address: Green St 2
    accepts: [electronics]
    rating: 4.9
    certification: WEEE certified
    materials: metals, plastics
    price_label: free drop-off
`
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(c.Products) != 1 || c.Products[0].Name != "Phone" || c.Products[0].MarketValue != 1200 {
		t.Errorf("unexpected products: %+v", c.Products)
	}
	if len(c.RepairShops) != 1 || c.RepairShops[0].Geo.Lat != 52.1 {
		t.Errorf("unexpected shops: %+v", c.RepairShops)
	}
	if len(c.Buyers) != 1 || c.Buyers[0].OfferPercent != 0.5 {
		t.Errorf("unexpected buyers: %+v", c.Buyers)
	}
	if len(c.Recyclers) != 1 || c.Recyclers[0].Certification != "WEEE certified" {
		t.Errorf("unexpected recyclers: %+v", c.Recyclers)
	}
}

func TestLoadUnknownCategoryTolerated(t *testing.T) {
	doc := `
products:
  - name: Mystery
    brand: Acme
    category: toys
    market_value: 10
`
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(c.Products) != 1 {
		t.Errorf("got %d products, want 1", len(c.Products))
	}
}
