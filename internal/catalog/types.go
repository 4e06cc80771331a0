// Package catalog holds the fixture data model for the triage demo:
// products, repair shops, buyers and recyclers. All records are loaded
// once at process start and are immutable for the process lifetime.
package catalog

// Category identifies the product family a fixture record services.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryFurniture   Category = "furniture"
	CategoryAppliance   Category = "appliance"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryElectronics, CategoryFurniture, CategoryAppliance}

// Valid reports whether c is one of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryFurniture, CategoryAppliance:
		return true
	}
	return false
}

// Geo is a WGS84 coordinate used for the repair shop map.
type Geo struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Product is a known product record with its typical failure modes.
type Product struct {
	Name         string   `yaml:"name" json:"name"`
	Brand        string   `yaml:"brand" json:"brand"`
	Category     Category `yaml:"category" json:"category"`
	MarketValue  int      `yaml:"market_value" json:"market_value"`
	CommonDamage []string `yaml:"common_damage" json:"common_damage"`
}

// RepairShop is a local repair service.
type RepairShop struct {
	Name           string     `yaml:"name" json:"name"`
	Address        string     `yaml:"address" json:"address"`
	Geo            Geo        `yaml:"geo" json:"geo"`
	Specialization []Category `yaml:"specialization" json:"specialization"`
	Rating         float64    `yaml:"rating" json:"rating"`
	AvgPrice       int        `yaml:"avg_price" json:"avg_price"`
	ResponseTime   string     `yaml:"response_time" json:"response_time"`
}

// Services reports whether the shop's specialization covers c.
func (s RepairShop) Services(c Category) bool {
	for _, spec := range s.Specialization {
		if spec == c {
			return true
		}
	}
	return false
}

// Buyer is an instant-offer purchaser of damaged goods.
type Buyer struct {
	Name         string   `yaml:"name" json:"name"`
	Category     Category `yaml:"category" json:"category"`
	OfferPercent float64  `yaml:"offer_percent" json:"offer_percent"`
	Rating       float64  `yaml:"rating" json:"rating"`
	DeliveryTime string   `yaml:"delivery_time" json:"delivery_time"`
}

// Services reports whether the buyer purchases category c.
func (b Buyer) Services(c Category) bool {
	return b.Category == c
}

// Recycler is a certified disposal point.
type Recycler struct {
	Name          string     `yaml:"name" json:"name"`
	Address       string     `yaml:"address" json:"address"`
	Accepts       []Category `yaml:"accepts" json:"accepts"`
	Rating        float64    `yaml:"rating" json:"rating"`
	Certification string     `yaml:"certification" json:"certification"`
	Materials     string     `yaml:"materials" json:"materials"`
	PriceLabel    string     `yaml:"price_label" json:"price_label"`
}

// Services reports whether the recycler accepts category c.
func (r Recycler) Services(c Category) bool {
	for _, acc := range r.Accepts {
		if acc == c {
			return true
		}
	}
	return false
}
