package catalog

// ShopsFor returns every repair shop whose specialization covers c,
// in store order. The result may be empty; callers render a "no
// options" state rather than treating that as an error.
func (c *Catalogue) ShopsFor(cat Category) []RepairShop {
	var out []RepairShop
	for _, s := range c.RepairShops {
		if s.Services(cat) {
			out = append(out, s)
		}
	}
	return out
}

// BuyersFor returns every buyer purchasing category cat, in store order.
func (c *Catalogue) BuyersFor(cat Category) []Buyer {
	var out []Buyer
	for _, b := range c.Buyers {
		if b.Services(cat) {
			out = append(out, b)
		}
	}
	return out
}

// RecyclersFor returns every recycler accepting category cat, in store order.
func (c *Catalogue) RecyclersFor(cat Category) []Recycler {
	var out []Recycler
	for _, r := range c.Recyclers {
		if r.Services(cat) {
			out = append(out, r)
		}
	}
	return out
}
