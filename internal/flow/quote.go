package flow

// CourierFee is the flat courier charge in currency units.
const CourierFee = 14.99

// Loyalty point awards for recycling.
const (
	RecycleCourierPoints  = 5
	RecyclePersonalPoints = 10
)

// RepairTotal is the amount due for the repair flow: the assessed repair
// cost plus the courier fee when courier delivery was chosen.
func (s *Session) RepairTotal(courier bool) float64 {
	if s.Result == nil {
		return 0
	}
	total := float64(s.Result.RepairCost)
	if courier {
		total += CourierFee
	}
	return total
}

// SellGross is the buyer's offer: the estimated value times the offer
// percentage, truncated to whole currency units. Truncation happens
// before any fee is applied.
func (s *Session) SellGross() int {
	if s.Result == nil || s.Buyer == nil {
		return 0
	}
	return int(float64(s.Result.EstimatedValue) * s.Buyer.OfferPercent)
}

// SellPayout is the amount paid out to the user: the gross offer, minus
// the courier fee when courier delivery was chosen.
func (s *Session) SellPayout(courier bool) float64 {
	payout := float64(s.SellGross())
	if courier {
		payout -= CourierFee
	}
	return payout
}

// RecyclePoints is the loyalty bonus for the recycle flow. Recycling
// itself always costs zero.
func RecyclePoints(courier bool) int {
	if courier {
		return RecycleCourierPoints
	}
	return RecyclePersonalPoints
}
