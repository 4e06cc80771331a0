package flow

import (
	"strings"
	"testing"

	"gozai/internal/assess"
	"gozai/internal/catalog"
)

func electronicsResult(level int) *assess.Result {
	return &assess.Result{
		UUID:           "u-1",
		PassportID:     "DPP-PL-00042",
		ProductName:    "Phone",
		Category:       catalog.CategoryElectronics,
		DamageLevel:    level,
		Action:         assess.ActionForLevel(level),
		MarketValue:    1000,
		EstimatedValue: assess.EstimatedValue(1000, level),
	}
}

var (
	electronicsShop = catalog.RepairShop{Name: "FixIt", Specialization: []catalog.Category{catalog.CategoryElectronics}}
	furnitureShop   = catalog.RepairShop{Name: "WoodWorks", Specialization: []catalog.Category{catalog.CategoryFurniture}}
	electronicsRec  = catalog.Recycler{Name: "EcoPoint", Accepts: []catalog.Category{catalog.CategoryElectronics}}
)

func TestNewSession(t *testing.T) {
	s := NewSession()
	if s.Page != PageHome {
		t.Errorf("new session page = %s, want home", s.Page)
	}
	if s.ID == "" {
		t.Error("new session has empty ID")
	}
	if s.Result != nil || s.Shop != nil || s.Buyer != nil || s.Recycler != nil {
		t.Error("new session is not empty")
	}
}

func TestRepairCourierPath(t *testing.T) {
	s := NewSession()
	s.SetResult(electronicsResult(4))

	if err := s.SelectShop(electronicsShop); err != nil {
		t.Fatalf("SelectShop: %v", err)
	}
	if s.Page != PageRepairDelivery {
		t.Fatalf("page = %s, want repair delivery", s.Page)
	}
	if err := s.ChooseCourier(); err != nil {
		t.Fatalf("ChooseCourier: %v", err)
	}
	if s.Page != PageRepairConfirmCourier {
		t.Errorf("page = %s, want repair confirm (courier)", s.Page)
	}
}

func TestSellPersonalPath(t *testing.T) {
	s := NewSession()
	s.SetResult(electronicsResult(1))
	buyer := catalog.Buyer{Name: "PartsCo", Category: catalog.CategoryElectronics, OfferPercent: 0.5}

	if err := s.SelectBuyer(buyer); err != nil {
		t.Fatalf("SelectBuyer: %v", err)
	}
	if err := s.ChoosePersonal(); err != nil {
		t.Fatalf("ChoosePersonal: %v", err)
	}
	if s.Page != PageSellConfirmPersonal {
		t.Errorf("page = %s, want sell confirm (personal)", s.Page)
	}
}

func TestRecyclePaths(t *testing.T) {
	for _, courier := range []bool{true, false} {
		s := NewSession()
		s.SetResult(electronicsResult(7))
		if err := s.SelectRecycler(electronicsRec); err != nil {
			t.Fatalf("SelectRecycler: %v", err)
		}

		var err error
		want := PageRecycleConfirmPersonal
		if courier {
			err = s.ChooseCourier()
			want = PageRecycleConfirmCourier
		} else {
			err = s.ChoosePersonal()
		}
		if err != nil {
			t.Fatalf("choose delivery (courier=%v): %v", courier, err)
		}
		if s.Page != want {
			t.Errorf("courier=%v: page = %s, want %s", courier, s.Page, want)
		}
	}
}

func TestSelectWithoutResult(t *testing.T) {
	s := NewSession()
	if err := s.SelectShop(electronicsShop); err == nil {
		t.Error("SelectShop without result returned nil error")
	}
	if s.Page != PageHome || s.Shop != nil {
		t.Error("failed selection changed session state")
	}
}

func TestSelectCategoryMismatch(t *testing.T) {
	s := NewSession()
	s.SetResult(electronicsResult(4))

	err := s.SelectShop(furnitureShop)
	if err == nil {
		t.Fatal("SelectShop with mismatched category returned nil error")
	}
	if !strings.Contains(err.Error(), "not serviced") {
		t.Errorf("error = %q, want category mismatch", err)
	}
	if s.Page != PageHome {
		t.Errorf("page = %s, want home after failed selection", s.Page)
	}
}

func TestSelectOffHomePage(t *testing.T) {
	s := NewSession()
	s.SetResult(electronicsResult(4))
	if err := s.SelectShop(electronicsShop); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectShop(electronicsShop); err == nil {
		t.Error("SelectShop off the home page returned nil error")
	}
}

func TestChooseDeliveryOffDeliveryPage(t *testing.T) {
	s := NewSession()
	if err := s.ChooseCourier(); err == nil {
		t.Error("ChooseCourier on home page returned nil error")
	}
	if err := s.ChoosePersonal(); err == nil {
		t.Error("ChoosePersonal on home page returned nil error")
	}
}

func TestSetResultClearsSelections(t *testing.T) {
	s := NewSession()
	s.SetResult(electronicsResult(4))
	if err := s.SelectShop(electronicsShop); err != nil {
		t.Fatal(err)
	}
	s.Page = PageHome // back home without a reset

	s.SetResult(electronicsResult(2))
	if s.Shop != nil {
		t.Error("SetResult kept a stale shop selection")
	}
}

func TestResetFromEveryPage(t *testing.T) {
	pages := []Page{
		PageHome,
		PageRepairDelivery, PageRepairConfirmCourier, PageRepairConfirmPersonal,
		PageSellDelivery, PageSellConfirmCourier, PageSellConfirmPersonal,
		PageRecycleDelivery, PageRecycleConfirmCourier, PageRecycleConfirmPersonal,
	}
	for _, page := range pages {
		s := NewSession()
		s.SetResult(electronicsResult(4))
		s.Page = page

		s.Reset()
		if s.Page != PageHome {
			t.Errorf("Reset from %s: page = %s, want home", page, s.Page)
		}
		if s.Result != nil || s.Shop != nil || s.Buyer != nil || s.Recycler != nil {
			t.Errorf("Reset from %s left state behind", page)
		}

		// A second reset changes nothing.
		s.Reset()
		if s.Page != PageHome || s.Result != nil {
			t.Errorf("second Reset from %s changed state", page)
		}
	}
}

func TestPagePredicates(t *testing.T) {
	deliveries := map[Page]bool{
		PageRepairDelivery: true, PageSellDelivery: true, PageRecycleDelivery: true,
	}
	confirms := map[Page]bool{
		PageRepairConfirmCourier: true, PageRepairConfirmPersonal: true,
		PageSellConfirmCourier: true, PageSellConfirmPersonal: true,
		PageRecycleConfirmCourier: true, PageRecycleConfirmPersonal: true,
	}
	all := []Page{
		PageHome,
		PageRepairDelivery, PageRepairConfirmCourier, PageRepairConfirmPersonal,
		PageSellDelivery, PageSellConfirmCourier, PageSellConfirmPersonal,
		PageRecycleDelivery, PageRecycleConfirmCourier, PageRecycleConfirmPersonal,
	}
	for _, p := range all {
		if got := p.IsDelivery(); got != deliveries[p] {
			t.Errorf("%s.IsDelivery() = %v, want %v", p, got, deliveries[p])
		}
		if got := p.IsConfirm(); got != confirms[p] {
			t.Errorf("%s.IsConfirm() = %v, want %v", p, got, confirms[p])
		}
		if p.String() == "" {
			t.Errorf("page %d has empty String()", p)
		}
	}
}
