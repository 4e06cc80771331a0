package flow

import (
	"fmt"

	"github.com/google/uuid"

	"gozai/internal/assess"
	"gozai/internal/catalog"
	"gozai/internal/logging"
)

// Session is one user's interaction state: the current page, the
// assessment result, and at most one selected counterparty. A session
// is owned by a single interactive surface; nothing here is shared.
//
// Invariant: a shop/buyer/recycler is only ever set while a Result with
// a matching category is present.
type Session struct {
	ID   string
	Page Page

	Result   *assess.Result
	Shop     *catalog.RepairShop
	Buyer    *catalog.Buyer
	Recycler *catalog.Recycler
}

// NewSession starts a fresh session on the home page.
func NewSession() *Session {
	return &Session{
		ID:   uuid.NewString(),
		Page: PageHome,
	}
}

// SetResult stores a completed assessment. Any previous result and
// selections are discarded first.
func (s *Session) SetResult(r *assess.Result) {
	s.clearSelections()
	s.Result = r
	logging.Session("session %s: result %s stored (action=%s)", s.ID, r.PassportID, r.Action)
}

// SelectShop stores the chosen repair shop and moves to the repair
// delivery page.
func (s *Session) SelectShop(shop catalog.RepairShop) error {
	if err := s.checkSelection(shop.Services); err != nil {
		return fmt.Errorf("select shop %q: %w", shop.Name, err)
	}
	s.Shop = &shop
	s.transition(PageRepairDelivery)
	return nil
}

// SelectBuyer stores the chosen buyer and moves to the sell delivery page.
func (s *Session) SelectBuyer(buyer catalog.Buyer) error {
	if err := s.checkSelection(buyer.Services); err != nil {
		return fmt.Errorf("select buyer %q: %w", buyer.Name, err)
	}
	s.Buyer = &buyer
	s.transition(PageSellDelivery)
	return nil
}

// SelectRecycler stores the chosen recycler and moves to the recycle
// delivery page.
func (s *Session) SelectRecycler(rec catalog.Recycler) error {
	if err := s.checkSelection(rec.Services); err != nil {
		return fmt.Errorf("select recycler %q: %w", rec.Name, err)
	}
	s.Recycler = &rec
	s.transition(PageRecycleDelivery)
	return nil
}

// checkSelection guards every selection: the session must be on the home
// page with an assessment whose category the candidate services.
func (s *Session) checkSelection(services func(catalog.Category) bool) error {
	if s.Page != PageHome {
		return fmt.Errorf("not on home page (current: %s)", s.Page)
	}
	if s.Result == nil {
		return fmt.Errorf("no assessment result present")
	}
	if !services(s.Result.Category) {
		return fmt.Errorf("category %s not serviced", s.Result.Category)
	}
	return nil
}

// ChooseCourier confirms courier delivery on the current delivery page.
func (s *Session) ChooseCourier() error {
	switch s.Page {
	case PageRepairDelivery:
		s.transition(PageRepairConfirmCourier)
	case PageSellDelivery:
		s.transition(PageSellConfirmCourier)
	case PageRecycleDelivery:
		s.transition(PageRecycleConfirmCourier)
	default:
		return fmt.Errorf("no delivery choice available on page %s", s.Page)
	}
	return nil
}

// ChoosePersonal confirms personal delivery on the current delivery page.
func (s *Session) ChoosePersonal() error {
	switch s.Page {
	case PageRepairDelivery:
		s.transition(PageRepairConfirmPersonal)
	case PageSellDelivery:
		s.transition(PageSellConfirmPersonal)
	case PageRecycleDelivery:
		s.transition(PageRecycleConfirmPersonal)
	default:
		return fmt.Errorf("no delivery choice available on page %s", s.Page)
	}
	return nil
}

// Reset returns to the home page and clears the result and every
// selection. Available from any page; calling it repeatedly is a no-op.
func (s *Session) Reset() {
	s.Result = nil
	s.clearSelections()
	s.transition(PageHome)
}

func (s *Session) clearSelections() {
	s.Shop = nil
	s.Buyer = nil
	s.Recycler = nil
}

func (s *Session) transition(to Page) {
	if s.Page != to {
		logging.Session("session %s: %s -> %s", s.ID, s.Page, to)
	}
	s.Page = to
}
