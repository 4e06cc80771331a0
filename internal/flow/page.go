// Package flow owns the page-flow state machine: the closed set of page
// states, the per-session selections, and the derived financial figures
// shown at confirmation time.
package flow

import "fmt"

// Page identifies the current view. The set is closed; the rendering
// dispatcher switches exhaustively over it and panics on anything else.
type Page int

const (
	PageHome Page = iota
	PageRepairDelivery
	PageRepairConfirmCourier
	PageRepairConfirmPersonal
	PageSellDelivery
	PageSellConfirmCourier
	PageSellConfirmPersonal
	PageRecycleDelivery
	PageRecycleConfirmCourier
	PageRecycleConfirmPersonal
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageRepairDelivery:
		return "repair_delivery"
	case PageRepairConfirmCourier:
		return "repair_confirm_courier"
	case PageRepairConfirmPersonal:
		return "repair_confirm_personal"
	case PageSellDelivery:
		return "sell_delivery"
	case PageSellConfirmCourier:
		return "sell_confirm_courier"
	case PageSellConfirmPersonal:
		return "sell_confirm_personal"
	case PageRecycleDelivery:
		return "recycle_delivery"
	case PageRecycleConfirmCourier:
		return "recycle_confirm_courier"
	case PageRecycleConfirmPersonal:
		return "recycle_confirm_personal"
	}
	return fmt.Sprintf("Page(%d)", int(p))
}

// IsDelivery reports whether p offers the courier/personal choice.
func (p Page) IsDelivery() bool {
	switch p {
	case PageRepairDelivery, PageSellDelivery, PageRecycleDelivery:
		return true
	}
	return false
}

// IsConfirm reports whether p is a terminal confirmation page. Confirm
// pages are dead ends except for the global return-to-home reset.
func (p Page) IsConfirm() bool {
	switch p {
	case PageRepairConfirmCourier, PageRepairConfirmPersonal,
		PageSellConfirmCourier, PageSellConfirmPersonal,
		PageRecycleConfirmCourier, PageRecycleConfirmPersonal:
		return true
	}
	return false
}
