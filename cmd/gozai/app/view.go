package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gozai/cmd/gozai/ui"
	"gozai/internal/assess"
	"gozai/internal/flow"
	"gozai/internal/logging"
	"gozai/internal/passport"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.session.Page {
	case flow.PageHome:
		content = m.viewHome()
	case flow.PageRepairDelivery, flow.PageSellDelivery, flow.PageRecycleDelivery:
		content = m.viewDelivery()
	case flow.PageRepairConfirmCourier, flow.PageRepairConfirmPersonal,
		flow.PageSellConfirmCourier, flow.PageSellConfirmPersonal,
		flow.PageRecycleConfirmCourier, flow.PageRecycleConfirmPersonal:
		content = m.viewConfirm()
	default:
		panic("no view for page state: " + m.session.Page.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.styles.Content.Width(m.width).Render(content),
		m.viewFooter(),
	)
}

// contentWidth is the usable inner width for wrapped text.
func (m Model) contentWidth() int {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) viewHeader() string {
	logo := ui.Logo(m.styles)
	user := m.styles.Muted.Render("Jan Kowalski · Warsaw")
	gap := m.width - lipgloss.Width(logo) - lipgloss.Width(user) - 4
	if gap < 1 {
		gap = 1
	}
	line := logo + strings.Repeat(" ", gap) + user
	return lipgloss.NewStyle().Padding(0, 2).Render(line)
}

func (m Model) viewFooter() string {
	var hints []string
	key := func(k, label string) string {
		return m.styles.Key.Render(k) + " " + m.styles.Muted.Render(label)
	}

	switch {
	case m.session.Page == flow.PageHome && m.phase == phasePickImage:
		hints = []string{key("↑/↓", "browse"), key("enter", "select"), key("esc", "quit")}
	case m.session.Page == flow.PageHome && m.phase == phaseImageReady:
		hints = []string{key("enter", "analyze"), key("p", "pick again"), key("esc", "quit")}
	case m.session.Page == flow.PageHome && m.phase == phaseAnalyzing:
		hints = []string{key("h", "cancel"), key("esc", "quit")}
	case m.session.Page == flow.PageHome && m.phase == phaseResult:
		hints = []string{
			key("tab", "switch"), key("↑/↓", "move"), key("enter", "choose"),
			key("d", "passport"), key("j", "json"), key("s", "save pdf"), key("h", "home"),
		}
	case m.session.Page.IsDelivery():
		hints = []string{key("↑/↓", "toggle"), key("enter", "confirm"), key("h", "home"), key("esc", "quit")}
	default:
		hints = []string{key("enter", "scan another product"), key("esc", "quit")}
	}
	return m.styles.Footer.Render(strings.Join(hints, "  "))
}

func (m Model) viewHome() string {
	switch m.phase {
	case phasePickImage:
		var b strings.Builder
		b.WriteString(m.styles.Title.Render("Upload a photo of your damaged product"))
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render("jpg, jpeg or png"))
		b.WriteString("\n\n")
		b.WriteString(m.filepicker.View())
		if m.notice != "" {
			b.WriteString("\n" + m.styles.Warning.Render(m.notice))
		}
		return b.String()

	case phaseImageReady:
		card := m.styles.Card.Render(
			m.styles.Bold.Render("📷 "+m.imagePath) + "\n\n" +
				m.styles.Muted.Render("Press ") + m.styles.Key.Render("enter") +
				m.styles.Muted.Render(" to run the damage assessment."))
		out := m.styles.Title.Render("Image selected") + "\n" + card
		if m.err != nil {
			out += "\n" + m.styles.Error.Render("analysis failed: "+m.err.Error())
		}
		return out

	case phaseAnalyzing:
		var b strings.Builder
		b.WriteString(m.styles.Title.Render("Analyzing..."))
		b.WriteString("\n")
		b.WriteString(m.spinner.View() + " " + m.styles.Body.Render(m.status))
		b.WriteString("\n\n")
		b.WriteString(m.progress.ViewAs(float64(m.percent) / 100.0))
		return b.String()

	case phaseResult:
		return m.viewResult()
	}
	return ""
}

func (m Model) viewResult() string {
	res := m.session.Result
	if res == nil {
		return m.styles.Error.Render("no assessment result")
	}

	var b strings.Builder

	product := m.styles.Bold.Render(res.ProductName) + " " +
		m.styles.Muted.Render("("+res.Brand+")") + "  " +
		m.styles.Badge.Render(string(res.Category)) + "\n" +
		m.styles.Muted.Render("Passport "+res.PassportID)
	b.WriteString(m.styles.Card.Render(product))
	b.WriteString("\n\n")

	b.WriteString(m.metricsRow(res))
	b.WriteString("\n")

	if m.showDPP {
		b.WriteString("\n" + m.viewPassport(res) + "\n")
	}
	if m.showJSON {
		b.WriteString("\n" + m.viewSnapshot(res) + "\n")
	}

	b.WriteString("\n" + m.viewTabs() + "\n")
	b.WriteString(m.styles.RenderDivider(m.contentWidth()) + "\n")
	b.WriteString(m.viewOptions(res))

	if m.notice != "" {
		b.WriteString("\n\n" + m.styles.Info.Render(m.notice))
	}
	if m.err != nil {
		b.WriteString("\n\n" + m.styles.Error.Render(m.err.Error()))
	}
	return b.String()
}

// metricsRow renders the four headline figures side by side.
func (m Model) metricsRow(res *assess.Result) string {
	metric := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.MetricValue.Render(value),
			m.styles.MetricLabel.Render(label),
		)
	}
	cells := []string{
		metric("damage level", fmt.Sprintf("%d/8", res.DamageLevel)),
		metric("estimated value", fmt.Sprintf("%d PLN", res.EstimatedValue)),
		metric("confidence", fmt.Sprintf("%.0f%%", res.Confidence*100)),
		metric("recommendation", string(res.Action)),
	}
	gap := lipgloss.NewStyle().Padding(0, 3)
	for i := range cells {
		cells[i] = gap.Render(cells[i])
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return row + "\n" + m.styles.Muted.Render("  detected damage: "+res.DamageType)
}

// viewPassport renders the digital product passport expander as
// markdown through glamour.
func (m Model) viewPassport(res *assess.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## 🪪 Digital Product Passport\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Passport ID | %s |\n", res.PassportID)
	fmt.Fprintf(&b, "| Manufacturer | %s |\n", res.Manufacturer)
	fmt.Fprintf(&b, "| Origin | %s |\n", res.Origin)
	fmt.Fprintf(&b, "| Repairability | %.1f/10 |\n", res.RepairabilityScore)
	fmt.Fprintf(&b, "\n**Materials**\n\n")
	for _, name := range sortedKeys(res.Materials) {
		fmt.Fprintf(&b, "- %s: %s\n", name, res.Materials[name])
	}
	fmt.Fprintf(&b, "\n**Lifecycle**\n\n")
	for _, ev := range res.Lifecycle {
		fmt.Fprintf(&b, "- %s: %s\n", ev.Date, ev.Type)
	}
	return m.safeRender(b.String())
}

// viewSnapshot renders the raw JSON export inside a code fence.
func (m Model) viewSnapshot(res *assess.Result) string {
	data, err := passport.NewSnapshot(res).MarshalIndent()
	if err != nil {
		return m.styles.Error.Render("snapshot: " + err.Error())
	}
	return m.safeRender("```json\n" + string(data) + "\n```")
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, 3)
	for _, t := range []marketTab{tabRepair, tabSell, tabRecycle} {
		style := m.styles.Tab
		if t == m.tab {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(t.title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewOptions renders the active tab's shop/buyer/recycler list with a
// cursor, or the empty state when the category has no matches.
func (m Model) viewOptions(res *assess.Result) string {
	var lines []string
	switch m.tab {
	case tabRepair:
		for _, shop := range m.catalogue.ShopsFor(res.Category) {
			lines = append(lines, fmt.Sprintf("%s  ★%.1f  ~%d PLN  %s",
				shop.Name, shop.Rating, shop.AvgPrice, shop.ResponseTime))
		}
	case tabSell:
		for _, buyer := range m.catalogue.BuyersFor(res.Category) {
			offer := int(float64(res.EstimatedValue) * buyer.OfferPercent)
			lines = append(lines, fmt.Sprintf("%s  ★%.1f  offers %d PLN  %s",
				buyer.Name, buyer.Rating, offer, buyer.DeliveryTime))
		}
	default:
		for _, rec := range m.catalogue.RecyclersFor(res.Category) {
			lines = append(lines, fmt.Sprintf("%s  ★%.1f  %s  %s",
				rec.Name, rec.Rating, rec.Certification, rec.PriceLabel))
		}
	}

	if len(lines) == 0 {
		return m.styles.Muted.Render("  No options available for this category.")
	}

	var b strings.Builder
	for i, line := range lines {
		if i == m.cursor {
			b.WriteString(m.styles.OptionHot.Render("▸ " + line))
		} else {
			b.WriteString(m.styles.Option.Render(line))
		}
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewDelivery() string {
	res := m.session.Result
	var b strings.Builder

	var title, partner string
	courierLabel := fmt.Sprintf("📦 Book courier (InPost)  +%.2f PLN", flow.CourierFee)
	personalLabel := "🚶 Deliver personally  free"

	switch m.session.Page {
	case flow.PageRepairDelivery:
		title = "How should the item reach the repair shop?"
		if s := m.session.Shop; s != nil {
			partner = m.styles.Bold.Render(s.Name) + "\n" + m.styles.Muted.Render(s.Address)
		}
	case flow.PageSellDelivery:
		title = "How should the item reach the buyer?"
		if buyer := m.session.Buyer; buyer != nil {
			partner = m.styles.Bold.Render(buyer.Name) + "\n" +
				m.styles.Muted.Render("payout in "+buyer.DeliveryTime)
		}
	default:
		title = "How should the item reach the recycler?"
		courierLabel = fmt.Sprintf("📦 Book courier (InPost)  +%d loyalty pts", flow.RecycleCourierPoints)
		personalLabel = fmt.Sprintf("🚶 Deliver personally  +%d loyalty pts", flow.RecyclePersonalPoints)
		if rec := m.session.Recycler; rec != nil {
			partner = m.styles.Bold.Render(rec.Name) + "\n" + m.styles.Muted.Render(rec.Address)
		}
	}

	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	if res != nil {
		b.WriteString(m.styles.Muted.Render(res.ProductName) + "\n")
	}
	if partner != "" {
		b.WriteString(m.styles.Card.Render(partner) + "\n\n")
	}

	options := []string{courierLabel, personalLabel}
	for i, opt := range options {
		if i == m.deliveryCursor {
			b.WriteString(m.styles.OptionHot.Render("▸ " + opt))
		} else {
			b.WriteString(m.styles.Option.Render(opt))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n" + m.styles.Error.Render(m.err.Error()))
	}
	return b.String()
}

func (m Model) viewConfirm() string {
	s := m.session
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(m.styles.MetricLabel.Render(label) + "  " +
			m.styles.MetricValue.Render(value) + "\n")
	}

	switch s.Page {
	case flow.PageRepairConfirmCourier, flow.PageRepairConfirmPersonal:
		courier := s.Page == flow.PageRepairConfirmCourier
		b.WriteString(m.styles.Success.Render("✅ Repair booked") + "\n\n")
		if s.Shop != nil {
			row("repair shop", s.Shop.Name)
			row("address", s.Shop.Address)
			row("expected response", s.Shop.ResponseTime)
		}
		row("delivery", deliveryLabel(courier))
		if s.Result != nil {
			row("repair cost", fmt.Sprintf("%d PLN", s.Result.RepairCost))
		}
		if courier {
			row("courier fee", fmt.Sprintf("%.2f PLN", flow.CourierFee))
		}
		row("total due", fmt.Sprintf("%.2f PLN", s.RepairTotal(courier)))

	case flow.PageSellConfirmCourier, flow.PageSellConfirmPersonal:
		courier := s.Page == flow.PageSellConfirmCourier
		b.WriteString(m.styles.Success.Render("✅ Sale agreed") + "\n\n")
		if s.Buyer != nil {
			row("buyer", s.Buyer.Name)
			row("payout in", s.Buyer.DeliveryTime)
		}
		row("delivery", deliveryLabel(courier))
		row("gross offer", fmt.Sprintf("%d PLN", s.SellGross()))
		if courier {
			row("courier fee", fmt.Sprintf("-%.2f PLN", flow.CourierFee))
		}
		row("you receive", fmt.Sprintf("%.2f PLN", s.SellPayout(courier)))

	case flow.PageRecycleConfirmCourier, flow.PageRecycleConfirmPersonal:
		courier := s.Page == flow.PageRecycleConfirmCourier
		b.WriteString(m.styles.Success.Render("✅ Recycling scheduled") + "\n\n")
		if s.Recycler != nil {
			row("recycler", s.Recycler.Name)
			row("address", s.Recycler.Address)
			row("certification", s.Recycler.Certification)
		}
		row("delivery", deliveryLabel(courier))
		row("cost", "0.00 PLN")
		row("loyalty bonus", fmt.Sprintf("+%d pts", flow.RecyclePoints(courier)))

	default:
		panic("confirm view on non-confirm page: " + s.Page.String())
	}

	b.WriteString("\n" + m.styles.Muted.Render("Press ") +
		m.styles.Key.Render("enter") +
		m.styles.Muted.Render(" to scan another product."))
	if m.notice != "" {
		b.WriteString("\n" + m.styles.Info.Render(m.notice))
	}
	return b.String()
}

func deliveryLabel(courier bool) string {
	if courier {
		return "courier (InPost)"
	}
	return "personal drop-off"
}

// safeRender renders markdown through glamour, falling back to the raw
// text if the renderer is missing or panics on malformed input.
func (m Model) safeRender(markdown string) (out string) {
	if m.renderer == nil {
		return markdown
	}
	defer func() {
		if r := recover(); r != nil {
			logging.UI("markdown render panic: %v", r)
			out = markdown
		}
	}()
	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
