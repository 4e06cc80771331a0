package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"gozai/internal/assess"
	"gozai/internal/flow"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filepicker.Height = max(msg.Height-12, 5)
		m.progress.Width = min(msg.Width-10, 50)
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(m.contentWidth()),
		)
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if m.phase == phaseAnalyzing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case analysisStageMsg:
		m.percent = msg.Percent
		m.status = msg.Status
		return m, m.waitForStage()

	case analysisDoneMsg:
		// A reset during analysis leaves the done message in flight;
		// drop the result instead of resurrecting the session.
		if m.phase != phaseAnalyzing {
			return m, nil
		}
		m.session.SetResult(msg.result)
		m.phase = phaseResult
		m.tab = tabFor(msg.result.Action)
		m.cursor = 0
		m.percent = 100
		m.cancelAnalysis = nil
		return m, nil

	case analysisErrMsg:
		m.cancelAnalysis = nil
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		m.err = msg.err
		m.phase = phaseImageReady
		return m, nil

	case pdfSavedMsg:
		m.notice = "Passport saved to " + msg.path
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	// Everything else (directory reads etc.) belongs to the file picker
	// while it is on screen.
	if m.session.Page == flow.PageHome && m.phase == phasePickImage {
		return m.updateFilePicker(msg)
	}
	return m, nil
}

// handleKey dispatches key input to the current page.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.stopAnalysis()
		return m, tea.Quit
	}

	// Global return-to-home. Not hooked while the file picker is up:
	// it uses h/l for directory navigation.
	if msg.String() == "h" && !(m.session.Page == flow.PageHome && m.phase == phasePickImage) {
		return m.resetHome()
	}

	switch {
	case m.session.Page == flow.PageHome:
		return m.handleHomeKey(msg)
	case m.session.Page.IsDelivery():
		return m.handleDeliveryKey(msg)
	case m.session.Page.IsConfirm():
		return m.handleConfirmKey(msg)
	}
	panic("unhandled page state: " + m.session.Page.String())
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phasePickImage:
		return m.updateFilePicker(msg)

	case phaseImageReady:
		switch msg.String() {
		case "enter", "a":
			return m.startAnalysis()
		case "p":
			m.phase = phasePickImage
			m.imagePath = ""
			return m, m.filepicker.Init()
		}

	case phaseAnalyzing:
		// Only the global keys work while the fake AI "thinks".

	case phaseResult:
		switch msg.String() {
		case "tab":
			m.tab = (m.tab + 1) % 3
			m.cursor = 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < m.optionCount()-1 {
				m.cursor++
			}
		case "enter":
			return m.selectOption()
		case "d":
			m.showDPP = !m.showDPP
		case "j":
			m.showJSON = !m.showJSON
		case "s":
			return m, m.savePassport()
		}
	}
	return m, nil
}

func (m Model) handleDeliveryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "down", "left", "right", "tab":
		m.deliveryCursor = 1 - m.deliveryCursor
	case "c":
		return m.chooseDelivery(true)
	case "p":
		return m.chooseDelivery(false)
	case "enter":
		return m.chooseDelivery(m.deliveryCursor == 0)
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m.resetHome()
	}
	return m, nil
}

// updateFilePicker forwards a message to the file picker and watches for
// a selection.
func (m Model) updateFilePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
		m.imagePath = path
		m.phase = phaseImageReady
		m.notice = ""
		return m, cmd
	}
	if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
		m.notice = fmt.Sprintf("%s is not an image file", filepath.Base(path))
	}
	return m, cmd
}

// selectOption applies the highlighted shop/buyer/recycler to the
// session, moving to the matching delivery page.
func (m Model) selectOption() (tea.Model, tea.Cmd) {
	res := m.session.Result
	if res == nil {
		return m, nil
	}

	var err error
	switch m.tab {
	case tabRepair:
		shops := m.catalogue.ShopsFor(res.Category)
		if m.cursor >= len(shops) {
			return m, nil
		}
		err = m.session.SelectShop(shops[m.cursor])
	case tabSell:
		buyers := m.catalogue.BuyersFor(res.Category)
		if m.cursor >= len(buyers) {
			return m, nil
		}
		err = m.session.SelectBuyer(buyers[m.cursor])
	default:
		recyclers := m.catalogue.RecyclersFor(res.Category)
		if m.cursor >= len(recyclers) {
			return m, nil
		}
		err = m.session.SelectRecycler(recyclers[m.cursor])
	}
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}

	m.deliveryCursor = 0
	m.notice = ""
	return m, nil
}

func (m Model) chooseDelivery(courier bool) (tea.Model, tea.Cmd) {
	var err error
	if courier {
		err = m.session.ChooseCourier()
	} else {
		err = m.session.ChoosePersonal()
	}
	if err != nil {
		m.err = err
	}
	return m, nil
}

// resetHome is the global return-to-home: it clears the session and
// every bit of panel state. Safe to invoke repeatedly.
func (m Model) resetHome() (tea.Model, tea.Cmd) {
	m.stopAnalysis()
	m.session.Reset()
	m.phase = phasePickImage
	m.imagePath = ""
	m.tab = tabRepair
	m.cursor = 0
	m.deliveryCursor = 0
	m.showDPP = false
	m.showJSON = false
	m.notice = ""
	m.err = nil
	m.percent = 0
	m.status = ""
	return m, m.filepicker.Init()
}

func (m *Model) stopAnalysis() {
	if m.cancelAnalysis != nil {
		m.cancelAnalysis()
		m.cancelAnalysis = nil
	}
}

// startAnalysis kicks off the staged assessment in the background and
// starts draining its progress channel.
func (m Model) startAnalysis() (tea.Model, tea.Cmd) {
	m.phase = phaseAnalyzing
	m.percent = 0
	m.status = "Uploading image to the cloud..."
	m.notice = ""
	m.err = nil

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelAnalysis = cancel
	m.stageChan = make(chan assess.Stage, len(assess.Stages))

	return m, tea.Batch(
		m.spinner.Tick,
		m.runAnalysis(ctx, m.imagePath),
		m.waitForStage(),
	)
}
