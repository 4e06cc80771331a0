// Package app provides the interactive TUI for gozai. The interface is
// split across files in the usual way:
//   - model.go: types, construction, Init
//   - update.go: the update loop and key handling
//   - view.go: per-page rendering
//   - analysis.go: the staged assessment commands
package app

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"gozai/cmd/gozai/ui"
	"gozai/internal/assess"
	"gozai/internal/catalog"
	"gozai/internal/config"
	"gozai/internal/flow"
)

// homePhase tracks where the home page is within its scan workflow.
// The flow.Page stays PageHome throughout; the phase only shapes what
// the home view renders.
type homePhase int

const (
	phasePickImage homePhase = iota
	phaseImageReady
	phaseAnalyzing
	phaseResult
)

// marketTab selects which triage option list is visible on the result
// panel.
type marketTab int

const (
	tabRepair marketTab = iota
	tabSell
	tabRecycle
)

func (t marketTab) title() string {
	switch t {
	case tabRepair:
		return "🔧 Repair locally"
	case tabSell:
		return "💰 Sell for parts"
	default:
		return "♻ Recycle"
	}
}

// Messages for tea updates.
type (
	analysisStageMsg assess.Stage
	analysisDoneMsg  struct{ result *assess.Result }
	analysisErrMsg   struct{ err error }
	pdfSavedMsg      struct{ path string }
	errMsg           struct{ err error }
)

// Model is the main model for the triage TUI. It owns exactly one
// flow.Session; no state is shared outside it.
type Model struct {
	cfg       *config.Config
	catalogue *catalog.Catalogue
	assessor  *assess.Assessor
	session   *flow.Session

	styles   ui.Styles
	renderer *glamour.TermRenderer

	filepicker filepicker.Model
	spinner    spinner.Model
	progress   progress.Model

	phase     homePhase
	imagePath string

	// Analysis progress streaming.
	stageChan      chan assess.Stage
	percent        int
	status         string
	cancelAnalysis context.CancelFunc

	// Result panel state.
	tab            marketTab
	cursor         int
	deliveryCursor int
	showDPP        bool
	showJSON       bool

	notice string
	err    error

	width  int
	height int
	ready  bool
}

// New constructs the TUI model over an already-loaded catalogue.
func New(cfg *config.Config, catalogue *catalog.Catalogue) Model {
	styles := ui.DefaultStyles()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var pacer assess.Pacer = assess.NopPacer{}
	if lat := cfg.Assessment.Latency; lat.Enabled {
		pacer = assess.NewSleepPacer(rng,
			time.Duration(lat.MinMs)*time.Millisecond,
			time.Duration(lat.MaxMs)*time.Millisecond)
	}
	assessor := assess.New(catalogue, rng, pacer, cfg.Assessment.CountryPrefix)

	fp := filepicker.New()
	fp.AllowedTypes = []string{".jpg", ".jpeg", ".png"}
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		cfg:       cfg,
		catalogue: catalogue,
		assessor:  assessor,
		session:   flow.NewSession(),

		styles:     styles,
		filepicker: fp,
		spinner:    sp,
		progress:   progress.New(progress.WithDefaultGradient()),

		phase: phasePickImage,
	}
}

// Init starts the file picker directory read and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.filepicker.Init(), m.spinner.Tick)
}

// tabFor maps the recommended action to the tab opened first.
func tabFor(action assess.Action) marketTab {
	switch action {
	case assess.ActionSell:
		return tabSell
	case assess.ActionDispose:
		return tabRecycle
	default:
		return tabRepair
	}
}

// optionCount is the number of entries in the active tab's option list.
func (m Model) optionCount() int {
	if m.session.Result == nil {
		return 0
	}
	cat := m.session.Result.Category
	switch m.tab {
	case tabRepair:
		return len(m.catalogue.ShopsFor(cat))
	case tabSell:
		return len(m.catalogue.BuyersFor(cat))
	default:
		return len(m.catalogue.RecyclersFor(cat))
	}
}

// Run starts the interactive program.
func Run(cfg *config.Config, catalogue *catalog.Catalogue) error {
	p := tea.NewProgram(New(cfg, catalogue), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
