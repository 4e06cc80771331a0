package app

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gozai/internal/assess"
	"gozai/internal/passport"
)

// runAnalysis runs the assessment off the UI goroutine, feeding progress
// stages into the model's channel as they complete.
func (m Model) runAnalysis(ctx context.Context, path string) tea.Cmd {
	ch := m.stageChan
	return func() tea.Msg {
		defer close(ch)
		res, err := m.assessor.Analyze(ctx, path, func(st assess.Stage) {
			ch <- st
		})
		if err != nil {
			return analysisErrMsg{err: err}
		}
		return analysisDoneMsg{result: res}
	}
}

// waitForStage reads one progress stage. The update loop re-arms it
// after every analysisStageMsg until the channel closes.
func (m Model) waitForStage() tea.Cmd {
	ch := m.stageChan
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return analysisStageMsg(st)
	}
}

// savePassport renders the digital product passport PDF next to the
// binary and reports where it went.
func (m Model) savePassport() tea.Cmd {
	res := m.session.Result
	return func() tea.Msg {
		if res == nil {
			return nil
		}
		data, err := passport.Render(res, time.Now())
		if err != nil {
			return errMsg{err: err}
		}
		name := passport.Filename(res)
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return errMsg{err: err}
		}
		return pdfSavedMsg{path: name}
	}
}
