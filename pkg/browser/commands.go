package browser

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taxdesk/internal/models"
	"taxdesk/internal/sync"
)

// loadedMsg carries the joint load result. The store is only touched from
// the update loop, so the fetch result rides the message instead of being
// installed by the command goroutine.
type loadedMsg struct {
	records    []models.Record
	categories []models.Category
	err        error
}

// inlineResolvedMsg carries the outcome of one inline country write.
type inlineResolvedMsg struct {
	res sync.Resolution
}

// saveResolvedMsg carries the outcome of one modal commit.
type saveResolvedMsg struct {
	res sync.SaveResolution
}

// toastTickMsg fires when a toast's lifetime has elapsed so the view
// rerenders without it.
type toastTickMsg struct{}

func loadCmd(api sync.Reader) tea.Cmd {
	return func() tea.Msg {
		records, categories, err := sync.FetchAll(api)
		return loadedMsg{records: records, categories: categories, err: err}
	}
}

func commitCmd(commit sync.Commit) tea.Cmd {
	return func() tea.Msg {
		return inlineResolvedMsg{res: commit()}
	}
}

func saveCmd(commit sync.SaveCommit) tea.Cmd {
	return func() tea.Msg {
		return saveResolvedMsg{res: commit()}
	}
}

func toastTickCmd() tea.Cmd {
	return tea.Tick(sync.ToastLifetime+50*time.Millisecond, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
