package browser

import (
	"taxdesk/internal/output"
)

const helpMarkdown = `# Keybindings

## Table

| Key | Action |
|-----|--------|
| ` + "`↑/k` `↓/j`" + ` | Move cursor |
| ` + "`f`" + ` | Country filter |
| ` + "`/`" + ` | Search by name |
| ` + "`C`" + ` | Clear all filters |
| ` + "`c`" + ` | Change country inline |
| ` + "`e` / `enter`" + ` | Edit record |
| ` + "`r`" + ` | Reload from server |
| ` + "`q`" + ` | Quit |

## Edit modal

| Key | Action |
|-----|--------|
| ` + "`ctrl+s`" + ` | Save |
| ` + "`esc`" + ` | Cancel, discard draft |

Inline country changes apply immediately and roll back if the server
rejects the write. Modal edits only apply after a successful save.
`

// renderHelp renders the keybinding reference for the help modal.
func renderHelp(width int) string {
	w := width - 12
	if w > 72 {
		w = 72
	}
	rendered, err := output.RenderMarkdown(helpMarkdown, w)
	if err != nil || rendered == "" {
		return helpMarkdown
	}
	return rendered
}
