package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"taxdesk/internal/models"
	"taxdesk/internal/output"
	"taxdesk/internal/sync"
)

// View renders the whole screen for the current state.
func (m Model) View() string {
	if m.Width == 0 {
		return ""
	}

	if m.Loading {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
			subtleStyle.Render("Loading..."))
	}

	if m.LoadErr != nil {
		msg := errorBannerStyle.Render("Failed to load data. Please try again.") +
			"\n\n" + subtleStyle.Render(m.LoadErr.Error()) +
			"\n\n" + helpStyle.Render("r retry · q quit")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, msg)
	}

	if m.HelpOpen {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
			modalStyle.Render(m.helpView))
	}

	if m.FormOpen && m.FormState != nil {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
			m.renderFormModal())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Customers"))
	b.WriteString("\n")

	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if m.SearchMode || m.SearchQuery != "" {
		b.WriteString(m.SearchInput.View())
		b.WriteString("\n")
	}

	if m.FilterOpen {
		b.WriteString(m.renderFilterPopover())
		b.WriteString("\n")
	} else if m.InlineOpen {
		b.WriteString(m.renderInlineSelect())
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable())
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderBanner renders the current notification, if any.
func (m Model) renderBanner() string {
	note := m.Notifier.Current()
	if note == nil {
		return ""
	}
	if note.Kind == sync.NoteToast {
		return toastStyle.Render(note.Message)
	}
	return errorBannerStyle.Render(note.Message)
}

// renderTable renders the visible records with the cursor row highlighted.
func (m Model) renderTable() string {
	rows := m.visibleRecords()

	if len(rows) == 0 {
		var b strings.Builder
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("No customers match the current filters."))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("press C to clear filters"))
		b.WriteString("\n")
		return b.String()
	}

	idW := 5
	genderW := 8
	dateW := 14
	rest := m.Width - idW - genderW - dateW - 8
	if rest < 20 {
		rest = 20
	}
	nameW := rest * 3 / 5
	countryW := rest - nameW

	var b strings.Builder
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		idW, "ID", nameW, "ENTITY", genderW, "GENDER", dateW, "REQUESTED", "COUNTRY")
	b.WriteString(tableHeaderStyle.Render(ansi.Truncate(header, m.Width-2, "")))
	b.WriteString("\n")

	for i, rec := range rows {
		line := m.renderRow(rec, idW, nameW, genderW, dateW, countryW)
		if i == m.Cursor {
			line = selectedRowStyle.Render(ansi.Strip(line))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(rec models.Record, idW, nameW, genderW, dateW, countryW int) string {
	name := ansi.Truncate(output.TitleCase(rec.Name), nameW, "…")
	country := ansi.Truncate(rec.Country, countryW, "…")

	gender := fmt.Sprintf("%-*s", genderW, genderLabel(rec.Gender))
	if style, ok := genderStyles[rec.Gender]; ok {
		gender = style.Render(gender)
	}

	return fmt.Sprintf("%-*s %-*s %s %-*s %s",
		idW, rec.ID,
		nameW, name,
		gender,
		dateW, output.FormatRequestDate(rec.RequestDate),
		country)
}

func genderLabel(g models.Gender) string {
	s := string(g)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// renderFilterPopover renders the country filter checkbox list.
func (m Model) renderFilterPopover() string {
	categories := m.Store.Categories()
	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render("Filter by country"))
	b.WriteString("\n")
	if len(categories) == 0 {
		b.WriteString(subtleStyle.Render("No countries"))
	}
	for i, c := range categories {
		mark := "[ ]"
		if m.Selected[c.ID] {
			mark = checkedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", mark, c.Name)
		if i == m.FilterCursor {
			line = popoverRowHot.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space toggle · c clear · esc close"))
	return popoverStyle.Render(b.String())
}

// renderInlineSelect renders the country picker for the inline change.
func (m Model) renderInlineSelect() string {
	rec, _ := m.Store.Get(m.InlineRecordID)
	categories := m.Store.Categories()

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render("Country for " + output.TitleCase(rec.Name)))
	b.WriteString("\n")
	for i, c := range categories {
		mark := "[ ]"
		if rec.CountryID == c.ID {
			mark = checkedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", mark, c.Name)
		if i == m.InlineCursor {
			line = popoverRowHot.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter select · esc close"))
	return popoverStyle.Render(b.String())
}

// renderFormModal renders the edit modal with any save error inline.
func (m Model) renderFormModal() string {
	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render("Edit Customer"))
	b.WriteString("\n\n")

	if note := m.Notifier.Current(); note != nil && note.Kind == sync.NoteError {
		b.WriteString(errorBannerStyle.Render(note.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(m.FormState.Form.View())
	b.WriteString("\n")
	if m.Session.State() == sync.SessionSaving {
		b.WriteString(subtleStyle.Render("Saving..."))
	} else {
		b.WriteString(helpStyle.Render("ctrl+s save · esc cancel"))
	}
	return modalStyle.Render(b.String())
}

// renderFooter renders key hints plus the active filter tags.
func (m Model) renderFooter() string {
	var tags []string
	if len(m.Selected) > 0 {
		names := make([]string, 0, len(m.Selected))
		for _, c := range m.Store.Categories() {
			if m.Selected[c.ID] {
				names = append(names, c.Name)
			}
		}
		tags = append(tags, filterTagStyle.Render("countries: "+strings.Join(names, ", ")))
	}
	if m.SearchQuery != "" {
		tags = append(tags, filterTagStyle.Render("name: "+m.SearchQuery))
	}

	hints := helpStyle.Render("↑/↓ move · f filter · / search · c country · e edit · r reload · ? help · q quit")
	if m.UpdateNotice != "" {
		hints += "  " + subtleStyle.Render(m.UpdateNotice)
	}
	if len(tags) == 0 {
		return hints
	}
	return strings.Join(tags, "  ") + "\n" + hints
}
