// Package output provides styled terminal output helpers (success, error,
// record formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taxdesk/internal/models"
)

var (
	// Styles
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	genderStyles = map[models.Gender]lipgloss.Style{
		models.GenderMale:   lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.GenderFemale: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// TitleCase normalizes a raw name for display: each word capitalized,
// the rest lowered, as the legacy web view did.
func TitleCase(raw string) string {
	words := strings.Fields(raw)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// FormatGender formats a gender badge with color
func FormatGender(g models.Gender) string {
	label := string(g)
	if label != "" {
		label = strings.ToUpper(label[:1]) + strings.ToLower(label[1:])
	}
	style, ok := genderStyles[g]
	if !ok {
		return label
	}
	return style.Render(label)
}

// FormatRequestDate formats a request date, "-" when unset
func FormatRequestDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 02, 2006")
}

// RecordTable renders records as an aligned plain table. Width caps the
// name column; pass 0 for no cap.
func RecordTable(records []models.Record, width int) string {
	nameWidth := 24
	if width > 0 && width < 80 {
		nameWidth = 16
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-4s %-*s %-8s %-14s %s", "ID", nameWidth, "ENTITY", "GENDER", "REQUESTED", "COUNTRY")))
	b.WriteString("\n")
	for _, r := range records {
		name := TitleCase(r.Name)
		if len(name) > nameWidth {
			name = name[:nameWidth-1] + "…"
		}
		b.WriteString(fmt.Sprintf("%-4s %-*s %-8s %-14s %s\n",
			r.ID, nameWidth, name, string(r.Gender),
			FormatRequestDate(r.RequestDate), r.Country))
	}
	if len(records) == 0 {
		b.WriteString(subtleStyle.Render("(no records match the current filters)"))
		b.WriteString("\n")
	}
	return b.String()
}

// CategoryTable renders countries as an aligned plain table.
func CategoryTable(categories []models.Category) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %s", "ID", "COUNTRY")))
	b.WriteString("\n")
	for _, c := range categories {
		b.WriteString(fmt.Sprintf("%-6s %s\n", c.ID, c.Name))
	}
	return b.String()
}
