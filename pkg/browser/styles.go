package browser

import (
	"github.com/charmbracelet/lipgloss"

	"taxdesk/internal/models"
)

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	errorColor   = lipgloss.Color("196")

	// Chrome
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	subtleStyle = lipgloss.NewStyle().Foreground(mutedColor)

	// Alerts
	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(errorColor).
				Padding(0, 1)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(successColor).
			Padding(0, 1)

	// Table
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	genderStyles = map[models.Gender]lipgloss.Style{
		models.GenderMale:   lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.GenderFemale: lipgloss.NewStyle().Foreground(primaryColor),
	}

	// Popovers and modals
	popoverStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	checkedStyle   = lipgloss.NewStyle().Foreground(successColor)
	popoverRowHot  = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	filterTagStyle = lipgloss.NewStyle().Foreground(primaryColor)
)
