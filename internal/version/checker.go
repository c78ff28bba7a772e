package version

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// UpdateAvailableMsg is sent when a new version is available.
type UpdateAvailableMsg struct {
	CurrentVersion string
	LatestVersion  string
	UpdateURL      string
}

// CheckCached runs a version check, consulting the on-disk cache first.
// Only successful checks are cached, so a network error never suppresses
// the next attempt.
func CheckCached(currentVersion string) CheckResult {
	if cached, err := LoadCache(); err == nil && IsCacheValid(cached, currentVersion) {
		return CheckResult{
			CurrentVersion: currentVersion,
			LatestVersion:  cached.LatestVersion,
			HasUpdate:      cached.HasUpdate,
		}
	}

	result := Check(currentVersion)
	if result.Error == nil {
		_ = SaveCache(&CacheEntry{
			LatestVersion:  result.LatestVersion,
			CurrentVersion: currentVersion,
			CheckedAt:      time.Now(),
			HasUpdate:      result.HasUpdate,
		})
	}
	return result
}

// CheckAsync returns a Bubble Tea command that checks for updates in the
// background. It yields an UpdateAvailableMsg only when an update exists;
// errors and up-to-date results are silent.
func CheckAsync(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		result := CheckCached(currentVersion)
		if result.HasUpdate {
			return UpdateAvailableMsg{
				CurrentVersion: currentVersion,
				LatestVersion:  result.LatestVersion,
				UpdateURL:      result.UpdateURL,
			}
		}
		return nil
	}
}
