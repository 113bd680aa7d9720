package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	goodScore     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ADE80"))
	weakScore     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FB923C"))
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#93C5FD"))
)

// View renders the current screen inside the shared chrome: header with the
// session line, the view panel, the log tail and the status footer.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	header := headerStyle.Render("⬡ RECRUIT") + "  " + a.sessionLine()
	body := boxStyle.Width(max(40, width-4)).Render(
		titleStyle.Render(a.view.String()) + "\n\n" + a.renderBody(),
	)
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, dimStyle.MarginTop(1).Render(a.statusMsg))
	return strings.Join(sections, "\n")
}

func (a *App) renderBody() string {
	switch a.view {
	case ViewAuth:
		return a.renderAuthView()
	case ViewRecruiterDashboard:
		return a.renderDashboard()
	case ViewCreateJob:
		return a.renderCreateJob()
	case ViewJobDetail:
		return a.renderJobDetail()
	case ViewCandidateProfile:
		return a.renderCandidateProfile()
	case ViewTemplates:
		return a.renderTemplates()
	case ViewActiveVacancies:
		return a.renderActiveVacancies()
	case ViewUpload:
		return a.renderUpload()
	case ViewMyApplications:
		return a.renderMyApplications()
	case ViewApplicationDetail:
		return a.renderApplicationDetail()
	}
	return ""
}

func (a *App) sessionLine() string {
	identity, ok := a.authority.Current()
	if !ok {
		return dimStyle.Render("not signed in")
	}
	return dimStyle.Render(fmt.Sprintf("%s · %s · Ctrl+L logout", identity.Email, identity.Role))
}

func (a *App) renderLogPanel() string {
	lines := a.log.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	name := filepath.Base(a.log.Path())
	head := selectedStyle.Render("LOG · " + name)
	body := dimStyle.Render(strings.Join(lines, "\n"))
	return boxStyle.Render(head + "\n" + body)
}

// renderCollection renders one store-backed list with the three observable
// non-ready representations kept distinct: a spinner while loading, an
// error line on failure, and an explicit empty-state message for a
// legitimate empty result.
func (a *App) renderCollection(key, emptyText string, rows func() []string) string {
	snap := a.store.Read(key)
	switch snap.Status {
	case store.StatusError:
		return errorStyle.Render("✗ Failed to load: " + shortError(snap.Err))
	case store.StatusReady:
		items := rows()
		if len(items) == 0 {
			return dimStyle.Render(emptyText)
		}
		return strings.Join(items, "\n")
	default:
		// Idle is only ever observable for the instant before the
		// navigation's load begins; render it as loading, not as empty.
		return a.spin.View() + " Loading..."
	}
}

func cursorPrefix(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func styleRow(selected bool, text string) string {
	if selected {
		return selectedStyle.Render(text)
	}
	return text
}

func scoreBadge(score *int) string {
	if score == nil {
		return dimStyle.Render("—")
	}
	text := fmt.Sprintf("%d%%", *score)
	if *score > 70 {
		return goodScore.Render(text)
	}
	return weakScore.Render(text)
}

func statusBadge(status api.Status) string {
	switch status {
	case api.StatusOffer:
		return goodScore.Render(string(status))
	case api.StatusRejected:
		return errorStyle.Render(string(status))
	case api.StatusInterview:
		return badgeStyle.Render(string(status))
	default:
		return dimStyle.Render(string(status))
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
