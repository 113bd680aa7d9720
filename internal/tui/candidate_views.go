package tui

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/store"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/submit"
)

// uploadForm collects the résumé file path for one submission.
type uploadForm struct {
	path textinput.Model
	busy bool
}

func newUploadForm() uploadForm {
	path := textinput.New()
	path.Placeholder = "path to resume (.pdf)"
	path.CharLimit = 500
	path.Focus()
	return uploadForm{path: path}
}

func (a *App) updateActiveVacancies(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vacancies, _ := a.store.ActiveVacancies(store.ActiveVacanciesKey())
	switch msg.String() {
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "enter":
		if a.cursor < len(vacancies) {
			a.selectedVacancy = vacancies[a.cursor]
			a.uploadForm = newUploadForm()
			return a, a.navigate(ViewUpload)
		}
	case "m":
		return a, a.navigate(ViewMyApplications)
	case "r":
		a.store.Invalidate(store.ActiveVacanciesKey())
		return a, a.loadForView(ViewActiveVacancies)
	}
	return a, nil
}

func (a *App) renderActiveVacancies() string {
	key := store.ActiveVacanciesKey()
	listing := a.renderCollection(key, "No open vacancies right now.", func() []string {
		vacancies, _ := a.store.ActiveVacancies(key)
		rows := make([]string, 0, len(vacancies))
		for i, v := range vacancies {
			rows = append(rows, cursorPrefix(i == a.cursor)+styleRow(i == a.cursor, v.Title))
		}
		return rows
	})
	return listing + "\n" + hintStyle.Render(
		"Enter → apply    m → my applications    r → refresh")
}

func (a *App) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &a.uploadForm
	if msg.String() == "enter" {
		if form.busy {
			return a, nil
		}
		return a, a.submitResumeCmd()
	}
	var cmd tea.Cmd
	form.path, cmd = form.path.Update(msg)
	return a, cmd
}

// submitResumeCmd reads the file inside the command so a slow disk or a
// large résumé never blocks the update loop.
func (a *App) submitResumeCmd() tea.Cmd {
	identity, ok := a.authority.Current()
	if !ok {
		return nil
	}
	path := strings.TrimSpace(a.uploadForm.path.Value())
	if path == "" {
		a.statusMsg = "Enter the path to your resume"
		return nil
	}
	a.uploadForm.busy = true
	vacancyID := a.selectedVacancy.ID
	return tea.Batch(func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return submittedMsg{vacancyID: vacancyID, err: fmt.Errorf("read resume: %w", err)}
		}
		contentType := mime.TypeByExtension(filepath.Ext(path))
		ctx, cancel := a.requestContext()
		defer cancel()
		id, err := a.pipeline.Submit(ctx, identity.ID, vacancyID, submit.Resume{
			FileName:    filepath.Base(path),
			ContentType: contentType,
			Data:        data,
		})
		return submittedMsg{vacancyID: vacancyID, applicationID: id, err: err}
	}, a.spin.Tick)
}

func (a *App) renderUpload() string {
	lines := []string{
		dimStyle.Render("Applying for: ") + titleStyle.Render(a.selectedVacancy.Title),
		"",
		a.uploadForm.path.View(),
	}
	if a.uploadForm.busy {
		lines = append(lines, "", a.spin.View()+" Uploading...")
	}
	lines = append(lines, hintStyle.Render("Enter → submit    Esc → back"))
	return strings.Join(lines, "\n")
}

func (a *App) updateMyApplications(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	identity, ok := a.authority.Current()
	if !ok {
		return a, nil
	}
	apps, _ := a.store.Applications(store.MyApplicationsKey(identity.ID))
	switch msg.String() {
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "enter":
		if a.cursor < len(apps) {
			a.selectedApp = apps[a.cursor]
			return a, a.navigate(ViewApplicationDetail)
		}
	case "r":
		a.store.Invalidate(store.MyApplicationsKey(identity.ID))
		return a, a.loadForView(ViewMyApplications)
	}
	return a, nil
}

func (a *App) renderMyApplications() string {
	identity, _ := a.authority.Current()
	key := store.MyApplicationsKey(identity.ID)
	listing := a.renderCollection(key, "No applications yet.", func() []string {
		apps, _ := a.store.Applications(key)
		rows := make([]string, 0, len(apps))
		for i, app := range apps {
			rows = append(rows, cursorPrefix(i == a.cursor)+styleRow(i == a.cursor,
				fmt.Sprintf("%-32s %s", app.VacancyTitle, statusBadge(app.Status))))
		}
		return rows
	})
	return listing + "\n" + hintStyle.Render("Enter → details    r → refresh    Esc → vacancies")
}

// updateApplicationDetail handles keys on the application detail view.
// The view is read-only; its only key (Esc) is handled globally in Update.
func (a *App) updateApplicationDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	return a, nil
}

func (a *App) renderApplicationDetail() string {
	app := a.selectedApp
	lines := []string{
		titleStyle.Render(app.VacancyTitle),
		"",
		dimStyle.Render("Status: ") + statusBadge(app.Status),
	}
	if !app.AppliedAt.IsZero() {
		lines = append(lines, dimStyle.Render("Applied: ")+app.AppliedAt.Format("2006-01-02 15:04"))
	}
	if verdict := a.renderVerdict(); len(verdict) > 0 {
		lines = append(lines, "")
		lines = append(lines, verdict...)
	}
	lines = append(lines, hintStyle.Render("Esc → back"))
	return strings.Join(lines, "\n")
}
