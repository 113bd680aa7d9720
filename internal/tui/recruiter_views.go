package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/message"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/store"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/workflow"
)

// jobForm is the vacancy creation form.
type jobForm struct {
	title   textinput.Model
	filters textinput.Model
	focus   int
}

func newJobForm() jobForm {
	title := textinput.New()
	title.Placeholder = "vacancy title"
	title.CharLimit = 160
	title.Focus()

	filters := textinput.New()
	filters.Placeholder = "screening criteria for the AI reviewer"
	filters.CharLimit = 500

	return jobForm{title: title, filters: filters}
}

func (f *jobForm) cycle(delta int) {
	f.focus = (f.focus + delta + 2) % 2
	if f.focus == 0 {
		f.title.Focus()
		f.filters.Blur()
	} else {
		f.title.Blur()
		f.filters.Focus()
	}
}

// templateForm edits one message template.
type templateForm struct {
	id    string
	title textinput.Model
	body  textinput.Model
	focus int
}

func newTemplateForm() templateForm {
	title := textinput.New()
	title.Placeholder = "template title"
	title.CharLimit = 120
	title.Focus()

	body := textinput.New()
	body.Placeholder = "Hi {name}, about the {vacancy} role..."
	body.CharLimit = 1000

	return templateForm{title: title, body: body}
}

func (f *templateForm) cycle(delta int) {
	f.focus = (f.focus + delta + 2) % 2
	if f.focus == 0 {
		f.title.Focus()
		f.body.Blur()
	} else {
		f.title.Blur()
		f.body.Focus()
	}
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	identity, ok := a.authority.Current()
	if !ok {
		return a, nil
	}
	vacancies, _ := a.store.Vacancies(store.RecruiterVacanciesKey(identity.ID))

	switch msg.String() {
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "enter":
		if a.cursor < len(vacancies) {
			a.selectedVacancy = vacancies[a.cursor]
			return a, a.navigate(ViewJobDetail)
		}
	case "n":
		a.jobForm = newJobForm()
		return a, a.navigate(ViewCreateJob)
	case "t":
		return a, a.navigate(ViewTemplates)
	case "a":
		if a.cursor < len(vacancies) {
			return a, a.toggleArchiveCmd(vacancies[a.cursor])
		}
	case "r":
		a.store.Invalidate(store.RecruiterVacanciesKey(identity.ID))
		return a, a.loadForView(ViewRecruiterDashboard)
	}
	return a, nil
}

func (a *App) toggleArchiveCmd(vacancy api.Vacancy) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		var err error
		if vacancy.IsArchived {
			err = a.client.UnarchiveVacancy(ctx, vacancy.ID)
		} else {
			err = a.client.ArchiveVacancy(ctx, vacancy.ID)
		}
		return archiveToggledMsg{vacancyID: vacancy.ID, archived: !vacancy.IsArchived, err: err}
	}
}

func (a *App) renderDashboard() string {
	identity, _ := a.authority.Current()
	key := store.RecruiterVacanciesKey(identity.ID)
	listing := a.renderCollection(key, "No vacancies yet. Press n to publish one.", func() []string {
		vacancies, _ := a.store.Vacancies(key)
		rows := make([]string, 0, len(vacancies))
		for i, v := range vacancies {
			label := v.Title
			if v.IsArchived {
				label += "  " + dimStyle.Render("[archived]")
			}
			if v.ShortLink != "" {
				label += "  " + badgeStyle.Render(v.ShortLink)
			}
			rows = append(rows, cursorPrefix(i == a.cursor)+styleRow(i == a.cursor, label))
		}
		return rows
	})
	return listing + "\n" + hintStyle.Render(
		"Enter → applications    n → new vacancy    t → templates    a → archive/restore    r → refresh")
}

func (a *App) updateCreateJob(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &a.jobForm
	switch msg.String() {
	case "tab", "down":
		form.cycle(1)
		return a, nil
	case "shift+tab", "up":
		form.cycle(-1)
		return a, nil
	case "ctrl+s":
		return a, a.createVacancyCmd()
	}
	var cmd tea.Cmd
	if form.focus == 0 {
		form.title, cmd = form.title.Update(msg)
	} else {
		form.filters, cmd = form.filters.Update(msg)
	}
	return a, cmd
}

func (a *App) createVacancyCmd() tea.Cmd {
	identity, ok := a.authority.Current()
	if !ok {
		return nil
	}
	title := strings.TrimSpace(a.jobForm.title.Value())
	filters := strings.TrimSpace(a.jobForm.filters.Value())
	if title == "" {
		a.statusMsg = "Title is required"
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		vacancy, err := a.client.CreateVacancy(ctx, identity.ID, title, filters)
		return vacancyCreatedMsg{vacancy: vacancy, err: err}
	}
}

func (a *App) renderCreateJob() string {
	return strings.Join([]string{
		a.jobForm.title.View(),
		a.jobForm.filters.View(),
		hintStyle.Render("Ctrl+S → publish    Tab → next field    Esc → back"),
	}, "\n")
}

func (a *App) updateJobDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	apps, _ := a.store.Applications(store.VacancyApplicationsKey(a.selectedVacancy.ID))
	switch msg.String() {
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "enter":
		if a.cursor < len(apps) {
			a.selectedApp = apps[a.cursor]
			return a, a.navigate(ViewCandidateProfile)
		}
	case "r":
		a.store.Invalidate(store.VacancyApplicationsKey(a.selectedVacancy.ID))
		return a, a.loadForView(ViewJobDetail)
	}
	return a, nil
}

func (a *App) renderJobDetail() string {
	key := store.VacancyApplicationsKey(a.selectedVacancy.ID)
	head := titleStyle.Render(a.selectedVacancy.Title)
	if a.selectedVacancy.ShortLink != "" {
		head += "  " + badgeStyle.Render(a.selectedVacancy.ShortLink)
	}
	listing := a.renderCollection(key, "No applications for this vacancy yet.", func() []string {
		apps, _ := a.store.Applications(key)
		rows := make([]string, 0, len(apps))
		for i, app := range apps {
			rows = append(rows, cursorPrefix(i == a.cursor)+styleRow(i == a.cursor,
				fmt.Sprintf("%-28s %-10s %s", candidateName(app), app.Status, scoreBadge(app.AIScore))))
		}
		return rows
	})
	return head + "\n\n" + listing + "\n" + hintStyle.Render(
		"Enter → candidate profile    r → refresh    Esc → dashboard")
}

func (a *App) updateCandidateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "m" {
		a.editingTpl = false
		return a, a.navigate(ViewTemplates)
	}
	next := workflow.NextStatuses(a.selectedApp.Status)
	for i, status := range next {
		if key == fmt.Sprintf("%d", i+1) {
			return a, a.setStatusCmd(a.selectedApp.ID, status)
		}
	}
	return a, nil
}

func (a *App) setStatusCmd(applicationID string, status api.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		err := a.flow.SetStatus(ctx, applicationID, status)
		return statusPatchedMsg{applicationID: applicationID, status: status, err: err}
	}
}

func (a *App) renderCandidateProfile() string {
	app := a.selectedApp
	lines := []string{
		titleStyle.Render(candidateName(app)),
		dimStyle.Render("Applied for: ") + app.VacancyTitle,
		dimStyle.Render("Status: ") + string(app.Status),
		"",
	}
	lines = append(lines, a.renderVerdict()...)
	lines = append(lines, "")

	next := workflow.NextStatuses(app.Status)
	if len(next) == 0 {
		lines = append(lines, dimStyle.Render("No further transitions from "+string(app.Status)+"."))
	} else {
		actions := make([]string, 0, len(next))
		for i, status := range next {
			actions = append(actions, fmt.Sprintf("%d → %s", i+1, status))
		}
		lines = append(lines, "Transitions: "+strings.Join(actions, "    "))
	}
	lines = append(lines, hintStyle.Render("m → message templates    Esc → back"))
	return strings.Join(lines, "\n")
}

// renderVerdict keeps the three verdict states visually distinct: an error
// line, an explicit pending state, and the computed assessment.
func (a *App) renderVerdict() []string {
	if a.verdictLoading {
		return []string{a.spin.View() + " Fetching AI assessment..."}
	}
	if a.verdictErr != nil {
		return []string{errorStyle.Render("✗ Assessment unavailable: " + shortError(a.verdictErr))}
	}
	if a.verdict == nil {
		return nil
	}
	if a.verdict.State == workflow.VerdictPending {
		return []string{dimStyle.Render("AI assessment pending. Reopen this profile to check again.")}
	}
	verdict := a.verdict.Verdict
	lines := []string{selectedStyle.Render("AI ASSESSMENT") + "  " + scoreBadge(verdict.Score)}
	if verdict.Verdict != "" {
		lines = append(lines, verdict.Verdict)
	}
	if len(verdict.Skills) > 0 {
		lines = append(lines, dimStyle.Render("Skills: ")+strings.Join(verdict.Skills, ", "))
	}
	if verdict.ContactHandle != "" {
		lines = append(lines, dimStyle.Render("Contact: ")+verdict.ContactHandle)
	}
	if verdict.ParsedResumeText != "" {
		lines = append(lines, "", dimStyle.Render(truncate(verdict.ParsedResumeText, 400)))
	}
	return lines
}

func (a *App) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editingTpl {
		return a.updateTemplateEditor(msg)
	}

	identity, ok := a.authority.Current()
	if !ok {
		return a, nil
	}
	templates, _ := a.store.Templates(store.TemplatesKey(identity.ID))

	switch msg.String() {
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "n":
		a.templateForm = newTemplateForm()
		a.editingTpl = true
	case "e":
		if a.cursor < len(templates) {
			tpl := templates[a.cursor]
			form := newTemplateForm()
			form.id = tpl.ID
			form.title.SetValue(tpl.Title)
			form.body.SetValue(tpl.Body)
			a.templateForm = form
			a.editingTpl = true
		}
	case "d":
		if a.cursor < len(templates) {
			return a, a.deleteTemplateCmd(templates[a.cursor].ID)
		}
	case "enter":
		if a.cursor < len(templates) {
			return a, a.generateCmd(templates[a.cursor])
		}
	}
	return a, nil
}

func (a *App) updateTemplateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &a.templateForm
	switch msg.String() {
	case "tab", "down":
		form.cycle(1)
		return a, nil
	case "shift+tab", "up":
		form.cycle(-1)
		return a, nil
	case "ctrl+s":
		return a, a.saveTemplateCmd()
	}
	var cmd tea.Cmd
	if form.focus == 0 {
		form.title, cmd = form.title.Update(msg)
	} else {
		form.body, cmd = form.body.Update(msg)
	}
	return a, cmd
}

func (a *App) saveTemplateCmd() tea.Cmd {
	identity, ok := a.authority.Current()
	if !ok {
		return nil
	}
	form := a.templateForm
	title := strings.TrimSpace(form.title.Value())
	body := strings.TrimSpace(form.body.Value())
	if title == "" || body == "" {
		a.statusMsg = "Title and body are required"
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		if form.id != "" {
			err := a.client.UpdateTemplate(ctx, api.Template{
				ID: form.id, OwnerID: identity.ID, Title: title, Body: body,
			})
			return templateSavedMsg{err: err}
		}
		_, err := a.client.CreateTemplate(ctx, identity.ID, title, body)
		return templateSavedMsg{err: err}
	}
}

func (a *App) deleteTemplateCmd(templateID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		return templateDeletedMsg{err: a.client.DeleteTemplate(ctx, templateID)}
	}
}

// generateCmd asks the backend to render the template against the selected
// candidate. The context comes from the profile the recruiter came from;
// the contact handle falls back to a placeholder when the verdict did not
// carry one.
func (a *App) generateCmd(tpl api.Template) tea.Cmd {
	mctx := message.Context{
		CandidateName: candidateName(a.selectedApp),
		VacancyTitle:  a.selectedApp.VacancyTitle,
	}
	if a.verdict != nil {
		mctx.ContactHandle = a.verdict.Verdict.ContactHandle
	}
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		result, err := a.engine.Generate(ctx, tpl, mctx)
		return generatedMsg{result: result, err: err}
	}
}

func (a *App) renderTemplates() string {
	if a.editingTpl {
		mode := "New template"
		if a.templateForm.id != "" {
			mode = "Edit template"
		}
		preview := message.Render(a.templateForm.body.Value(), message.Context{
			CandidateName: candidateName(a.selectedApp),
			VacancyTitle:  a.selectedApp.VacancyTitle,
		})
		return strings.Join([]string{
			badgeStyle.Render(mode),
			"",
			a.templateForm.title.View(),
			a.templateForm.body.View(),
			"",
			dimStyle.Render("Preview: ") + preview,
			hintStyle.Render("Ctrl+S → save    Tab → next field    Esc → cancel"),
		}, "\n")
	}

	identity, _ := a.authority.Current()
	key := store.TemplatesKey(identity.ID)
	listing := a.renderCollection(key, "No templates yet. Press n to create one.", func() []string {
		templates, _ := a.store.Templates(key)
		rows := make([]string, 0, len(templates))
		for i, tpl := range templates {
			rows = append(rows, cursorPrefix(i == a.cursor)+styleRow(i == a.cursor,
				fmt.Sprintf("%-24s %s", tpl.Title, dimStyle.Render(truncate(tpl.Body, 60)))))
		}
		return rows
	})

	sections := []string{listing}
	if a.generated != nil {
		block := selectedStyle.Render("GENERATED") + "\n" + a.generated.Text
		if a.generated.DeepLink != "" {
			block += "\n" + badgeStyle.Render(a.generated.DeepLink)
		}
		sections = append(sections, "", block)
	}
	sections = append(sections, hintStyle.Render(
		"Enter → generate for "+candidateName(a.selectedApp)+"    n → new    e → edit    d → delete"))
	return strings.Join(sections, "\n")
}

func candidateName(app api.Application) string {
	if strings.TrimSpace(app.CandidateName) == "" {
		return "Anonymous Candidate"
	}
	return app.CandidateName
}

// truncate cuts on rune boundaries so multibyte text never renders as
// broken UTF-8.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
