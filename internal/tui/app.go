// Package tui is the terminal front-end for the recruiting client. It
// follows The Elm Architecture via bubbletea: one model, one update
// function, one view function. All blocking work runs inside tea.Cmd
// thunks and comes back as typed messages.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/config"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/logbook"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/message"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/session"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/store"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/submit"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/workflow"
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithAPIClient overrides the API client, letting tests point the app at a
// fake backend.
func WithAPIClient(client *api.Client) AppOption {
	return func(a *App) {
		if client != nil {
			a.client = client
		}
	}
}

// WithLogbook overrides the logbook.
func WithLogbook(log *logbook.Logbook) AppOption {
	return func(a *App) { a.log = log }
}

// App is the top-level bubbletea model: the view-navigation state machine
// composing the session authority, the resource store and the domain
// pipelines.
type App struct {
	cfg       *config.Config
	log       *logbook.Logbook
	client    *api.Client
	authority *session.Authority
	store     *store.Store
	flow      *workflow.Workflow
	pipeline  *submit.Pipeline
	engine    *message.Engine

	view      View
	cursor    int
	statusMsg string
	width     int
	height    int
	spin      spinner.Model

	selectedVacancy api.Vacancy
	selectedApp     api.Application

	// Verdict state for the open candidate profile. Fetched once per
	// profile activation, never on a timer.
	verdict        *workflow.VerdictResult
	verdictErr     error
	verdictLoading bool

	generated *api.GeneratedMessage

	authForm     authForm
	jobForm      jobForm
	uploadForm   uploadForm
	templateForm templateForm
	editingTpl   bool

	timeout time.Duration
}

// NewApp wires the client stack together. The initial view is always Auth:
// no identity is ever carried across process starts.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	log, err := logbook.New(cfg.LogPath(), cfg.File.Log.Level)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.File.API.TimeoutSeconds) * time.Second
	client, err := api.NewClient(cfg.File.API.BaseURL,
		api.WithHTTPClient(httpClient(timeout)),
		api.WithLogbook(log),
	)
	if err != nil {
		return nil, err
	}

	st := store.New()
	authority := session.NewAuthority()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))

	app := &App{
		cfg:       cfg,
		log:       log,
		client:    client,
		authority: authority,
		store:     st,
		view:      ViewAuth,
		spin:      spin,
		timeout:   timeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.flow = workflow.New(app.client, st, app.log)
	app.pipeline = submit.New(app.client, app.log)
	app.engine = message.NewEngine(app.client)
	app.authForm = newAuthForm(cfg.File.DefaultRole)
	app.jobForm = newJobForm()
	app.uploadForm = newUploadForm()
	app.templateForm = newTemplateForm()

	// The store depends on the identity: a new session starts from a clean
	// slate and logout wipes the previous user's data.
	authority.Subscribe(func(identity *session.Identity) {
		st.Reset()
		if identity == nil {
			app.log.Info("session cleared")
			return
		}
		app.log.Info("session established", "role", string(identity.Role), "email", identity.Email)
	})

	return app, nil
}

// Init starts the cursor blink for the auth form.
func (a *App) Init() tea.Cmd {
	return a.authForm.focusCmd()
}

// Update routes messages: completions first, then keys per view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.anyLoading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case resourceMsg:
		// Completions are always applied so the store never holds a state
		// that lies about the backend; view side effects are skipped once
		// the user has navigated away from the originating screen.
		a.store.Apply(msg.res)
		if msg.view != a.view {
			return a, nil
		}
		if msg.res.Err != nil {
			a.statusMsg = "Load failed: " + shortError(msg.res.Err)
		}
		a.clampCursor()
		return a, nil

	case identityMsg:
		return a.handleIdentity(msg)

	case verdictMsg:
		if msg.view != a.view || msg.applicationID != a.selectedApp.ID {
			return a, nil
		}
		a.verdictLoading = false
		if msg.err != nil {
			a.verdictErr = msg.err
			return a, nil
		}
		result := msg.result
		a.verdict = &result
		a.verdictErr = nil
		return a, nil

	case statusPatchedMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Status update failed: %s", shortError(msg.err))
			return a, nil
		}
		a.statusMsg = fmt.Sprintf("Status set to %s", msg.status)
		if a.selectedApp.ID == msg.applicationID {
			a.selectedApp.Status = msg.status
		}
		return a, nil

	case vacancyCreatedMsg:
		if msg.err != nil {
			a.statusMsg = "Create failed: " + shortError(msg.err)
			return a, nil
		}
		a.statusMsg = "Vacancy published"
		a.jobForm = newJobForm()
		if identity, ok := a.authority.Current(); ok {
			a.store.Invalidate(store.RecruiterVacanciesKey(identity.ID))
		}
		return a, a.navigate(ViewRecruiterDashboard)

	case archiveToggledMsg:
		if msg.err != nil {
			a.statusMsg = "Archive toggle failed: " + shortError(msg.err)
			return a, nil
		}
		if identity, ok := a.authority.Current(); ok {
			a.store.Invalidate(store.RecruiterVacanciesKey(identity.ID))
			return a, a.loadForView(ViewRecruiterDashboard)
		}
		return a, nil

	case submittedMsg:
		a.uploadForm.busy = false
		if msg.err != nil {
			a.statusMsg = "Submission failed: " + shortError(msg.err)
			return a, nil
		}
		a.statusMsg = "Application submitted — AI analysis pending"
		a.uploadForm = newUploadForm()
		if identity, ok := a.authority.Current(); ok {
			a.store.Invalidate(store.MyApplicationsKey(identity.ID))
		}
		return a, a.navigate(ViewMyApplications)

	case templateSavedMsg:
		if msg.err != nil {
			a.statusMsg = "Save failed: " + shortError(msg.err)
			return a, nil
		}
		a.statusMsg = "Template saved"
		a.editingTpl = false
		a.templateForm = newTemplateForm()
		if identity, ok := a.authority.Current(); ok {
			a.store.Invalidate(store.TemplatesKey(identity.ID))
			return a, a.loadForView(ViewTemplates)
		}
		return a, nil

	case templateDeletedMsg:
		if msg.err != nil {
			a.statusMsg = "Delete failed: " + shortError(msg.err)
			return a, nil
		}
		a.statusMsg = "Template deleted"
		if identity, ok := a.authority.Current(); ok {
			a.store.Invalidate(store.TemplatesKey(identity.ID))
			return a, a.loadForView(ViewTemplates)
		}
		return a, nil

	case generatedMsg:
		if msg.err != nil {
			a.statusMsg = "Generation failed: " + shortError(msg.err)
			return a, nil
		}
		result := msg.result
		a.generated = &result
		a.statusMsg = "Message generated"
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleIdentity(msg identityMsg) (tea.Model, tea.Cmd) {
	a.authForm.busy = false
	if msg.err != nil {
		a.authForm.errText = shortError(msg.err)
		return a, nil
	}
	a.authForm.errText = ""
	if err := a.cfg.SetDefaultRole(string(msg.identity.Role)); err != nil {
		a.log.Warn("persist default role", "error", err)
	}
	return a, a.navigate(defaultView(msg.identity.Role))
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+l":
		if _, ok := a.authority.Current(); ok {
			a.authority.Clear()
			a.statusMsg = ""
			return a, a.navigate(ViewAuth)
		}
	case "esc":
		if a.view == ViewAuth {
			return a, nil
		}
		if a.view == ViewTemplates && a.editingTpl {
			a.editingTpl = false
			a.templateForm = newTemplateForm()
			return a, nil
		}
		if identity, ok := a.authority.Current(); ok {
			if a.view == defaultView(identity.Role) {
				return a, nil
			}
			return a, a.navigate(a.view.parent(identity.Role))
		}
		return a, a.navigate(ViewAuth)
	}

	switch a.view {
	case ViewAuth:
		return a.updateAuthView(msg)
	case ViewRecruiterDashboard:
		return a.updateDashboard(msg)
	case ViewCreateJob:
		return a.updateCreateJob(msg)
	case ViewJobDetail:
		return a.updateJobDetail(msg)
	case ViewCandidateProfile:
		return a.updateCandidateProfile(msg)
	case ViewTemplates:
		return a.updateTemplates(msg)
	case ViewActiveVacancies:
		return a.updateActiveVacancies(msg)
	case ViewUpload:
		return a.updateUpload(msg)
	case ViewMyApplications:
		return a.updateMyApplications(msg)
	case ViewApplicationDetail:
		return a.updateApplicationDetail(msg)
	}
	return a, nil
}

// navigate is the single entry point for view transitions. Without an
// identity every transition lands on Auth; a view reserved for the other
// role redirects to the current role's default view. Each data-bearing
// transition triggers exactly one store load for its key.
func (a *App) navigate(v View) tea.Cmd {
	identity, ok := a.authority.Current()
	if !ok {
		a.view = ViewAuth
		a.cursor = 0
		return a.authForm.focusCmd()
	}
	if need := v.requiredRole(); need != "" && need != identity.Role {
		a.log.Warn("navigation denied", "view", v.String(), "role", string(identity.Role))
		v = defaultView(identity.Role)
	}
	a.view = v
	a.cursor = 0
	a.generated = nil
	a.log.Info("view", "name", v.String())
	return a.loadForView(v)
}

// loadForView triggers the remote load backing a view. The store
// de-duplicates: a second mount while the key is still Loading is a no-op.
func (a *App) loadForView(v View) tea.Cmd {
	identity, ok := a.authority.Current()
	if !ok {
		return nil
	}
	switch v {
	case ViewRecruiterDashboard:
		return a.loadCmd(v, store.RecruiterVacanciesKey(identity.ID), func(ctx context.Context) (any, error) {
			return a.client.ListRecruiterVacancies(ctx, identity.ID)
		})
	case ViewJobDetail:
		return a.loadCmd(v, store.VacancyApplicationsKey(a.selectedVacancy.ID), func(ctx context.Context) (any, error) {
			return a.client.ListVacancyApplications(ctx, a.selectedVacancy.ID)
		})
	case ViewTemplates:
		return a.loadCmd(v, store.TemplatesKey(identity.ID), func(ctx context.Context) (any, error) {
			return a.client.ListTemplates(ctx, identity.ID)
		})
	case ViewActiveVacancies:
		return a.loadCmd(v, store.ActiveVacanciesKey(), func(ctx context.Context) (any, error) {
			return a.client.ListActiveVacancies(ctx)
		})
	case ViewMyApplications:
		return a.loadCmd(v, store.MyApplicationsKey(identity.ID), func(ctx context.Context) (any, error) {
			return a.client.ListMyApplications(ctx, identity.ID)
		})
	case ViewCandidateProfile, ViewApplicationDetail:
		return a.fetchVerdictCmd()
	}
	return nil
}

// loadCmd starts a store load and wraps its completion into a message.
func (a *App) loadCmd(v View, key string, fetch store.FetchFunc, opts ...store.LoadOption) tea.Cmd {
	run, ok := a.store.Begin(key, fetch, opts...)
	if !ok {
		return nil
	}
	fetchCmd := func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		return resourceMsg{view: v, res: run(ctx)}
	}
	return tea.Batch(fetchCmd, a.spin.Tick)
}

// fetchVerdictCmd performs the once-per-activation verdict read.
func (a *App) fetchVerdictCmd() tea.Cmd {
	appID := a.selectedApp.ID
	view := a.view
	a.verdict = nil
	a.verdictErr = nil
	a.verdictLoading = true
	return tea.Batch(func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		result, err := a.flow.FetchVerdict(ctx, appID)
		return verdictMsg{view: view, applicationID: appID, result: result, err: err}
	}, a.spin.Tick)
}

func (a *App) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.timeout)
}

func (a *App) anyLoading() bool {
	if a.verdictLoading || a.authForm.busy || a.uploadForm.busy {
		return true
	}
	identity, ok := a.authority.Current()
	if !ok {
		return false
	}
	keys := []string{
		store.RecruiterVacanciesKey(identity.ID),
		store.VacancyApplicationsKey(a.selectedVacancy.ID),
		store.TemplatesKey(identity.ID),
		store.ActiveVacanciesKey(),
		store.MyApplicationsKey(identity.ID),
	}
	for _, key := range keys {
		if a.store.Read(key).Status == store.StatusLoading {
			return true
		}
	}
	return false
}

func (a *App) clampCursor() {
	if a.cursor < 0 {
		a.cursor = 0
	}
	if n := a.listLength(); n > 0 && a.cursor >= n {
		a.cursor = n - 1
	} else if n == 0 {
		a.cursor = 0
	}
}

// listLength reports how many rows the current view's cursor moves over.
func (a *App) listLength() int {
	identity, ok := a.authority.Current()
	if !ok {
		return 0
	}
	switch a.view {
	case ViewRecruiterDashboard:
		vacancies, _ := a.store.Vacancies(store.RecruiterVacanciesKey(identity.ID))
		return len(vacancies)
	case ViewJobDetail:
		apps, _ := a.store.Applications(store.VacancyApplicationsKey(a.selectedVacancy.ID))
		return len(apps)
	case ViewTemplates:
		templates, _ := a.store.Templates(store.TemplatesKey(identity.ID))
		return len(templates)
	case ViewActiveVacancies:
		vacancies, _ := a.store.ActiveVacancies(store.ActiveVacanciesKey())
		return len(vacancies)
	case ViewMyApplications:
		apps, _ := a.store.Applications(store.MyApplicationsKey(identity.ID))
		return len(apps)
	}
	return 0
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
}

func shortError(err error) string {
	if err == nil {
		return ""
	}
	text := strings.TrimPrefix(err.Error(), "api: ")
	return truncate(text, 120)
}
