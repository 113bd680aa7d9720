package tui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/config"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/session"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/store"
)

func newTestApp(t *testing.T, handler http.Handler) *App {
	t.Helper()
	t.Setenv("RECRUIT_HOME", t.TempDir())
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	app, err := NewApp(cfg, WithAPIClient(client))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

// runCommands drains a command tree to quiescence, feeding every produced
// message back through Update.
func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		nextModel, nextCmd := app.Update(msg)
		app, ok = nextModel.(*App)
		if !ok {
			t.Fatalf("unexpected model type: %T", nextModel)
		}
		if nextCmd != nil {
			queue = append(queue, nextCmd)
		}
	}
	return app
}

func emptyBackend() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
}

func TestInitialViewIsAuth(t *testing.T) {
	app := newTestApp(t, emptyBackend())
	if app.view != ViewAuth {
		t.Fatalf("expected auth view on start, got %s", app.view)
	}
	if _, ok := app.authority.Current(); ok {
		t.Fatalf("no identity may be carried across process starts")
	}
}

func TestLoginRoutesToRoleDefaultView(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			_, _ = w.Write([]byte(`{"recruiter_id":"r1","email":"r@x.com"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	app.authForm.inputs[authFieldEmail].SetValue("r@x.com")
	app.authForm.inputs[authFieldPassword].SetValue("secret")
	model, cmd := app.updateAuthView(tea.KeyMsg{Type: tea.KeyEnter})
	app = runCommands(t, model, cmd)

	if app.view != ViewRecruiterDashboard {
		t.Fatalf("recruiter must land on the dashboard, got %s", app.view)
	}
	identity, ok := app.authority.Current()
	if !ok || identity.Role != api.RoleRecruiter {
		t.Fatalf("expected recruiter identity, got %+v", identity)
	}
}

func TestFailedLoginStaysOnAuthWithError(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"bad credentials"}`))
	}))
	app.authForm.inputs[authFieldEmail].SetValue("r@x.com")
	app.authForm.inputs[authFieldPassword].SetValue("wrong")
	model, cmd := app.updateAuthView(tea.KeyMsg{Type: tea.KeyEnter})
	app = runCommands(t, model, cmd)

	if app.view != ViewAuth {
		t.Fatalf("failed login must stay on auth, got %s", app.view)
	}
	if app.authForm.errText == "" {
		t.Fatalf("expected auth error text")
	}
}

func TestRoleGateRedirectsToOwnDefault(t *testing.T) {
	app := newTestApp(t, emptyBackend())
	app.authority.Establish(session.Identity{ID: "c1", Role: api.RoleCandidate})
	app = runCommands(t, app, app.navigate(ViewRecruiterDashboard))
	if app.view != ViewActiveVacancies {
		t.Fatalf("candidate must be redirected to vacancies, got %s", app.view)
	}
}

func TestNavigationTriggersExactlyOneLoad(t *testing.T) {
	var calls int64
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/my-applications" {
			atomic.AddInt64(&calls, 1)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	app.authority.Establish(session.Identity{ID: "c1", Role: api.RoleCandidate})

	first := app.navigate(ViewMyApplications)
	// A second mount while the load is still in flight must not refetch.
	second := app.navigate(ViewMyApplications)
	if second != nil {
		t.Fatalf("expected in-flight dedupe to suppress the second load")
	}
	app = runCommands(t, app, first)
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("expected exactly one backend call, got %d", got)
	}
}

func TestEmptyApplicationsStateIsExplicit(t *testing.T) {
	app := newTestApp(t, emptyBackend())
	app.authority.Establish(session.Identity{ID: "c1", Role: api.RoleCandidate})
	app = runCommands(t, app, app.navigate(ViewMyApplications))

	snap := app.store.Read(store.MyApplicationsKey("c1"))
	if snap.Status != store.StatusReady {
		t.Fatalf("expected ready snapshot, got %s", snap.Status)
	}
	if !strings.Contains(app.View(), "No applications yet.") {
		t.Fatalf("expected explicit empty state in render")
	}
	if strings.Contains(app.View(), "Loading") {
		t.Fatalf("empty result must not render as loading")
	}
}

func TestStaleCompletionAppliesWithoutSideEffects(t *testing.T) {
	app := newTestApp(t, emptyBackend())
	app.authority.Establish(session.Identity{ID: "c1", Role: api.RoleCandidate})
	app = runCommands(t, app, app.navigate(ViewActiveVacancies))

	// A completion from a view the user already left still lands in the
	// store, but must not touch the current view's status line.
	model, _ := app.Update(resourceMsg{view: ViewMyApplications, res: store.Result{
		Key:  store.MyApplicationsKey("c1"),
		Data: []api.Application{{ID: "a1", VacancyTitle: "Backend Engineer"}},
	}})
	app = model.(*App)
	apps, ok := app.store.Applications(store.MyApplicationsKey("c1"))
	if !ok || len(apps) != 1 {
		t.Fatalf("stale completion must still be applied to the store")
	}
	if app.statusMsg != "" {
		t.Fatalf("stale completion must not set the status line, got %q", app.statusMsg)
	}
}

func TestLogoutClearsStoreAndReturnsToAuth(t *testing.T) {
	app := newTestApp(t, emptyBackend())
	app.authority.Establish(session.Identity{ID: "c1", Role: api.RoleCandidate})
	app = runCommands(t, app, app.navigate(ViewMyApplications))
	if app.store.Read(store.MyApplicationsKey("c1")).Status != store.StatusReady {
		t.Fatalf("expected loaded data before logout")
	}

	model, cmd := app.handleKey(tea.KeyMsg{Type: tea.KeyCtrlL})
	app = runCommands(t, model, cmd)
	if app.view != ViewAuth {
		t.Fatalf("logout must land on auth, got %s", app.view)
	}
	if app.store.Read(store.MyApplicationsKey("c1")).Status != store.StatusIdle {
		t.Fatalf("logout must wipe the store")
	}
}

func TestEscWalksToParentView(t *testing.T) {
	app := newTestApp(t, emptyBackend())
	app.authority.Establish(session.Identity{ID: "r1", Role: api.RoleRecruiter})
	app = runCommands(t, app, app.navigate(ViewCreateJob))
	if app.view != ViewCreateJob {
		t.Fatalf("setup failed, view %s", app.view)
	}
	model, cmd := app.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	app = runCommands(t, model, cmd)
	if app.view != ViewRecruiterDashboard {
		t.Fatalf("esc must return to the dashboard, got %s", app.view)
	}
}

func TestCandidateApplicationDetailShowsVerdict(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/ai-data") {
			_, _ = w.Write([]byte(`{"ai_verdict":"Strong match","skills_detected":"Go, SQL","ai_score":84}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	app.authority.Establish(session.Identity{ID: "c1", Role: api.RoleCandidate})
	app.selectedApp = api.Application{ID: "a1", VacancyTitle: "Backend Engineer", Status: api.StatusNew}
	app = runCommands(t, app, app.navigate(ViewApplicationDetail))

	if app.verdict == nil || app.verdict.State != "ready" {
		t.Fatalf("candidate detail must fetch the verdict, got %+v", app.verdict)
	}
	rendered := app.View()
	if !strings.Contains(rendered, "Strong match") || !strings.Contains(rendered, "Go, SQL") {
		t.Fatalf("verdict must be visible to the candidate:\n%s", rendered)
	}
}

func TestTruncatePreservesMultibyteRunes(t *testing.T) {
	got := truncate("привет мир", 6)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if got != "привет…" {
		t.Fatalf("expected rune-boundary cut, got %q", got)
	}
	if short := truncate("ok", 10); short != "ok" {
		t.Fatalf("short text must pass through, got %q", short)
	}
}

func TestVerdictPendingRendering(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/ai-data") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	app.authority.Establish(session.Identity{ID: "r1", Role: api.RoleRecruiter})
	app.selectedApp = api.Application{ID: "a1", CandidateName: "Dana", Status: api.StatusNew}
	app = runCommands(t, app, app.navigate(ViewCandidateProfile))

	if app.verdict == nil || app.verdict.State != "pending" {
		t.Fatalf("missing verdict record must read as pending, got %+v", app.verdict)
	}
	if !strings.Contains(app.View(), "pending") {
		t.Fatalf("pending state must be visible")
	}
}
