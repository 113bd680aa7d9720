package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/session"
)

const (
	authFieldEmail = iota
	authFieldPassword
	authFieldExtra
	authFieldCount
)

// authForm is the login/signup screen state. The extra field is the
// role-specific signup input: company name for recruiters, telegram handle
// for candidates.
type authForm struct {
	mode    session.Mode
	role    api.Role
	inputs  [authFieldCount]textinput.Model
	focus   int
	errText string
	busy    bool
}

func newAuthForm(defaultRole string) authForm {
	form := authForm{mode: session.ModeLogin, role: api.RoleCandidate}
	if defaultRole == string(api.RoleRecruiter) {
		form.role = api.RoleRecruiter
	}

	email := textinput.New()
	email.Placeholder = "email address"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	extra := textinput.New()
	extra.CharLimit = 120

	form.inputs[authFieldEmail] = email
	form.inputs[authFieldPassword] = password
	form.inputs[authFieldExtra] = extra
	form.syncExtraPlaceholder()
	return form
}

func (f *authForm) syncExtraPlaceholder() {
	if f.role == api.RoleRecruiter {
		f.inputs[authFieldExtra].Placeholder = "company name"
	} else {
		f.inputs[authFieldExtra].Placeholder = "telegram username (without @)"
	}
}

func (f *authForm) fieldCount() int {
	if f.mode == session.ModeSignUp {
		return authFieldCount
	}
	return authFieldExtra
}

func (f *authForm) focusCmd() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *authForm) credentials() session.Credentials {
	creds := session.Credentials{
		Email:    strings.TrimSpace(f.inputs[authFieldEmail].Value()),
		Password: f.inputs[authFieldPassword].Value(),
	}
	extra := strings.TrimSpace(f.inputs[authFieldExtra].Value())
	if f.role == api.RoleRecruiter {
		creds.CompanyName = extra
	} else {
		creds.TelegramUsername = extra
	}
	return creds
}

func (a *App) updateAuthView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &a.authForm
	switch msg.String() {
	case "tab", "down":
		form.focus = (form.focus + 1) % form.fieldCount()
		return a, form.focusCmd()
	case "shift+tab", "up":
		form.focus = (form.focus - 1 + form.fieldCount()) % form.fieldCount()
		return a, form.focusCmd()
	case "ctrl+t":
		if form.mode == session.ModeLogin {
			form.mode = session.ModeSignUp
		} else {
			form.mode = session.ModeLogin
		}
		if form.focus >= form.fieldCount() {
			form.focus = 0
		}
		form.errText = ""
		return a, form.focusCmd()
	case "ctrl+r":
		if form.role == api.RoleRecruiter {
			form.role = api.RoleCandidate
		} else {
			form.role = api.RoleRecruiter
		}
		form.syncExtraPlaceholder()
		return a, nil
	case "enter":
		if form.busy {
			return a, nil
		}
		return a, a.authenticateCmd()
	}

	var cmd tea.Cmd
	form.inputs[form.focus], cmd = form.inputs[form.focus].Update(msg)
	return a, cmd
}

func (a *App) authenticateCmd() tea.Cmd {
	form := &a.authForm
	form.busy = true
	form.errText = ""
	mode := form.mode
	role := form.role
	creds := form.credentials()
	return tea.Batch(func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		identity, err := a.authority.Authenticate(ctx, a.client, mode, role, creds)
		return identityMsg{identity: identity, err: err}
	}, a.spin.Tick)
}

func (a *App) renderAuthView() string {
	form := &a.authForm
	modeLabel := "Login"
	if form.mode == session.ModeSignUp {
		modeLabel = "Sign Up"
	}
	lines := []string{
		badgeStyle.Render(modeLabel) + dimStyle.Render("  ·  role: ") + badgeStyle.Render(string(form.role)),
		"",
		form.inputs[authFieldEmail].View(),
		form.inputs[authFieldPassword].View(),
	}
	if form.mode == session.ModeSignUp {
		lines = append(lines, form.inputs[authFieldExtra].View())
	}
	if form.busy {
		lines = append(lines, "", a.spin.View()+" Authenticating...")
	}
	if form.errText != "" {
		lines = append(lines, "", errorStyle.Render("✗ "+form.errText))
	}
	lines = append(lines, hintStyle.Render(
		"Enter → submit    Ctrl+T → login/signup    Ctrl+R → switch role    Tab → next field"))
	return strings.Join(lines, "\n")
}
