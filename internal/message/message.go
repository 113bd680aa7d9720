// Package message substitutes context fields into saved template bodies and
// requests outbound message generation.
package message

import (
	"context"
	"regexp"
	"strings"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
)

// MissingContactPlaceholder is substituted when no contact handle is known,
// so the generated message is always syntactically complete.
const MissingContactPlaceholder = "@candidate"

// Context carries the substitutable fields for one message.
type Context struct {
	CandidateName string
	ContactHandle string
	VacancyTitle  string
}

// The recognized token set. Anything else inside braces stays verbatim:
// no silent deletion, no error.
//
//	{name}    -> CandidateName
//	{vacancy} -> VacancyTitle
//	{contact} -> ContactHandle
var tokens = map[string]func(Context) string{
	"name":    func(c Context) string { return c.CandidateName },
	"vacancy": func(c Context) string { return c.VacancyTitle },
	"contact": func(c Context) string { return c.ContactHandle },
}

var tokenPattern = regexp.MustCompile(`\{([a-zA-Z_]+)\}`)

// RecognizedTokens enumerates the token names Render substitutes.
func RecognizedTokens() []string {
	return []string{"name", "vacancy", "contact"}
}

// Render substitutes every recognized placeholder in body with the
// corresponding context field. Unrecognized tokens are left untouched, so a
// body without recognized placeholders comes back unchanged.
func Render(body string, mctx Context) string {
	mctx = withDefaults(mctx)
	return tokenPattern.ReplaceAllStringFunc(body, func(match string) string {
		name := strings.ToLower(match[1 : len(match)-1])
		field, ok := tokens[name]
		if !ok {
			return match
		}
		return field(mctx)
	})
}

// Generator is the slice of the API client the engine needs.
type Generator interface {
	GenerateMessage(ctx context.Context, templateID string, mctx api.MessageContext) (api.GeneratedMessage, error)
}

// Engine invokes the backend generation endpoint, which performs the
// authoritative substitution and constructs the deep link.
type Engine struct {
	client Generator
}

// NewEngine creates an engine over the given generator.
func NewEngine(client Generator) *Engine {
	return &Engine{client: client}
}

// Generate fills context defaults, calls the generation endpoint and hands
// the resulting text/link pair back unmodified for presentation.
func (e *Engine) Generate(ctx context.Context, tpl api.Template, mctx Context) (api.GeneratedMessage, error) {
	mctx = withDefaults(mctx)
	return e.client.GenerateMessage(ctx, tpl.ID, api.MessageContext{
		CandidateName: mctx.CandidateName,
		ContactHandle: mctx.ContactHandle,
		VacancyTitle:  mctx.VacancyTitle,
	})
}

func withDefaults(mctx Context) Context {
	if strings.TrimSpace(mctx.ContactHandle) == "" {
		mctx.ContactHandle = MissingContactPlaceholder
	}
	return mctx
}
