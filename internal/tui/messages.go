package tui

import (
	"net/http"
	"time"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/session"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/store"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/workflow"
)

// Completion messages. Each carries the view it was issued from so the
// update loop can skip view-local side effects after the user navigated
// away, while still applying the data itself.

type identityMsg struct {
	identity session.Identity
	err      error
}

type resourceMsg struct {
	view View
	res  store.Result
}

type verdictMsg struct {
	view          View
	applicationID string
	result        workflow.VerdictResult
	err           error
}

type statusPatchedMsg struct {
	applicationID string
	status        api.Status
	err           error
}

type vacancyCreatedMsg struct {
	vacancy api.Vacancy
	err     error
}

type archiveToggledMsg struct {
	vacancyID string
	archived  bool
	err       error
}

type submittedMsg struct {
	vacancyID     string
	applicationID string
	err           error
}

type templateSavedMsg struct {
	err error
}

type templateDeletedMsg struct {
	err error
}

type generatedMsg struct {
	result api.GeneratedMessage
	err    error
}

func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
