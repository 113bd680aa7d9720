// Package workflow drives the lifecycle of one candidate application:
// recruiter status transitions plus the asynchronous AI-verdict read.
package workflow

import (
	"context"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/logbook"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/store"
)

// Client is the slice of the API client the workflow needs.
type Client interface {
	UpdateApplicationStatus(ctx context.Context, applicationID string, status api.Status) error
	FetchVerdict(ctx context.Context, applicationID string) (api.AIVerdict, bool, error)
}

// transitions is the directed lifecycle graph. It drives which actions the
// UI offers; it does not gate SetStatus, which forwards any requested
// transition and lets the backend decide.
var transitions = map[api.Status][]api.Status{
	api.StatusNew:       {api.StatusInterview, api.StatusRejected},
	api.StatusInterview: {api.StatusOffer, api.StatusRejected},
	api.StatusOffer:     {api.StatusRejected},
	api.StatusRejected:  nil,
}

// NextStatuses returns the forward transitions from the given status.
func NextStatuses(current api.Status) []api.Status {
	next := transitions[current]
	out := make([]api.Status, len(next))
	copy(out, next)
	return out
}

// VerdictState distinguishes a verdict that has not been computed yet from
// one that was computed, possibly with empty fields.
type VerdictState string

const (
	VerdictPending VerdictState = "pending"
	VerdictReady   VerdictState = "ready"
)

// VerdictResult is the tri-state outcome of a verdict read; a failed fetch
// is reported through the error return instead.
type VerdictResult struct {
	State   VerdictState
	Verdict api.AIVerdict
}

// Workflow coordinates status updates against the API and keeps the store's
// copies of the application consistent.
type Workflow struct {
	client Client
	store  *store.Store
	log    *logbook.Logbook
}

// New creates a workflow over the given client and store.
func New(client Client, st *store.Store, log *logbook.Logbook) *Workflow {
	return &Workflow{client: client, store: st, log: log}
}

// SetStatus optimistically patches every stored copy of the application to
// the requested status, issues the update, and rolls the copies back if the
// backend rejects it. Setting the current status again is a no-op for the
// stored state but the request is still issued. A failure is surfaced to
// the caller as a transient error and never blocks later transitions.
func (w *Workflow) SetStatus(ctx context.Context, applicationID string, next api.Status) error {
	var prior api.Status
	captured := false
	patched := w.store.PatchApplication(applicationID, func(app *api.Application) {
		if !captured {
			prior = app.Status
			captured = true
		}
		app.Status = next
	})

	err := w.client.UpdateApplicationStatus(ctx, applicationID, next)
	if err != nil {
		if patched > 0 {
			w.store.PatchApplication(applicationID, func(app *api.Application) {
				app.Status = prior
			})
		}
		w.log.Warn("status update rejected", "application", applicationID, "requested", string(next), "error", err)
		return err
	}
	w.log.Info("status updated", "application", applicationID, "status", string(next))
	return nil
}

// FetchVerdict performs one on-demand verdict read. The caller re-requests
// when the profile is reopened; there is no background polling. A NotFound
// answer counts as pending: the backend simply has not produced the record
// yet.
func (w *Workflow) FetchVerdict(ctx context.Context, applicationID string) (VerdictResult, error) {
	verdict, computed, err := w.client.FetchVerdict(ctx, applicationID)
	if err != nil {
		if api.IsKind(err, api.KindNotFound) {
			return VerdictResult{State: VerdictPending}, nil
		}
		return VerdictResult{}, err
	}
	if !computed {
		return VerdictResult{State: VerdictPending}, nil
	}
	return VerdictResult{State: VerdictReady, Verdict: verdict}, nil
}
