package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
)

func TestUnknownKeyReadsIdle(t *testing.T) {
	st := New()
	snap := st.Read("never-loaded")
	if snap.Status != StatusIdle {
		t.Fatalf("unknown key must read as idle, got %q", snap.Status)
	}
	var zero Snapshot
	if zero.Status != StatusIdle {
		t.Fatalf("zero snapshot must be idle, got %q", zero.Status)
	}
}

func TestBeginAppliesReadyEmptyList(t *testing.T) {
	st := New()
	key := MyApplicationsKey("cand-1")
	run, ok := st.Begin(key, func(context.Context) (any, error) {
		return []api.Application{}, nil
	})
	if !ok {
		t.Fatalf("expected Begin to start a load")
	}
	if got := st.Read(key).Status; got != StatusLoading {
		t.Fatalf("expected loading while in flight, got %s", got)
	}
	st.Apply(run(context.Background()))

	snap := st.Read(key)
	if snap.Status != StatusReady {
		t.Fatalf("expected ready, got %s", snap.Status)
	}
	apps, ok := st.Applications(key)
	if !ok {
		t.Fatalf("expected typed read to answer for ready key")
	}
	if len(apps) != 0 {
		t.Fatalf("expected legitimate empty result, got %d entries", len(apps))
	}
}

func TestBeginDeduplicatesInFlightLoads(t *testing.T) {
	st := New()
	key := ActiveVacanciesKey()
	calls := 0
	fetch := func(context.Context) (any, error) {
		calls++
		return []api.Vacancy{}, nil
	}
	run, ok := st.Begin(key, fetch)
	if !ok {
		t.Fatalf("first Begin must start the load")
	}
	if _, ok := st.Begin(key, fetch); ok {
		t.Fatalf("second Begin while loading must be a no-op")
	}
	st.Apply(run(context.Background()))
	if calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", calls)
	}
	if _, ok := st.Begin(key, fetch); !ok {
		t.Fatalf("Begin after completion must start a fresh load")
	}
}

func TestApplyErrorDropsDataByDefault(t *testing.T) {
	st := New()
	key := RecruiterVacanciesKey("rec-1")
	st.Apply(Result{Key: key, Data: []api.Vacancy{{ID: "v1"}}})

	run, _ := st.Begin(key, func(context.Context) (any, error) {
		return nil, errors.New("backend down")
	})
	st.Apply(run(context.Background()))

	snap := st.Read(key)
	if snap.Status != StatusError {
		t.Fatalf("expected error status, got %s", snap.Status)
	}
	if snap.Data != nil {
		t.Fatalf("expected data dropped on error")
	}
}

func TestKeepStaleOnErrorRetainsPriorData(t *testing.T) {
	st := New()
	key := RecruiterVacanciesKey("rec-1")
	st.Apply(Result{Key: key, Data: []api.Vacancy{{ID: "v1"}}})

	run, _ := st.Begin(key, func(context.Context) (any, error) {
		return nil, errors.New("backend down")
	}, KeepStaleOnError())
	st.Apply(run(context.Background()))

	snap := st.Read(key)
	if snap.Status != StatusError {
		t.Fatalf("expected error status, got %s", snap.Status)
	}
	vacancies, ok := snap.Data.([]api.Vacancy)
	if !ok || len(vacancies) != 1 {
		t.Fatalf("expected stale data retained, got %#v", snap.Data)
	}
}

func TestInvalidateAndReset(t *testing.T) {
	st := New()
	key := TemplatesKey("rec-1")
	st.Apply(Result{Key: key, Data: []api.Template{{ID: "t1"}}})
	st.Invalidate(key)
	if got := st.Read(key).Status; got != StatusIdle {
		t.Fatalf("expected idle after invalidate, got %s", got)
	}

	st.Apply(Result{Key: key, Data: []api.Template{{ID: "t1"}}})
	st.Apply(Result{Key: ActiveVacanciesKey(), Data: []api.Vacancy{{ID: "v1"}}})
	st.Reset()
	if got := st.Read(key).Status; got != StatusIdle {
		t.Fatalf("expected idle after reset, got %s", got)
	}
	if got := st.Read(ActiveVacanciesKey()).Status; got != StatusIdle {
		t.Fatalf("expected all keys wiped by reset, got %s", got)
	}
}

func TestActiveVacanciesFiltersArchived(t *testing.T) {
	st := New()
	key := ActiveVacanciesKey()
	st.Apply(Result{Key: key, Data: []api.Vacancy{
		{ID: "v1", Title: "Backend Engineer"},
		{ID: "v2", Title: "Old Role", IsArchived: true},
		{ID: "v3", Title: "Data Analyst"},
	}})
	active, ok := st.ActiveVacancies(key)
	if !ok {
		t.Fatalf("expected ready read")
	}
	if len(active) != 2 {
		t.Fatalf("expected archived vacancy filtered out, got %d entries", len(active))
	}
	for _, v := range active {
		if v.IsArchived {
			t.Fatalf("archived vacancy %s leaked through read boundary", v.ID)
		}
	}
}

func TestPatchApplicationTouchesListAndDetailCopies(t *testing.T) {
	st := New()
	listKey := VacancyApplicationsKey("v1")
	detailKey := "application:a1"
	st.Apply(Result{Key: listKey, Data: []api.Application{
		{ID: "a1", Status: api.StatusNew},
		{ID: "a2", Status: api.StatusNew},
	}})
	st.Apply(Result{Key: detailKey, Data: api.Application{ID: "a1", Status: api.StatusNew}})

	patched := st.PatchApplication("a1", func(app *api.Application) {
		app.Status = api.StatusInterview
	})
	if patched != 2 {
		t.Fatalf("expected both copies patched, got %d", patched)
	}

	apps, _ := st.Applications(listKey)
	if apps[0].Status != api.StatusInterview {
		t.Fatalf("list copy not patched: %s", apps[0].Status)
	}
	if apps[1].Status != api.StatusNew {
		t.Fatalf("unrelated application patched: %s", apps[1].Status)
	}
	detail := st.Read(detailKey).Data.(api.Application)
	if detail.Status != api.StatusInterview {
		t.Fatalf("detail copy not patched: %s", detail.Status)
	}
}

func TestPatchApplicationLeavesHandedOutSlicesUntouched(t *testing.T) {
	st := New()
	key := VacancyApplicationsKey("v1")
	st.Apply(Result{Key: key, Data: []api.Application{{ID: "a1", Status: api.StatusNew}}})

	before, _ := st.Applications(key)
	st.PatchApplication("a1", func(app *api.Application) {
		app.Status = api.StatusOffer
	})

	if before[0].Status != api.StatusNew {
		t.Fatalf("patch must not mutate a previously returned slice, got %s", before[0].Status)
	}
	after, _ := st.Applications(key)
	if after[0].Status != api.StatusOffer {
		t.Fatalf("stored snapshot must carry the patch, got %s", after[0].Status)
	}
}

func TestPatchApplicationReportsZeroWhenAbsent(t *testing.T) {
	st := New()
	if patched := st.PatchApplication("ghost", func(app *api.Application) {
		app.Status = api.StatusRejected
	}); patched != 0 {
		t.Fatalf("expected no copies patched, got %d", patched)
	}
}
