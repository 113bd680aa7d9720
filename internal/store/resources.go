package store

import "github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"

// Typed read helpers over Snapshot.Data. They only answer for Ready keys;
// callers render Loading/Error/Idle from the snapshot itself.

// Vacancies returns the vacancy list behind a Ready key.
func (s *Store) Vacancies(key string) ([]api.Vacancy, bool) {
	snap := s.Read(key)
	if snap.Status != StatusReady {
		return nil, false
	}
	vacancies, ok := snap.Data.([]api.Vacancy)
	return vacancies, ok
}

// ActiveVacancies is the candidate-facing read boundary: archived vacancies
// are filtered out here even when the backend did not pre-filter, so the
// rule lives in exactly one place.
func (s *Store) ActiveVacancies(key string) ([]api.Vacancy, bool) {
	vacancies, ok := s.Vacancies(key)
	if !ok {
		return nil, false
	}
	active := make([]api.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if !v.IsArchived {
			active = append(active, v)
		}
	}
	return active, true
}

// Applications returns the application list behind a Ready key.
func (s *Store) Applications(key string) ([]api.Application, bool) {
	snap := s.Read(key)
	if snap.Status != StatusReady {
		return nil, false
	}
	apps, ok := snap.Data.([]api.Application)
	return apps, ok
}

// Templates returns the template list behind a Ready key.
func (s *Store) Templates(key string) ([]api.Template, bool) {
	snap := s.Read(key)
	if snap.Status != StatusReady {
		return nil, false
	}
	templates, ok := snap.Data.([]api.Template)
	return templates, ok
}

// PatchApplication applies fn to every stored copy of the application:
// list entries and detail records alike, across all Ready keys. It returns
// the number of copies touched, so callers know whether a rollback has
// anything to restore. Patched lists are rebuilt rather than mutated in
// place: slices handed out by earlier reads may still be iterated by the
// render loop while a patch runs on another goroutine.
func (s *Store) PatchApplication(applicationID string, fn func(*api.Application)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	patched := 0
	for key, snap := range s.states {
		if snap.Status != StatusReady {
			continue
		}
		switch data := snap.Data.(type) {
		case []api.Application:
			touched := false
			fresh := make([]api.Application, len(data))
			copy(fresh, data)
			for i := range fresh {
				if fresh[i].ID == applicationID {
					fn(&fresh[i])
					patched++
					touched = true
				}
			}
			if touched {
				snap.Data = fresh
				s.states[key] = snap
			}
		case api.Application:
			if data.ID == applicationID {
				fn(&data)
				snap.Data = data
				s.states[key] = snap
				patched++
			}
		}
	}
	return patched
}
