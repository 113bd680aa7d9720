package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListRecruiterVacancies returns every vacancy owned by the recruiter,
// archived ones included.
func (c *Client) ListRecruiterVacancies(ctx context.Context, recruiterID string) ([]Vacancy, error) {
	query := url.Values{"id": {recruiterID}}
	data, err := c.doJSON(ctx, http.MethodGet, "/vacancies/all", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeVacancies(data)
}

// ListActiveVacancies returns the candidate-facing listing. The backend
// excludes archived vacancies here; the store's read boundary filters again
// in case an older revision does not.
func (c *Client) ListActiveVacancies(ctx context.Context) ([]Vacancy, error) {
	data, err := c.doJSON(ctx, http.MethodGet, "/vacancies/active", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeVacancies(data)
}

// CreateVacancy publishes a new position owned by the recruiter.
func (c *Client) CreateVacancy(ctx context.Context, ownerID, title, aiFilters string) (Vacancy, error) {
	body := map[string]any{
		"title":        title,
		"ai_filters":   aiFilters,
		"recruiter_id": ownerID,
		"is_archived":  false,
	}
	data, err := c.doJSON(ctx, http.MethodPost, "/vacancies", nil, body)
	if err != nil {
		return Vacancy{}, err
	}
	p, err := decodePayload(data)
	if err != nil {
		return Vacancy{}, decodeError(err)
	}
	return vacancyFromPayload(p), nil
}

// ArchiveVacancy removes a vacancy from candidate-facing listings while
// retaining it for the owner.
func (c *Client) ArchiveVacancy(ctx context.Context, vacancyID string) error {
	_, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/vacancies/%s/archive", vacancyID), nil, nil)
	return err
}

// UnarchiveVacancy restores an archived vacancy to the active listings.
func (c *Client) UnarchiveVacancy(ctx context.Context, vacancyID string) error {
	_, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/vacancies/%s/dearchive", vacancyID), nil, nil)
	return err
}

func decodeVacancies(data []byte) ([]Vacancy, error) {
	payloads, err := decodeObjects(data)
	if err != nil {
		return nil, decodeError(err)
	}
	vacancies := make([]Vacancy, 0, len(payloads))
	for _, p := range payloads {
		vacancies = append(vacancies, vacancyFromPayload(p))
	}
	return vacancies, nil
}
