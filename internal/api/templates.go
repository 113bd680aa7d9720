package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListTemplates returns the recruiter's saved message templates.
func (c *Client) ListTemplates(ctx context.Context, recruiterID string) ([]Template, error) {
	query := url.Values{"recruiter_id": {recruiterID}}
	data, err := c.doJSON(ctx, http.MethodGet, "/templates", query, nil)
	if err != nil {
		return nil, err
	}
	payloads, err := decodeObjects(data)
	if err != nil {
		return nil, decodeError(err)
	}
	templates := make([]Template, 0, len(payloads))
	for _, p := range payloads {
		templates = append(templates, templateFromPayload(p))
	}
	return templates, nil
}

// CreateTemplate saves a new template owned by the recruiter.
func (c *Client) CreateTemplate(ctx context.Context, recruiterID, title, body string) (Template, error) {
	payloadBody := map[string]string{
		"recruiter_id": recruiterID,
		"title":        title,
		"body_text":    body,
	}
	data, err := c.doJSON(ctx, http.MethodPost, "/templates", nil, payloadBody)
	if err != nil {
		return Template{}, err
	}
	p, err := decodePayload(data)
	if err != nil {
		return Template{}, decodeError(err)
	}
	return templateFromPayload(p), nil
}

// UpdateTemplate replaces the title and body of an existing template.
func (c *Client) UpdateTemplate(ctx context.Context, tpl Template) error {
	body := map[string]string{
		"recruiter_id": tpl.OwnerID,
		"title":        tpl.Title,
		"body_text":    tpl.Body,
	}
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/templates/%s", tpl.ID), nil, body)
	return err
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, templateID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/templates/%s", templateID), nil, nil)
	return err
}

// GenerateMessage asks the backend to render the template with the given
// context and build the outbound deep link. The text/link pair is returned
// unmodified for presentation. The handle travels under both the
// telegram_username name the observed contract reads and the generic
// contact_handle alias.
func (c *Client) GenerateMessage(ctx context.Context, templateID string, mctx MessageContext) (GeneratedMessage, error) {
	body := map[string]string{
		"candidate_name":    mctx.CandidateName,
		"vacancy_title":     mctx.VacancyTitle,
		"telegram_username": mctx.ContactHandle,
		"contact_handle":    mctx.ContactHandle,
	}
	data, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/templates/%s/generate", templateID), nil, body)
	if err != nil {
		return GeneratedMessage{}, err
	}
	p, err := decodePayload(data)
	if err != nil {
		return GeneratedMessage{}, decodeError(err)
	}
	return generatedFromPayload(p), nil
}
