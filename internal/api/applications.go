package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

// ListVacancyApplications returns the applications submitted against one
// vacancy, for the owning recruiter's review.
func (c *Client) ListVacancyApplications(ctx context.Context, vacancyID string) ([]Application, error) {
	data, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/vacancies/%s/applications", vacancyID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeApplications(data)
}

// ListMyApplications returns the candidate's own submissions.
func (c *Client) ListMyApplications(ctx context.Context, candidateID string) ([]Application, error) {
	query := url.Values{"candidate_id": {candidateID}}
	data, err := c.doJSON(ctx, http.MethodGet, "/my-applications", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeApplications(data)
}

// SubmitApplication uploads one résumé as a multipart form. The backend
// scores it asynchronously; the returned id only confirms acceptance.
func (c *Client) SubmitApplication(ctx context.Context, req SubmissionRequest) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("candidate_id", req.CandidateID); err != nil {
		return "", &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode form: %v", err), err: err}
	}
	if err := writer.WriteField("vacancy_id", req.VacancyID); err != nil {
		return "", &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode form: %v", err), err: err}
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, req.FileName))
	header.Set("Content-Type", req.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode form: %v", err), err: err}
	}
	if _, err := part.Write(req.Data); err != nil {
		return "", &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode form: %v", err), err: err}
	}
	if err := writer.Close(); err != nil {
		return "", &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode form: %v", err), err: err}
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/applications", nil, &buf)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	data, err := c.execute(httpReq)
	if err != nil {
		return "", err
	}
	p, err := decodePayload(data)
	if err != nil {
		return "", decodeError(err)
	}
	return p.str("id", "application_id"), nil
}

// UpdateApplicationStatus requests a status transition. The client sends
// any requested transition; enforcing the lifecycle graph is the backend's
// call.
func (c *Client) UpdateApplicationStatus(ctx context.Context, applicationID string, status Status) error {
	body := map[string]string{"status": string(status)}
	_, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/applications/%s/status", applicationID), nil, body)
	return err
}

// FetchVerdict reads the AI assessment for one application. The second
// return value reports whether the verdict has been computed at all: before
// scoring completes the endpoint answers with an empty or partial payload,
// which is a distinct state from a computed-but-empty verdict.
func (c *Client) FetchVerdict(ctx context.Context, applicationID string) (AIVerdict, bool, error) {
	data, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/applications/%s/ai-data", applicationID), nil, nil)
	if err != nil {
		return AIVerdict{}, false, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return AIVerdict{}, false, nil
	}
	p, err := decodePayload(data)
	if err != nil {
		return AIVerdict{}, false, decodeError(err)
	}
	verdict, computed := verdictFromPayload(p)
	return verdict, computed, nil
}

func decodeApplications(data []byte) ([]Application, error) {
	payloads, err := decodeObjects(data)
	if err != nil {
		return nil, decodeError(err)
	}
	apps := make([]Application, 0, len(payloads))
	for _, p := range payloads {
		apps = append(apps, applicationFromPayload(p))
	}
	return apps, nil
}
