// Package submit orchestrates the résumé-submission pipeline.
package submit

import (
	"context"
	"mime"
	"strings"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/logbook"
)

// Resume is the caller-presented file. The pipeline validates presence and
// the declared media type only, never the document content.
type Resume struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Uploader is the slice of the API client the pipeline needs.
type Uploader interface {
	SubmitApplication(ctx context.Context, req api.SubmissionRequest) (string, error)
}

// Pipeline performs the one-shot multipart upload. The backend scores the
// résumé asynchronously; Submit returns as soon as the submission is
// accepted and never waits for the verdict. A failed attempt is not
// resumable: retry by calling Submit again with a fresh file.
type Pipeline struct {
	client Uploader
	log    *logbook.Logbook
}

// New creates a pipeline over the given uploader.
func New(client Uploader, log *logbook.Logbook) *Pipeline {
	return &Pipeline{client: client, log: log}
}

// Submit uploads one résumé against a vacancy and returns the accepted
// application id.
func (p *Pipeline) Submit(ctx context.Context, candidateID, vacancyID string, resume Resume) (string, error) {
	if len(resume.Data) == 0 {
		return "", &api.Error{Kind: api.KindValidation, Message: "resume file is empty"}
	}
	if !isDocumentType(resume.ContentType) {
		return "", &api.Error{Kind: api.KindValidation, Message: "resume must be a PDF document"}
	}
	if strings.TrimSpace(resume.FileName) == "" {
		resume.FileName = "resume.pdf"
	}

	id, err := p.client.SubmitApplication(ctx, api.SubmissionRequest{
		CandidateID: candidateID,
		VacancyID:   vacancyID,
		FileName:    resume.FileName,
		ContentType: resume.ContentType,
		Data:        resume.Data,
	})
	if err != nil {
		p.log.Warn("submission rejected", "vacancy", vacancyID, "error", err)
		return "", err
	}
	p.log.Info("application submitted", "vacancy", vacancyID, "application", id)
	return id, nil
}

// isDocumentType accepts the PDF media type of the observed contract,
// tolerating parameters like charset.
func isDocumentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/pdf"
}
