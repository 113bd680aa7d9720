package submit

import (
	"context"
	"testing"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
)

type fakeUploader struct {
	got    api.SubmissionRequest
	id     string
	err    error
	called bool
}

func (f *fakeUploader) SubmitApplication(_ context.Context, req api.SubmissionRequest) (string, error) {
	f.called = true
	f.got = req
	return f.id, f.err
}

func TestSubmitRejectsEmptyFile(t *testing.T) {
	uploader := &fakeUploader{}
	pipeline := New(uploader, nil)
	_, err := pipeline.Submit(context.Background(), "c1", "v1", Resume{
		FileName: "cv.pdf", ContentType: "application/pdf",
	})
	if !api.IsKind(err, api.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if uploader.called {
		t.Fatalf("empty file must not reach the backend")
	}
}

func TestSubmitRejectsNonPDF(t *testing.T) {
	uploader := &fakeUploader{}
	pipeline := New(uploader, nil)
	_, err := pipeline.Submit(context.Background(), "c1", "v1", Resume{
		FileName: "cv.docx", ContentType: "application/msword", Data: []byte("doc"),
	})
	if !api.IsKind(err, api.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if uploader.called {
		t.Fatalf("wrong media type must not reach the backend")
	}
}

func TestSubmitAcceptsPDFWithParameters(t *testing.T) {
	uploader := &fakeUploader{id: "a1"}
	pipeline := New(uploader, nil)
	id, err := pipeline.Submit(context.Background(), "c1", "v1", Resume{
		FileName: "cv.pdf", ContentType: "application/pdf; charset=binary", Data: []byte("%PDF"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != "a1" {
		t.Fatalf("expected accepted id, got %q", id)
	}
	if uploader.got.CandidateID != "c1" || uploader.got.VacancyID != "v1" {
		t.Fatalf("request fields lost: %+v", uploader.got)
	}
}

func TestSubmitDefaultsFileName(t *testing.T) {
	uploader := &fakeUploader{id: "a1"}
	pipeline := New(uploader, nil)
	if _, err := pipeline.Submit(context.Background(), "c1", "v1", Resume{
		ContentType: "application/pdf", Data: []byte("%PDF"),
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if uploader.got.FileName != "resume.pdf" {
		t.Fatalf("expected default file name, got %q", uploader.got.FileName)
	}
}

func TestSubmitPassesBackendRejectionThrough(t *testing.T) {
	uploader := &fakeUploader{err: &api.Error{Kind: api.KindNotFound, Message: "vacancy archived"}}
	pipeline := New(uploader, nil)
	_, err := pipeline.Submit(context.Background(), "c1", "v1", Resume{
		FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF"),
	})
	if !api.IsKind(err, api.KindNotFound) {
		t.Fatalf("expected backend error unchanged, got %v", err)
	}
}
