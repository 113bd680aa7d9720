package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestCreateTemplateSendsBodyText(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody = map[string]string{}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"id":"t1","recruiter_id":"r1","title":"Intro","body_text":"Hi {name}"}`))
	}))
	tpl, err := client.CreateTemplate(context.Background(), "r1", "Intro", "Hi {name}")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotBody["body_text"] != "Hi {name}" {
		t.Fatalf("expected body_text field, got %v", gotBody)
	}
	if tpl.ID != "t1" || tpl.Body != "Hi {name}" {
		t.Fatalf("unexpected template: %+v", tpl)
	}
}

func TestGenerateMessageRoundTrip(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/templates/t1/generate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotBody = map[string]string{}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"text":"Hi Dana","deep_link":"https://t.me/dana"}`))
	}))
	result, err := client.GenerateMessage(context.Background(), "t1", MessageContext{
		CandidateName: "Dana", ContactHandle: "@dana", VacancyTitle: "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gotBody["candidate_name"] != "Dana" || gotBody["vacancy_title"] != "Backend Engineer" {
		t.Fatalf("context lost in transit: %v", gotBody)
	}
	if gotBody["telegram_username"] != "@dana" {
		t.Fatalf("handle must travel as telegram_username, got %v", gotBody)
	}
	if result.Text != "Hi Dana" || result.DeepLink != "https://t.me/dana" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestListTemplatesAliasFields(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("recruiter_id"); got != "r1" {
			t.Errorf("recruiter_id = %q", got)
		}
		_, _ = w.Write([]byte(`[{"templateId":"t1","name":"Intro","text":"Hello {name}"}]`))
	}))
	templates, err := client.ListTemplates(context.Background(), "r1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != "t1" || templates[0].Title != "Intro" || templates[0].Body != "Hello {name}" {
		t.Fatalf("alias normalization failed: %+v", templates)
	}
}
