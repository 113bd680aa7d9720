package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// The backend's field naming has drifted across revisions: the same logical
// field shows up as snake_case, camelCase or Capitalized depending on the
// deployment. Everything the client receives passes through this adapter so
// the rest of the codebase only ever sees the canonical structs in types.go.

// payload is one decoded JSON object with all keys folded to lower snake
// case.
type payload map[string]json.RawMessage

func decodePayload(data []byte) (payload, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	p := make(payload, len(raw))
	for key, value := range raw {
		p[foldKey(key)] = value
	}
	return p, nil
}

// decodeObjects decodes a JSON array of objects, flattening one level of
// nesting: some list endpoints return pages as an array of arrays.
func decodeObjects(data []byte) ([]payload, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var out []payload
	for _, el := range raw {
		trimmed := strings.TrimSpace(string(el))
		if strings.HasPrefix(trimmed, "[") {
			nested, err := decodeObjects(el)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		p, err := decodePayload(el)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// foldKey maps RecruiterID, recruiterId and recruiter_id to the same key.
func foldKey(key string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			prevLower = false
			continue
		}
		if r == '_' || r == '-' {
			b.WriteByte('_')
			prevLower = false
			continue
		}
		b.WriteRune(r)
		prevLower = r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
	}
	return b.String()
}

func (p payload) has(names ...string) bool {
	for _, name := range names {
		if _, ok := p[name]; ok {
			return true
		}
	}
	return false
}

// str returns the first present field among names, rendering numbers as
// their decimal text so numeric and string ids normalize identically.
func (p payload) str(names ...string) string {
	for _, name := range names {
		raw, ok := p[name]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

func (p payload) boolean(names ...string) bool {
	for _, name := range names {
		raw, ok := p[name]
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return b
		}
	}
	return false
}

func (p payload) intPtr(names ...string) *int {
	for _, name := range names {
		raw, ok := p[name]
		if !ok {
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			v := int(n)
			return &v
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return &v
			}
		}
	}
	return nil
}

// strings accepts both a JSON array and the comma-separated string some
// backend revisions send for list fields.
func (p payload) strings(names ...string) []string {
	for _, name := range names {
		raw, ok := p[name]
		if !ok {
			continue
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			return list
		}
		var joined string
		if err := json.Unmarshal(raw, &joined); err == nil {
			parts := strings.Split(joined, ",")
			out := make([]string, 0, len(parts))
			for _, part := range parts {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			return out
		}
	}
	return nil
}

func (p payload) timestamp(names ...string) time.Time {
	value := p.str(names...)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func vacancyFromPayload(p payload) Vacancy {
	return Vacancy{
		ID:         p.str("id", "vacancy_id"),
		Title:      p.str("title"),
		AIFilters:  p.str("ai_filters", "filters"),
		ShortLink:  p.str("short_link", "link"),
		IsArchived: p.boolean("is_archived", "archived"),
		OwnerID:    p.str("recruiter_id", "owner_id"),
	}
}

func applicationFromPayload(p payload) Application {
	app := Application{
		ID:            p.str("id", "application_id"),
		VacancyID:     p.str("vacancy_id"),
		VacancyTitle:  p.str("vacancy_title"),
		CandidateID:   p.str("candidate_id"),
		CandidateName: p.str("candidate_name", "name"),
		Status:        Status(p.str("status")),
		AIScore:       p.intPtr("ai_score", "score"),
		AppliedAt:     p.timestamp("applied_at", "created_at"),
	}
	if app.Status == "" {
		app.Status = StatusNew
	}
	return app
}

// verdictFromPayload reports computed=false when the payload carries none of
// the verdict fields at all; a present-but-empty verdict is a legitimate
// computed result and must stay distinguishable from a pending one.
func verdictFromPayload(p payload) (AIVerdict, bool) {
	computed := p.has("verdict", "ai_verdict", "parsed_resume_text", "parsed_text",
		"analysis", "skills", "skills_detected", "ai_score", "score")
	verdict := AIVerdict{
		Verdict:          p.str("verdict", "ai_verdict"),
		Skills:           p.strings("skills", "skills_detected", "key_skills"),
		ParsedResumeText: p.str("parsed_resume_text", "parsed_text", "analysis", "resume_text"),
		ContactHandle:    p.str("contact_handle", "telegram_username"),
		Score:            p.intPtr("ai_score", "score"),
	}
	return verdict, computed
}

func templateFromPayload(p payload) Template {
	return Template{
		ID:      p.str("id", "template_id"),
		OwnerID: p.str("recruiter_id", "owner_id"),
		Title:   p.str("title", "name"),
		Body:    p.str("body_text", "body", "text"),
	}
}

func generatedFromPayload(p payload) GeneratedMessage {
	return GeneratedMessage{
		Text:     p.str("text", "message", "generated_text"),
		DeepLink: p.str("deep_link", "telegram_link", "link", "url"),
	}
}

// authFromPayload resolves the identity-bearing id field, whose name varies
// by role: recruiter_id marks a recruiter, candidate_id a candidate, and a
// bare id leaves the role to the caller's selection.
func authFromPayload(p payload, email string) AuthResult {
	result := AuthResult{Email: p.str("email")}
	if result.Email == "" {
		result.Email = email
	}
	switch {
	case p.has("recruiter_id"):
		result.ID = p.str("recruiter_id")
		result.Role = RoleRecruiter
		result.RoleExplicit = true
	case p.has("candidate_id"):
		result.ID = p.str("candidate_id")
		result.Role = RoleCandidate
		result.RoleExplicit = true
	default:
		result.ID = p.str("id", "user_id")
		if role := Role(strings.ToLower(p.str("role"))); role == RoleRecruiter || role == RoleCandidate {
			result.Role = role
			result.RoleExplicit = true
		}
	}
	return result
}
