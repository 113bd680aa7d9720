package api

import "time"

// Role distinguishes the two sides of the platform.
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

// Status is the lifecycle stage of one application. The initial status is
// always New; later stages are set by the owning recruiter.
type Status string

const (
	StatusNew       Status = "New"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Vacancy is an open position published by a recruiter.
type Vacancy struct {
	ID         string
	Title      string
	AIFilters  string
	ShortLink  string
	IsArchived bool
	OwnerID    string
}

// Application is one candidate's résumé submission against a vacancy.
// AIScore is populated asynchronously by the backend and may be nil until
// scoring completes.
type Application struct {
	ID            string
	VacancyID     string
	VacancyTitle  string
	CandidateID   string
	CandidateName string
	Status        Status
	AIScore       *int
	AppliedAt     time.Time
}

// AIVerdict is the backend's assessment of one application. All fields may
// legitimately be empty once computed; absence of the verdict as a whole is
// reported separately by FetchVerdict.
type AIVerdict struct {
	Verdict          string
	Skills           []string
	ParsedResumeText string
	ContactHandle    string
	Score            *int
}

// Template is a reusable, placeholder-bearing message body owned by a
// recruiter.
type Template struct {
	ID      string
	OwnerID string
	Title   string
	Body    string
}

// GeneratedMessage is the ephemeral output of message generation: final
// text plus the externally-opened deep link, both built by the backend.
type GeneratedMessage struct {
	Text     string
	DeepLink string
}

// AuthResult is the normalized outcome of a login or signup call.
// RoleExplicit reports whether the backend response itself identified the
// role (via which id field it carried); when false, callers fall back to
// the role they selected before the call.
type AuthResult struct {
	ID           string
	Email        string
	Role         Role
	RoleExplicit bool
}

// SignUpRequest carries the credentials plus the role-specific field the
// signup endpoints expect: company name for recruiters, messaging handle
// for candidates.
type SignUpRequest struct {
	Email            string
	Password         string
	CompanyName      string
	TelegramUsername string
}

// SubmissionRequest is one multipart résumé upload.
type SubmissionRequest struct {
	CandidateID string
	VacancyID   string
	FileName    string
	ContentType string
	Data        []byte
}

// MessageContext is the set of fields the generation endpoint substitutes
// into a template body.
type MessageContext struct {
	CandidateName string `json:"candidate_name"`
	ContactHandle string `json:"contact_handle"`
	VacancyTitle  string `json:"vacancy_title"`
}
