package tui

import "github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"

// View represents which screen the client is on. View selection is a total
// function of (identity, role, selected entities); there is no reachable
// combination outside this enum.
type View int

const (
	ViewAuth View = iota
	ViewRecruiterDashboard
	ViewCreateJob
	ViewJobDetail
	ViewCandidateProfile
	ViewTemplates
	ViewActiveVacancies
	ViewUpload
	ViewMyApplications
	ViewApplicationDetail
)

func (v View) String() string {
	switch v {
	case ViewAuth:
		return "Sign In"
	case ViewRecruiterDashboard:
		return "My Vacancies"
	case ViewCreateJob:
		return "New Vacancy"
	case ViewJobDetail:
		return "Applicants"
	case ViewCandidateProfile:
		return "AI Verdict"
	case ViewTemplates:
		return "Message Templates"
	case ViewActiveVacancies:
		return "Open Vacancies"
	case ViewUpload:
		return "Apply"
	case ViewMyApplications:
		return "My Applications"
	case ViewApplicationDetail:
		return "Application"
	}
	return "Unknown"
}

// requiredRole returns the role a view is reserved for; an empty role means
// the view is reachable by anyone (only Auth qualifies).
func (v View) requiredRole() api.Role {
	switch v {
	case ViewRecruiterDashboard, ViewCreateJob, ViewJobDetail, ViewCandidateProfile, ViewTemplates:
		return api.RoleRecruiter
	case ViewActiveVacancies, ViewUpload, ViewMyApplications, ViewApplicationDetail:
		return api.RoleCandidate
	}
	return ""
}

// defaultView is where each role lands after authentication or after a
// disallowed navigation.
func defaultView(role api.Role) View {
	if role == api.RoleRecruiter {
		return ViewRecruiterDashboard
	}
	return ViewActiveVacancies
}

// parent is where Esc navigates from each view.
func (v View) parent(role api.Role) View {
	switch v {
	case ViewCreateJob, ViewJobDetail:
		return ViewRecruiterDashboard
	case ViewCandidateProfile:
		return ViewJobDetail
	case ViewTemplates:
		return ViewRecruiterDashboard
	case ViewUpload:
		return ViewActiveVacancies
	case ViewApplicationDetail:
		return ViewMyApplications
	case ViewMyApplications:
		return ViewActiveVacancies
	}
	return defaultView(role)
}
