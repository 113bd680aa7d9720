package store

// Key constructors keep the per-collection naming scheme in one place.

func RecruiterVacanciesKey(recruiterID string) string {
	return "vacancies:recruiter:" + recruiterID
}

func ActiveVacanciesKey() string {
	return "vacancies:active"
}

func VacancyApplicationsKey(vacancyID string) string {
	return "applications:vacancy:" + vacancyID
}

func MyApplicationsKey(candidateID string) string {
	return "applications:candidate:" + candidateID
}

func TemplatesKey(recruiterID string) string {
	return "templates:" + recruiterID
}
