// Package resume defines the structured resume model and local storage for
// raw resume text. The JSON field names are the wire format the extraction
// agents are prompted to produce; downstream consumers (matching, rewriting)
// rely on them staying stable.
package resume

// Resume holds the structured fields extracted from raw resume text.
type Resume struct {
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Location       string       `json:"location"`
	Summary        string       `json:"summary"`
	Skills         []string     `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Certifications []string     `json:"certifications"`
	Projects       []string     `json:"projects"`
	ATSKeywords    []string     `json:"ats_keywords"`
}

// Experience is a single employment entry.
type Experience struct {
	JobTitle    string   `json:"job_title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description []string `json:"description"`
}

// Education is a single degree entry.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// IsZero reports whether no field was extracted at all.
// A zero Resume usually means the model returned an empty object.
func (r Resume) IsZero() bool {
	return r.Name == "" && r.Email == "" && r.Phone == "" &&
		r.Location == "" && r.Summary == "" &&
		len(r.Skills) == 0 && len(r.Experience) == 0 && len(r.Education) == 0 &&
		len(r.Certifications) == 0 && len(r.Projects) == 0 && len(r.ATSKeywords) == 0
}
