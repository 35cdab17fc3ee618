package domain

import "time"

type Project struct {
	ID        string
	Title     string
	OwnerID   string
	CreatedAt time.Time
}

type ExpertiseLevel string

const (
	ExpertiseEntry  ExpertiseLevel = "ENTRY"
	ExpertiseJunior ExpertiseLevel = "JUNIOR"
	ExpertiseMiddle ExpertiseLevel = "MIDDLE"
	ExpertiseSenior ExpertiseLevel = "SENIOR"
	ExpertiseLead   ExpertiseLevel = "LEAD"
)

// Valid reports whether l is one of the known levels.
func (l ExpertiseLevel) Valid() bool {
	switch l {
	case ExpertiseEntry, ExpertiseJunior, ExpertiseMiddle, ExpertiseSenior, ExpertiseLead:
		return true
	}
	return false
}

// ProjectRole is an open position within a project. The owner fields are
// denormalised from the parent project so authorization checks need a
// single lookup.
type ProjectRole struct {
	ID             string
	ProjectID      string
	ProjectTitle   string
	OwnerID        string
	OwnerEmail     string
	RoleName       string
	ExpertiseLevel ExpertiseLevel
	Technologies   []string
	CreatedAt      time.Time
}
