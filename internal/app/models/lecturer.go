package models

// Lecturer represents a lecturer credited on notes
type Lecturer struct {
	ID             int64  `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Title          string `db:"title" json:"title"`
	Specialization string `db:"specialization" json:"specialization"`
}
