package models

// Year represents an academic year of the programme
type Year struct {
	ID          int64  `db:"id" json:"id"`
	YearNumber  int    `db:"year_number" json:"yearNumber"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}
