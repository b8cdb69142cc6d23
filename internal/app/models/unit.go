package models

// Unit represents a teaching unit within an academic year
type Unit struct {
	ID          int64  `db:"id" json:"id"`
	YearID      int64  `db:"year_id" json:"yearId"`
	LecturerID  *int64 `db:"lecturer_id" json:"lecturerId,omitempty"` // Pointer to handle NULL
	Name        string `db:"name" json:"name"`
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
	Semester    int    `db:"semester" json:"semester"`
	CreditHours int    `db:"credit_hours" json:"creditHours"`
	Year        *Year  `json:"year,omitempty"` // Relation, no db tag
}
