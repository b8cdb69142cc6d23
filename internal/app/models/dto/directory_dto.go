package dto

// YearResponse represents an academic year entry
type YearResponse struct {
	ID          int64  `json:"id" example:"1"`
	YearNumber  int    `json:"yearNumber" example:"1"`
	Name        string `json:"name" example:"Year 1"`
	Description string `json:"description,omitempty"`
	NoteCount   int    `json:"noteCount" example:"12"` // Published notes only
}

// YearDetailResponse represents a year together with its units
type YearDetailResponse struct {
	YearResponse
	Units []UnitResponse `json:"units"`
}

// UnitResponse represents a teaching unit entry
type UnitResponse struct {
	ID           int64  `json:"id" example:"3"`
	YearID       int64  `json:"yearId" example:"1"`
	YearName     string `json:"yearName" example:"Year 1"`
	Name         string `json:"name" example:"Anatomy"`
	Code         string `json:"code" example:"ANA101"`
	Description  string `json:"description,omitempty"`
	Semester     int    `json:"semester" example:"1"`
	CreditHours  int    `json:"creditHours" example:"4"`
	LecturerID   *int64 `json:"lecturerId,omitempty" example:"2"`
	LecturerName string `json:"lecturerName,omitempty" example:"Dr. A. Mwangi"`
	NoteCount    int    `json:"noteCount" example:"5"` // Published notes only
}

// LecturerResponse represents a lecturer entry
type LecturerResponse struct {
	ID             int64  `json:"id" example:"2"`
	Name           string `json:"name" example:"Dr. A. Mwangi"`
	Title          string `json:"title,omitempty" example:"Senior Lecturer"`
	Specialization string `json:"specialization,omitempty"`
	NoteCount      int    `json:"noteCount" example:"8"` // Published notes only
}

// YearListResponse wraps the list of academic years
type YearListResponse struct {
	Years []YearResponse `json:"years"`
}

// UnitListResponse wraps a list of units
type UnitListResponse struct {
	Units []UnitResponse `json:"units"`
}

// LecturerListResponse wraps the list of lecturers
type LecturerListResponse struct {
	Lecturers []LecturerResponse `json:"lecturers"`
}
