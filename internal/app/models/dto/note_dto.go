package dto

// --- Request DTOs ---

// NoteFilterRequest represents the filter parameters of public note listings.
// Zero values mean "no constraint"; the search term matches title or excerpt.
type NoteFilterRequest struct {
	Query      string `form:"q" example:"anatomy"`
	YearID     int64  `form:"yearId" example:"1"`
	UnitID     int64  `form:"unitId" example:"3"`
	LecturerID int64  `form:"lecturerId" example:"2"`
	Difficulty string `form:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED" example:"INTERMEDIATE"`
	Featured   bool   `form:"featured"`
	Sort       string `form:"sort" validate:"omitempty,oneof=newest oldest popular title" example:"newest"`
}

// AdminNoteFilterRequest extends the public filters with a publication status
// scope. Status defaults to "all" so editors see drafts alongside published
// notes.
type AdminNoteFilterRequest struct {
	Query      string `form:"q"`
	YearID     int64  `form:"yearId"`
	UnitID     int64  `form:"unitId"`
	LecturerID int64  `form:"lecturerId"`
	Difficulty string `form:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Featured   bool   `form:"featured"`
	Status     string `form:"status" validate:"omitempty,oneof=all published draft" example:"draft"`
	Sort       string `form:"sort" validate:"omitempty,oneof=newest oldest popular title"`
}

// SaveNoteRequest carries the full note payload for create and update. The
// reference and text fields are deliberately unvalidated here: the draft
// pipeline checks them in a fixed order so the API reports the same message
// the editor form would.
type SaveNoteRequest struct {
	Title             string `json:"title" example:"Upper Limb Osteology"`
	Slug              string `json:"slug" example:"upper-limb-osteology"` // Empty means derive from title
	Excerpt           string `json:"excerpt" example:"Bones of the arm and forearm at a glance."`
	Content           string `json:"content" example:"The humerus is the longest bone of the upper limb..."`
	YearID            int64  `json:"yearId" example:"1"`
	UnitID            int64  `json:"unitId" example:"3"`
	LecturerID        *int64 `json:"lecturerId,omitempty" validate:"omitempty,gt=0" example:"2"`
	Difficulty        string `json:"difficultyLevel" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED" example:"INTERMEDIATE"`
	EstimatedReadTime int    `json:"estimatedReadTime" validate:"omitempty,gte=1" example:"6"` // Empty means derive from content
	IsPublished       bool   `json:"isPublished" example:"false"`
	IsFeatured        bool   `json:"isFeatured" example:"false"`
}

// PublishRequest toggles the publication state of a note
type PublishRequest struct {
	IsPublished *bool `json:"isPublished" validate:"required" example:"true"`
}

// --- Response DTOs ---

// NoteSummary represents a note card in listings, with catalogue references
// resolved to display names. Names stay empty when the referenced entry is
// missing.
type NoteSummary struct {
	ID                int64  `json:"id" example:"15"`
	Slug              string `json:"slug" example:"upper-limb-osteology"`
	Title             string `json:"title" example:"Upper Limb Osteology"`
	Excerpt           string `json:"excerpt" example:"Bones of the arm and forearm at a glance."`
	YearID            int64  `json:"yearId" example:"1"`
	YearName          string `json:"yearName" example:"Year 1"`
	UnitID            int64  `json:"unitId" example:"3"`
	UnitName          string `json:"unitName" example:"Anatomy"`
	UnitCode          string `json:"unitCode" example:"ANA101"`
	LecturerID        *int64 `json:"lecturerId,omitempty" example:"2"`
	LecturerName      string `json:"lecturerName,omitempty" example:"Dr. A. Mwangi"`
	Difficulty        string `json:"difficultyLevel" example:"INTERMEDIATE"`
	EstimatedReadTime int    `json:"estimatedReadTime" example:"6"`
	ViewCount         int64  `json:"viewCount" example:"240"`
	IsFeatured        bool   `json:"isFeatured" example:"false"`
	CreatedAt         string `json:"createdAt" example:"2025-01-15T10:00:00Z"`
	UpdatedAt         string `json:"updatedAt" example:"2025-01-16T11:30:00Z"`
}

// NoteDetail represents the full reading view of a note
type NoteDetail struct {
	NoteSummary
	Content       string `json:"content"`
	LecturerTitle string `json:"lecturerTitle,omitempty" example:"Senior Lecturer"`
	DownloadCount int64  `json:"downloadCount" example:"31"`
}

// AdminNoteResponse is the editor-facing view of a note, including the
// publication state hidden from students.
type AdminNoteResponse struct {
	NoteDetail
	IsPublished bool `json:"isPublished" example:"false"`
}

// NoteListResponse represents one page of a note listing
type NoteListResponse struct {
	Notes      []NoteSummary  `json:"notes"`
	Pagination PaginationInfo `json:"pagination"`
}

// AdminNoteListResponse represents one page of the editor listing
type AdminNoteListResponse struct {
	Notes      []AdminNoteResponse `json:"notes"`
	Pagination PaginationInfo      `json:"pagination"`
}
