package models

import "time"

// Note is a study note as stored in the 'notes' table. The slug is derived
// from the title and is the public identifier used in student-facing URLs.
type Note struct {
	ID                int64           `db:"id" json:"id"`
	Slug              string          `db:"slug" json:"slug"`
	Title             string          `db:"title" json:"title"`
	Excerpt           string          `db:"excerpt" json:"excerpt"`
	Content           string          `db:"content" json:"content"`
	YearID            int64           `db:"year_id" json:"yearId"`
	UnitID            int64           `db:"unit_id" json:"unitId"`
	LecturerID        *int64          `db:"lecturer_id" json:"lecturerId,omitempty"` // Pointer to handle NULL
	Difficulty        DifficultyLevel `db:"difficulty_level" json:"difficultyLevel"`
	EstimatedReadTime int             `db:"estimated_read_time" json:"estimatedReadTime"` // Minutes, always >= 1
	ViewCount         int64           `db:"view_count" json:"viewCount"`
	DownloadCount     int64           `db:"download_count" json:"downloadCount"`
	IsPublished       bool            `db:"is_published" json:"isPublished"`
	IsFeatured        bool            `db:"is_featured" json:"isFeatured"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
}
