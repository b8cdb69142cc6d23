package dto

// DraftState mirrors the editor form for a note. It is round-tripped through
// the derive endpoint so the form never re-implements slug or read time rules.
type DraftState struct {
	NoteID            int64  `json:"noteId,omitempty" example:"15"` // Zero for a note that does not exist yet
	Title             string `json:"title"`
	Slug              string `json:"slug"`
	Excerpt           string `json:"excerpt"`
	Content           string `json:"content"`
	YearID            int64  `json:"yearId"`
	UnitID            int64  `json:"unitId"`
	LecturerID        int64  `json:"lecturerId,omitempty"` // Zero means no lecturer credited
	Difficulty        string `json:"difficultyLevel" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	EstimatedReadTime int    `json:"estimatedReadTime"`
	IsPublished       bool   `json:"isPublished"`
	IsFeatured        bool   `json:"isFeatured"`
}

// DraftUpdateRequest is a single typed form edit. Exactly one of Text, ID and
// Flag is read, depending on the field.
type DraftUpdateRequest struct {
	Field string  `json:"field" validate:"required,oneof=title slug excerpt content year unit lecturer difficulty published featured" example:"title"`
	Text  *string `json:"text,omitempty" example:"Upper Limb Osteology"`
	ID    *int64  `json:"id,omitempty" example:"3"`
	Flag  *bool   `json:"flag,omitempty" example:"true"`
}

// DeriveDraftRequest applies one edit to a draft and returns the next state
type DeriveDraftRequest struct {
	Draft  DraftState         `json:"draft"`
	Update DraftUpdateRequest `json:"update"`
}

// DeriveDraftResponse carries the draft state after the edit
type DeriveDraftResponse struct {
	Draft DraftState `json:"draft"`
}
