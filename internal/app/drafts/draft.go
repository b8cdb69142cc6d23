// Package drafts models the note editor form. A Draft carries the working
// state of a note being written, derives slug and read time as fields change,
// and turns into a models.Note once validation passes. The same rules back the
// create, update and derive endpoints, so no client re-implements them.
package drafts

import (
	"fmt"
	"strings"

	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	"github.com/notehive/notehive-server/internal/pkg/textutil"
)

// Draft is the editable form state of one note. NoteID is zero for a note
// that does not exist yet; LecturerID zero means no lecturer credited.
type Draft struct {
	NoteID            int64
	Title             string
	Slug              string
	Excerpt           string
	Content           string
	YearID            int64
	UnitID            int64
	LecturerID        int64
	Difficulty        models.DifficultyLevel
	EstimatedReadTime int
	IsPublished       bool
	IsFeatured        bool
}

// New returns an empty draft with form defaults.
func New() *Draft {
	return &Draft{
		Difficulty:        models.DefaultDifficulty,
		EstimatedReadTime: textutil.EstimateReadTime(""),
	}
}

// FromNote opens an existing note for editing.
func FromNote(n models.Note) *Draft {
	d := &Draft{
		NoteID:            n.ID,
		Title:             n.Title,
		Slug:              n.Slug,
		Excerpt:           n.Excerpt,
		Content:           n.Content,
		YearID:            n.YearID,
		UnitID:            n.UnitID,
		Difficulty:        n.Difficulty,
		EstimatedReadTime: n.EstimatedReadTime,
		IsPublished:       n.IsPublished,
		IsFeatured:        n.IsFeatured,
	}
	if n.LecturerID != nil {
		d.LecturerID = *n.LecturerID
	}
	return d
}

// IsNew reports whether the draft targets a note that does not exist yet.
func (d *Draft) IsNew() bool {
	return d.NoteID == 0
}

// SetTitle updates the title and rederives the slug from it. This happens on
// every title edit, so a manually entered slug survives only until the next
// title change.
func (d *Draft) SetTitle(title string) {
	d.Title = title
	d.Slug = textutil.Slugify(title)
}

// SetSlug records a manual slug override verbatim.
func (d *Draft) SetSlug(slug string) {
	d.Slug = slug
}

// SetExcerpt updates the listing excerpt.
func (d *Draft) SetExcerpt(excerpt string) {
	d.Excerpt = excerpt
}

// SetContent updates the body and rederives the estimated read time.
func (d *Draft) SetContent(content string) {
	d.Content = content
	d.EstimatedReadTime = textutil.EstimateReadTime(content)
}

// SetYear selects the academic year and clears the unit, since unit choices
// are narrowed by year and the previous pick may no longer be offered.
func (d *Draft) SetYear(yearID int64) {
	d.YearID = yearID
	d.UnitID = 0
}

// SetUnit selects the teaching unit.
func (d *Draft) SetUnit(unitID int64) {
	d.UnitID = unitID
}

// SetLecturer credits a lecturer; zero clears the credit.
func (d *Draft) SetLecturer(lecturerID int64) {
	d.LecturerID = lecturerID
}

// SetDifficulty sets the difficulty level.
func (d *Draft) SetDifficulty(level models.DifficultyLevel) {
	d.Difficulty = level
}

// SetPublished sets the publication flag.
func (d *Draft) SetPublished(published bool) {
	d.IsPublished = published
}

// SetFeatured sets the featured rail flag.
func (d *Draft) SetFeatured(featured bool) {
	d.IsFeatured = featured
}

// FieldError reports the first form rule a draft breaks. It unwraps to
// apperrors.ErrValidationFailed so the API layer maps it to a 400 while
// keeping the message the editor form would show.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// Validate checks the draft the way the editor form does: one rule at a time,
// in a fixed order, stopping at the first failure.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &FieldError{Field: "title", Message: "Title is required"}
	}
	if strings.TrimSpace(d.Content) == "" {
		return &FieldError{Field: "content", Message: "Content is required"}
	}
	if strings.TrimSpace(d.Excerpt) == "" {
		return &FieldError{Field: "excerpt", Message: "Excerpt is required"}
	}
	if d.UnitID == 0 {
		return &FieldError{Field: "unitId", Message: "Please select a unit"}
	}
	if d.YearID == 0 {
		return &FieldError{Field: "yearId", Message: "Please select a year"}
	}
	return nil
}

// Finalize validates the draft and assembles the note to persist. Text fields
// are trimmed, an empty slug falls back to one derived from the title, a
// missing read time is derived from the content, and a missing difficulty
// falls back to the default level.
func (d *Draft) Finalize() (models.Note, error) {
	if err := d.Validate(); err != nil {
		return models.Note{}, err
	}

	slug := strings.TrimSpace(d.Slug)
	if slug == "" {
		slug = textutil.Slugify(d.Title)
	}

	readTime := d.EstimatedReadTime
	if readTime < 1 {
		readTime = textutil.EstimateReadTime(d.Content)
	}

	difficulty := d.Difficulty
	if !difficulty.Valid() {
		difficulty = models.DefaultDifficulty
	}

	note := models.Note{
		ID:                d.NoteID,
		Slug:              slug,
		Title:             strings.TrimSpace(d.Title),
		Excerpt:           strings.TrimSpace(d.Excerpt),
		Content:           strings.TrimSpace(d.Content),
		YearID:            d.YearID,
		UnitID:            d.UnitID,
		Difficulty:        difficulty,
		EstimatedReadTime: readTime,
		IsPublished:       d.IsPublished,
		IsFeatured:        d.IsFeatured,
	}
	if d.LecturerID != 0 {
		id := d.LecturerID
		note.LecturerID = &id
	}
	return note, nil
}

// Field names one editable draft field.
type Field string

const (
	FieldTitle      Field = "title"
	FieldSlug       Field = "slug"
	FieldExcerpt    Field = "excerpt"
	FieldContent    Field = "content"
	FieldYear       Field = "year"
	FieldUnit       Field = "unit"
	FieldLecturer   Field = "lecturer"
	FieldDifficulty Field = "difficulty"
	FieldPublished  Field = "published"
	FieldFeatured   Field = "featured"
)

// FieldUpdate is one typed form edit. Text carries text fields and the
// difficulty level, ID carries catalogue references, Flag carries toggles.
type FieldUpdate struct {
	Field Field
	Text  string
	ID    int64
	Flag  bool
}

// Apply routes one edit to its setter so the field's derivation rules run.
func (d *Draft) Apply(u FieldUpdate) error {
	switch u.Field {
	case FieldTitle:
		d.SetTitle(u.Text)
	case FieldSlug:
		d.SetSlug(u.Text)
	case FieldExcerpt:
		d.SetExcerpt(u.Text)
	case FieldContent:
		d.SetContent(u.Text)
	case FieldYear:
		d.SetYear(u.ID)
	case FieldUnit:
		d.SetUnit(u.ID)
	case FieldLecturer:
		d.SetLecturer(u.ID)
	case FieldDifficulty:
		level := models.DifficultyLevel(u.Text)
		if !level.Valid() {
			return apperrors.NewBadRequestError(fmt.Sprintf("unknown difficulty level %q", u.Text))
		}
		d.SetDifficulty(level)
	case FieldPublished:
		d.SetPublished(u.Flag)
	case FieldFeatured:
		d.SetFeatured(u.Flag)
	default:
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown draft field %q", u.Field))
	}
	return nil
}
