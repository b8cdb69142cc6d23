package drafts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
)

// validDraft returns a draft that passes every form rule.
func validDraft() *Draft {
	d := New()
	d.SetTitle("Upper Limb Osteology")
	d.SetContent("The humerus articulates with the scapula at the glenohumeral joint.")
	d.SetExcerpt("Bones of the arm and forearm.")
	d.SetYear(1)
	d.SetUnit(3)
	return d
}

func TestNewDraftDefaults(t *testing.T) {
	d := New()
	assert.True(t, d.IsNew())
	assert.Equal(t, models.DefaultDifficulty, d.Difficulty)
	assert.Equal(t, 1, d.EstimatedReadTime)
}

func TestSetTitleDerivesSlug(t *testing.T) {
	d := New()
	d.SetTitle("Intro to Anatomy!! 101")
	assert.Equal(t, "intro-to-anatomy-101", d.Slug)

	d.SetTitle("")
	assert.Equal(t, "", d.Slug)
}

func TestManualSlugLastsUntilNextTitleEdit(t *testing.T) {
	d := New()
	d.SetTitle("Upper Limb Osteology")
	d.SetSlug("custom-slug")
	assert.Equal(t, "custom-slug", d.Slug)

	// Editing the title again rederives the slug over the manual value.
	d.SetTitle("Upper Limb Osteology Part 2")
	assert.Equal(t, "upper-limb-osteology-part-2", d.Slug)
}

func TestSetContentDerivesReadTime(t *testing.T) {
	d := New()
	d.SetContent(strings.Repeat("word ", 450))
	assert.Equal(t, 3, d.EstimatedReadTime)

	d.SetContent("short")
	assert.Equal(t, 1, d.EstimatedReadTime)
}

func TestSetYearClearsUnit(t *testing.T) {
	d := New()
	d.SetYear(1)
	d.SetUnit(3)
	require.Equal(t, int64(3), d.UnitID)

	d.SetYear(2)
	assert.Equal(t, int64(2), d.YearID)
	assert.Zero(t, d.UnitID, "changing year must clear the unit selection")
}

func TestValidateOrder(t *testing.T) {
	// Each step fixes the previous failure; the reported rule advances in
	// form order.
	d := New()

	err := d.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Title is required")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	d.SetTitle("Upper Limb Osteology")
	assert.EqualError(t, d.Validate(), "Content is required")

	d.SetContent("The humerus is the longest bone of the upper limb.")
	assert.EqualError(t, d.Validate(), "Excerpt is required")

	d.SetExcerpt("Bones of the arm.")
	assert.EqualError(t, d.Validate(), "Please select a unit")

	d.SetUnit(3)
	d.YearID = 0 // unit picked but year cleared
	assert.EqualError(t, d.Validate(), "Please select a year")

	d.SetYear(1)
	d.SetUnit(3)
	assert.NoError(t, d.Validate())
}

func TestValidateRejectsWhitespaceOnlyText(t *testing.T) {
	d := validDraft()
	d.Title = "   "
	assert.EqualError(t, d.Validate(), "Title is required")
}

func TestValidateReportsField(t *testing.T) {
	d := validDraft()
	d.Excerpt = ""
	var fieldErr *FieldError
	require.ErrorAs(t, d.Validate(), &fieldErr)
	assert.Equal(t, "excerpt", fieldErr.Field)
}

func TestFinalize(t *testing.T) {
	t.Run("builds the note to persist", func(t *testing.T) {
		d := validDraft()
		d.SetLecturer(2)
		d.SetDifficulty(models.DifficultyAdvanced)
		d.SetPublished(true)

		note, err := d.Finalize()
		require.NoError(t, err)
		assert.Equal(t, "Upper Limb Osteology", note.Title)
		assert.Equal(t, "upper-limb-osteology", note.Slug)
		assert.Equal(t, int64(1), note.YearID)
		assert.Equal(t, int64(3), note.UnitID)
		require.NotNil(t, note.LecturerID)
		assert.Equal(t, int64(2), *note.LecturerID)
		assert.Equal(t, models.DifficultyAdvanced, note.Difficulty)
		assert.True(t, note.IsPublished)
	})

	t.Run("fails on an invalid draft", func(t *testing.T) {
		d := New()
		_, err := d.Finalize()
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("trims text fields", func(t *testing.T) {
		d := validDraft()
		d.Title = "  Upper Limb Osteology  "
		d.Excerpt = " Bones of the arm. "
		d.Content = " The humerus. "

		note, err := d.Finalize()
		require.NoError(t, err)
		assert.Equal(t, "Upper Limb Osteology", note.Title)
		assert.Equal(t, "Bones of the arm.", note.Excerpt)
		assert.Equal(t, "The humerus.", note.Content)
	})

	t.Run("empty slug falls back to the title", func(t *testing.T) {
		d := validDraft()
		d.Slug = "  "
		note, err := d.Finalize()
		require.NoError(t, err)
		assert.Equal(t, "upper-limb-osteology", note.Slug)
	})

	t.Run("manual slug is kept", func(t *testing.T) {
		d := validDraft()
		d.SetSlug("custom-slug")
		note, err := d.Finalize()
		require.NoError(t, err)
		assert.Equal(t, "custom-slug", note.Slug)
	})

	t.Run("missing read time is derived from content", func(t *testing.T) {
		d := validDraft()
		d.Content = strings.Repeat("word ", 250)
		d.EstimatedReadTime = 0
		note, err := d.Finalize()
		require.NoError(t, err)
		assert.Equal(t, 2, note.EstimatedReadTime)
	})

	t.Run("no lecturer stays null", func(t *testing.T) {
		d := validDraft()
		note, err := d.Finalize()
		require.NoError(t, err)
		assert.Nil(t, note.LecturerID)
	})

	t.Run("unknown difficulty falls back to default", func(t *testing.T) {
		d := validDraft()
		d.Difficulty = ""
		note, err := d.Finalize()
		require.NoError(t, err)
		assert.Equal(t, models.DefaultDifficulty, note.Difficulty)
	})
}

func TestFromNote(t *testing.T) {
	lecturer := int64(2)
	n := models.Note{
		ID: 15, Slug: "cardiac-cycle", Title: "The Cardiac Cycle",
		Excerpt: "One heartbeat.", Content: "Systole and diastole.",
		YearID: 1, UnitID: 2, LecturerID: &lecturer,
		Difficulty: models.DifficultyIntermediate, EstimatedReadTime: 4,
		IsPublished: true, IsFeatured: true,
	}

	d := FromNote(n)
	assert.False(t, d.IsNew())
	assert.Equal(t, int64(15), d.NoteID)
	assert.Equal(t, int64(2), d.LecturerID)
	assert.True(t, d.IsPublished)

	// Editing and finalizing keeps the identity.
	d.SetExcerpt("Pressure changes in one heartbeat.")
	note, err := d.Finalize()
	require.NoError(t, err)
	assert.Equal(t, int64(15), note.ID)
	assert.Equal(t, "Pressure changes in one heartbeat.", note.Excerpt)
}

func TestApply(t *testing.T) {
	t.Run("routes edits through setters", func(t *testing.T) {
		d := New()
		require.NoError(t, d.Apply(FieldUpdate{Field: FieldTitle, Text: "Renal Physiology"}))
		assert.Equal(t, "renal-physiology", d.Slug)

		require.NoError(t, d.Apply(FieldUpdate{Field: FieldYear, ID: 2}))
		require.NoError(t, d.Apply(FieldUpdate{Field: FieldUnit, ID: 5}))
		require.NoError(t, d.Apply(FieldUpdate{Field: FieldYear, ID: 1}))
		assert.Zero(t, d.UnitID, "year edit must clear the unit")

		require.NoError(t, d.Apply(FieldUpdate{Field: FieldContent, Text: strings.Repeat("word ", 201)}))
		assert.Equal(t, 2, d.EstimatedReadTime)

		require.NoError(t, d.Apply(FieldUpdate{Field: FieldDifficulty, Text: "ADVANCED"}))
		assert.Equal(t, models.DifficultyAdvanced, d.Difficulty)

		require.NoError(t, d.Apply(FieldUpdate{Field: FieldPublished, Flag: true}))
		assert.True(t, d.IsPublished)

		require.NoError(t, d.Apply(FieldUpdate{Field: FieldLecturer, ID: 0}))
		assert.Zero(t, d.LecturerID)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		d := New()
		err := d.Apply(FieldUpdate{Field: "color", Text: "blue"})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects unknown difficulty levels", func(t *testing.T) {
		d := New()
		err := d.Apply(FieldUpdate{Field: FieldDifficulty, Text: "IMPOSSIBLE"})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}
