package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notehive/notehive-server/internal/app/models"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC)
}

func lecturerID(id int64) *int64 { return &id }

// engineNotes is a small catalogue covering both years, drafts and featured
// entries. Order matches catalogue load order (ascending ID).
func engineNotes() []models.Note {
	return []models.Note{
		{
			ID: 1, Slug: "upper-limb-osteology", Title: "Upper Limb Osteology",
			Excerpt: "Bones of the arm and forearm.", YearID: 1, UnitID: 1,
			LecturerID: lecturerID(1), Difficulty: models.DifficultyBeginner,
			ViewCount: 120, IsPublished: true, IsFeatured: true, CreatedAt: day(4),
		},
		{
			ID: 2, Slug: "cardiac-cycle", Title: "The Cardiac Cycle",
			Excerpt: "Pressure and volume changes through one heartbeat.", YearID: 1, UnitID: 2,
			LecturerID: lecturerID(2), Difficulty: models.DifficultyIntermediate,
			ViewCount: 300, IsPublished: true, CreatedAt: day(2),
		},
		{
			ID: 3, Slug: "renal-physiology-intro", Title: "Renal Physiology Intro",
			Excerpt: "Filtration, reabsorption and secretion.", YearID: 2, UnitID: 3,
			Difficulty: models.DifficultyIntermediate,
			ViewCount:  300, IsPublished: true, CreatedAt: day(3),
		},
		{
			ID: 4, Slug: "autonomic-pharmacology", Title: "Autonomic Pharmacology",
			Excerpt: "Cholinergic and adrenergic drugs.", YearID: 2, UnitID: 4,
			LecturerID: lecturerID(1), Difficulty: models.DifficultyAdvanced,
			ViewCount: 45, IsPublished: false, CreatedAt: day(1),
		},
	}
}

func matchedIDs(notes []models.Note) []int64 {
	ids := make([]int64, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestFilterNotes(t *testing.T) {
	notes := engineNotes()

	t.Run("empty criteria matches everything", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{})
		assert.Equal(t, []int64{1, 2, 3, 4}, matchedIDs(got))
	})

	t.Run("published scope hides drafts", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{Scope: models.ScopePublished})
		assert.Equal(t, []int64{1, 2, 3}, matchedIDs(got))
	})

	t.Run("draft scope shows only drafts", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{Scope: models.ScopeDrafts})
		assert.Equal(t, []int64{4}, matchedIDs(got))
	})

	t.Run("criteria combine with AND", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{
			YearID:     1,
			Difficulty: models.DifficultyIntermediate,
			Scope:      models.ScopePublished,
		})
		assert.Equal(t, []int64{2}, matchedIDs(got))
	})

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{Search: "CARDIAC"})
		assert.Equal(t, []int64{2}, matchedIDs(got))
	})

	t.Run("search matches excerpt too", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{Search: "reabsorption"})
		assert.Equal(t, []int64{3}, matchedIDs(got))
	})

	t.Run("search term is a plain substring", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{Search: "physio"})
		assert.Equal(t, []int64{3}, matchedIDs(got))
	})

	t.Run("empty search matches everything", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{Search: "", Scope: models.ScopePublished})
		assert.Len(t, got, 3)
	})

	t.Run("lecturer filter ignores notes without a lecturer", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{LecturerID: 1})
		assert.Equal(t, []int64{1, 4}, matchedIDs(got))
	})

	t.Run("featured only", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{FeaturedOnly: true})
		assert.Equal(t, []int64{1}, matchedIDs(got))
	})

	t.Run("no matches gives empty slice", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{Search: "histology"})
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("input order is preserved", func(t *testing.T) {
		got := FilterNotes(notes, Criteria{Scope: models.ScopePublished})
		assert.Equal(t, []int64{1, 2, 3}, matchedIDs(got))
	})

	t.Run("refiltering a result is a no-op", func(t *testing.T) {
		for _, c := range []Criteria{
			{},
			{Scope: models.ScopePublished},
			{Search: "cardiac", Scope: models.ScopePublished},
			{Search: "physio"},
		} {
			once := FilterNotes(notes, c)
			assert.Equal(t, once, FilterNotes(once, c))
		}
	})
}

func TestSortNotes(t *testing.T) {
	notes := engineNotes()

	t.Run("newest first", func(t *testing.T) {
		got := SortNotes(notes, models.SortNewest)
		assert.Equal(t, []int64{1, 3, 2, 4}, matchedIDs(got))
	})

	t.Run("oldest first", func(t *testing.T) {
		got := SortNotes(notes, models.SortOldest)
		assert.Equal(t, []int64{4, 2, 3, 1}, matchedIDs(got))
	})

	t.Run("popular keeps catalogue order on view ties", func(t *testing.T) {
		// Notes 2 and 3 tie on views; stability keeps 2 before 3.
		got := SortNotes(notes, models.SortPopular)
		assert.Equal(t, []int64{2, 3, 1, 4}, matchedIDs(got))
	})

	t.Run("title sort is alphabetical", func(t *testing.T) {
		got := SortNotes(notes, models.SortTitle)
		assert.Equal(t, []int64{4, 3, 2, 1}, matchedIDs(got))
	})

	t.Run("title sort is locale aware, not byte order", func(t *testing.T) {
		mixed := []models.Note{
			{ID: 1, Title: "Anatomy II"},
			{ID: 2, Title: "Échographie Basics"},
			{ID: 3, Title: "anatomy"},
			{ID: 4, Title: "zebra crossings"},
		}
		got := SortNotes(mixed, models.SortTitle)
		assert.Equal(t, []int64{3, 1, 2, 4}, matchedIDs(got))
	})

	t.Run("unknown key falls back to newest", func(t *testing.T) {
		got := SortNotes(notes, models.SortKey("bogus"))
		assert.Equal(t, []int64{1, 3, 2, 4}, matchedIDs(got))
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		before := matchedIDs(notes)
		_ = SortNotes(notes, models.SortTitle)
		assert.Equal(t, before, matchedIDs(notes))
	})

	t.Run("repeated sorts are deterministic", func(t *testing.T) {
		first := SortNotes(notes, models.SortPopular)
		second := SortNotes(notes, models.SortPopular)
		assert.Equal(t, matchedIDs(first), matchedIDs(second))
	})
}

func TestFilterThenSortHidesPopularDrafts(t *testing.T) {
	// A draft outranking every published note by views must never surface
	// in a published listing, however it is sorted.
	notes := []models.Note{
		{ID: 1, Title: "A", ViewCount: 5, IsPublished: true, CreatedAt: day(1)},
		{ID: 2, Title: "B", ViewCount: 10, IsPublished: false, CreatedAt: day(2)},
	}

	got := SortNotes(FilterNotes(notes, Criteria{Scope: models.ScopePublished}), models.SortPopular)
	assert.Equal(t, []int64{1}, matchedIDs(got))
}
