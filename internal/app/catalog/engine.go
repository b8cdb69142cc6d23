package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/notehive/notehive-server/internal/app/models"
)

// Criteria describes one listing request. Zero values mean "no constraint",
// so an empty Criteria matches every note in scope. All active criteria must
// hold at once.
type Criteria struct {
	// Search matches case-insensitively against title or excerpt.
	Search     string
	YearID     int64
	UnitID     int64
	LecturerID int64
	Difficulty models.DifficultyLevel
	// Scope restricts by publication state. Student listings always pass
	// models.ScopePublished here regardless of the request.
	Scope models.StatusScope
	// FeaturedOnly keeps only notes picked for the featured rail.
	FeaturedOnly bool
}

// FilterNotes returns the notes matching every active criterion, preserving
// input order. The input slice is never modified.
func FilterNotes(notes []models.Note, cr Criteria) []models.Note {
	search := strings.ToLower(cr.Search)

	matched := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if !matchesScope(n, cr.Scope) {
			continue
		}
		if cr.YearID != 0 && n.YearID != cr.YearID {
			continue
		}
		if cr.UnitID != 0 && n.UnitID != cr.UnitID {
			continue
		}
		if cr.LecturerID != 0 && (n.LecturerID == nil || *n.LecturerID != cr.LecturerID) {
			continue
		}
		if cr.Difficulty != "" && n.Difficulty != cr.Difficulty {
			continue
		}
		if cr.FeaturedOnly && !n.IsFeatured {
			continue
		}
		if search != "" && !matchesSearch(n, search) {
			continue
		}
		matched = append(matched, n)
	}
	return matched
}

// matchesScope applies the publication state filter. An empty scope behaves
// like models.ScopeAll.
func matchesScope(n models.Note, scope models.StatusScope) bool {
	switch scope {
	case models.ScopePublished:
		return n.IsPublished
	case models.ScopeDrafts:
		return !n.IsPublished
	default:
		return true
	}
}

// matchesSearch reports whether the lowercased search term occurs in the
// note's title or excerpt.
func matchesSearch(n models.Note, search string) bool {
	return strings.Contains(strings.ToLower(n.Title), search) ||
		strings.Contains(strings.ToLower(n.Excerpt), search)
}

// SortNotes returns a sorted copy of notes. Sorting is stable, so notes that
// compare equal keep their catalogue order and repeated calls over the same
// snapshot give identical results. An unknown key falls back to newest first.
func SortNotes(notes []models.Note, key models.SortKey) []models.Note {
	sorted := make([]models.Note, len(notes))
	copy(sorted, notes)

	switch key {
	case models.SortOldest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	case models.SortPopular:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ViewCount > sorted[j].ViewCount
		})
	case models.SortTitle:
		// Locale-aware ordering, the way note titles are listed to readers.
		// A collator is not safe for concurrent use, so each call gets its own.
		coll := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool {
			return coll.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	default: // models.SortNewest
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}
	return sorted
}
