package models

// DifficultyLevel grades how demanding a note is for students
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "BEGINNER"
	DifficultyIntermediate DifficultyLevel = "INTERMEDIATE"
	DifficultyAdvanced     DifficultyLevel = "ADVANCED"
)

// DefaultDifficulty is applied when a draft never sets a level.
const DefaultDifficulty = DifficultyIntermediate

// Valid reports whether d is one of the known difficulty levels.
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// StatusScope selects which publication states a note listing includes.
// Student-facing listings are always forced to ScopePublished.
type StatusScope string

const (
	ScopeAll       StatusScope = "all"
	ScopePublished StatusScope = "published"
	ScopeDrafts    StatusScope = "draft"
)

// ParseStatusScope maps a query parameter to a scope, defaulting to ScopeAll.
func ParseStatusScope(s string) StatusScope {
	switch StatusScope(s) {
	case ScopePublished:
		return ScopePublished
	case ScopeDrafts:
		return ScopeDrafts
	default:
		return ScopeAll
	}
}

// SortKey identifies one of the supported listing orders
type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortPopular SortKey = "popular"
	SortTitle   SortKey = "title"
)

// ParseSortKey maps a query parameter to a sort key, defaulting to SortNewest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortOldest:
		return SortOldest
	case SortPopular:
		return SortPopular
	case SortTitle:
		return SortTitle
	default:
		return SortNewest
	}
}
