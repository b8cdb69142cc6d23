// Package catalog holds the in-memory read model every listing and detail
// view works from. Postgres stays the source of truth; the catalog is
// refreshed after each successful mutation and swapped in atomically, so
// request handlers always observe a complete, immutable snapshot.
package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/pkg/logger"
)

// Data is one full load of the catalogue tables.
type Data struct {
	Notes     []models.Note
	Units     []models.Unit
	Years     []models.Year
	Lecturers []models.Lecturer
}

// Loader fetches the current catalogue state from storage.
type Loader interface {
	LoadCatalog(ctx context.Context) (*Data, error)
}

// Event announces that a new snapshot is available. Subscribers re-read the
// snapshot rather than diffing events, so the version is all they need.
type Event struct {
	Version uint64 `json:"version"`
}

// Snapshot is one immutable version of the catalogue. Slices and lookups must
// not be modified by callers; a refresh builds a complete replacement instead.
type Snapshot struct {
	Version   uint64
	Notes     []models.Note
	Units     []models.Unit
	Years     []models.Year
	Lecturers []models.Lecturer

	notesByID     map[int64]int
	notesBySlug   map[string]int
	unitsByID     map[int64]int
	yearsByID     map[int64]int
	lecturersByID map[int64]int
	unitsByYear   map[int64][]int
}

func newSnapshot(version uint64, data *Data) *Snapshot {
	s := &Snapshot{
		Version:       version,
		Notes:         data.Notes,
		Units:         data.Units,
		Years:         data.Years,
		Lecturers:     data.Lecturers,
		notesByID:     make(map[int64]int, len(data.Notes)),
		notesBySlug:   make(map[string]int, len(data.Notes)),
		unitsByID:     make(map[int64]int, len(data.Units)),
		yearsByID:     make(map[int64]int, len(data.Years)),
		lecturersByID: make(map[int64]int, len(data.Lecturers)),
		unitsByYear:   make(map[int64][]int, len(data.Years)),
	}
	for i, n := range data.Notes {
		s.notesByID[n.ID] = i
		s.notesBySlug[n.Slug] = i
	}
	for i, u := range data.Units {
		s.unitsByID[u.ID] = i
		s.unitsByYear[u.YearID] = append(s.unitsByYear[u.YearID], i)
	}
	for i, y := range data.Years {
		s.yearsByID[y.ID] = i
	}
	for i, l := range data.Lecturers {
		s.lecturersByID[l.ID] = i
	}
	return s
}

// NoteByID returns the note with the given ID.
func (s *Snapshot) NoteByID(id int64) (models.Note, bool) {
	i, ok := s.notesByID[id]
	if !ok {
		return models.Note{}, false
	}
	return s.Notes[i], true
}

// NoteBySlug returns the note with the given slug.
func (s *Snapshot) NoteBySlug(slug string) (models.Note, bool) {
	i, ok := s.notesBySlug[slug]
	if !ok {
		return models.Note{}, false
	}
	return s.Notes[i], true
}

// UnitByID returns the unit with the given ID.
func (s *Snapshot) UnitByID(id int64) (models.Unit, bool) {
	i, ok := s.unitsByID[id]
	if !ok {
		return models.Unit{}, false
	}
	return s.Units[i], true
}

// YearByID returns the academic year with the given ID.
func (s *Snapshot) YearByID(id int64) (models.Year, bool) {
	i, ok := s.yearsByID[id]
	if !ok {
		return models.Year{}, false
	}
	return s.Years[i], true
}

// LecturerByID returns the lecturer with the given ID.
func (s *Snapshot) LecturerByID(id int64) (models.Lecturer, bool) {
	i, ok := s.lecturersByID[id]
	if !ok {
		return models.Lecturer{}, false
	}
	return s.Lecturers[i], true
}

// UnitsForYear returns the units of one academic year in catalogue order.
// Selecting a year narrows the unit choices to exactly this list.
func (s *Snapshot) UnitsForYear(yearID int64) []models.Unit {
	idxs := s.unitsByYear[yearID]
	units := make([]models.Unit, 0, len(idxs))
	for _, i := range idxs {
		units = append(units, s.Units[i])
	}
	return units
}

// Catalog owns the current snapshot and tells subscribers when it changes.
type Catalog struct {
	loader Loader
	log    zerolog.Logger

	mu   sync.RWMutex
	snap *Snapshot

	subMu sync.Mutex
	subs  map[chan Event]struct{}
}

// New creates a catalog starting from an empty snapshot. Call Refresh to
// populate it before serving traffic.
func New(loader Loader) *Catalog {
	return &Catalog{
		loader: loader,
		log:    logger.With("catalog"),
		snap:   newSnapshot(0, &Data{}),
		subs:   make(map[chan Event]struct{}),
	}
}

// Snapshot returns the current snapshot. The result is immutable and safe to
// use for the whole lifetime of a request.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Refresh loads the catalogue from storage and swaps in a new snapshot. On
// load failure the previous snapshot stays in place.
func (c *Catalog) Refresh(ctx context.Context) error {
	data, err := c.loader.LoadCatalog(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Catalog refresh failed, keeping previous snapshot")
		return err
	}

	c.mu.Lock()
	version := c.snap.Version + 1
	c.snap = newSnapshot(version, data)
	c.mu.Unlock()

	c.log.Debug().
		Uint64("version", version).
		Int("notes", len(data.Notes)).
		Int("units", len(data.Units)).
		Msg("Catalog snapshot refreshed")

	c.notify(Event{Version: version})
	return nil
}

// Subscribe registers a listener for snapshot changes. The channel holds one
// pending event; when a subscriber lags, intermediate versions are dropped
// because only the latest snapshot matters.
func (c *Catalog) Subscribe() chan Event {
	ch := make(chan Event, 1)
	c.subMu.Lock()
	c.subs[ch] = struct{}{}
	c.subMu.Unlock()
	return ch
}

// Unsubscribe removes a listener registered with Subscribe.
func (c *Catalog) Unsubscribe(ch chan Event) {
	c.subMu.Lock()
	if _, ok := c.subs[ch]; ok {
		delete(c.subs, ch)
		close(ch)
	}
	c.subMu.Unlock()
}

func (c *Catalog) notify(ev Event) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for ch := range c.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber still has an unread event; it will pick up the
			// newest snapshot when it gets to it.
		}
	}
}
