package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notehive/notehive-server/internal/app/models"
)

// stubLoader serves canned catalogue data and can be told to fail.
type stubLoader struct {
	data *Data
	err  error
}

func (l *stubLoader) LoadCatalog(context.Context) (*Data, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.data, nil
}

func testData() *Data {
	return &Data{
		Notes: []models.Note{
			{ID: 1, Slug: "upper-limb-osteology", Title: "Upper Limb Osteology", YearID: 1, UnitID: 1, IsPublished: true},
			{ID: 2, Slug: "cardiac-cycle", Title: "The Cardiac Cycle", YearID: 1, UnitID: 2, IsPublished: true},
		},
		Units: []models.Unit{
			{ID: 1, YearID: 1, Name: "Anatomy", Code: "ANA101"},
			{ID: 2, YearID: 1, Name: "Physiology", Code: "PHY102"},
			{ID: 3, YearID: 2, Name: "Pathology", Code: "PAT201"},
		},
		Years: []models.Year{
			{ID: 1, YearNumber: 1, Name: "Year 1"},
			{ID: 2, YearNumber: 2, Name: "Year 2"},
		},
		Lecturers: []models.Lecturer{
			{ID: 1, Name: "Dr. A. Mwangi", Title: "Senior Lecturer"},
		},
	}
}

func TestCatalogRefresh(t *testing.T) {
	loader := &stubLoader{data: testData()}
	c := New(loader)

	// Before the first refresh the snapshot is empty but usable.
	snap := c.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, uint64(0), snap.Version)
	assert.Empty(t, snap.Notes)

	require.NoError(t, c.Refresh(context.Background()))
	snap = c.Snapshot()
	assert.Equal(t, uint64(1), snap.Version)
	assert.Len(t, snap.Notes, 2)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, uint64(2), c.Snapshot().Version)
}

func TestCatalogRefreshFailureKeepsSnapshot(t *testing.T) {
	loader := &stubLoader{data: testData()}
	c := New(loader)
	require.NoError(t, c.Refresh(context.Background()))
	before := c.Snapshot()

	loader.err = errors.New("connection refused")
	assert.Error(t, c.Refresh(context.Background()))
	assert.Same(t, before, c.Snapshot())
}

func TestSnapshotLookups(t *testing.T) {
	loader := &stubLoader{data: testData()}
	c := New(loader)
	require.NoError(t, c.Refresh(context.Background()))
	snap := c.Snapshot()

	t.Run("note by slug", func(t *testing.T) {
		n, ok := snap.NoteBySlug("cardiac-cycle")
		require.True(t, ok)
		assert.Equal(t, int64(2), n.ID)

		_, ok = snap.NoteBySlug("missing")
		assert.False(t, ok)
	})

	t.Run("note by id", func(t *testing.T) {
		n, ok := snap.NoteByID(1)
		require.True(t, ok)
		assert.Equal(t, "upper-limb-osteology", n.Slug)
	})

	t.Run("unit, year and lecturer by id", func(t *testing.T) {
		u, ok := snap.UnitByID(2)
		require.True(t, ok)
		assert.Equal(t, "Physiology", u.Name)

		y, ok := snap.YearByID(2)
		require.True(t, ok)
		assert.Equal(t, 2, y.YearNumber)

		l, ok := snap.LecturerByID(1)
		require.True(t, ok)
		assert.Equal(t, "Dr. A. Mwangi", l.Name)
	})

	t.Run("missing references report absence", func(t *testing.T) {
		_, ok := snap.UnitByID(99)
		assert.False(t, ok)
		_, ok = snap.YearByID(99)
		assert.False(t, ok)
		_, ok = snap.LecturerByID(99)
		assert.False(t, ok)
	})

	t.Run("units narrow by year", func(t *testing.T) {
		units := snap.UnitsForYear(1)
		require.Len(t, units, 2)
		assert.Equal(t, "Anatomy", units[0].Name)
		assert.Equal(t, "Physiology", units[1].Name)

		assert.Len(t, snap.UnitsForYear(2), 1)
		assert.Empty(t, snap.UnitsForYear(99))
	})
}

func TestCatalogSubscribe(t *testing.T) {
	loader := &stubLoader{data: testData()}
	c := New(loader)

	ch := c.Subscribe()
	defer c.Unsubscribe(ch)

	require.NoError(t, c.Refresh(context.Background()))

	select {
	case ev := <-ch:
		assert.Equal(t, uint64(1), ev.Version)
	default:
		t.Fatal("expected a catalog event after refresh")
	}

	// A lagging subscriber keeps only one pending event.
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.Refresh(context.Background()))
	select {
	case ev := <-ch:
		assert.Equal(t, uint64(2), ev.Version)
	default:
		t.Fatal("expected a pending catalog event")
	}
	assert.Equal(t, uint64(3), c.Snapshot().Version)
}

func TestCatalogUnsubscribeCloses(t *testing.T) {
	c := New(&stubLoader{data: testData()})
	ch := c.Subscribe()
	c.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing twice is harmless.
	c.Unsubscribe(ch)
}
