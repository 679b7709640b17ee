package store

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogctl/internal/models"
	"catalogctl/internal/notify"
	"catalogctl/internal/validate"
)

// fakeBackend is an in-memory Backend with switchable failures and call
// counters, enough to observe exactly what a store sends over it.
type fakeBackend struct {
	items   []models.Location
	nextID  int64
	failAll error

	fetchCalls  int
	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakeBackend) FetchAll(context.Context) ([]models.Location, error) {
	f.fetchCalls++
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]models.Location, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeBackend) Create(_ context.Context, w models.LocationWrite) (*models.Location, error) {
	f.createCalls++
	if f.failAll != nil {
		return nil, f.failAll
	}
	f.nextID++
	created := models.Location{ID: f.nextID, X: w.X, Y: w.Y, Z: w.Z, CreatedBy: w.CreatedBy}
	f.items = append(f.items, created)
	return &created, nil
}

func (f *fakeBackend) Update(_ context.Context, id int64, w models.LocationWrite) (*models.Location, error) {
	f.updateCalls++
	if f.failAll != nil {
		return nil, f.failAll
	}
	updated := models.Location{ID: id, X: w.X, Y: w.Y, Z: w.Z, CreatedBy: w.CreatedBy}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i] = updated
		}
	}
	return &updated, nil
}

func (f *fakeBackend) Delete(_ context.Context, id int64) error {
	f.deleteCalls++
	if f.failAll != nil {
		return f.failAll
	}
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func newTestStore(backend *fakeBackend) (*Store[models.Location, models.LocationWrite], *notify.Recorder) {
	rec := notify.NewRecorder()
	s := New[models.Location, models.LocationWrite]("location", backend, validate.Location, rec, slog.Default())
	return s, rec
}

func TestLoadReplacesWholesale(t *testing.T) {
	backend := &fakeBackend{items: []models.Location{{ID: 1}, {ID: 2}}}
	s, _ := newTestStore(backend)

	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Items(), 2)

	backend.items = []models.Location{{ID: 3}}
	require.NoError(t, s.Load(context.Background()))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].ID)
}

func TestLoadFailureKeepsOldCollection(t *testing.T) {
	backend := &fakeBackend{items: []models.Location{{ID: 1}}}
	s, rec := newTestStore(backend)
	require.NoError(t, s.Load(context.Background()))

	backend.failAll = errors.New("backend down")
	err := s.Load(context.Background())
	require.Error(t, err)

	assert.Len(t, s.Items(), 1)
	require.Error(t, s.Err())
	assert.Equal(t, "error", rec.Last().Level)
	assert.Contains(t, rec.Last().Message, "failed to load locations")
}

func TestLoadClearsPreviousError(t *testing.T) {
	backend := &fakeBackend{failAll: errors.New("backend down")}
	s, _ := newTestStore(backend)
	require.Error(t, s.Load(context.Background()))
	require.Error(t, s.Err())

	backend.failAll = nil
	require.NoError(t, s.Load(context.Background()))
	assert.NoError(t, s.Err())
}

func TestCreateAppendsServerRecord(t *testing.T) {
	backend := &fakeBackend{}
	s, rec := newTestStore(backend)

	created, err := s.Create(context.Background(), models.LocationWrite{X: 1, Y: 2, Z: 3, CreatedBy: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(42), items[0].CreatedBy)
	assert.Equal(t, notify.Notice{Level: "success", Message: "location created"}, rec.Last())
}

func TestCreateValidationBlocksNetwork(t *testing.T) {
	backend := &fakeBackend{}
	s, rec := newTestStore(backend)

	_, err := s.Create(context.Background(), models.LocationWrite{X: -1000, Y: 2000})
	require.Error(t, err)

	var vio validate.Violations
	require.ErrorAs(t, err, &vio)
	assert.Len(t, vio, 2)

	assert.Zero(t, backend.createCalls)
	assert.Empty(t, s.Items())
	assert.Equal(t, "error", rec.Last().Level)
	assert.Contains(t, rec.Last().Message, "validation failed")
}

func TestCreateNeverDuplicatesID(t *testing.T) {
	// A poll can deliver the created record before the create response is
	// merged; the merge must swap, not append a second copy.
	backend := &fakeBackend{}
	s, _ := newTestStore(backend)

	created, err := s.Create(context.Background(), models.LocationWrite{X: 1})
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))

	// Replay the merge of the create response after the load.
	s.mu.Lock()
	s.upsertLocked(*created)
	s.mu.Unlock()

	count := 0
	for _, item := range s.Items() {
		if item.ID == created.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestUpdateSwapsWholeObject(t *testing.T) {
	backend := &fakeBackend{items: []models.Location{{ID: 1, X: 1, Y: 1, Z: 1}, {ID: 2, X: 2}}, nextID: 2}
	s, _ := newTestStore(backend)
	require.NoError(t, s.Load(context.Background()))

	// The new payload omits z; after the swap the old z must be gone.
	_, err := s.Update(context.Background(), 1, models.LocationWrite{X: 10, Y: 20})
	require.NoError(t, err)

	item, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, 10.0, item.X)
	assert.Zero(t, item.Z)

	other, ok := s.Find(2)
	require.True(t, ok)
	assert.Equal(t, 2.0, other.X)
}

func TestUpdateFailureLeavesCollection(t *testing.T) {
	backend := &fakeBackend{items: []models.Location{{ID: 1, X: 1}}}
	s, rec := newTestStore(backend)
	require.NoError(t, s.Load(context.Background()))

	backend.failAll = errors.New("backend down")
	_, err := s.Update(context.Background(), 1, models.LocationWrite{X: 5})
	require.Error(t, err)

	item, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, 1.0, item.X)
	assert.Equal(t, "error", rec.Last().Level)
}

func TestDeleteFiltersLocally(t *testing.T) {
	backend := &fakeBackend{items: []models.Location{{ID: 1}, {ID: 2}}}
	s, _ := newTestStore(backend)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Delete(context.Background(), 1))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
	_, ok := s.Find(1)
	assert.False(t, ok)
}

func TestDeleteAbsentIDIsIdempotentLocally(t *testing.T) {
	backend := &fakeBackend{items: []models.Location{{ID: 1}}}
	s, _ := newTestStore(backend)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Delete(context.Background(), 99))
	assert.Len(t, s.Items(), 1)
}

func TestItemsReturnsSnapshotCopy(t *testing.T) {
	backend := &fakeBackend{items: []models.Location{{ID: 1, X: 1}}}
	s, _ := newTestStore(backend)
	require.NoError(t, s.Load(context.Background()))

	items := s.Items()
	items[0].X = 99

	item, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, 1.0, item.X)
}
