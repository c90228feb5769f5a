package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nova-suite/internal/apperrors"
	"nova-suite/internal/models"
)

func newTestPresentationStore(t *testing.T) (*PresentationStore, *KV) {
	t.Helper()
	kv := newTestKV(t)
	return NewPresentationStore(kv, zap.NewNop()), kv
}

func TestPresentationStore_SaveAndLoadRoundTrip(t *testing.T) {
	store, _ := newTestPresentationStore(t)

	p := models.NewPresentation("Roadmap")
	slide := p.Slides[0]
	slide.AddElement(&models.Element{
		ID: 7, Kind: models.KindText, X: 40, Y: 60,
		Width: 200, Height: 50, Color: "#111111", Opacity: 80, ZIndex: 2,
		Content: "<b>Q4</b>",
	})

	require.NoError(t, store.Save(p))

	loaded, err := store.Load(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", loaded.Title)
	require.Len(t, loaded.Slides, 1)
	require.Len(t, loaded.Slides[0].Elements, 1)
	element := loaded.Slides[0].Elements[0]
	assert.Equal(t, models.KindText, element.Kind)
	assert.Equal(t, 40.0, element.X)
	assert.Equal(t, "<b>Q4</b>", element.Content)
	assert.Equal(t, 80, element.Opacity)
}

func TestPresentationStore_Save_RefreshesLastModified(t *testing.T) {
	store, _ := newTestPresentationStore(t)
	p := models.NewPresentation("deck")
	before := p.LastModified

	require.NoError(t, store.Save(p))

	assert.True(t, p.LastModified.After(before) || p.LastModified.Equal(before))
	loaded, err := store.Load(p.ID)
	require.NoError(t, err)
	assert.False(t, loaded.LastModified.IsZero())
}

func TestPresentationStore_Load_NotFound(t *testing.T) {
	store, _ := newTestPresentationStore(t)

	_, err := store.Load(12345)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestPresentationStore_Load_CorruptRecordIsNotFound(t *testing.T) {
	store, kv := newTestPresentationStore(t)
	require.NoError(t, kv.Set("presentation_99", "{broken"))

	_, err := store.Load(99)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestPresentationStore_Delete_Idempotent(t *testing.T) {
	store, _ := newTestPresentationStore(t)
	p := models.NewPresentation("deck")
	require.NoError(t, store.Save(p))

	require.NoError(t, store.Delete(p.ID))
	require.NoError(t, store.Delete(p.ID))

	_, err := store.Load(p.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestPresentationStore_List_SkipsFoldersRecordAndCorruptEntries(t *testing.T) {
	store, kv := newTestPresentationStore(t)

	a := models.NewPresentation("first")
	require.NoError(t, store.Save(a))
	b := models.NewPresentation("second")
	b.ID = a.ID + 1
	require.NoError(t, store.Save(b))

	// The folders record shares the prefix but has no numeric suffix
	require.NoError(t, kv.Set(FoldersKey, `{"folders":{}}`))
	require.NoError(t, kv.Set("presentation_777", "{broken"))

	list, err := store.List()

	require.NoError(t, err)
	assert.Len(t, list, 2)
	// Most recently saved first
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}

func TestPresentationStore_CanCreateNew(t *testing.T) {
	store, _ := newTestPresentationStore(t)

	assert.True(t, store.CanCreateNew())

	base := models.NewPresentation("deck").ID
	for i := 0; i < MaxPresentations; i++ {
		p := models.NewPresentation("deck")
		p.ID = base + int64(i)
		require.NoError(t, store.Save(p))
	}

	assert.False(t, store.CanCreateNew())
}
