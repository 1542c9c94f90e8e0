package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composersite/catalog/internal/cache"
	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/tester"
)

type countingStore struct {
	Store
	gets      int
	passwords int
}

func (c *countingStore) GetDocument(ctx context.Context, id string) (model.Document, error) {
	c.gets++
	return c.Store.GetDocument(ctx, id)
}

func (c *countingStore) GetDefaultAssetPassword(ctx context.Context) (string, error) {
	c.passwords++
	return c.Store.GetDefaultAssetPassword(ctx)
}

func TestCachedStore_ReadThrough(t *testing.T) {
	tester.Reset()
	ctx := context.Background()
	inner := &countingStore{Store: NewGormStore(tester.TestDB())}
	s := NewCachedStore(inner, cache.NewMemory(), time.Minute)

	require.NoError(t, s.PutDocuments(ctx, []model.Document{tester.Work("work-1", "Crossfire", "crossfire"), tester.Settings("Secret")}))

	for i := 0; i < 3; i++ {
		doc, err := s.GetDocument(ctx, "work-1")
		require.NoError(t, err)
		assert.Equal(t, "Crossfire", doc.(*model.Work).Title)

		password, err := s.GetDefaultAssetPassword(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Secret", password)
	}
	assert.Equal(t, 1, inner.gets)
	assert.Equal(t, 1, inner.passwords)
}

func TestCachedStore_WritesInvalidate(t *testing.T) {
	tester.Reset()
	ctx := context.Background()
	s := NewCachedStore(NewGormStore(tester.TestDB()), tester.Cache(), time.Minute)

	require.NoError(t, s.PutDocuments(ctx, []model.Document{tester.Work("work-1", "Crossfire", "crossfire")}))
	docs, err := s.ListDocuments(ctx, model.TypeWork)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	require.NoError(t, s.PutDocuments(ctx, []model.Document{tester.Work("work-2", "Stuck-Stuck", "stuck-stuck")}))
	docs, err = s.ListDocuments(ctx, model.TypeWork)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	require.NoError(t, s.DeleteDocuments(ctx, []string{"work-1"}))
	_, err = s.GetDocument(ctx, "work-1")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestCachedStore_MissesAreNotCached(t *testing.T) {
	tester.Reset()
	ctx := context.Background()
	c := cache.NewMemory()
	s := NewCachedStore(NewGormStore(tester.TestDB()), c, time.Minute)

	_, err := s.FindBySlug(ctx, model.TypeWork, "crossfire")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = c.Get(ctx, slugKey(model.TypeWork, "crossfire"))
	assert.ErrorIs(t, err, cache.ErrMiss)
}
