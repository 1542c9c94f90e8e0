package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/cache"
	"github.com/composersite/catalog/internal/model"
)

var _ Store = (*CachedStore)(nil)

// CachedStore serves reads from a cache and drops every cached entry on
// write.
type CachedStore struct {
	store Store
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedStore(store Store, c cache.Cache, ttl time.Duration) *CachedStore {
	return &CachedStore{store: store, cache: c, ttl: ttl}
}

func documentKey(id string) string {
	return "doc:" + id
}

func slugKey(docType, slug string) string {
	return "slug:" + docType + ":" + slug
}

func listKey(docType string) string {
	return "list:" + docType
}

func workPasswordKey(id string) string {
	return "password:work:" + id
}

const defaultPasswordKey = "password:default"

// remember returns the cached value under key, or calls load and caches its
// result.
func (c *CachedStore) remember(ctx context.Context, key string, load func() ([]byte, error)) ([]byte, error) {
	data, err := c.cache.Get(ctx, key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logrus.Warnf("cache read %s failed: %v", key, err)
	}

	data, err = load()
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		logrus.Warnf("cache write %s failed: %v", key, err)
	}
	return data, nil
}

func (c *CachedStore) GetDocument(ctx context.Context, id string) (model.Document, error) {
	data, err := c.remember(ctx, documentKey(id), func() ([]byte, error) {
		doc, err := c.store.GetDocument(ctx, id)
		if err != nil {
			return nil, err
		}
		return json.Marshal(doc)
	})
	if err != nil {
		return nil, err
	}
	return model.Decode(data)
}

func (c *CachedStore) FindBySlug(ctx context.Context, docType, slug string) (model.Document, error) {
	data, err := c.remember(ctx, slugKey(docType, slug), func() ([]byte, error) {
		doc, err := c.store.FindBySlug(ctx, docType, slug)
		if err != nil {
			return nil, err
		}
		return json.Marshal(doc)
	})
	if err != nil {
		return nil, err
	}
	return model.Decode(data)
}

func (c *CachedStore) ListDocuments(ctx context.Context, docType string) ([]model.Document, error) {
	data, err := c.remember(ctx, listKey(docType), func() ([]byte, error) {
		docs, err := c.store.ListDocuments(ctx, docType)
		if err != nil {
			return nil, err
		}
		return json.Marshal(docs)
	})
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	docs := make([]model.Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := model.Decode(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *CachedStore) ListIDs(ctx context.Context, docType string) ([]string, error) {
	return c.store.ListIDs(ctx, docType)
}

func (c *CachedStore) PutDocuments(ctx context.Context, docs []model.Document) error {
	defer c.invalidate(ctx)
	return c.store.PutDocuments(ctx, docs)
}

func (c *CachedStore) SetReferences(ctx context.Context, id, field string, refs []model.Reference) error {
	defer c.invalidate(ctx)
	return c.store.SetReferences(ctx, id, field, refs)
}

func (c *CachedStore) DeleteDocuments(ctx context.Context, ids []string) error {
	defer c.invalidate(ctx)
	return c.store.DeleteDocuments(ctx, ids)
}

func (c *CachedStore) GetWorkPasswordOverride(ctx context.Context, workID string) (string, error) {
	data, err := c.remember(ctx, workPasswordKey(workID), func() ([]byte, error) {
		password, err := c.store.GetWorkPasswordOverride(ctx, workID)
		return []byte(password), err
	})
	return string(data), err
}

func (c *CachedStore) GetDefaultAssetPassword(ctx context.Context) (string, error) {
	data, err := c.remember(ctx, defaultPasswordKey, func() ([]byte, error) {
		password, err := c.store.GetDefaultAssetPassword(ctx)
		return []byte(password), err
	})
	return string(data), err
}

func (c *CachedStore) Migrate() error {
	return c.store.Migrate()
}

func (c *CachedStore) invalidate(ctx context.Context) {
	if err := c.cache.DeletePrefix(ctx, ""); err != nil {
		logrus.Warnf("cache invalidation failed: %v", err)
	}
}
