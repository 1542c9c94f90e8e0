package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/store"
)

const deleteBatchSize = 100

// Cleanup removes whole document types from a store.
type Cleanup struct {
	store store.DocumentStore
}

func NewCleanup(store store.DocumentStore) *Cleanup {
	return &Cleanup{store: store}
}

// DeleteType deletes every document of docType in batches and returns how
// many were deleted.
func (c *Cleanup) DeleteType(ctx context.Context, docType string) (int, error) {
	ids, err := c.store.ListIDs(ctx, docType)
	if err != nil {
		return 0, fmt.Errorf("listing %s documents: %w", docType, err)
	}
	if len(ids) == 0 {
		logrus.Infof("no %s documents to delete", docType)
		return 0, nil
	}
	logrus.Infof("deleting %d %s documents", len(ids), docType)

	deleted := 0
	for start := 0; start < len(ids); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(ids))
		if err := c.store.DeleteDocuments(ctx, ids[start:end]); err != nil {
			return deleted, fmt.Errorf("deleting %s documents: %w", docType, err)
		}
		deleted = end
		logrus.Infof("deleted %d/%d %s documents", deleted, len(ids), docType)
	}

	return deleted, nil
}
