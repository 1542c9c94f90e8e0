package store

import (
	"context"

	"github.com/composersite/catalog/internal/model"
)

type Store interface {
	DocumentStore
	PasswordStore
	Migrate() error
}

type DocumentStore interface {
	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (model.Document, error)
	// FindBySlug retrieves a document of the given type by its slug.
	FindBySlug(ctx context.Context, docType, slug string) (model.Document, error)
	// ListDocuments retrieves every document of a type, ordered by ID.
	ListDocuments(ctx context.Context, docType string) ([]model.Document, error)
	// ListIDs retrieves the IDs of every document of a type.
	ListIDs(ctx context.Context, docType string) ([]string, error)
	// PutDocuments creates or replaces documents.
	PutDocuments(ctx context.Context, docs []model.Document) error
	// SetReferences replaces a reference array field on a document.
	SetReferences(ctx context.Context, id, field string, refs []model.Reference) error
	// DeleteDocuments deletes documents by ID.
	DeleteDocuments(ctx context.Context, ids []string) error
}

type PasswordStore interface {
	// GetWorkPasswordOverride returns the download password override of a
	// work, or "" when the work has none or does not exist.
	GetWorkPasswordOverride(ctx context.Context, workID string) (string, error)
	// GetDefaultAssetPassword returns the site-wide download password, or "".
	GetDefaultAssetPassword(ctx context.Context) (string, error)
}
