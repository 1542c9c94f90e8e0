package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/composersite/catalog/internal/model"
)

const batchSize = 100

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

// GormStore keeps documents in a relational database as JSON rows.
type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) GetDocument(ctx context.Context, id string) (model.Document, error) {
	stored, err := g.get(g.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return stored.Decode()
}

func (g *GormStore) get(db *gorm.DB, id string) (*model.StoredDocument, error) {
	var stored model.StoredDocument
	err := db.Where("id = ?", id).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (g *GormStore) FindBySlug(ctx context.Context, docType, slug string) (model.Document, error) {
	var stored model.StoredDocument
	err := g.db.WithContext(ctx).Where("type = ? AND slug = ?", docType, slug).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return stored.Decode()
}

func (g *GormStore) ListDocuments(ctx context.Context, docType string) ([]model.Document, error) {
	var rows []*model.StoredDocument
	err := g.db.WithContext(ctx).Where("type = ?", docType).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]model.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.Decode()
		if err != nil {
			logrus.Errorf("skipping undecodable document %s: %v", row.ID, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (g *GormStore) ListIDs(ctx context.Context, docType string) ([]string, error) {
	var ids []string
	err := g.db.WithContext(ctx).Model(&model.StoredDocument{}).Where("type = ?", docType).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (g *GormStore) PutDocuments(ctx context.Context, docs []model.Document) error {
	if len(docs) == 0 {
		return nil
	}

	rows := make([]*model.StoredDocument, 0, len(docs))
	for _, doc := range docs {
		row, err := model.NewStoredDocument(doc)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "slug", "title", "content", "updated_at"}),
	}).CreateInBatches(rows, batchSize).Error
}

// SetReferences rewrites one field of the stored JSON, leaving every other
// field as it was.
func (g *GormStore) SetReferences(ctx context.Context, id, field string, refs []model.Reference) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := g.get(tx, id)
		if err != nil {
			return err
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(stored.Content, &fields); err != nil {
			return err
		}

		value, err := json.Marshal(refs)
		if err != nil {
			return err
		}
		fields[field] = value

		content, err := json.Marshal(fields)
		if err != nil {
			return err
		}

		return tx.Model(&model.StoredDocument{}).Where("id = ?", id).Update("content", datatypes.JSON(content)).Error
	})
}

func (g *GormStore) DeleteDocuments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.StoredDocument{}).Error
}

func (g *GormStore) GetWorkPasswordOverride(ctx context.Context, workID string) (string, error) {
	doc, err := g.GetDocument(ctx, workID)
	if errors.Is(err, ErrDocumentNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	work, ok := doc.(*model.Work)
	if !ok {
		return "", nil
	}
	return work.PasswordOverride, nil
}

func (g *GormStore) GetDefaultAssetPassword(ctx context.Context) (string, error) {
	var stored model.StoredDocument
	err := g.db.WithContext(ctx).Where("type = ?", model.TypeSiteSettings).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	doc, err := stored.Decode()
	if err != nil {
		return "", err
	}
	return doc.(*model.SiteSettings).DefaultAssetPassword, nil
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}
