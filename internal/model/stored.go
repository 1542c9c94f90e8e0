package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// StoredDocument is a CMS document persisted in the local content store.
// Content holds the full JSON document; the other columns are copies used
// for lookups.
type StoredDocument struct {
	ID        string         `gorm:"primaryKey;not null"`
	Type      string         `gorm:"not null;index:idx_documents_type_slug"`
	Slug      string         `gorm:"index:idx_documents_type_slug"`
	Title     string
	Content   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StoredDocument) TableName() string {
	return "documents"
}

type lookupFields struct {
	Title        string `json:"title"`
	Name         string `json:"name"`
	ProgramTitle string `json:"programTitle"`
	Slug         *Slug  `json:"slug"`
}

// NewStoredDocument serialises doc and fills the lookup columns.
func NewStoredDocument(doc Document) (*StoredDocument, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var fields lookupFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	stored := &StoredDocument{
		ID:      doc.DocumentID(),
		Type:    doc.DocumentType(),
		Title:   firstNonEmpty(fields.Title, fields.Name, fields.ProgramTitle),
		Content: datatypes.JSON(data),
	}
	if fields.Slug != nil {
		stored.Slug = fields.Slug.Current
	}

	return stored, nil
}

// Decode returns the typed document held in Content.
func (s *StoredDocument) Decode() (Document, error) {
	return Decode(s.Content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
