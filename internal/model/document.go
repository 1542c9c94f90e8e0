package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	TypePublisher    = "publisher"
	TypeInstrument   = "instrument"
	TypeWork         = "work"
	TypeRecording    = "recording"
	TypeReview       = "review"
	TypePerformance  = "performance"
	TypeAboutPage    = "aboutPage"
	TypeContactPage  = "contactPage"
	TypeSiteSettings = "siteSettings"
)

// ErrUnknownType is returned when decoding a document whose _type has no
// Go representation.
var ErrUnknownType = errors.New("unknown document type")

// Document is any top-level CMS document.
type Document interface {
	DocumentID() string
	DocumentType() string
}

// Base carries the identity shared by every document.
type Base struct {
	ID   string `json:"_id"`
	Type string `json:"_type"`
}

func (b Base) DocumentID() string {
	return b.ID
}

func (b Base) DocumentType() string {
	return b.Type
}

// Decode unmarshals one document, choosing the concrete type from _type.
func Decode(data []byte) (Document, error) {
	var base Base
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, err
	}

	var doc Document
	switch base.Type {
	case TypePublisher:
		doc = &Publisher{}
	case TypeInstrument:
		doc = &Instrument{}
	case TypeWork:
		doc = &Work{}
	case TypeRecording:
		doc = &Recording{}
	case TypeReview:
		doc = &Review{}
	case TypePerformance:
		doc = &Performance{}
	case TypeAboutPage:
		doc = &AboutPage{}
	case TypeContactPage:
		doc = &ContactPage{}
	case TypeSiteSettings:
		doc = &SiteSettings{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, base.Type)
	}

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Types lists every document type in export order.
func Types() []string {
	return []string{
		TypePublisher,
		TypeInstrument,
		TypeWork,
		TypeRecording,
		TypeReview,
		TypePerformance,
		TypeAboutPage,
		TypeContactPage,
		TypeSiteSettings,
	}
}
