package service

import (
	"context"
	"fmt"

	"github.com/composersite/catalog/internal/catalog"
	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/store"
)

// CatalogService serves the public listings of the catalog.
type CatalogService struct {
	store store.DocumentStore
}

func NewCatalogService(store store.DocumentStore) *CatalogService {
	return &CatalogService{store: store}
}

// WorkDetail is a work with its display fields resolved.
type WorkDetail struct {
	*model.Work
	Year                string                   `json:"year"`
	InstrumentationText string                   `json:"instrumentationText,omitempty"`
	Instruments         []catalog.InstrumentItem `json:"instruments,omitempty"`
	Embed               *catalog.EmbedInfo       `json:"embed,omitempty"`
	ParentWork          *catalog.WorkSummary     `json:"parentWork,omitempty"`
	Children            []catalog.WorkSummary    `json:"children,omitempty"`
}

// ListWorks returns the top-level works with their direct children, both
// in display order.
func (c *CatalogService) ListWorks(ctx context.Context) ([]catalog.WorkSummary, error) {
	works, err := c.works(ctx)
	if err != nil {
		return nil, err
	}
	names, err := c.instrumentNames(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[string][]catalog.WorkSummary)
	var top []*model.Work
	for _, work := range works {
		if work.Parent == nil {
			top = append(top, work)
			continue
		}
		children[work.Parent.Ref] = append(children[work.Parent.Ref], summarize(work, names))
	}

	summaries := make([]catalog.WorkSummary, 0, len(top))
	for _, work := range top {
		summary := summarize(work, names)
		summary.Children = catalog.SortWorks(children[work.ID])
		summaries = append(summaries, summary)
	}

	return catalog.SortWorks(summaries), nil
}

// GetWork returns the work with the given slug.
func (c *CatalogService) GetWork(ctx context.Context, slug string) (*WorkDetail, error) {
	doc, err := c.store.FindBySlug(ctx, model.TypeWork, slug)
	if err != nil {
		return nil, err
	}
	work, ok := doc.(*model.Work)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s", ErrUnexpectedDocument, doc.DocumentID(), doc.DocumentType())
	}

	names, err := c.instrumentNames(ctx)
	if err != nil {
		return nil, err
	}

	detail := &WorkDetail{
		Work:        work,
		Year:        catalog.FormatCompletionDate(work.CompletionDate, catalog.DefaultCompletionFallback),
		Instruments: instrumentItems(work.Instrumentation, names),
	}
	detail.InstrumentationText = catalog.FormatInstrumentation(catalog.Instrumentation{
		UseAbbreviated: work.UseAbbreviatedInstrumentation,
		Abbreviated:    work.AbbreviatedInstrumentation,
		Items:          detail.Instruments,
	})
	if work.SoundCloudEmbedURL != "" {
		embed := catalog.GetEmbedInfo(work.SoundCloudEmbedURL)
		detail.Embed = &embed
	}

	works, err := c.works(ctx)
	if err != nil {
		return nil, err
	}
	var children []catalog.WorkSummary
	for _, other := range works {
		if other.Parent != nil && other.Parent.Ref == work.ID {
			children = append(children, summarize(other, names))
		}
		if work.Parent != nil && other.ID == work.Parent.Ref {
			parent := summarize(other, names)
			detail.ParentWork = &parent
		}
	}
	detail.Children = catalog.SortWorks(children)

	return detail, nil
}

func (c *CatalogService) ListRecordings(ctx context.Context) ([]*model.Recording, error) {
	docs, err := c.store.ListDocuments(ctx, model.TypeRecording)
	if err != nil {
		return nil, err
	}
	return catalog.SortRecordings(collect[*model.Recording](docs)), nil
}

func (c *CatalogService) ListReviews(ctx context.Context) ([]*model.Review, error) {
	docs, err := c.store.ListDocuments(ctx, model.TypeReview)
	if err != nil {
		return nil, err
	}
	return catalog.SortReviews(collect[*model.Review](docs)), nil
}

func (c *CatalogService) ListPerformances(ctx context.Context) ([]*model.Performance, error) {
	docs, err := c.store.ListDocuments(ctx, model.TypePerformance)
	if err != nil {
		return nil, err
	}
	return catalog.SortPerformances(collect[*model.Performance](docs)), nil
}

func (c *CatalogService) works(ctx context.Context) ([]*model.Work, error) {
	docs, err := c.store.ListDocuments(ctx, model.TypeWork)
	if err != nil {
		return nil, err
	}
	return collect[*model.Work](docs), nil
}

func (c *CatalogService) instrumentNames(ctx context.Context) (map[string]string, error) {
	docs, err := c.store.ListDocuments(ctx, model.TypeInstrument)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(docs))
	for _, instrument := range collect[*model.Instrument](docs) {
		names[instrument.ID] = instrument.Name
	}
	return names, nil
}

func collect[T model.Document](docs []model.Document) []T {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		if typed, ok := doc.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func instrumentItems(entries []model.InstrumentEntry, names map[string]string) []catalog.InstrumentItem {
	items := make([]catalog.InstrumentItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, catalog.InstrumentItem{
			Quantity: entry.Quantity,
			Name:     names[entry.Instrument.Ref],
		})
	}
	return items
}

func summarize(work *model.Work, names map[string]string) catalog.WorkSummary {
	return catalog.WorkSummary{
		ID:             work.ID,
		Title:          work.Title,
		Slug:           work.Slug.Current,
		CompletionDate: work.CompletionDate,
		Year:           catalog.FormatCompletionDate(work.CompletionDate, catalog.DefaultCompletionFallback),
		IsCompleted:    work.IsCompleted,
		Duration:       work.Duration,
		Instrumentation: catalog.FormatInstrumentation(catalog.Instrumentation{
			UseAbbreviated: work.UseAbbreviatedInstrumentation,
			Abbreviated:    work.AbbreviatedInstrumentation,
			Items:          instrumentItems(work.Instrumentation, names),
		}),
		InlineNotes:    work.InlineNotes,
		CommissionInfo: work.CommissionInfo,
	}
}
