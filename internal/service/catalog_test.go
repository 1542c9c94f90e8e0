package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/store"
	"github.com/composersite/catalog/internal/tester"
)

func seedCatalog(t *testing.T) *CatalogService {
	t.Helper()
	tester.Reset()

	violin := &model.Instrument{Base: model.Base{ID: "instrument-violin", Type: model.TypeInstrument}, Name: "violin"}
	cello := &model.Instrument{Base: model.Base{ID: "instrument-cello", Type: model.TypeInstrument}, Name: "cello"}

	series := tester.Work("work-series", "Series", "series")
	series.IsCompleted = true
	series.CompletionDate = "2010"
	series.SoundCloudEmbedURL = "https://soundcloud.com/someone/series"
	series.Instrumentation = []model.InstrumentEntry{
		{Type: model.TypeObject, Key: "a", Instrument: model.NewKeyedReference(violin.ID, ""), Quantity: 2},
		{Type: model.TypeObject, Key: "b", Instrument: model.NewKeyedReference(cello.ID, ""), Quantity: 1},
	}

	first := tester.Work("work-first", "First", "first")
	first.IsCompleted = true
	first.CompletionDate = "2008"
	first.Parent = model.NewReference(series.ID)

	second := tester.Work("work-second", "Second", "second")
	second.IsCompleted = true
	second.CompletionDate = "2009"
	second.Parent = model.NewReference(series.ID)

	draft := tester.Work("work-draft", "Draft", "draft")

	recent := tester.Work("work-recent", "Recent", "recent")
	recent.IsCompleted = true
	recent.CompletionDate = "2016 – 2017"

	s := store.NewGormStore(tester.TestDB())
	require.NoError(t, s.PutDocuments(context.Background(), []model.Document{
		violin, cello, series, first, second, draft, recent,
		&model.Recording{Base: model.Base{ID: "recording-1", Type: model.TypeRecording}, Title: "Old", ReleaseDate: "2001-01-01"},
		&model.Recording{Base: model.Base{ID: "recording-2", Type: model.TypeRecording}, Title: "New", ReleaseDate: "2020-01-01"},
		&model.Performance{Base: model.Base{ID: "performance-1", Type: model.TypePerformance}, ProgramTitle: "P1", ProgramDate: "2010-06-01"},
		&model.Performance{Base: model.Base{ID: "performance-2", Type: model.TypePerformance}, ProgramTitle: "P2", ProgramDate: "2011-06-01"},
	}))

	return NewCatalogService(s)
}

func TestCatalogService_ListWorks(t *testing.T) {
	service := seedCatalog(t)

	works, err := service.ListWorks(context.Background())
	require.NoError(t, err)

	var titles []string
	for _, work := range works {
		titles = append(titles, work.Title)
	}
	assert.Equal(t, []string{"Draft", "Recent", "Series"}, titles)

	assert.Equal(t, "in progress", works[0].Year)
	assert.Equal(t, "2016 – 2017", works[1].Year)

	series := works[2]
	assert.Equal(t, "2 violins, cello", series.Instrumentation)
	require.Len(t, series.Children, 2)
	assert.Equal(t, "Second", series.Children[0].Title)
	assert.Equal(t, "First", series.Children[1].Title)
}

func TestCatalogService_GetWork(t *testing.T) {
	service := seedCatalog(t)

	detail, err := service.GetWork(context.Background(), "series")
	require.NoError(t, err)
	assert.Equal(t, "work-series", detail.ID)
	assert.Equal(t, "2010", detail.Year)
	assert.Equal(t, "2 violins, cello", detail.InstrumentationText)
	require.NotNil(t, detail.Embed)
	assert.Equal(t, "soundcloud", string(detail.Embed.Provider))
	assert.Len(t, detail.Children, 2)
	assert.Nil(t, detail.ParentWork)

	child, err := service.GetWork(context.Background(), "first")
	require.NoError(t, err)
	require.NotNil(t, child.ParentWork)
	assert.Equal(t, "Series", child.ParentWork.Title)

	_, err = service.GetWork(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrDocumentNotFound)
}

type slugStore struct {
	store.DocumentStore
	doc model.Document
}

func (s slugStore) FindBySlug(context.Context, string, string) (model.Document, error) {
	return s.doc, nil
}

func TestCatalogService_GetWorkWrongType(t *testing.T) {
	tester.Reset()
	recording := &model.Recording{Base: model.Base{ID: "recording-1", Type: model.TypeRecording}, Title: "Coleccion"}
	service := NewCatalogService(slugStore{DocumentStore: store.NewGormStore(tester.TestDB()), doc: recording})

	_, err := service.GetWork(context.Background(), "coleccion")
	assert.ErrorIs(t, err, ErrUnexpectedDocument)
}

func TestCatalogService_Listings(t *testing.T) {
	service := seedCatalog(t)
	ctx := context.Background()

	recordings, err := service.ListRecordings(ctx)
	require.NoError(t, err)
	require.Len(t, recordings, 2)
	assert.Equal(t, "New", recordings[0].Title)

	performances, err := service.ListPerformances(ctx)
	require.NoError(t, err)
	require.Len(t, performances, 2)
	assert.Equal(t, "P2", performances[0].ProgramTitle)

	reviews, err := service.ListReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
