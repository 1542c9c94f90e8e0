// Package export turns legacy CMS rows into documents for the headless CMS.
package export

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/legacy"
	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/richtext"
)

// Exporter assembles documents from a legacy source.
type Exporter struct {
	source     legacy.Source
	assetsPath string
}

func NewExporter(source legacy.Source, assetsPath string) *Exporter {
	return &Exporter{source: source, assetsPath: assetsPath}
}

// Run exports every document type in import order: publishers, instruments,
// works, recordings, reviews, performances, about page, contact page.
func (e *Exporter) Run(ctx context.Context) ([]model.Document, error) {
	assets, err := legacy.LoadAssets(ctx, e.source)
	if err != nil {
		return nil, err
	}

	var docs []model.Document

	logrus.Info("exporting publishers")
	publishers := Publishers()
	for _, p := range publishers {
		docs = append(docs, p)
	}
	logrus.Infof("exported %d publishers", len(publishers))

	instruments, err := e.Instruments(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range instruments {
		docs = append(docs, doc)
	}

	works, err := e.Works(ctx, assets)
	if err != nil {
		return nil, err
	}
	for _, doc := range works {
		docs = append(docs, doc)
	}

	recordings, err := e.Recordings(ctx, assets)
	if err != nil {
		return nil, err
	}
	for _, doc := range recordings {
		docs = append(docs, doc)
	}

	reviews, err := e.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range reviews {
		docs = append(docs, doc)
	}

	performances, err := e.Performances(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range performances {
		docs = append(docs, doc)
	}

	about, err := e.AboutPage(ctx, assets)
	if err != nil {
		return nil, err
	}
	if about != nil {
		docs = append(docs, about)
	}

	contact, err := e.ContactPage(ctx)
	if err != nil {
		return nil, err
	}
	if contact != nil {
		docs = append(docs, contact)
	}

	return docs, nil
}

func (e *Exporter) Instruments(ctx context.Context) ([]*model.Instrument, error) {
	logrus.Info("exporting instruments")

	rows, err := e.source.Query(ctx, legacy.InstrumentsQuery)
	if err != nil {
		return nil, err
	}

	instruments := make([]*model.Instrument, 0, len(rows))
	for _, row := range rows {
		f := legacy.Fields(row, 3)
		if f[2] == "" {
			continue
		}
		instruments = append(instruments, &model.Instrument{
			Base: model.Base{ID: SanityID(model.TypeInstrument, f[1]), Type: model.TypeInstrument},
			Name: f[2],
		})
	}

	logrus.Infof("exported %d instruments", len(instruments))
	return instruments, nil
}

func (e *Exporter) Works(ctx context.Context, assets legacy.AssetsMap) ([]*model.Work, error) {
	logrus.Info("exporting works")

	rows, err := e.source.Query(ctx, legacy.WorksQuery)
	if err != nil {
		return nil, err
	}

	logrus.Debug("fetching instrumentation")
	instrumentation, err := legacy.LoadInstrumentation(ctx, e.source, legacy.InstrumentationQuery)
	if err != nil {
		return nil, err
	}
	logrus.Debug("fetching alternative instrumentation")
	alternative, err := legacy.LoadInstrumentation(ctx, e.source, legacy.AltInstrumentationQuery)
	if err != nil {
		return nil, err
	}
	logrus.Debug("fetching work hierarchy")
	parents, err := legacy.LoadParents(ctx, e.source)
	if err != nil {
		return nil, err
	}

	works := make([]*model.Work, 0, len(rows))
	for _, row := range rows {
		data := legacy.ParseRow(row, legacy.WorkColumns)
		if data.Get("title") == "" {
			continue
		}

		id := data.Get("id")
		work := &model.Work{
			Base:                          model.Base{ID: SanityID(model.TypeWork, data.Get("uid")), Type: model.TypeWork},
			Title:                         data.Get("title"),
			Slug:                          slugFor(data),
			Duration:                      data.Get("duration"),
			IsCompleted:                   data.Flag("completedQ"),
			CompletionDate:                FormatDate(data.Get("completionDates")),
			UseAbbreviatedInstrumentation: data.Flag("abbreviatedInstrumentationQ"),
			AbbreviatedInstrumentation:    data.Get("abbreviatedInstrumentation"),
			HasAlternativeInstrumentation: data.Flag("alternativeInstrumentationQ"),
			InlineNotes:                   data.Get("inlineNotes"),
			SoundCloudEmbedURL:            data.Get("soundCloudEmbedLink"),
			IsOnCD:                        data.Flag("publishedOnCdQ"),
			HasElectronics:                data.Flag("electronicsQ"),
			CommissionInfo:                data.Get("commissionInfo"),
			Dedication:                    data.Get("dedication"),
			IsPublished:                   data.Flag("publishedQ"),
			PublisherLink:                 data.Get("publisherLink"),
			ScoreSampleLink:               data.Get("scoreSampleLink"),
			IsPasswordProtected:           data.Flag("passwordProtectQ"),
			PasswordOverride:              data.Get("passwordOverride"),
			ProgramNote:                   richtext.FromHTML(data.Get("programNote")),
			MiscellaneousNotes:            richtext.FromHTML(data.Get("miscellaneousNotes")),
			ElectronicsDescription:        richtext.FromHTML(data.Get("electronicsDescription")),
			Instrumentation:               instrumentEntries(instrumentation[id]),
			AlternativeInstrumentation:    instrumentEntries(alternative[id]),
		}

		if publisherID, ok := PublisherMap[data.Get("publisher")]; ok {
			work.Publisher = model.NewReference(publisherID)
		}
		if parentUID, ok := parents[id]; ok {
			work.Parent = model.NewReference(SanityID(model.TypeWork, parentUID))
		}

		work.Downloads = e.files(assets.Field(id, "downloads"), false)
		work.PublicDownloads = e.files(assets.Field(id, "publicDownloads"), false)
		if score := e.files(assets.Field(id, "score"), false); len(score) > 0 {
			first := score[0]
			first.Key = ""
			work.Score = &first
		}
		work.Audio = e.titledFiles(assets.Field(id, "audio"))
		work.Videos = e.titledFiles(assets.Field(id, "videos"))
		work.Images = e.files(assets.Field(id, "images"), true)

		works = append(works, work)
	}

	dropDanglingParents(works)

	logrus.Infof("exported %d works", len(works))
	return works, nil
}

// dropDanglingParents clears parent references that do not resolve to an
// exported work.
func dropDanglingParents(works []*model.Work) {
	ids := mapset.NewThreadUnsafeSet[string]()
	for _, work := range works {
		ids.Add(work.ID)
	}

	for _, work := range works {
		if work.Parent == nil || ids.Contains(work.Parent.Ref) {
			continue
		}
		logrus.Warnf("work %s: parent %s is not exported, dropping reference", work.ID, work.Parent.Ref)
		work.Parent = nil
	}
}

func (e *Exporter) Recordings(ctx context.Context, assets legacy.AssetsMap) ([]*model.Recording, error) {
	logrus.Info("exporting recordings")

	rows, err := e.source.Query(ctx, legacy.RecordingsQuery)
	if err != nil {
		return nil, err
	}

	logrus.Debug("fetching recording pieces")
	pieces, err := legacy.LoadPieces(ctx, e.source)
	if err != nil {
		logrus.Warnf("could not fetch pieces matrix: %v", err)
		pieces = map[string][]legacy.Piece{}
	}

	recordings := make([]*model.Recording, 0, len(rows))
	for _, row := range rows {
		data := legacy.ParseRow(row, legacy.RecordingColumns)
		if data.Get("title") == "" {
			continue
		}

		id := data.Get("id")
		recording := &model.Recording{
			Base:          model.Base{ID: SanityID(model.TypeRecording, data.Get("uid")), Type: model.TypeRecording},
			Title:         data.Get("title"),
			Slug:          slugFor(data),
			RecordLabel:   data.Get("recordLabel"),
			CatalogNumber: data.Get("catalogNumber"),
			ReleaseDate:   FormatDate(data.Get("releaseDate")),
			AlbumLink:     data.Get("albumLink"),
			PurchaseLink:  data.Get("purchaseLink"),
			IsFeatured:    data.Flag("featuredQ"),
		}

		if art := e.files(assets.Field(id, "albumArt"), true); len(art) > 0 {
			first := art[0]
			first.Key = ""
			recording.AlbumArt = &first
		}

		for _, piece := range pieces[id] {
			recording.Pieces = append(recording.Pieces, model.PieceEntry{
				Type:       model.TypeObject,
				Key:        richtext.NewKey(),
				Piece:      *model.NewReference(SanityID(model.TypeWork, piece.WorkUID)),
				Performers: piece.Performers,
			})
		}

		recordings = append(recordings, recording)
	}

	logrus.Infof("exported %d recordings", len(recordings))
	return recordings, nil
}

func (e *Exporter) Reviews(ctx context.Context) ([]*model.Review, error) {
	logrus.Info("exporting reviews")

	rows, err := e.source.Query(ctx, legacy.ReviewsQuery)
	if err != nil {
		return nil, err
	}

	logrus.Debug("fetching related works")
	relatedWorks, err := legacy.LoadRelated(ctx, e.source, legacy.RelatedWorksQuery)
	if err != nil {
		logrus.Warnf("could not fetch related works: %v", err)
		relatedWorks = map[string][]string{}
	}
	logrus.Debug("fetching related recordings")
	relatedRecordings, err := legacy.LoadRelated(ctx, e.source, legacy.RelatedRecordingsQuery)
	if err != nil {
		logrus.Warnf("could not fetch related recordings: %v", err)
		relatedRecordings = map[string][]string{}
	}

	reviews := make([]*model.Review, 0, len(rows))
	for _, row := range rows {
		data := legacy.ParseRow(row, legacy.ReviewColumns)
		if data.Get("title") == "" {
			continue
		}

		id := data.Get("id")
		reviews = append(reviews, &model.Review{
			Base:              model.Base{ID: SanityID(model.TypeReview, data.Get("uid")), Type: model.TypeReview},
			Title:             data.Get("title"),
			Slug:              slugFor(data),
			ReviewDate:        FormatDate(data.Get("reviewDate")),
			Source:            data.Get("reviewSource"),
			Author:            data.Get("reviewAuthor"),
			ReviewLink:        data.Get("reviewLink"),
			Body:              richtext.FromHTML(data.Get("body")),
			Excerpt:           richtext.FromHTML(data.Get("excerpt")),
			RelatedWorks:      references(model.TypeWork, relatedWorks[id]),
			RelatedRecordings: references(model.TypeRecording, relatedRecordings[id]),
		})
	}

	logrus.Infof("exported %d reviews", len(reviews))
	return reviews, nil
}

func (e *Exporter) Performances(ctx context.Context) ([]*model.Performance, error) {
	logrus.Info("exporting performances")

	rows, err := e.source.Query(ctx, legacy.PerformancesQuery)
	if err != nil {
		return nil, err
	}

	performances := make([]*model.Performance, 0, len(rows))
	for _, row := range rows {
		data := legacy.ParseRow(row, legacy.PerformanceColumns)
		performances = append(performances, &model.Performance{
			Base:            model.Base{ID: SanityID(model.TypePerformance, data.Get("uid")), Type: model.TypePerformance},
			ProgramTitle:    data.Get("programTitle"),
			Composer:        data.Get("programComposer"),
			Context:         data.Get("programContext"),
			Ensemble:        data.Get("programEnsemblePerformer"),
			Instrumentation: data.Get("programInstrumentation"),
			Personnel:       data.Get("programPersonnel"),
			ProgramWork:     data.Get("programWork"),
			ProgramDate:     FormatDate(data.Get("programDate")),
		})
	}

	logrus.Infof("exported %d performances", len(performances))
	return performances, nil
}

// AboutPage returns nil when the legacy site has no about entry.
func (e *Exporter) AboutPage(ctx context.Context, assets legacy.AssetsMap) (*model.AboutPage, error) {
	logrus.Info("exporting about page")

	rows, err := e.source.Query(ctx, legacy.AboutQuery)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		logrus.Warn("no about page found")
		return nil, nil
	}

	data := legacy.ParseRow(rows[0], legacy.AboutColumns)
	return &model.AboutPage{
		Base:        model.Base{ID: model.AboutPageID, Type: model.TypeAboutPage},
		Title:       orDefault(data.Get("title"), "About"),
		Body:        richtext.FromHTML(data.Get("body")),
		VitalInfo:   richtext.FromHTML(data.Get("vitalInfo")),
		OtherLinks:  richtext.FromHTML(data.Get("otherlinks")),
		StreamEmbed: data.Get("streamEmbed"),
		Images:      e.files(assets.Field(data.Get("id"), "images"), true),
	}, nil
}

// ContactPage returns nil when the legacy site has no contact entry.
func (e *Exporter) ContactPage(ctx context.Context) (*model.ContactPage, error) {
	logrus.Info("exporting contact page")

	rows, err := e.source.Query(ctx, legacy.ContactQuery)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		logrus.Warn("no contact page found")
		return nil, nil
	}

	data := legacy.ParseRow(rows[0], legacy.ContactColumns)
	return &model.ContactPage{
		Base:  model.Base{ID: model.ContactPageID, Type: model.TypeContactPage},
		Title: orDefault(data.Get("title"), "Contact"),
		Body:  richtext.FromHTML(data.Get("body")),
	}, nil
}

func (e *Exporter) files(assets []legacy.Asset, image bool) []model.FileAsset {
	assetType := model.TypeFile
	if image {
		assetType = model.TypeImage
	}

	var files []model.FileAsset
	for _, asset := range assets {
		url, ok := AssetURL(e.assetsPath, asset.Volume, asset.Filename, image)
		if !ok {
			continue
		}
		files = append(files, model.FileAsset{
			Type:        assetType,
			Key:         richtext.NewKey(),
			SanityAsset: url,
		})
	}
	return files
}

func (e *Exporter) titledFiles(assets []legacy.Asset) []model.FileAsset {
	var files []model.FileAsset
	for _, asset := range assets {
		url, ok := AssetURL(e.assetsPath, asset.Volume, asset.Filename, false)
		if !ok {
			continue
		}
		files = append(files, model.FileAsset{
			Type:        model.TypeFile,
			Key:         richtext.NewKey(),
			SanityAsset: url,
			Title:       asset.Title,
		})
	}
	return files
}

func slugFor(data legacy.Record) model.Slug {
	if slug := data.Get("craft_slug"); slug != "" {
		return model.NewSlug(slug)
	}
	return model.NewSlug(Slugify(data.Get("title")))
}

func instrumentEntries(slots []legacy.InstrumentSlot) []model.InstrumentEntry {
	var entries []model.InstrumentEntry
	for _, slot := range slots {
		entries = append(entries, model.InstrumentEntry{
			Type:       model.TypeObject,
			Key:        richtext.NewKey(),
			Instrument: *model.NewReference(SanityID(model.TypeInstrument, slot.InstrumentUID)),
			Quantity:   1,
		})
	}
	return entries
}

func references(docType string, uids []string) []model.Reference {
	var refs []model.Reference
	for _, uid := range uids {
		refs = append(refs, model.NewKeyedReference(SanityID(docType, uid), richtext.NewKey()))
	}
	return refs
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
