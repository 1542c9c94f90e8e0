package model

import (
	"github.com/composersite/catalog/internal/richtext"
)

type Publisher struct {
	Base
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

type Instrument struct {
	Base
	Name string `json:"name"`
}

// Work is a composition. Boolean flags are always present.
type Work struct {
	Base
	Title                         string            `json:"title"`
	Slug                          Slug              `json:"slug"`
	Duration                      string            `json:"duration,omitempty"`
	IsCompleted                   bool              `json:"isCompleted"`
	CompletionDate                string            `json:"completionDate,omitempty"`
	UseAbbreviatedInstrumentation bool              `json:"useAbbreviatedInstrumentation"`
	AbbreviatedInstrumentation    string            `json:"abbreviatedInstrumentation,omitempty"`
	HasAlternativeInstrumentation bool              `json:"hasAlternativeInstrumentation"`
	InlineNotes                   string            `json:"inlineNotes,omitempty"`
	SoundCloudEmbedURL            string            `json:"soundCloudEmbedUrl,omitempty"`
	IsOnCD                        bool              `json:"isOnCd"`
	HasElectronics                bool              `json:"hasElectronics"`
	CommissionInfo                string            `json:"commissionInfo,omitempty"`
	Dedication                    string            `json:"dedication,omitempty"`
	IsPublished                   bool              `json:"isPublished"`
	PublisherLink                 string            `json:"publisherLink,omitempty"`
	ScoreSampleLink               string            `json:"scoreSampleLink,omitempty"`
	IsPasswordProtected           bool              `json:"isPasswordProtected"`
	PasswordOverride              string            `json:"passwordOverride,omitempty"`
	ProgramNote                   []richtext.Block  `json:"programNote,omitempty"`
	MiscellaneousNotes            []richtext.Block  `json:"miscellaneousNotes,omitempty"`
	ElectronicsDescription        []richtext.Block  `json:"electronicsDescription,omitempty"`
	Publisher                     *Reference        `json:"publisher,omitempty"`
	Parent                        *Reference        `json:"parent,omitempty"`
	Instrumentation               []InstrumentEntry `json:"instrumentation,omitempty"`
	AlternativeInstrumentation    []InstrumentEntry `json:"alternativeInstrumentation,omitempty"`
	Downloads                     []FileAsset       `json:"downloads,omitempty"`
	PublicDownloads               []FileAsset       `json:"publicDownloads,omitempty"`
	Score                         *FileAsset        `json:"score,omitempty"`
	Audio                         []FileAsset       `json:"audio,omitempty"`
	Videos                        []FileAsset       `json:"videos,omitempty"`
	Images                        []FileAsset       `json:"images,omitempty"`
}

type Recording struct {
	Base
	Title         string       `json:"title"`
	Slug          Slug         `json:"slug"`
	RecordLabel   string       `json:"recordLabel,omitempty"`
	CatalogNumber string       `json:"catalogNumber,omitempty"`
	ReleaseDate   string       `json:"releaseDate,omitempty"`
	AlbumLink     string       `json:"albumLink,omitempty"`
	PurchaseLink  string       `json:"purchaseLink,omitempty"`
	IsFeatured    bool         `json:"isFeatured"`
	AlbumArt      *FileAsset   `json:"albumArt,omitempty"`
	Pieces        []PieceEntry `json:"pieces,omitempty"`
}

type Review struct {
	Base
	Title             string           `json:"title"`
	Slug              Slug             `json:"slug"`
	ReviewDate        string           `json:"reviewDate,omitempty"`
	Source            string           `json:"source,omitempty"`
	Author            string           `json:"author,omitempty"`
	ReviewLink        string           `json:"reviewLink,omitempty"`
	Body              []richtext.Block `json:"body,omitempty"`
	Excerpt           []richtext.Block `json:"excerpt,omitempty"`
	RelatedWorks      []Reference      `json:"relatedWorks,omitempty"`
	RelatedRecordings []Reference      `json:"relatedRecordings,omitempty"`
}

// Performance is a programming entry. It has no title or slug.
type Performance struct {
	Base
	ProgramTitle    string `json:"programTitle,omitempty"`
	Composer        string `json:"composer,omitempty"`
	Context         string `json:"context,omitempty"`
	Ensemble        string `json:"ensemble,omitempty"`
	Instrumentation string `json:"instrumentation,omitempty"`
	Personnel       string `json:"personnel,omitempty"`
	ProgramWork     string `json:"programWork,omitempty"`
	ProgramDate     string `json:"programDate,omitempty"`
}

type AboutPage struct {
	Base
	Title       string           `json:"title"`
	Body        []richtext.Block `json:"body,omitempty"`
	VitalInfo   []richtext.Block `json:"vitalInfo,omitempty"`
	OtherLinks  []richtext.Block `json:"otherLinks,omitempty"`
	StreamEmbed string           `json:"streamEmbed,omitempty"`
	Images      []FileAsset      `json:"images,omitempty"`
}

type ContactPage struct {
	Base
	Title string           `json:"title"`
	Body  []richtext.Block `json:"body,omitempty"`
}

// SiteSettings is the singleton holding site-wide options.
type SiteSettings struct {
	Base
	Title                string `json:"title,omitempty"`
	DefaultAssetPassword string `json:"defaultAssetPassword,omitempty"`
}

const (
	AboutPageID    = "aboutPage"
	ContactPageID  = "contactPage"
	SiteSettingsID = "siteSettings"
)
