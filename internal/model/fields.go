package model

const (
	TypeReference = "reference"
	TypeSlug      = "slug"
	TypeObject    = "object"
	TypeFile      = "file"
	TypeImage     = "image"
)

// Reference points at another document by id.
type Reference struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
	Key  string `json:"_key,omitempty"`
}

func NewReference(id string) *Reference {
	return &Reference{Type: TypeReference, Ref: id}
}

// NewKeyedReference returns a reference suitable for an array field.
func NewKeyedReference(id, key string) Reference {
	return Reference{Type: TypeReference, Ref: id, Key: key}
}

type Slug struct {
	Type    string `json:"_type"`
	Current string `json:"current"`
}

func NewSlug(current string) Slug {
	return Slug{Type: TypeSlug, Current: current}
}

// FileAsset is a file or image field. Exports carry a _sanityAsset
// locator; documents read back from the CMS carry an asset reference.
type FileAsset struct {
	Type        string     `json:"_type"`
	Key         string     `json:"_key,omitempty"`
	SanityAsset string     `json:"_sanityAsset,omitempty"`
	Asset       *Reference `json:"asset,omitempty"`
	Title       string     `json:"title,omitempty"`
}

// InstrumentEntry is one row of a work's instrumentation.
type InstrumentEntry struct {
	Type       string    `json:"_type"`
	Key        string    `json:"_key"`
	Instrument Reference `json:"instrument"`
	Quantity   int       `json:"quantity"`
}

// PieceEntry is one work on a recording.
type PieceEntry struct {
	Type       string    `json:"_type"`
	Key        string    `json:"_key"`
	Piece      Reference `json:"piece"`
	Performers string    `json:"performers,omitempty"`
}
