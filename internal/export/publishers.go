package export

import "github.com/composersite/catalog/internal/model"

// PublisherMap maps the legacy publisher dropdown value to a publisher id.
var PublisherMap = map[string]string{
	"theodorepresserinc":   "publisher-theodore-presser",
	"projectschottnewyork": "publisher-schott",
	"seesawMusic":          "publisher-seesaw",
}

// Publishers returns the fixed publisher table.
func Publishers() []*model.Publisher {
	return []*model.Publisher{
		{
			Base:    model.Base{ID: "publisher-theodore-presser", Type: model.TypePublisher},
			Name:    "Theodore Presser",
			Website: "https://www.presser.com/",
		},
		{
			Base:    model.Base{ID: "publisher-schott", Type: model.TypePublisher},
			Name:    "Project Schott New York",
			Website: "https://en.schott-music.com/",
		},
		{
			Base:    model.Base{ID: "publisher-seesaw", Type: model.TypePublisher},
			Name:    "Seesaw Music",
			Website: "https://www.seesawmusic.com/",
		},
	}
}
