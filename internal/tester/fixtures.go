package tester

import (
	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/richtext"
)

// Work returns a minimal work document.
func Work(id, title, slug string) *model.Work {
	return &model.Work{
		Base:  model.Base{ID: id, Type: model.TypeWork},
		Title: title,
		Slug:  model.NewSlug(slug),
	}
}

// Review returns a review whose body is the given HTML.
func Review(id, title, bodyHTML string, related ...string) *model.Review {
	review := &model.Review{
		Base:  model.Base{ID: id, Type: model.TypeReview},
		Title: title,
		Slug:  model.NewSlug(id),
		Body:  richtext.FromHTML(bodyHTML),
	}
	for _, ref := range related {
		review.RelatedWorks = append(review.RelatedWorks, model.NewKeyedReference(ref, richtext.NewKey()))
	}
	return review
}

// Settings returns the site settings singleton.
func Settings(defaultPassword string) *model.SiteSettings {
	return &model.SiteSettings{
		Base:                 model.Base{ID: model.SiteSettingsID, Type: model.TypeSiteSettings},
		DefaultAssetPassword: defaultPassword,
	}
}
