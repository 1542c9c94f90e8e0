// Package repair links reviews to the works their text mentions.
package repair

import (
	"context"
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/richtext"
	"github.com/composersite/catalog/internal/store"
)

const relatedWorksField = "relatedWorks"

// Addition records the works appended to one review.
type Addition struct {
	ReviewID    string
	ReviewTitle string
	WorkIDs     []string
	WorkTitles  []string
}

// ReviewSummary is the state of a review after the pass.
type ReviewSummary struct {
	Title      string
	WorkCount  int
	WorkTitles []string
}

type Report struct {
	DryRun    bool
	Reviews   int
	Works     int
	Skipped   int
	Additions []Addition
	Summary   []ReviewSummary
}

// Updated is the number of reviews that gained references.
func (r *Report) Updated() int {
	return len(r.Additions)
}

type Repairer struct {
	store  store.DocumentStore
	dryRun bool
}

func NewRepairer(s store.DocumentStore, dryRun bool) *Repairer {
	return &Repairer{store: s, dryRun: dryRun}
}

// Run scans every review for work titles and appends the missing work
// references. Existing references are never removed.
func (r *Repairer) Run(ctx context.Context) (*Report, error) {
	reviews, err := r.reviews(ctx)
	if err != nil {
		return nil, err
	}
	works, err := r.works(ctx)
	if err != nil {
		return nil, err
	}
	logrus.Infof("found %d reviews and %d works", len(reviews), len(works))

	titles := make(map[string]string, len(works))
	for _, work := range works {
		titles[work.ID] = work.Title
	}

	report := &Report{DryRun: r.dryRun, Reviews: len(reviews), Works: len(works)}
	for _, review := range reviews {
		content := richtext.ExtractText(review.Body) + " " + richtext.ExtractText(review.Excerpt)
		if strings.TrimSpace(content) == "" {
			logrus.Debugf("review %q has no content, skipping", review.Title)
			report.Skipped++
			continue
		}

		current := mapset.NewThreadUnsafeSet[string]()
		for _, ref := range review.RelatedWorks {
			current.Add(ref.Ref)
		}

		var added []string
		for _, id := range FindWorkReferences(content, works) {
			if current.Add(id) {
				added = append(added, id)
			}
		}
		if len(added) == 0 {
			logrus.Debugf("review %q: no new work references (%d existing)", review.Title, len(review.RelatedWorks))
			continue
		}

		addition := Addition{ReviewID: review.ID, ReviewTitle: review.Title, WorkIDs: added}
		refs := append([]model.Reference{}, review.RelatedWorks...)
		for _, id := range added {
			addition.WorkTitles = append(addition.WorkTitles, titles[id])
			refs = append(refs, model.NewKeyedReference(id, richtext.NewKey()))
		}
		logrus.Infof("review %q: %d new work reference(s): %s", review.Title, len(added), strings.Join(addition.WorkTitles, ", "))

		if !r.dryRun {
			if err := r.store.SetReferences(ctx, review.ID, relatedWorksField, refs); err != nil {
				return nil, fmt.Errorf("updating review %s: %w", review.ID, err)
			}
		}
		review.RelatedWorks = refs
		report.Additions = append(report.Additions, addition)
	}

	report.Summary = summarize(reviews, titles)
	return report, nil
}

func (r *Repairer) reviews(ctx context.Context) ([]*model.Review, error) {
	docs, err := r.store.ListDocuments(ctx, model.TypeReview)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}

	reviews := make([]*model.Review, 0, len(docs))
	for _, doc := range docs {
		if review, ok := doc.(*model.Review); ok {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (r *Repairer) works(ctx context.Context) ([]WorkTitle, error) {
	docs, err := r.store.ListDocuments(ctx, model.TypeWork)
	if err != nil {
		return nil, fmt.Errorf("listing works: %w", err)
	}

	works := make([]WorkTitle, 0, len(docs))
	for _, doc := range docs {
		if work, ok := doc.(*model.Work); ok {
			works = append(works, WorkTitle{ID: work.ID, Title: work.Title})
		}
	}
	return works, nil
}

// summarize lists reviews by title. References to missing works count
// towards WorkCount but have no title.
func summarize(reviews []*model.Review, titles map[string]string) []ReviewSummary {
	summary := make([]ReviewSummary, 0, len(reviews))
	for _, review := range reviews {
		entry := ReviewSummary{Title: review.Title, WorkCount: len(review.RelatedWorks)}
		for _, ref := range review.RelatedWorks {
			if title, ok := titles[ref.Ref]; ok {
				entry.WorkTitles = append(entry.WorkTitles, title)
			}
		}
		summary = append(summary, entry)
	}

	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Title < summary[j].Title
	})
	return summary
}
