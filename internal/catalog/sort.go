package catalog

import (
	"sort"

	"github.com/composersite/catalog/internal/model"
)

// WorkSummary is a work as shown in the works listing.
type WorkSummary struct {
	ID              string        `json:"_id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug,omitempty"`
	CompletionDate  string        `json:"completionDate,omitempty"`
	Year            string        `json:"year"`
	IsCompleted     bool          `json:"isCompleted"`
	Duration        string        `json:"duration,omitempty"`
	Instrumentation string        `json:"instrumentation,omitempty"`
	InlineNotes     string        `json:"inlineNotes,omitempty"`
	CommissionInfo  string        `json:"commissionInfo,omitempty"`
	Children        []WorkSummary `json:"children,omitempty"`
}

// SortWorks returns a sorted copy: in-progress works first, then by year,
// most recent first. Undated works follow dated ones within each group.
func SortWorks(works []WorkSummary) []WorkSummary {
	sorted := append([]WorkSummary(nil), works...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsCompleted != b.IsCompleted {
			return !a.IsCompleted
		}
		return GetSortYear(a.CompletionDate) > GetSortYear(b.CompletionDate)
	})
	return sorted
}

// SortReviews returns a copy ordered by review date, newest first.
func SortReviews(reviews []*model.Review) []*model.Review {
	sorted := append([]*model.Review(nil), reviews...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return timestamp(sorted[i].ReviewDate) > timestamp(sorted[j].ReviewDate)
	})
	return sorted
}

// SortRecordings returns a copy with featured recordings first, then by
// release date, newest first.
func SortRecordings(recordings []*model.Recording) []*model.Recording {
	sorted := append([]*model.Recording(nil), recordings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		return timestamp(a.ReleaseDate) > timestamp(b.ReleaseDate)
	})
	return sorted
}

// SortPerformances returns a copy ordered by program date, newest first.
func SortPerformances(performances []*model.Performance) []*model.Performance {
	sorted := append([]*model.Performance(nil), performances...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return timestamp(sorted[i].ProgramDate) > timestamp(sorted[j].ProgramDate)
	})
	return sorted
}
