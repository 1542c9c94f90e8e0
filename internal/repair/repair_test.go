package repair

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/store"
	"github.com/composersite/catalog/internal/tester"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Stuck-Stuck", "stuck stuck"},
		{"  \"Crossfire\",\n\tfor   orchestra! ", "crossfire for orchestra"},
		{"'Round Midnight", "round midnight"},
		{"“Crossfire”", "“crossfire”"},
		{"Don’t Stop", "don’t stop"},
		{"Alone (again) [2] {b}; x: y?", "alone again 2 b x y"},
		{"a—b–c", "a b c"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestFindWorkReferences(t *testing.T) {
	works := []WorkTitle{
		{ID: "work-1", Title: "Stuck-Stuck"},
		{ID: "work-2", Title: "Go"},
		{ID: "work-3", Title: "Crossfire"},
		{ID: "work-4", Title: "Requiem"},
	}

	got := FindWorkReferences(`The quartet played "STUCK stuck" and then Crossfire; we go home.`, works)
	assert.Equal(t, []string{"work-1", "work-3"}, got)

	assert.Empty(t, FindWorkReferences("nothing relevant", works))
}

func TestFindWorkReferences_TypographicQuotes(t *testing.T) {
	works := []WorkTitle{
		{ID: "work-1", Title: "Don't Stop"},
		{ID: "work-2", Title: "Crossfire"},
	}

	got := FindWorkReferences("They played “Crossfire” but not Don’t Stop.", works)
	assert.Equal(t, []string{"work-2"}, got)
}

func TestFindWorkReferences_SubstringMatchesInsideWords(t *testing.T) {
	works := []WorkTitle{{ID: "work-1", Title: "Ash"}}
	assert.Equal(t, []string{"work-1"}, FindWorkReferences("a splash of color", works))
}

func seed(t *testing.T, docs ...model.Document) store.Store {
	t.Helper()
	tester.Reset()
	s := store.NewGormStore(tester.TestDB())
	require.NoError(t, s.PutDocuments(context.Background(), docs))
	return s
}

func TestRepairer_AddsMissingReference(t *testing.T) {
	ctx := context.Background()
	s := seed(t,
		tester.Work("work-stuck", "Stuck-Stuck", "stuck-stuck"),
		tester.Work("work-other", "Crossfire", "crossfire"),
		tester.Review("review-1", "A night out", "<p>The premiere of <em>stuck stuck</em> was loud.</p>"),
	)

	report, err := NewRepairer(s, false).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated())
	assert.Equal(t, []string{"work-stuck"}, report.Additions[0].WorkIDs)
	assert.Equal(t, []string{"Stuck-Stuck"}, report.Additions[0].WorkTitles)

	doc, err := s.GetDocument(ctx, "review-1")
	require.NoError(t, err)
	review := doc.(*model.Review)
	require.Len(t, review.RelatedWorks, 1)
	assert.Equal(t, "work-stuck", review.RelatedWorks[0].Ref)
	assert.Equal(t, model.TypeReference, review.RelatedWorks[0].Type)
	assert.NotEmpty(t, review.RelatedWorks[0].Key)
}

func TestRepairer_KeepsExistingAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := seed(t,
		tester.Work("work-stuck", "Stuck-Stuck", "stuck-stuck"),
		tester.Work("work-cross", "Crossfire", "crossfire"),
		tester.Review("review-1", "Double bill", "<p>Stuck-Stuck and Crossfire.</p>", "work-cross", "work-gone"),
	)

	report, err := NewRepairer(s, false).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.Updated())
	assert.Equal(t, []string{"work-stuck"}, report.Additions[0].WorkIDs)

	doc, err := s.GetDocument(ctx, "review-1")
	require.NoError(t, err)
	var refs []string
	for _, ref := range doc.(*model.Review).RelatedWorks {
		refs = append(refs, ref.Ref)
	}
	assert.Equal(t, []string{"work-cross", "work-gone", "work-stuck"}, refs)

	require.Len(t, report.Summary, 1)
	assert.Equal(t, 3, report.Summary[0].WorkCount)
	assert.Equal(t, []string{"Crossfire", "Stuck-Stuck"}, report.Summary[0].WorkTitles)

	again, err := NewRepairer(s, false).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Updated())
}

func TestRepairer_DryRunDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	s := seed(t,
		tester.Work("work-stuck", "Stuck-Stuck", "stuck-stuck"),
		tester.Review("review-1", "A night out", "<p>Stuck-Stuck!</p>"),
	)

	report, err := NewRepairer(s, true).Run(ctx)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Updated())

	doc, err := s.GetDocument(ctx, "review-1")
	require.NoError(t, err)
	assert.Empty(t, doc.(*model.Review).RelatedWorks)
}

func TestRepairer_SkipsEmptyReviewsAndSortsSummary(t *testing.T) {
	s := seed(t,
		tester.Work("work-stuck", "Stuck-Stuck", "stuck-stuck"),
		tester.Review("review-b", "Beta", ""),
		tester.Review("review-a", "Alpha", "<p>Nothing to see.</p>"),
	)

	report, err := NewRepairer(s, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Updated())
	require.Len(t, report.Summary, 2)
	assert.Equal(t, "Alpha", report.Summary[0].Title)
	assert.Equal(t, "Beta", report.Summary[1].Title)
}
