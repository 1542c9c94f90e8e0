package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spanTexts(block Block) []string {
	texts := make([]string, 0, len(block.Children))
	for _, span := range block.Children {
		texts = append(texts, span.Text)
	}
	return texts
}

func TestFromHTML_Empty(t *testing.T) {
	assert.Nil(t, FromHTML(""))
}

func TestFromHTML_BareTextIsWrapped(t *testing.T) {
	blocks := FromHTML("Premiered by the Arditti Quartet.")
	require.Len(t, blocks, 1)

	assert.Equal(t, TypeBlock, blocks[0].Type)
	assert.Equal(t, StyleNormal, blocks[0].Style)
	assert.Equal(t, []string{"Premiered by the Arditti Quartet."}, spanTexts(blocks[0]))
}

func TestFromHTML_Paragraphs(t *testing.T) {
	blocks := FromHTML(`<p>First   paragraph.</p>\n<p>Second
paragraph.</p>`)
	require.Len(t, blocks, 2)

	assert.Equal(t, []string{"First paragraph."}, spanTexts(blocks[0]))
	assert.Equal(t, []string{"Second paragraph."}, spanTexts(blocks[1]))
}

func TestFromHTML_DropsWhitespaceOnlyBlocks(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"ascii", `<p>Kept</p><p> </p><p>\n</p><p><br></p>`},
		{"non-breaking space", `<p>&nbsp;</p><p>Kept</p>`},
		{"repeated non-breaking space", `<p>Kept</p><p>&nbsp; &nbsp;</p>`},
		{"zero width space", `<p>&#8203;</p><p>Kept</p>`},
		{"ideographic space", "<p>\u3000</p><p>Kept</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := FromHTML(tt.html)
			require.Len(t, blocks, 1)
			assert.Equal(t, []string{"Kept"}, spanTexts(blocks[0]))
		})
	}
}

func TestFromHTML_KeepsTextAroundNonBreakingSpace(t *testing.T) {
	blocks := FromHTML(`<p>Op.&nbsp;12</p>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"Op.\u00a012"}, spanTexts(blocks[0]))
}

func TestFromHTML_Headings(t *testing.T) {
	blocks := FromHTML(`<h1>One</h1><h3>Three</h3><h6>Six</h6>`)
	require.Len(t, blocks, 3)

	assert.Equal(t, "h2", blocks[0].Style)
	assert.Equal(t, "h3", blocks[1].Style)
	assert.Equal(t, "h4", blocks[2].Style)
}

func TestFromHTML_Decorators(t *testing.T) {
	blocks := FromHTML(`<p>A <strong>bold</strong> and <em>quiet</em> <u>line</u></p>`)
	require.Len(t, blocks, 1)

	children := blocks[0].Children
	require.Len(t, children, 6)
	assert.Equal(t, "A ", children[0].Text)
	assert.Empty(t, children[0].Marks)
	assert.Equal(t, "bold", children[1].Text)
	assert.Equal(t, []string{MarkStrong}, children[1].Marks)
	assert.Equal(t, "quiet", children[3].Text)
	assert.Equal(t, []string{MarkEm}, children[3].Marks)
	assert.Equal(t, "line", children[5].Text)
	assert.Equal(t, []string{MarkUnderline}, children[5].Marks)
}

func TestFromHTML_Links(t *testing.T) {
	blocks := FromHTML(`<p>Published by <a href="https://www.presser.com/">Presser</a>.</p>`)
	require.Len(t, blocks, 1)

	block := blocks[0]
	require.Len(t, block.MarkDefs, 1)
	def := block.MarkDefs[0]
	assert.Equal(t, TypeLink, def.Type)
	assert.Equal(t, "https://www.presser.com/", def.Href)

	require.Len(t, block.Children, 3)
	assert.Equal(t, "Presser", block.Children[1].Text)
	assert.Equal(t, []string{def.Key}, block.Children[1].Marks)
}

func TestFromHTML_Lists(t *testing.T) {
	blocks := FromHTML(`<ul><li>flute</li><li>clarinet</li></ul><ol><li>first</li></ol>`)
	require.Len(t, blocks, 3)

	assert.Equal(t, ListBullet, blocks[0].ListItem)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, []string{"clarinet"}, spanTexts(blocks[1]))
	assert.Equal(t, ListNumber, blocks[2].ListItem)
}

func TestFromHTML_Blockquote(t *testing.T) {
	blocks := FromHTML(`<blockquote><p>A stunning work.</p></blockquote>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, StyleBlockquote, blocks[0].Style)
}

func TestFromHTML_LineBreak(t *testing.T) {
	blocks := FromHTML(`<p>line one<br>line two</p>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"line one\nline two"}, spanTexts(blocks[0]))
}

func TestFromHTML_KeysAreUnique(t *testing.T) {
	blocks := FromHTML(`<p>a</p><p>b</p><p>c</p>`)
	seen := map[string]bool{}
	for _, block := range blocks {
		assert.Len(t, block.Key, 12)
		assert.False(t, seen[block.Key])
		seen[block.Key] = true
		for _, span := range block.Children {
			assert.NotEmpty(t, span.Key)
		}
	}
}

func TestPlainText(t *testing.T) {
	blocks := PlainText("<p>Hello   <b>there</b></p>\n<div>again</div>")
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"Hello there again"}, spanTexts(blocks[0]))
	assert.Equal(t, TypeBlock, blocks[0].Type)
	assert.Equal(t, StyleNormal, blocks[0].Style)
	assert.NotEmpty(t, blocks[0].Key)
	assert.Empty(t, blocks[0].MarkDefs)
	assert.NotEmpty(t, blocks[0].Children[0].Key)
	assert.Empty(t, blocks[0].Children[0].Marks)
}

func TestExtractText(t *testing.T) {
	blocks := FromHTML(`<p>The <em>Stuck-Stuck</em> premiere</p><p>was loud.</p>`)
	assert.Equal(t, "The  Stuck-Stuck  premiere was loud.", ExtractText(blocks))

	assert.Equal(t, "", ExtractText(nil))
}
