package richtext

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FromHTML converts a legacy HTML field into rich-text blocks. Literal "\n"
// sequences left over from the legacy export are turned into real newlines
// and bare text is wrapped in a paragraph. Blocks holding a single
// whitespace-only span are dropped. If the HTML cannot be parsed a single
// plain-text block is returned instead.
func FromHTML(source string) []Block {
	if source == "" {
		return nil
	}

	cleaned := strings.ReplaceAll(source, `\n`, "\n")
	if !strings.HasPrefix(strings.TrimSpace(cleaned), "<") {
		cleaned = "<p>" + cleaned + "</p>"
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(cleaned), body)
	if err != nil {
		logrus.Errorf("error converting HTML: %v", err)
		return PlainText(source)
	}

	c := &converter{}
	for _, n := range nodes {
		c.walk(n)
	}
	c.flush()

	blocks := make([]Block, 0, len(c.blocks))
	for _, block := range c.blocks {
		if block.Key == "" {
			block.Key = NewKey()
		}
		if !keepBlock(block) {
			continue
		}
		blocks = append(blocks, block)
	}

	return blocks
}

// PlainText returns a single normal block holding the tag-stripped text.
func PlainText(source string) []Block {
	text := tagPattern.ReplaceAllString(source, " ")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	return []Block{{
		Type:     TypeBlock,
		Key:      NewKey(),
		Style:    StyleNormal,
		MarkDefs: []MarkDef{},
		Children: []Span{{
			Type:  TypeSpan,
			Key:   NewKey(),
			Text:  text,
			Marks: []string{},
		}},
	}}
}

func keepBlock(block Block) bool {
	if len(block.Children) != 1 {
		return len(block.Children) > 0
	}

	return !blank(block.Children[0].Text)
}

// blank reports whether text holds only Unicode whitespace, literal "\n"
// sequences and zero-width characters.
func blank(text string) bool {
	text = strings.ReplaceAll(text, `\n`, "")
	return strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\u200b' || r == '\ufeff'
	}) == ""
}

// converter walks a parsed fragment and accumulates blocks. Block-level
// elements close the open block; inline elements push marks.
type converter struct {
	blocks []Block
	cur    *Block
	marks  []string
	lists  []string
	quote  int
	inItem int
}

func (c *converter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		c.text(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title:
		return
	case atom.Br:
		c.appendText("\n")
	case atom.P, atom.Div, atom.Pre, atom.Section, atom.Article:
		if c.inItem > 0 {
			c.children(n)
			return
		}
		c.block(n, c.paragraphStyle())
	case atom.H1, atom.H2:
		c.block(n, "h2")
	case atom.H3:
		c.block(n, "h3")
	case atom.H4, atom.H5, atom.H6:
		c.block(n, "h4")
	case atom.Blockquote:
		c.flush()
		c.quote++
		c.children(n)
		c.flush()
		c.quote--
	case atom.Ul, atom.Ol:
		kind := ListBullet
		if n.DataAtom == atom.Ol {
			kind = ListNumber
		}
		c.flush()
		c.lists = append(c.lists, kind)
		c.children(n)
		c.flush()
		c.lists = c.lists[:len(c.lists)-1]
	case atom.Li:
		c.flush()
		c.inItem++
		c.open(StyleNormal)
		c.children(n)
		c.flush()
		c.inItem--
	case atom.Strong, atom.B:
		c.mark(n, MarkStrong)
	case atom.Em, atom.I:
		c.mark(n, MarkEm)
	case atom.U:
		c.mark(n, MarkUnderline)
	case atom.A:
		href := attr(n, "href")
		if href == "" {
			c.children(n)
			return
		}
		c.ensure()
		key := NewKey()
		c.cur.MarkDefs = append(c.cur.MarkDefs, MarkDef{Type: TypeLink, Key: key, Href: href})
		c.mark(n, key)
	default:
		c.children(n)
	}
}

func (c *converter) children(n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}
}

func (c *converter) block(n *html.Node, style string) {
	c.flush()
	c.open(style)
	c.children(n)
	c.flush()
}

func (c *converter) mark(n *html.Node, mark string) {
	c.marks = append(c.marks, mark)
	c.children(n)
	c.marks = c.marks[:len(c.marks)-1]
}

func (c *converter) paragraphStyle() string {
	if c.quote > 0 {
		return StyleBlockquote
	}
	return StyleNormal
}

func (c *converter) open(style string) {
	c.cur = &Block{
		Type:     TypeBlock,
		Key:      NewKey(),
		Style:    style,
		MarkDefs: []MarkDef{},
		Children: []Span{},
	}
	if c.inItem > 0 {
		c.cur.ListItem = ListBullet
		if len(c.lists) > 0 {
			c.cur.ListItem = c.lists[len(c.lists)-1]
		}
		c.cur.Level = max(1, len(c.lists))
	}
}

func (c *converter) ensure() {
	if c.cur == nil {
		c.open(c.paragraphStyle())
	}
}

func (c *converter) text(data string) {
	collapsed := whitespacePattern.ReplaceAllString(data, " ")
	if c.cur == nil {
		if strings.TrimSpace(collapsed) == "" {
			return
		}
		c.open(c.paragraphStyle())
	}

	if c.atLineStart() {
		collapsed = strings.TrimLeft(collapsed, " ")
	}
	if collapsed == "" {
		return
	}
	c.appendText(collapsed)
}

// atLineStart reports whether the open block has no text yet or its text
// ends with a space or line break.
func (c *converter) atLineStart() bool {
	if c.cur == nil || len(c.cur.Children) == 0 {
		return true
	}
	last := c.cur.Children[len(c.cur.Children)-1].Text
	return last == "" || strings.HasSuffix(last, " ") || strings.HasSuffix(last, "\n")
}

func (c *converter) appendText(text string) {
	c.ensure()

	marks := append([]string{}, c.marks...)
	if n := len(c.cur.Children); n > 0 && sameMarks(c.cur.Children[n-1].Marks, marks) {
		c.cur.Children[n-1].Text += text
		return
	}

	c.cur.Children = append(c.cur.Children, Span{
		Type:  TypeSpan,
		Key:   NewKey(),
		Text:  text,
		Marks: marks,
	})
}

func (c *converter) flush() {
	if c.cur == nil {
		return
	}
	block := *c.cur
	c.cur = nil

	if n := len(block.Children); n > 0 {
		block.Children[n-1].Text = strings.TrimRight(block.Children[n-1].Text, " ")
	}

	children := make([]Span, 0, len(block.Children))
	for _, span := range block.Children {
		if span.Text != "" {
			children = append(children, span)
		}
	}
	if len(children) == 0 {
		children = append(children, Span{Type: TypeSpan, Key: NewKey(), Text: "", Marks: []string{}})
	}
	block.Children = children

	c.blocks = append(c.blocks, block)
}

func sameMarks(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
