package notion

import "github.com/jomei/notionapi"

// RichText is one styled run of text.
type RichText struct {
	PlainText   string
	Href        string
	Annotations Annotations
}

type Annotations struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
}

// Content is the type-specific payload shared by the block types we render.
type Content struct {
	RichText []RichText
	Caption  []RichText
	Language string
	Checked  bool
	URL      string
}

// Block is the render model of a Notion block.
type Block struct {
	ID          string
	Type        string
	HasChildren bool
	Content     Content
	Children    []Block
}

func fromAPI(b notionapi.Block) Block {
	out := Block{
		ID:          b.GetID().String(),
		Type:        string(b.GetType()),
		HasChildren: b.GetHasChildren(),
	}
	c := &out.Content
	switch v := b.(type) {
	case *notionapi.ParagraphBlock:
		c.RichText = runs(v.Paragraph.RichText)
	case *notionapi.Heading1Block:
		c.RichText = runs(v.Heading1.RichText)
	case *notionapi.Heading2Block:
		c.RichText = runs(v.Heading2.RichText)
	case *notionapi.Heading3Block:
		c.RichText = runs(v.Heading3.RichText)
	case *notionapi.BulletedListItemBlock:
		c.RichText = runs(v.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		c.RichText = runs(v.NumberedListItem.RichText)
	case *notionapi.ToDoBlock:
		c.RichText = runs(v.ToDo.RichText)
		c.Checked = v.ToDo.Checked
	case *notionapi.ToggleBlock:
		c.RichText = runs(v.Toggle.RichText)
	case *notionapi.QuoteBlock:
		c.RichText = runs(v.Quote.RichText)
	case *notionapi.CalloutBlock:
		c.RichText = runs(v.Callout.RichText)
	case *notionapi.CodeBlock:
		c.RichText = runs(v.Code.RichText)
		c.Language = v.Code.Language
	case *notionapi.ImageBlock:
		c.Caption = runs(v.Image.Caption)
		switch {
		case v.Image.External != nil && v.Image.External.URL != "":
			c.URL = v.Image.External.URL
		case v.Image.File != nil:
			c.URL = v.Image.File.URL
		}
	case *notionapi.BookmarkBlock:
		c.Caption = runs(v.Bookmark.Caption)
		c.URL = v.Bookmark.URL
	case *notionapi.EmbedBlock:
		c.Caption = runs(v.Embed.Caption)
		c.URL = v.Embed.URL
	}
	return out
}

func runs(in []notionapi.RichText) []RichText {
	if len(in) == 0 {
		return nil
	}
	out := make([]RichText, 0, len(in))
	for _, r := range in {
		rt := RichText{PlainText: r.PlainText, Href: r.Href}
		if a := r.Annotations; a != nil {
			rt.Annotations = Annotations{Bold: a.Bold, Italic: a.Italic, Strikethrough: a.Strikethrough, Code: a.Code}
		}
		out = append(out, rt)
	}
	return out
}
