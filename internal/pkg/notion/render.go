package notion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/folio-space/core/internal/pkg/sanitize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts blocks to sanitized HTML.
func RenderHTML(blocks []Block) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(blocks)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return sanitize.HTML(buf.String()), nil
}

// Markdown converts blocks to GitHub-flavoured markdown. Unsupported block
// types are skipped.
func Markdown(blocks []Block) string {
	var b strings.Builder
	writeBlocks(&b, blocks, "")
	return strings.TrimSpace(b.String()) + "\n"
}

func writeBlocks(b *strings.Builder, blocks []Block, indent string) {
	inList := false
	number := 0
	for _, blk := range blocks {
		list := isListItem(blk.Type)
		if inList && !list {
			b.WriteString("\n")
		}
		if blk.Type != "numbered_list_item" {
			number = 0
		}
		inList = list

		c := blk.Content
		text := inline(c.RichText)
		switch blk.Type {
		case "paragraph":
			if text != "" {
				b.WriteString(indent + text + "\n\n")
			}
		case "heading_1", "heading_2", "heading_3":
			level := int(blk.Type[len(blk.Type)-1] - '0')
			b.WriteString(indent + strings.Repeat("#", level) + " " + text + "\n\n")
		case "bulleted_list_item":
			b.WriteString(indent + "- " + text + "\n")
			writeBlocks(b, blk.Children, indent+"  ")
		case "numbered_list_item":
			number++
			b.WriteString(fmt.Sprintf("%s%d. %s\n", indent, number, text))
			writeBlocks(b, blk.Children, indent+"   ")
		case "to_do":
			box := "☐"
			if c.Checked {
				box = "☑"
			}
			b.WriteString(indent + "- " + box + " " + text + "\n")
			writeBlocks(b, blk.Children, indent+"  ")
		case "quote", "callout":
			b.WriteString(indent + "> " + text + "\n")
			for _, line := range strings.Split(strings.TrimSpace(Markdown(blk.Children)), "\n") {
				if line != "" {
					b.WriteString(indent + "> " + line + "\n")
				}
			}
			b.WriteString("\n")
		case "toggle":
			b.WriteString(indent + text + "\n\n")
			writeBlocks(b, blk.Children, indent)
		case "code":
			b.WriteString(indent + "```" + c.Language + "\n")
			b.WriteString(plain(c.RichText) + "\n")
			b.WriteString(indent + "```\n\n")
		case "divider":
			b.WriteString(indent + "---\n\n")
		case "image":
			if u := c.URL; u != "" {
				b.WriteString(indent + "![" + escape(plain(c.Caption)) + "](" + u + ")\n\n")
			}
		case "bookmark", "embed":
			if c.URL != "" {
				label := plain(c.Caption)
				if label == "" {
					label = c.URL
				}
				b.WriteString(indent + "[" + escape(label) + "](" + c.URL + ")\n\n")
			}
		}
	}
	if inList {
		b.WriteString("\n")
	}
}

func isListItem(t string) bool {
	return t == "bulleted_list_item" || t == "numbered_list_item" || t == "to_do"
}

func plain(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return b.String()
}

func inline(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(styled(r))
	}
	return b.String()
}

// styled wraps the run's trimmed text in markers, keeping outer spaces outside
// so emphasis delimiters stay flanking.
func styled(r RichText) string {
	text := r.PlainText
	core := strings.TrimSpace(text)
	if core == "" {
		return text
	}
	lead := text[:strings.Index(text, core)]
	trail := text[len(lead)+len(core):]

	a := r.Annotations
	if a.Code {
		core = "`" + core + "`"
	} else {
		core = escape(core)
	}
	if a.Bold {
		core = "**" + core + "**"
	}
	if a.Italic {
		core = "*" + core + "*"
	}
	if a.Strikethrough {
		core = "~~" + core + "~~"
	}
	if r.Href != "" {
		core = "[" + core + "](" + r.Href + ")"
	}
	return lead + core + trail
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`, "~", `\~`,
)

func escape(s string) string {
	return mdEscaper.Replace(s)
}
