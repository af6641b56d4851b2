// Package render turns typed post sections into sanitized display HTML.
// Rendering is a pure mapping: the same section always yields the same
// output, and nothing here touches shared mutable state.
package render

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/devfolio/internal/db"
	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()

	codeRunPattern = regexp.MustCompile(`<code>([\s\S]*?)</code>`)
)

// SanitizeHTML strips scripts, event handlers and any other markup outside
// the sanitizer's safe subset from author-supplied content.
func SanitizeHTML(content string) string {
	return sanitizer.Sanitize(content)
}

// StripTags removes all markup, leaving plain text.
func StripTags(content string) string {
	return stripper.Sanitize(content)
}

// Section renders one content block. Dispatch is on the section type; an
// unrecognized type falls back to the plain text path instead of failing.
func Section(sec db.Section) template.HTML {
	var b strings.Builder

	switch sec.Type {
	case db.SectionTypeImage:
		renderImages(&b, sec)
	case db.SectionTypeLyric:
		renderLyric(&b, sec)
	case db.SectionTypeDivider:
		renderDivider(&b, sec)
	case db.SectionTypeIntroduction, db.SectionTypeDisclaimer, db.SectionTypeFootnote:
		renderProse(&b, sec, string(sec.Type), false)
	default:
		// Covers SectionTypeText and any unknown tag.
		renderProse(&b, sec, string(db.SectionTypeText), true)
	}

	return template.HTML(b.String())
}

// Translation renders a whole translation: title, sections in document
// order, then references when present.
func Translation(t db.Translation) template.HTML {
	var b strings.Builder

	if title := strings.TrimSpace(t.Title); title != "" {
		b.WriteString(`<h1 class="post-title">`)
		b.WriteString(template.HTMLEscapeString(title))
		b.WriteString("</h1>\n")
	}

	for _, sec := range t.Sections {
		b.WriteString(string(Section(sec)))
	}

	if len(t.References) > 0 {
		b.WriteString(`<ul class="post-references">`)
		for _, ref := range t.References {
			b.WriteString(`<li><a href="`)
			b.WriteString(template.HTMLEscapeString(ref.URL))
			b.WriteString(`" rel="noopener">`)
			b.WriteString(template.HTMLEscapeString(ref.Title))
			b.WriteString("</a></li>")
		}
		b.WriteString("</ul>\n")
	}

	return template.HTML(b.String())
}

func renderImages(b *strings.Builder, sec db.Section) {
	// An image section with no entries renders nothing at all.
	rendered := false
	for _, img := range sec.Images {
		src := strings.TrimSpace(img.Src)
		if src == "" {
			continue
		}
		if !rendered {
			writeSectionTitle(b, sec.Title)
			b.WriteString(`<div class="section-images">`)
			rendered = true
		}
		b.WriteString(`<figure><img src="`)
		b.WriteString(template.HTMLEscapeString(src))
		b.WriteString(`" alt="`)
		b.WriteString(template.HTMLEscapeString(img.AltText))
		b.WriteString(`">`)
		if alt := strings.TrimSpace(img.AltText); alt != "" {
			b.WriteString("<figcaption>")
			b.WriteString(template.HTMLEscapeString(alt))
			b.WriteString("</figcaption>")
		}
		b.WriteString("</figure>")
	}
	if rendered {
		b.WriteString("</div>\n")
	}
}

func renderLyric(b *strings.Builder, sec db.Section) {
	b.WriteString(`<div class="section-lyric">`)
	if title := strings.TrimSpace(sec.Title); title != "" {
		b.WriteString(`<h4 class="lyric-title">`)
		b.WriteString(template.HTMLEscapeString(title))
		b.WriteString("</h4>")
	}
	// Line breaks are literal in lyrics; no paragraph re-flow.
	safe := SanitizeHTML(sec.Content)
	safe = strings.ReplaceAll(safe, "\r\n", "\n")
	safe = strings.ReplaceAll(safe, "\n", "<br>")
	b.WriteString(safe)
	b.WriteString("</div>\n")
}

func renderDivider(b *strings.Builder, sec db.Section) {
	b.WriteString(`<div class="section-divider">`)
	if title := strings.TrimSpace(sec.Title); title != "" {
		b.WriteString(`<span class="divider-title">`)
		b.WriteString(template.HTMLEscapeString(title))
		b.WriteString("</span>")
	}
	b.WriteString("<hr></div>\n")
}

func renderProse(b *strings.Builder, sec db.Section, class string, highlight bool) {
	writeSectionTitle(b, sec.Title)
	b.WriteString(`<div class="section-`)
	b.WriteString(template.HTMLEscapeString(class))
	b.WriteString(`">`)

	safe := SanitizeHTML(sec.Content)
	if highlight {
		safe = highlightCodeRuns(safe)
	}
	b.WriteString(safe)
	b.WriteString("</div>\n")
}

func writeSectionTitle(b *strings.Builder, title string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return
	}
	b.WriteString(`<h3 class="section-title">`)
	b.WriteString(template.HTMLEscapeString(trimmed))
	b.WriteString("</h3>")
}

// highlightCodeRuns tags inline code runs with a language class so the
// frontend highlighter can pick them up. Runs after sanitization and is
// presentation-only: untagged code still renders as plain text.
func highlightCodeRuns(safe string) string {
	return codeRunPattern.ReplaceAllString(safe, `<code class="language-javascript">$1</code>`)
}
