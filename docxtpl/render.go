package docxtpl

import (
	"fmt"
	"regexp"
	"strings"
)

// renderJob is the mutable state of one Render call: a private copy of the
// package parts plus counters for image parts added along the way.
type renderJob struct {
	parts      map[string][]byte
	order      []string
	imageCount int
}

var (
	placeholderRe = regexp.MustCompile(`\{\{([a-zA-Z_][a-zA-Z0-9_]*)\}\}`)
	blockMarkerRe = regexp.MustCompile(`\{\{[#/][a-zA-Z_][a-zA-Z0-9_]*\}\}`)
)

// renderPart expands repeating blocks and substitutes placeholders in one
// XML part.
func (j *renderJob) renderPart(name string, ctx Context) {
	content := string(j.parts[name])
	content = j.expandBlocks(name, content, ctx)
	content = j.substitute(name, content, ctx)
	// Block markers with no matching collection in the context are a
	// template-authoring error; they disappear rather than leak into the
	// document text.
	content = blockMarkerRe.ReplaceAllString(content, "")
	j.parts[name] = []byte(content)
}

// expandBlocks repeats each {{#key}}...{{/key}} region once per item of the
// []Context bound to key. Inside a region, item values shadow the outer
// context. Blocks do not nest.
func (j *renderJob) expandBlocks(partName, content string, ctx Context) string {
	for key, value := range ctx {
		items, ok := value.([]Context)
		if !ok {
			continue
		}

		openTag := "{{#" + key + "}}"
		closeTag := "{{/" + key + "}}"
		start := strings.Index(content, openTag)
		if start < 0 {
			continue
		}
		end := strings.Index(content[start:], closeTag)
		if end < 0 {
			continue
		}
		end += start

		segment := content[start+len(openTag) : end]
		var repeated strings.Builder
		for _, item := range items {
			merged := ctx.Clone()
			for k, v := range item {
				merged[k] = v
			}
			repeated.WriteString(j.substitute(partName, segment, merged))
		}

		content = content[:start] + repeated.String() + content[end+len(closeTag):]
	}
	return content
}

// substitute replaces every {{key}} placeholder with its rendered value.
// Keys absent from the context render as empty strings.
func (j *renderJob) substitute(partName, content string, ctx Context) string {
	return placeholderRe.ReplaceAllStringFunc(content, func(match string) string {
		key := match[2 : len(match)-2]
		value, ok := ctx[key]
		if !ok {
			return ""
		}

		switch v := value.(type) {
		case nil:
			return ""
		case string:
			return xmlEscape(v)
		case RichText:
			return j.richTextXML(v)
		case InlineImage:
			return j.inlineImageXML(partName, v)
		case []Context:
			// Collections only make sense inside block markers.
			return ""
		default:
			return xmlEscape(fmt.Sprint(v))
		}
	})
}

// richTextXML splices styled runs in place of a placeholder. The
// placeholder's own run is closed, the styled runs inserted, and a fresh
// run opened for whatever text followed in the template. Newlines become
// explicit breaks.
func (j *renderJob) richTextXML(rt RichText) string {
	if rt.Text == "" {
		return ""
	}
	font := rt.Font
	if font == "" {
		font = DefaultRichFont
	}
	size := rt.Size
	if size <= 0 {
		size = DefaultRichSize
	}

	props := fmt.Sprintf(
		`<w:rPr><w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:cs="%[1]s"/><w:sz w:val="%[2]d"/><w:szCs w:val="%[2]d"/></w:rPr>`,
		xmlEscape(font), size)

	var b strings.Builder
	b.WriteString(`</w:t></w:r>`)
	for i, line := range strings.Split(rt.Text, "\n") {
		if i > 0 {
			b.WriteString(`<w:r><w:br/></w:r>`)
		}
		b.WriteString(`<w:r>`)
		b.WriteString(props)
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(xmlEscape(line))
		b.WriteString(`</w:t></w:r>`)
	}
	b.WriteString(`<w:r><w:t xml:space="preserve">`)
	return b.String()
}

func xmlEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
