// Package docxtpl renders DOCX document templates: it substitutes
// {{placeholder}} tokens in the document XML with plain text, styled rich
// text, inline images, and repeating blocks, and locates template files for
// a given style and document type.
//
// Placeholder resolution is total: a key missing from the context renders
// as an empty string, and image values carry their own diagnostic text when
// the asset could not be resolved. A template-authoring mistake degrades
// the one document, never the batch.
package docxtpl

// Context maps template placeholder names to resolved values. Valid value
// types are string, RichText, InlineImage, and []Context for repeating
// blocks; anything else is rendered via fmt.Sprint.
type Context map[string]any

// Clone returns a shallow copy, used to branch a shared company context
// into per-person contexts without cross-document leakage.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Default typography for rich-text slots. Sizes are in half-points, per
// OOXML convention.
const (
	DefaultRichFont = "Times New Roman"
	DefaultRichSize = 24 // 12pt
)

// RichText is a string value rendered with fixed typography regardless of
// the styling around its placeholder. Used for the requisites block, the
// passport block, and AI-generated duties, which must come out uniform
// across template styles.
type RichText struct {
	Text string
	Font string
	Size int // half-points
}

// NewRichText wraps text with the default document typography.
func NewRichText(text string) RichText {
	return RichText{Text: text, Font: DefaultRichFont, Size: DefaultRichSize}
}

// InlineImage is a file-backed image embedded at its placeholder. WidthMM
// fixes the rendered width; height follows the intrinsic aspect ratio.
type InlineImage struct {
	Path    string
	WidthMM int
}
