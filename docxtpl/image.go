package docxtpl

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for DecodeConfig
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// emuPerMM is the OOXML English Metric Unit count per millimetre.
const emuPerMM = 36000

// inlineImageXML embeds an image file into the package and returns the
// run splice that places it at the placeholder. Any failure (missing file,
// undecodable format, zero dimensions) degrades to the diagnostic text
// rendered in place of the image.
func (j *renderJob) inlineImageXML(partName string, img InlineImage) string {
	if img.Path == "" {
		return xmlEscape("[ПУСТОЕ ИМЯ]")
	}

	data, err := os.ReadFile(img.Path)
	if err != nil {
		return xmlEscape(fmt.Sprintf("[ОШИБКА ВСТАВКИ: %v]", err))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return xmlEscape(fmt.Sprintf("[ОШИБКА ВСТАВКИ: %v]", err))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return xmlEscape(fmt.Sprintf("[ОШИБКА ВСТАВКИ: пустое изображение %s]", filepath.Base(img.Path)))
	}

	widthMM := img.WidthMM
	if widthMM <= 0 {
		widthMM = 40
	}
	cx := widthMM * emuPerMM
	cy := int(float64(cx) * float64(cfg.Height) / float64(cfg.Width))

	j.imageCount++
	n := j.imageCount
	ext := mediaExtension(img.Path)
	mediaName := fmt.Sprintf("word/media/dimage%d%s", n, ext)
	relID := fmt.Sprintf("rIdDocImg%d", n)

	j.addPart(mediaName, data)
	j.addRelationship(partName, relID, strings.TrimPrefix(mediaName, "word/"))
	j.ensureImageContentType(ext)

	return fmt.Sprintf(
		`</w:t></w:r><w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%[1]d" cy="%[2]d"/><wp:docPr id="%[3]d" name="Picture %[3]d"/>`+
			`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`+
			`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:nvPicPr><pic:cNvPr id="%[3]d" name="Picture %[3]d"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="%[4]s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%[1]d" cy="%[2]d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
			`</pic:pic></a:graphicData></a:graphic>`+
			`</wp:inline></w:drawing></w:r><w:r><w:t xml:space="preserve">`,
		cx, cy, n, relID)
}

// addPart registers a new package part.
func (j *renderJob) addPart(name string, content []byte) {
	if _, exists := j.parts[name]; !exists {
		j.order = append(j.order, name)
	}
	j.parts[name] = content
}

// addRelationship appends an image relationship to the rels part belonging
// to the rendered part, creating the rels part when the template has none.
func (j *renderJob) addRelationship(partName, relID, target string) {
	relsName := relsPartName(partName)
	rel := fmt.Sprintf(
		`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s"/>`,
		relID, target)

	content, ok := j.parts[relsName]
	if !ok {
		j.addPart(relsName, []byte(xmlHeader+
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
			rel+`</Relationships>`))
		return
	}

	updated := strings.Replace(string(content), "</Relationships>", rel+"</Relationships>", 1)
	j.parts[relsName] = []byte(updated)
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// relsPartName maps "word/document.xml" to "word/_rels/document.xml.rels".
func relsPartName(partName string) string {
	dir, base := filepath.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

// ensureImageContentType adds a Default content-type entry for the image
// extension when the template does not declare one.
func (j *renderJob) ensureImageContentType(ext string) {
	const ctName = "[Content_Types].xml"
	content, ok := j.parts[ctName]
	if !ok {
		return
	}

	ext = strings.TrimPrefix(ext, ".")
	if strings.Contains(string(content), `Extension="`+ext+`"`) {
		return
	}

	mime := "image/" + ext
	if ext == "jpg" {
		mime = "image/jpeg"
	}
	entry := fmt.Sprintf(`<Default Extension="%s" ContentType="%s"/>`, ext, mime)
	updated := strings.Replace(string(content), "</Types>", entry+"</Types>", 1)
	j.parts[ctName] = []byte(updated)
}

func mediaExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return ".jpeg"
	default:
		return ".png"
	}
}
