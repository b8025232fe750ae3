package export

import (
	"bytes"
	"fmt"
	"image"

	"github.com/jung-kurt/gofpdf"

	"picdoc/config"
	"picdoc/document"
	"picdoc/layout"
	imgutil "picdoc/utils/images"
)

const screenDPI = 96

// encodePage turns a captured page bitmap into a JPEG carrying print density
// matching the capture scale.
func encodePage(img image.Image, tier config.QualityTier, scale float64) ([]byte, error) {
	density := int16(screenDPI * scale)
	data, err := imgutil.EncodeJPEGWithDPI(img, tier.JPEGQuality(), imgutil.DpiPxPerInch, density, density)
	if err != nil {
		return nil, fmt.Errorf("unable to encode page bitmap: %w", err)
	}
	return data, nil
}

// composePDF embeds captured page JPEGs into an A4 document. Bitmaps are
// placed aspect-fit and centered, never stretched.
func composePDF(pages [][]byte, orientation layout.Orientation, meta document.Metadata, creator string) ([]byte, error) {
	orient := "P"
	if orientation == layout.OrientationLandscape {
		orient = "L"
	}
	pdf := gofpdf.New(orient, "mm", "A4", "")

	title := meta.Title
	if meta.Project != "" {
		title += " - " + meta.Project
	}
	pdf.SetTitle(title, true)
	if meta.SubProject != "" {
		pdf.SetSubject("Subcontractor: "+meta.SubProject, true)
		pdf.SetAuthor(meta.SubProject, true)
	}
	pdf.SetCreator(creator, true)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	for i, data := range pages {
		pdf.AddPage()
		name := fmt.Sprintf("page-%d", i+1)
		info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if pdf.Err() {
			return nil, fmt.Errorf("unable to embed page %d: %w", i+1, pdf.Error())
		}

		pw, ph := pdf.GetPageSize()
		ar := info.Width() / info.Height()
		w, h := pw, pw/ar
		if h > ph {
			h, w = ph, ph*ar
		}
		pdf.ImageOptions(name, (pw-w)/2, (ph-h)/2, w, h, false, opts, 0, "")

		if len(pages) > 1 {
			label := fmt.Sprintf("%d / %d", i+1, len(pages))
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(156, 163, 175)
			pdf.Text((pw-pdf.GetStringWidth(label))/2, ph-6, label)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("unable to produce pdf: %w", err)
	}
	return buf.Bytes(), nil
}
