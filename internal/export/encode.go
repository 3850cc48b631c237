package export

import (
	"bytes"
	"image"

	"github.com/go-pdf/fpdf"
)

// Letter page size in PDF points
const (
	PageWidthPt  = 612
	PageHeightPt = 792
)

// Encoder turns a captured PNG into PDF bytes.
type Encoder interface {
	Encode(png []byte, title string) ([]byte, error)
}

// PDFEncoder places the bitmap as a full-bleed image on a single letter page.
// The bitmap is scaled to exactly 612×792 pt, so a 2x capture keeps its aspect ratio.
type PDFEncoder struct {
	Creator string
}

// NewPDFEncoder creates a PDFEncoder
func NewPDFEncoder() *PDFEncoder {
	return &PDFEncoder{Creator: "resume-builder"}
}

// Encode implements Encoder
func (e *PDFEncoder) Encode(png []byte, title string) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, &EncodeError{Message: "captured image is unreadable", Cause: err}
	}
	if format != "png" {
		return nil, &EncodeError{Message: "captured image is " + format + ", want png"}
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, &EncodeError{Message: "captured image is empty"}
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if e.Creator != "" {
		pdf.SetCreator(e.Creator, true)
	}
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("preview", opts, bytes.NewReader(png))
	pdf.ImageOptions("preview", 0, 0, PageWidthPt, PageHeightPt, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &EncodeError{Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}
