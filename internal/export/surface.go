package export

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// Surface is the rendered preview handed to a Capturer: the layout tree and its HTML page.
type Surface struct {
	Layout rendering.Layout
	HTML   string
}

// NewSurface renders the preview surface of a layout.
func NewSurface(layout rendering.Layout) (Surface, error) {
	html, err := rendering.HTML(layout)
	if err != nil {
		return Surface{}, &CaptureError{Message: "preview could not be rendered", Cause: err}
	}
	return Surface{Layout: layout, HTML: html}, nil
}

// Check verifies that the surface holds exactly one preview root element.
func (s Surface) Check() error {
	if strings.TrimSpace(s.HTML) == "" {
		return &CaptureError{Message: "preview surface is empty"}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.HTML))
	if err != nil {
		return &CaptureError{Message: "preview surface is not valid HTML", Cause: err}
	}
	if n := doc.Find("#" + rendering.PreviewElementID).Length(); n != 1 {
		return &CaptureError{Message: "preview element #" + rendering.PreviewElementID + " not found"}
	}
	return nil
}
