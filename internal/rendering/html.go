package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// PreviewElementID is the id of the page root in the preview HTML
const PreviewElementID = "resume-preview"

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

var (
	templatesOnce sync.Once
	templateSets  map[Variant]*template.Template
	templatesErr  error
)

func loadTemplates() (map[Variant]*template.Template, error) {
	templatesOnce.Do(func() {
		sets := make(map[Variant]*template.Template, len(variants))
		for _, info := range variants {
			tmpl, err := template.New(string(info.ID)).ParseFS(templateFiles,
				"templates/base.html.tmpl",
				"templates/"+string(info.ID)+".html.tmpl",
			)
			if err != nil {
				templatesErr = &TemplateError{Variant: info.ID, Message: "failed to parse template", Cause: err}
				return
			}
			sets[info.ID] = tmpl
		}
		templateSets = sets
	})
	return templateSets, templatesErr
}

// HTML serializes a layout into the standalone preview page. The page root carries the id
// PreviewElementID and is sized to the fixed letter canvas; overflow is clipped.
func HTML(layout Layout) (string, error) {
	sets, err := loadTemplates()
	if err != nil {
		return "", err
	}

	tmpl, ok := sets[layout.Variant]
	if !ok {
		return "", &RenderError{Message: "no template for variant " + string(layout.Variant)}
	}

	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, "page", layout); err != nil {
		return "", &TemplateError{Variant: layout.Variant, Message: "failed to execute template", Cause: err}
	}
	return sb.String(), nil
}

// RenderHTML renders doc in the given template straight to preview HTML.
func RenderHTML(doc types.ResumeDocument, variant Variant) (string, error) {
	return HTML(Render(doc, variant))
}
