package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestHTML_PreviewRoot(t *testing.T) {
	for _, v := range allVariants() {
		t.Run(string(v), func(t *testing.T) {
			html, err := RenderHTML(sampleDocument(), v)
			require.NoError(t, err)

			doc := parse(t, html)
			root := doc.Find("#" + PreviewElementID)
			require.Equal(t, 1, root.Length())
			assert.Equal(t, string(v), root.AttrOr("data-template", ""))
			assert.Equal(t, "Jane Q Doe", strings.TrimSpace(root.Find("header h1").Text()))
			assert.Contains(t, html, "width: 816px")
			assert.Contains(t, html, "height: 1056px")
		})
	}
}

func TestHTML_SectionsAndEntries(t *testing.T) {
	html, err := RenderHTML(sampleDocument(), VariantClassic)
	require.NoError(t, err)
	doc := parse(t, html)

	var headings []string
	doc.Find("section h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, strings.TrimSpace(s.Text()))
	})
	assert.Equal(t, []string{"OBJECTIVE", "EXPERIENCE", "EDUCATION", "SKILLS"}, headings)

	first := doc.Find(`.entry[data-id="e1"]`)
	require.Equal(t, 1, first.Length())
	assert.Equal(t, 3, first.Find("li").Length(), "blank bullets are kept")
	assert.Equal(t, "2020-01 - Present", strings.TrimSpace(first.Find(".dates").Text()))
	assert.NotContains(t, first.Text(), "2020-01 - 2020-01")

	assert.Equal(t, "Go • PostgreSQL", strings.TrimSpace(doc.Find(".skills").Text()))
}

func TestHTML_NoEducationHeadingWhenEmpty(t *testing.T) {
	doc := sampleDocument()
	doc.Education = nil

	for _, v := range allVariants() {
		t.Run(string(v), func(t *testing.T) {
			html, err := RenderHTML(doc, v)
			require.NoError(t, err)
			page := parse(t, html)
			assert.Equal(t, 0, page.Find(".section-education").Length())
			page.Find("h2").Each(func(_ int, s *goquery.Selection) {
				assert.NotEqual(t, "education", strings.ToLower(strings.TrimSpace(s.Text())))
			})
		})
	}
}

func TestHTML_MinimalSummaryHasNoHeading(t *testing.T) {
	html, err := RenderHTML(sampleDocument(), VariantMinimal)
	require.NoError(t, err)
	summary := parse(t, html).Find(".section-summary")
	require.Equal(t, 1, summary.Length())
	assert.Equal(t, 0, summary.Find("h2").Length())
	assert.Equal(t, "Engineer who ships.", strings.TrimSpace(summary.Find("p").Text()))
}

func TestHTML_EscapesUserText(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.PersonalInfo.FullName = `<script>alert("x")</script>`

	html, err := RenderHTML(doc, VariantModern)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Equal(t, `<script>alert("x")</script>`, parse(t, html).Find("header h1").Text())
}

func TestHTML_UnknownLayoutVariant(t *testing.T) {
	_, err := HTML(Layout{Variant: "creative"})
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}
