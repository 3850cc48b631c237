package export

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os/exec"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func richDocument() types.ResumeDocument {
	return types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{
			FullName: "Jane Q Doe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Location: "Austin, TX",
			Summary:  "Platform engineer with ten years of experience building reliable distributed systems.",
		},
		Experience: []types.ExperienceEntry{{
			ID: "e1", Company: "Acme", Position: "Staff Engineer", StartDate: "2020-01", Current: true,
			Description: []string{"Led the migration of 40 services to Kubernetes", ""},
		}},
		Education: []types.EducationEntry{{ID: "d1", Institution: "State University", Degree: "BSc", Field: "CS", EndDate: "2012"}},
		Skills:    []types.Skill{{ID: "s1", Name: "Go"}, {ID: "s2", Name: "Kubernetes"}},
	}
}

func TestCanvasCapturer_PageSizeAndBackground(t *testing.T) {
	capturer, err := NewCanvasCapturer("")
	require.NoError(t, err)

	for _, v := range []rendering.Variant{rendering.VariantModern, rendering.VariantClassic, rendering.VariantMinimal} {
		t.Run(string(v), func(t *testing.T) {
			surface, err := NewSurface(rendering.Render(richDocument(), v))
			require.NoError(t, err)

			data, err := capturer.Capture(t.Context(), surface)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 1632, 2112), img.Bounds())

			r, g, b, _ := img.At(2, 2111).RGBA()
			assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b}, "background is white")
		})
	}
}

func TestCanvasCapturer_DrawsText(t *testing.T) {
	capturer, err := NewCanvasCapturer("")
	require.NoError(t, err)

	blankSurface, err := NewSurface(rendering.Render(types.ResumeDocument{PersonalInfo: types.PersonalInfo{FullName: " "}}, rendering.VariantModern))
	require.NoError(t, err)
	fullSurface, err := NewSurface(rendering.Render(richDocument(), rendering.VariantModern))
	require.NoError(t, err)

	blank, err := capturer.Capture(t.Context(), blankSurface)
	require.NoError(t, err)
	full, err := capturer.Capture(t.Context(), fullSurface)
	require.NoError(t, err)

	assert.Greater(t, nonWhitePixels(t, full), nonWhitePixels(t, blank))
}

func nonWhitePixels(t *testing.T, data []byte) int {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	count := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 4 {
		for x := b.Min.X; x < b.Max.X; x += 4 {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r < 0xf000 || g < 0xf000 || bl < 0xf000 {
				count++
			}
		}
	}
	return count
}

func TestCanvasCapturer_MissingPreviewElement(t *testing.T) {
	capturer, err := NewCanvasCapturer("")
	require.NoError(t, err)

	surface := Surface{Layout: rendering.Render(richDocument(), rendering.VariantModern), HTML: "<html><body><div>nothing</div></body></html>"}
	_, err = capturer.Capture(t.Context(), surface)

	var captureErr *CaptureError
	assert.ErrorAs(t, err, &captureErr)
}

func TestCanvasCapturer_CancelledContext(t *testing.T) {
	capturer, err := NewCanvasCapturer("")
	require.NoError(t, err)
	surface, err := NewSurface(rendering.Render(richDocument(), rendering.VariantModern))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = capturer.Capture(ctx, surface)

	var captureErr *CaptureError
	assert.ErrorAs(t, err, &captureErr)
}

func TestNewCanvasCapturer_BadFontPath(t *testing.T) {
	_, err := NewCanvasCapturer("/nonexistent/font.ttf")
	assert.Error(t, err)
}

func TestChromeCapturer_Integration(t *testing.T) {
	if _, err := exec.LookPath("google-chrome"); err != nil {
		if _, err := exec.LookPath("chromium"); err != nil {
			t.Skip("Chrome not available")
		}
	}

	surface, err := NewSurface(rendering.Render(richDocument(), rendering.VariantClassic))
	require.NoError(t, err)

	data, err := NewChromeCapturer("", 30*time.Second).Capture(t.Context(), surface)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1632, cfg.Width)
	assert.Equal(t, 2112, cfg.Height)
}
