package document

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbcbank/card-intake/internal/pkg/logger"
	"github.com/fbcbank/card-intake/internal/schema"
)

func scenarioValues(t *testing.T) schema.Values {
	t.Helper()
	v := schema.FormDefaults()
	for name, val := range map[string]any{
		schema.FieldCardType:               "Gold Prepaid",
		schema.FieldSurname:                "Moyo",
		schema.FieldFirstName:              "Tendai",
		schema.FieldNationalIDNumber:       "63-123456A12",
		schema.FieldDateOfBirth:            "1990-01-01",
		schema.FieldGender:                 "Male",
		schema.FieldPhysicalAddress:        "12 Main St",
		schema.FieldCountry:                "Zimbabwe",
		schema.FieldMobileNumber:           "0772000000",
		schema.FieldEmail:                  "tendai@example.com",
		schema.FieldHasAgreedToTerms:       true,
		schema.FieldHasAcknowledgedReceipt: true,
	} {
		mustSet(t, &v, name, val)
	}
	return v
}

func newTestRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	opts.Now = func() time.Time { return generatedAt }
	r, err := NewRenderer(opts)
	require.NoError(t, err)
	return r
}

func TestRender_ContainsApplicantDetails(t *testing.T) {
	r := newTestRenderer(t, Options{})

	out, err := r.Render(scenarioValues(t))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	for _, want := range []string{
		"(Card Type: Gold Prepaid) Tj",
		"Tendai",
		"(Surname: Moyo) Tj",
		"(Agreed to Terms and Conditions: Yes) Tj",
		"(FBC BANK LIMITED) Tj",
	} {
		assert.True(t, bytes.Contains(out, []byte(want)), "missing %q", want)
	}
}

func TestRender_CompressedHidesText(t *testing.T) {
	r := newTestRenderer(t, Options{Compress: true})

	out, err := r.Render(scenarioValues(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.False(t, bytes.Contains(out, []byte("Gold Prepaid")))
}

func TestRender_WarnsOnUndrawableText(t *testing.T) {
	var logs bytes.Buffer
	prev := logger.SetOutput(&logs)
	defer logger.SetOutput(prev)

	v := scenarioValues(t)
	mustSet(t, &v, schema.FieldSurname, "Łukasz Ngũgĩ")

	out, err := newTestRenderer(t, Options{}).Render(v)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("(Surname: .ukasz Ng.g.) Tj")))
	assert.Contains(t, logs.String(), "outside cp1252")
	assert.Contains(t, logs.String(), "Łũĩ")
}

func TestRender_Latin1TextLogsNothing(t *testing.T) {
	var logs bytes.Buffer
	prev := logger.SetOutput(&logs)
	defer logger.SetOutput(prev)

	v := scenarioValues(t)
	mustSet(t, &v, schema.FieldSurname, "Müller")

	_, err := newTestRenderer(t, Options{}).Render(v)
	require.NoError(t, err)
	assert.Empty(t, logs.String())
	assert.Empty(t, unencodable("Zoë Müller, €50"))
	assert.Equal(t, []rune{'Ł', 'ũ', 'ĩ'}, unencodable("Łukasz Ngũgĩ"))
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestRender_WithLogo(t *testing.T) {
	r := newTestRenderer(t, Options{LogoPath: writePNG(t, 400, 100)})
	require.NotNil(t, r.logo)
	assert.InDelta(t, 100.0, r.logo.width, 0.001)
	assert.InDelta(t, 25.0, r.logo.height, 0.001)

	out, err := r.Render(scenarioValues(t))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("/Subtype /Image")))
	assert.False(t, bytes.Contains(out, []byte("(MASTERCARD) Tj")))
}

func TestNewRenderer_BadLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := NewRenderer(Options{LogoPath: path})
	assert.Error(t, err)

	_, err = NewRenderer(Options{LogoPath: filepath.Join(t.TempDir(), "missing.png")})
	assert.Error(t, err)
}

func TestFitBox(t *testing.T) {
	tests := []struct {
		name         string
		w, h         float64
		wantW, wantH float64
	}{
		{"wide", 400, 100, 100, 25},
		{"tall", 100, 400, 10, 40},
		{"small stays", 50, 20, 50, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitBox(tt.w, tt.h, 100, 40)
			assert.InDelta(t, tt.wantW, w, 0.001)
			assert.InDelta(t, tt.wantH, h, 0.001)
		})
	}
}
