package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/fbcbank/card-intake/internal/pkg/logger"
	"github.com/fbcbank/card-intake/internal/schema"
)

// Options configures a Renderer.
type Options struct {
	Brand Brand
	// LogoPath, when set, names an image drawn in place of the card-brand
	// text in the header.
	LogoPath string
	// Compress deflates page streams. Turn it off to get output whose text
	// can be searched with grep.
	Compress bool
	// Now stamps the footer and document metadata. Defaults to time.Now.
	Now func() time.Time
}

// Renderer draws application documents. It is safe for concurrent use;
// each Render call builds its own fpdf document.
type Renderer struct {
	brand    Brand
	compress bool
	now      func() time.Time
	logo     *logo
}

// NewRenderer prepares a renderer, loading and scaling the logo once.
func NewRenderer(opts Options) (*Renderer, error) {
	r := &Renderer{
		brand:    opts.Brand,
		compress: opts.Compress,
		now:      opts.Now,
	}
	if r.brand == (Brand{}) {
		r.brand = DefaultBrand
	}
	if r.now == nil {
		r.now = time.Now
	}
	if opts.LogoPath != "" {
		l, err := loadLogo(opts.LogoPath)
		if err != nil {
			return nil, err
		}
		r.logo = l
	}
	return r, nil
}

// Render produces the PDF bytes for one payload.
func (r *Renderer) Render(v schema.Values) ([]byte, error) {
	now := r.now()
	pages := Layout(v, r.brand, now)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(now)
	pdf.SetTitle(r.brand.Title, true)
	pdf.SetCreator(r.brand.BankName, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if r.logo != nil {
		pdf.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(r.logo.png))
	}

	var lost []rune
	for _, p := range pages {
		pdf.AddPage()
		for _, l := range p.Lines {
			if l.Role == RoleBrand && r.logo != nil {
				r.logo.draw(pdf, l)
				continue
			}
			style := ""
			if l.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, l.Size)
			pdf.SetTextColor(l.Color.R, l.Color.G, l.Color.B)
			lost = append(lost, unencodable(l.Text)...)
			// fpdf measures from the top edge
			pdf.Text(l.X, PageHeight-l.Y, tr(l.Text))
		}
	}
	if len(lost) > 0 {
		logger.Warn("document text outside cp1252 drawn as '.'", "chars", string(lost))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render application document: %w", err)
	}
	return buf.Bytes(), nil
}

// unencodable returns the runes of s the core fonts cannot draw. The
// cp1252 translator prints each of them as '.'.
func unencodable(s string) []rune {
	var out []rune
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			out = append(out, r)
		}
	}
	return out
}
