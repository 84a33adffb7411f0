package document

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	logoImageName = "brand-logo"
	logoMaxHeight = 40.0 // points
	logoDPIScale  = 3    // pixels per point kept after scaling
)

type logo struct {
	png    []byte
	width  float64 // points
	height float64
}

// loadLogo decodes the image, scales it to fit the header's brand box and
// re-encodes it as PNG so fpdf can embed it regardless of source format.
func loadLogo(path string) (*logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	return decodeLogo(data)
}

func decodeLogo(data []byte) (*logo, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode logo: empty image")
	}

	w, h := fitBox(float64(b.Dx()), float64(b.Dy()), brandBoxWidth, logoMaxHeight)

	px := int(w * logoDPIScale)
	py := int(h * logoDPIScale)
	if px < 1 {
		px = 1
	}
	if py < 1 {
		py = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, px, py))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return &logo{png: buf.Bytes(), width: w, height: h}, nil
}

// fitBox scales w x h down (never up) to fit inside maxW x maxH, keeping
// the aspect ratio.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	scale := 1.0
	if w > maxW {
		scale = maxW / w
	}
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}

// draw places the logo so its bottom edge sits on the header baseline.
func (l *logo) draw(pdf *fpdf.Fpdf, at Line) {
	top := PageHeight - at.Y - l.height
	pdf.ImageOptions(logoImageName, at.X, top, l.width, l.height, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}
