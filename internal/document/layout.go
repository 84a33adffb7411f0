package document

import (
	"time"

	"github.com/fbcbank/card-intake/internal/schema"
)

// A4 in points, and the fixed form geometry.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	Margin     = 50.0
	LineHeight = 15.0

	headerSize  = 16.0
	titleSize   = 14.0
	sectionSize = 12.0
	fieldSize   = 10.0

	// width reserved for the card brand mark in the header
	brandBoxWidth = 100.0
)

// Placeholder is printed for an empty text field.
const Placeholder = "N/A"

// Color is an RGB triple, 0-255.
type Color struct{ R, G, B int }

var (
	black    = Color{}
	darkBlue = Color{0, 0, 204}
	darkRed  = Color{204, 0, 0}
)

// Role tags what a line is so the renderer can treat some specially.
type Role int

const (
	RoleField Role = iota
	RoleBank
	RoleBrand
	RoleTitle
	RoleSection
	RoleFooter
)

// Line is one run of text. Y is the baseline measured up from the bottom
// edge of the page, so the cursor decreases as the form is read.
type Line struct {
	X, Y  float64
	Text  string
	Size  float64
	Bold  bool
	Color Color
	Role  Role
}

// Page holds the lines drawn on one page.
type Page struct {
	Lines []Line
}

// Brand is the bank and card-scheme wording printed in the header.
type Brand struct {
	BankName  string
	CardBrand string
	Title     string
}

// DefaultBrand is the wording of the printed form.
var DefaultBrand = Brand{
	BankName:  "FBC BANK LIMITED",
	CardBrand: "MASTERCARD",
	Title:     "FBC MASTERCARD PREMIUM CARDS APPLICATION FORM",
}

type cursor struct {
	pages []Page
	y     float64
}

// add places l at the cursor, breaking to a new page first if the cursor
// has run past the bottom margin.
func (c *cursor) add(l Line) {
	if c.y < Margin {
		c.pages = append(c.pages, Page{})
		c.y = PageHeight - Margin
	}
	l.Y = c.y
	p := &c.pages[len(c.pages)-1]
	p.Lines = append(p.Lines, l)
}

// Layout positions every line of the form for the given payload. Sections
// follow the schema's reading order; replacement-only fields are emitted
// only for replacement cards. A new page starts whenever the cursor would
// cross the bottom margin.
func Layout(v schema.Values, b Brand, generatedAt time.Time) []Page {
	c := &cursor{pages: []Page{{}}, y: PageHeight - Margin}

	c.add(Line{X: Margin, Text: b.BankName, Size: headerSize, Bold: true, Color: darkBlue, Role: RoleBank})
	c.add(Line{X: PageWidth - Margin - brandBoxWidth, Text: b.CardBrand, Size: headerSize, Bold: true, Color: darkRed, Role: RoleBrand})
	c.y -= 40

	c.add(Line{X: Margin, Text: b.Title, Size: titleSize, Bold: true, Color: darkBlue, Role: RoleTitle})
	c.y -= 30

	for _, sec := range schema.Sections() {
		first := true
		if sec.Title != "" {
			c.add(Line{X: Margin, Text: sec.Title + ":", Size: sectionSize, Bold: true, Color: black, Role: RoleSection})
			first = false
		}
		for _, f := range sec.Fields {
			if !f.Applies(v) {
				continue
			}
			x := Margin
			switch {
			case f.Inline:
				x = PageWidth / 2
			case !first:
				c.y -= LineHeight
			}
			c.add(Line{X: x, Text: f.Label + ": " + FieldValue(f, v), Size: fieldSize, Color: black, Role: RoleField})
			first = false
		}
		c.y -= LineHeight * 2
	}

	c.add(Line{X: Margin, Text: "Generated: " + generatedAt.Format("2 January 2006 15:04 MST"), Size: fieldSize, Color: black, Role: RoleFooter})
	return c.pages
}

// FieldValue is the printed form of a field: Yes/No for flags, a dollar
// figure for amounts and the N/A placeholder for empty text.
func FieldValue(f schema.Field, v schema.Values) string {
	switch f.Kind {
	case schema.Flag:
		if v.Flag(f.Name) {
			return "Yes"
		}
		return "No"
	case schema.Amount:
		if s := v.Text(f.Name); s != "" {
			return "$" + s
		}
		return "$0.00"
	}
	if s := v.Text(f.Name); s != "" {
		return s
	}
	return Placeholder
}
