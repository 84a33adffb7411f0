package notify

import (
	"fmt"

	"github.com/osteele/liquid"
)

// Default confirmation templates. Bindings: first_name, surname,
// application_id, short_name, product, bank_name.
const (
	DefaultSubjectTemplate = `{{ short_name }} {{ product }} Application Confirmation`

	DefaultTextTemplate = `Dear {{ first_name }} {{ surname }},

Thank you for submitting your {{ short_name }} {{ product }} application. Your application has been received and is being processed.

Application Reference: {{ application_id }}

Regards,
{{ bank_name }}`

	DefaultHTMLTemplate = `<p>Dear {{ first_name | escape }} {{ surname | escape }},</p>
<p>Thank you for submitting your {{ short_name | escape }} {{ product | escape }} application. Your application has been received and is being processed.</p>
<p>Application Reference: <strong>{{ application_id | escape }}</strong></p>
<p>Regards,<br>{{ bank_name | escape }}</p>`
)

// Confirmation is the data a confirmation email is rendered from.
type Confirmation struct {
	To            string
	FirstName     string
	Surname       string
	ApplicationID string
}

// Templates holds the Liquid sources for a confirmation.
type Templates struct {
	Subject string
	Text    string
	HTML    string
}

// Composer renders confirmation messages. Templates are parsed once.
type Composer struct {
	subject *liquid.Template
	text    *liquid.Template
	html    *liquid.Template
	brand   map[string]any
}

// BrandNames is the wording the templates sign with.
type BrandNames struct {
	ShortName string // "FBC"
	Product   string // "MasterCard"
	BankName  string // "FBC Bank Limited"
}

// NewComposer parses the templates; empty entries use the defaults.
func NewComposer(brand BrandNames, t Templates) (*Composer, error) {
	if t.Subject == "" {
		t.Subject = DefaultSubjectTemplate
	}
	if t.Text == "" {
		t.Text = DefaultTextTemplate
	}
	if t.HTML == "" {
		t.HTML = DefaultHTMLTemplate
	}

	engine := liquid.NewEngine()
	c := &Composer{
		brand: map[string]any{
			"short_name": brand.ShortName,
			"product":    brand.Product,
			"bank_name":  brand.BankName,
		},
	}
	for _, p := range []struct {
		name string
		src  string
		dst  **liquid.Template
	}{
		{"subject", t.Subject, &c.subject},
		{"text", t.Text, &c.text},
		{"html", t.HTML, &c.html},
	} {
		tpl, err := engine.ParseString(p.src)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", p.name, err)
		}
		*p.dst = tpl
	}
	return c, nil
}

// Compose renders the confirmation for one application.
func (c *Composer) Compose(conf Confirmation) (Message, error) {
	bindings := map[string]any{
		"first_name":     conf.FirstName,
		"surname":        conf.Surname,
		"application_id": conf.ApplicationID,
	}
	for k, v := range c.brand {
		bindings[k] = v
	}

	subject, err := c.subject.RenderString(bindings)
	if err != nil {
		return Message{}, fmt.Errorf("render subject: %w", err)
	}
	text, err := c.text.RenderString(bindings)
	if err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}
	html, err := c.html.RenderString(bindings)
	if err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}

	return Message{To: conf.To, Subject: subject, Text: text, HTML: html}, nil
}
