package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fbcbank/card-intake/internal/schema"
)

const (
	// SuccessPath is where the browser form navigates after a submission.
	SuccessPath = "/application/success"
	// RedirectDelay is how long the success state is shown first.
	RedirectDelay = 2 * time.Second

	submitPath = "/api/applications"
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Outcome describes a successful submission.
type Outcome struct {
	ID string
	// Notice is the non-blocking note shown when the server saved the
	// application but degraded a later step.
	Notice        string
	RedirectTo    string
	RedirectAfter time.Duration
}

// Collector holds one applicant's form. It is safe for concurrent use but
// only one submission runs at a time.
type Collector struct {
	baseURL string
	client  HTTPDoer

	mu         sync.Mutex
	values     schema.Values
	errors     map[string]string
	submitting bool
	outcome    *Outcome
}

// Option configures a Collector.
type Option func(*Collector)

// WithHTTPClient replaces the default 30s-timeout client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(col *Collector) { col.client = c }
}

// New returns a collector for the intake service at baseURL, with the
// form defaults filled in.
func New(baseURL string, opts ...Option) *Collector {
	c := &Collector{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		values:  schema.FormDefaults(),
		errors:  map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update replaces one field and clears its recorded error.
func (c *Collector) Update(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.values.Set(name, value); err != nil {
		return err
	}
	delete(c.errors, name)
	return nil
}

// Load replaces the whole payload, e.g. from a saved JSON file.
func (c *Collector) Load(v schema.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = v.Clone()
	c.errors = map[string]string{}
}

// Values returns a copy of the current payload.
func (c *Collector) Values() schema.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Clone()
}

// Errors returns the errors recorded by the last validation, minus fields
// edited since.
func (c *Collector) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Validate runs the form rules and records the result.
func (c *Collector) Validate() schema.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Collector) validateLocked() schema.Errors {
	errs := schema.Validate(c.values)
	c.errors = errs.Map()
	return errs
}

// Outcome is non-nil once a submission succeeded.
func (c *Collector) Outcome() *Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

type submitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Warning string `json:"warning"`
	Error   string `json:"error"`
}

// Submit validates the form and, if it passes, posts the payload. It
// returns *ValidationError without touching the network when rules fail
// and *SubmitError for every transport or server failure.
func (c *Collector) Submit(ctx context.Context) (*Outcome, error) {
	c.mu.Lock()
	switch {
	case c.outcome != nil:
		c.mu.Unlock()
		return nil, ErrSubmitted
	case c.submitting:
		c.mu.Unlock()
		return nil, ErrInProgress
	}
	if errs := c.validateLocked(); len(errs) > 0 {
		c.mu.Unlock()
		first, _ := errs.First()
		return nil, &ValidationError{Errors: errs, Field: first.Field}
	}
	payload, err := json.Marshal(c.values)
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()
	if err != nil {
		return nil, &SubmitError{Message: err.Error(), Err: err}
	}

	out, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.outcome = out
	c.mu.Unlock()
	return out, nil
}

func (c *Collector) post(ctx context.Context, payload []byte) (*Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(payload))
	if err != nil {
		return nil, &SubmitError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &SubmitError{Message: MsgNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmitError{Status: resp.StatusCode, Message: MsgNetwork, Err: err}
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil, &SubmitError{Status: resp.StatusCode, Message: MsgNonJSON}
	}

	var data submitResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &SubmitError{Status: resp.StatusCode, Message: MsgInvalidJSON, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := data.Error
		if msg == "" {
			msg = statusMessage(resp.StatusCode)
		}
		return nil, &SubmitError{Status: resp.StatusCode, Message: msg}
	}

	return &Outcome{
		ID:            data.ID,
		Notice:        data.Warning,
		RedirectTo:    SuccessPath,
		RedirectAfter: RedirectDelay,
	}, nil
}
