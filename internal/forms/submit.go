package forms

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// emailEntryID is the entry id the form backend uses for the respondent's
// email; it is submitted without the "entry." prefix.
const emailEntryID = "emailAddress"

// TransportError reports a failed submission (non-200 status).
// The batch driver logs and counts these; they never abort the batch.
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("form submission rejected with status %d", e.StatusCode)
}

// Client fetches form schemas and submits answers.
type Client struct {
	http *http.Client
}

// NewClient creates a form client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// FetchForm downloads and parses a form page.
func (c *Client) FetchForm(ctx context.Context, formURL string) (*Form, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, formURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch form: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch form: status %d", resp.StatusCode)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read form page: %w", err)
	}

	form, err := ParseSchema(page)
	if err != nil {
		return nil, err
	}

	slog.Debug("form fetched", "title", form.Title, "questions", len(form.Questions))
	return form, nil
}

// ResponseURL derives the submission endpoint from a form URL.
func ResponseURL(formURL string) string {
	return strings.Replace(formURL, "/viewform", "/formResponse", 1)
}

// RenderPayload converts an entry_id→value answer set into the
// form-encoded body the submission endpoint expects. Empty values are
// omitted; numeric entry ids get the "entry." prefix, special ids
// (emailAddress) pass through verbatim.
func RenderPayload(answers map[string]string) url.Values {
	payload := url.Values{}
	for id, value := range answers {
		if value == "" {
			continue
		}
		key := id
		if id != emailEntryID && !strings.HasPrefix(id, "entry.") {
			key = "entry." + id
		}
		payload.Set(key, value)
	}
	return payload
}

// Submit posts a completed answer set to the form's response endpoint.
// A non-200 status is returned as a *TransportError.
func (c *Client) Submit(ctx context.Context, formURL string, answers map[string]string) error {
	endpoint := ResponseURL(formURL)
	payload := RenderPayload(answers)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(payload.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit form: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &TransportError{StatusCode: resp.StatusCode}
	}

	slog.Info("form submitted", "endpoint", endpoint, "fields", len(payload))
	return nil
}
