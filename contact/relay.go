// Package contact forwards contact form submissions to a third-party
// form relay (web3forms by default).
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the web3forms submission endpoint.
const DefaultEndpoint = "https://api.web3forms.com/submit"

// Messages shown to the visitor. Every failure uses the same text.
const (
	SuccessMessage = "Thank you for your message! I will get back to you soon."
	FailureMessage = "Oops! Something went wrong. Please try again or email me directly."
)

// ErrRejected is returned when the relay answers without success=true.
var ErrRejected = errors.New("contact: submission rejected")

// Relay posts form data to the relay endpoint.
type Relay struct {
	Endpoint  string
	AccessKey string
	Client    *http.Client
}

// New returns a Relay for accessKey with a client that times out after timeout.
func New(endpoint, accessKey string, timeout time.Duration) *Relay {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Relay{
		Endpoint:  endpoint,
		AccessKey: accessKey,
		Client:    &http.Client{Timeout: timeout},
	}
}

// response is the relay's JSON answer.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit forwards fields form-encoded, adding the access key. It returns nil
// only when the relay reports success.
func (r *Relay) Submit(ctx context.Context, fields url.Values) error {
	form := url.Values{}
	for k, v := range fields {
		form[k] = append([]string(nil), v...)
	}
	form.Set("access_key", r.AccessKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("contact: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("contact: send: %w", err)
	}
	defer resp.Body.Close()

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: status %d, unreadable body: %v", ErrRejected, resp.StatusCode, err)
	}
	if !body.Success {
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, body.Message)
	}
	return nil
}

// Fields picks the visitor-supplied fields worth relaying from a form,
// dropping CSRF and page plumbing.
func Fields(form url.Values) url.Values {
	out := url.Values{}
	for k, v := range form {
		switch k {
		case "_csrf", "access_key":
			continue
		}
		out[k] = v
	}
	return out
}
