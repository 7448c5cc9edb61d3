package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Revalidator asks the frontend to rebuild its cached pages.
type Revalidator struct {
	url        string
	secret     string
	httpClient *http.Client
}

// NewRevalidator posts to url with secret in the body.
func NewRevalidator(url, secret string) *Revalidator {
	return &Revalidator{
		url:        url,
		secret:     secret,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Revalidator) Send(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(map[string]string{
		"secret":   r.secret,
		"resource": ev.Resource,
		"action":   ev.Action,
	})
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("triggering revalidation: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revalidation failed with status code: %d", resp.StatusCode)
	}
	return nil
}
