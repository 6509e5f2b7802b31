package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// postJSON sends an HTTP POST request to the inference API.
// It marshals the body as JSON, attaches auth headers, maps HTTP error
// codes onto the package's sentinel errors, and decodes the response into `out`.
func (p *inferenceProvider) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection failures follow the same retry policy
		// as provider 5xx responses.
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("http error: %v: %w", err, ErrTransient)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("http %d for %s: %w", resp.StatusCode, url, ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("http %d for %s: %w", resp.StatusCode, url, ErrQuotaExceeded)
	case resp.StatusCode >= 500:
		return fmt.Errorf("http %d for %s: %w", resp.StatusCode, url, ErrTransient)
	case resp.StatusCode >= 300:
		return fmt.Errorf("http %d for %s", resp.StatusCode, url)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}

	return nil
}

// truncate cuts text to at most max runes. The provider rejects over-length
// inputs, so clients truncate instead of failing the whole document.
func truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
