package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/fairtrip/fairtrip/internal/core"
)

const defaultHTTPTimeout = 30 * time.Second

// getJSON performs a GET and decodes a 2xx body into out. Failures are
// wrapped with core.ErrProviderUnavailable, and with core.ErrTemporary when a
// retry could help.
func getJSON(ctx context.Context, client *http.Client, provider, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", provider, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil && re.Response.StatusCode < 500 {
			return fmt.Errorf("%s: token request rejected (%d): %w", provider, re.Response.StatusCode, core.ErrProviderUnavailable)
		}
		return fmt.Errorf("%s: %w: %w: %v", provider, core.ErrProviderUnavailable, core.ErrTemporary, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w: %w", provider, core.ErrProviderUnavailable, core.ErrTemporary)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%s: status %d: %w: %w", provider, resp.StatusCode, core.ErrProviderUnavailable, core.ErrTemporary)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%s: status %d: %s: %w", provider, resp.StatusCode, snippet(body), core.ErrProviderUnavailable)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %v: %w", provider, err, core.ErrProviderUnavailable)
	}
	return nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

func passesStopFilters(o core.FlightOffer, f core.SearchFilters) bool {
	if f.NonStop && o.MaxStops() > 0 {
		return false
	}
	if f.MaxStops != nil && o.MaxStops() > *f.MaxStops {
		return false
	}
	return true
}
