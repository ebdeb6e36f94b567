package content

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ProbeTimeout bounds a single Probe call when ctx carries no deadline.
const ProbeTimeout = 2 * time.Second

// Probe reports whether something answers HTTP at rawURL. Any response,
// including an error status, counts as reachable.
func Probe(ctx context.Context, rawURL string) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ProbeTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", rawURL, err)
	}
	resp.Body.Close()
	return nil
}
