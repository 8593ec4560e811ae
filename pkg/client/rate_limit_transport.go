package client

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const maxBackoff = 30 * time.Second

// RateLimitTransport replays the requests answered with a 429 status.
// The delay comes from the Retry-After header when the server sends one,
// otherwise DefaultWait is doubled after each attempt.
type RateLimitTransport struct {
	Base        http.RoundTripper
	MaxRetries  int
	DefaultWait time.Duration
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		res, err := base.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if res.StatusCode != http.StatusTooManyRequests || attempt >= t.MaxRetries {
			return res, nil
		}

		delay := t.delay(res.Header.Get("Retry-After"), attempt)

		drain(res)

		slog.WarnContext(ctx, "request rate limited, retrying",
			slog.String("url", req.URL.String()),
			slog.Duration("delay", delay),
			slog.Int("attempt", attempt+1),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.WithStack(ctx.Err())
		case <-timer.C:
		}

		if err := rewind(req); err != nil {
			return nil, errors.WithStack(err)
		}
	}
}

func (t *RateLimitTransport) delay(retryAfter string, attempt int) time.Duration {
	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
		return withJitter(time.Duration(seconds) * time.Second)
	}

	if date, err := http.ParseTime(retryAfter); err == nil {
		return max(time.Until(date), 0)
	}

	backoff := t.DefaultWait
	for i := 0; i < attempt && backoff < maxBackoff; i++ {
		backoff *= 2
	}

	return withJitter(min(backoff, maxBackoff))
}

// withJitter adds up to 10% to the given delay.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}

	return d + rand.N(d/10+1)
}

func drain(res *http.Response) {
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}

func rewind(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	if req.GetBody == nil {
		return errors.New("could not replay a request with a one-time body")
	}

	body, err := req.GetBody()
	if err != nil {
		return errors.Wrap(err, "could not rewind request body")
	}

	req.Body = body

	return nil
}
