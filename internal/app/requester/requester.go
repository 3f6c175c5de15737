package requester

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"pagecrawler/internal/usecase"
	"time"

	"go.uber.org/zap"
)

type requester struct {
	timeout   time.Duration
	userAgent string
	logger    *zap.Logger
	rt        http.RoundTripper
}

// NewRequester builds a Fetcher. A nil rt uses http.DefaultTransport.
// Redirects are followed by the client; the final response is what counts.
func NewRequester(timeout time.Duration, logger *zap.Logger, rt http.RoundTripper) requester {
	logger.Debug("new requester initialize")
	return requester{
		timeout: timeout,
		logger:  logger,
		rt:      rt,
	}
}

func (r requester) WithUserAgent(userAgent string) requester {
	r.userAgent = userAgent
	return r
}

func (r requester) Fetch(ctx context.Context, url string) (*usecase.Response, error) {
	select {
	case <-ctx.Done():
		r.logger.Debug("context done in fetch")
		return nil, ctx.Err()
	default:
		cl := &http.Client{
			Timeout:   r.timeout,
			Transport: r.rt,
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			logMsg := fmt.Sprintf("error by get new request, url: %s", url)
			r.logger.Debug(logMsg, zap.Error(err))
			return nil, fmt.Errorf("new request %s: %w", url, err)
		}
		if r.userAgent != "" {
			req.Header.Set("User-Agent", r.userAgent)
		}
		resp, err := cl.Do(req)
		if err != nil {
			r.logger.Debug("http.client error", zap.Error(err))
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &usecase.StatusError{URL: url, StatusCode: resp.StatusCode}
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body %s: %w", url, err)
		}
		return &usecase.Response{StatusCode: resp.StatusCode, Body: body}, nil
	}
}
