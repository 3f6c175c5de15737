package crawler

import (
	"context"
	"errors"
	"fmt"
	"pagecrawler/internal/app/page"
	"pagecrawler/internal/app/storage"
	"pagecrawler/internal/usecase"
	"strings"

	"go.uber.org/zap"
)

type Options struct {
	StorageFolder   string
	MaxLinksPerPage int
}

type crawler struct {
	f      usecase.Fetcher
	s      usecase.Storage
	h      usecase.ResultHandler
	logger *zap.Logger
	opts   Options
}

func NewCrawler(f usecase.Fetcher, s usecase.Storage, h usecase.ResultHandler, logger *zap.Logger, opts Options) *crawler {
	return &crawler{
		f:      f,
		s:      s,
		h:      h,
		logger: logger,
		opts:   opts,
	}
}

// Crawl fetches url, stores it and recurses into at most MaxLinksPerPage of
// its http(s) links with remainingDepth-1, stopping at depth 0. Visited urls
// are not remembered, so a page reachable by several paths is fetched each
// time. Only a missing storage folder or an empty url is returned as an
// error; per page failures go to the result handler and the walk goes on.
func (c *crawler) Crawl(ctx context.Context, url string, remainingDepth int) error {
	if c.opts.StorageFolder == "" {
		return usecase.ErrNoStorageTarget
	}
	if url == "" {
		return usecase.ErrEmptyURL
	}
	c.crawl(ctx, url, remainingDepth)
	return nil
}

func (c *crawler) crawl(ctx context.Context, url string, remainingDepth int) {
	if remainingDepth <= 0 {
		c.logger.Debug("depth exhausted", zap.String("url", url))
		return
	}
	select {
	case <-ctx.Done():
		c.logger.Debug("context done in crawl", zap.String("url", url))
		return
	default:
	}

	c.logger.Info("fetching", zap.String("url", url), zap.Int("depth", remainingDepth))
	resp, err := c.f.Fetch(ctx, url)
	if err != nil {
		outcome := usecase.OutcomeFetchFailed
		var statusErr *usecase.StatusError
		if errors.As(err, &statusErr) {
			outcome = usecase.OutcomeBadStatus
		}
		c.h.Handle(usecase.CrawlResult{Err: err, URL: url, Depth: remainingDepth, Outcome: outcome})
		return
	}

	path, err := c.s.Store(ctx, c.opts.StorageFolder, storage.FileName(url), resp.Body)
	if err != nil {
		c.h.Handle(usecase.CrawlResult{
			Err:     fmt.Errorf("store %s: %w", url, err),
			URL:     url,
			Depth:   remainingDepth,
			Outcome: usecase.OutcomeStoreFailed,
		})
		return
	}

	p := page.NewPage(resp.Body, c.logger)
	c.h.Handle(usecase.CrawlResult{
		Title:   p.GetTitle(ctx),
		URL:     url,
		Path:    path,
		Depth:   remainingDepth,
		Outcome: usecase.OutcomeSaved,
	})

	count := 0
	for _, link := range p.GetLinks(ctx) {
		if !isCandidate(link) {
			continue
		}
		count++
		if count > c.opts.MaxLinksPerPage {
			logMsg := fmt.Sprintf("fan-out cap %d reached on %s", c.opts.MaxLinksPerPage, url)
			c.logger.Debug(logMsg)
			break
		}
		c.crawl(ctx, link, remainingDepth-1)
	}
}

// isCandidate reports whether link starts with "http", ignoring case.
func isCandidate(link string) bool {
	return len(link) >= 4 && strings.EqualFold(link[:4], "http")
}
