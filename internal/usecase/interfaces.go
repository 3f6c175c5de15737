package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoStorageTarget = errors.New("storage target is not configured")
	ErrEmptyURL        = errors.New("url is empty")
)

// Outcome describes what happened to a single url during a crawl.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeFetchFailed
	OutcomeBadStatus
	OutcomeStoreFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeFetchFailed:
		return "fetch failed"
	case OutcomeBadStatus:
		return "bad status"
	case OutcomeStoreFailed:
		return "store failed"
	}
	return "unknown"
}

type CrawlResult struct {
	Err     error
	Title   string
	URL     string
	Path    string
	Depth   int
	Outcome Outcome
}

// StatusError is returned by a Fetcher when the final response is not 2xx.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Response is the body and status of a successful (2xx) fetch.
type Response struct {
	StatusCode int
	Body       []byte
}

type Page interface {
	GetTitle(context.Context) string
	GetLinks(context.Context) []string
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

type Storage interface {
	Store(ctx context.Context, folder, filename string, content []byte) (string, error)
}

type ResultHandler interface {
	Handle(CrawlResult)
}

//Crawler - contract of the recursive crawler
type Crawler interface {
	Crawl(ctx context.Context, url string, remainingDepth int) error
}
