package page

import (
	"bytes"
	"context"
	"fmt"
	"pagecrawler/internal/usecase"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// hrefRe matches the href value of an anchor tag. Other attributes may come
// before href; quotes may be single or double. Entities are not decoded and
// relative references are not resolved.
var hrefRe = regexp.MustCompile(`(?i)<a\s+(?:[^>]*?\s+)?href\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// LinkSet is an unordered set of link tokens.
type LinkSet map[string]struct{}

// ExtractLinks returns the distinct, non-empty anchor href values in content.
// It never fails: text without anchors yields an empty set.
func ExtractLinks(content []byte) LinkSet {
	links := make(LinkSet)
	for _, m := range hrefRe.FindAllSubmatch(content, -1) {
		link := m[1]
		if len(link) == 0 {
			link = m[2]
		}
		if len(link) == 0 {
			continue
		}
		links[string(link)] = struct{}{}
	}
	return links
}

type page struct {
	raw    []byte
	logger *zap.Logger
}

func NewPage(raw []byte, logger *zap.Logger) usecase.Page {
	logger.Debug("new page initialize", zap.Int("size", len(raw)))
	return &page{raw: raw, logger: logger}
}

func (p *page) GetTitle(ctx context.Context) string {
	select {
	case <-ctx.Done():
		p.logger.Debug("context done in get title")
		return ""
	default:
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.raw))
		if err != nil {
			p.logger.Warn("can't parse page for title", zap.Error(err))
			return ""
		}
		title := doc.Find("title").First().Text()
		logMsg := fmt.Sprintf("get title return title: %s", title)
		p.logger.Debug(logMsg)
		return title
	}
}

// GetLinks returns the page's link set as a slice. The order is unspecified.
func (p *page) GetLinks(ctx context.Context) []string {
	select {
	case <-ctx.Done():
		p.logger.Debug("context done in get links")
		return nil
	default:
		set := ExtractLinks(p.raw)
		urls := make([]string, 0, len(set))
		for url := range set {
			urls = append(urls, url)
		}
		p.logger.Debug("links extracted", zap.Int("count", len(urls)))
		return urls
	}
}
