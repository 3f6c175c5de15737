package handlers

import (
	"pagecrawler/internal/usecase"

	"go.uber.org/zap"
)

// HandlerFunc adapts a function to usecase.ResultHandler.
type HandlerFunc func(usecase.CrawlResult)

func (f HandlerFunc) Handle(res usecase.CrawlResult) {
	f(res)
}

type resultLogger struct {
	logger *zap.Logger
}

// NewResultLogger returns a handler that logs every page outcome as it
// happens. Nothing is aggregated.
func NewResultLogger(logger *zap.Logger) *resultLogger {
	return &resultLogger{logger: logger}
}

func (h *resultLogger) Handle(res usecase.CrawlResult) {
	fields := []zap.Field{zap.String("url", res.URL), zap.Int("depth", res.Depth)}
	switch res.Outcome {
	case usecase.OutcomeSaved:
		h.logger.Info("page saved", append(fields, zap.String("path", res.Path), zap.String("title", res.Title))...)
	case usecase.OutcomeBadStatus:
		h.logger.Warn("failed to fetch", append(fields, zap.Error(res.Err))...)
	case usecase.OutcomeFetchFailed:
		h.logger.Error("request failed", append(fields, zap.Error(res.Err))...)
	case usecase.OutcomeStoreFailed:
		h.logger.Error("failed to store page", append(fields, zap.Error(res.Err))...)
	default:
		h.logger.Warn("unknown crawl result", fields...)
	}
}
