// Package summarize wraps the AI summarization capability, the extractive
// fallback used when it is absent or rejected, and the grounding validator
// that keeps hallucinated reviews out of the archive.
package summarize

import (
	"context"

	"newsbrief/internal/core"
)

// Request carries everything a summarizer needs for one article.
type Request struct {
	Kind           core.Kind
	Headline       string
	ArticleText    string
	SourceURL      string
	CompanyContext string // background flavour only; may be empty
}

// Summarizer is the black-box summarization capability. The boolean result
// reports presence: (review, true, nil) on success, (zero, false, nil) when
// the capability is unavailable or returned nothing usable. Errors are
// non-fatal to the pipeline; callers fall back to the extractive path.
type Summarizer interface {
	Review(ctx context.Context, req Request) (core.Review, bool, error)
}

// Disabled is a Summarizer that always reports absence. Used when no API
// key is configured; the pipeline then runs on extractive fallbacks alone.
type Disabled struct{}

func (Disabled) Review(context.Context, Request) (core.Review, bool, error) {
	return core.Review{}, false, nil
}
