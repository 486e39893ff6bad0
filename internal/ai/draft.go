package ai

import (
	"context"
	"errors"
)

// ErrNoGenerator is reported when a draft is requested without a generator.
var ErrNoGenerator = errors.New("ai: no generator configured")

// Draft is the result of one generation attempt.
type Draft struct {
	Keyword string
	Content string
	Err     error
}

// OK reports whether the generator produced content.
func (d Draft) OK() bool {
	return d.Err == nil
}

// Text returns the post body. A failed draft yields a readable error line
// instead, so downstream consumers always receive something to deliver.
func (d Draft) Text() string {
	if d.Err != nil {
		return "Error generating blog content: " + d.Err.Error()
	}
	return d.Content
}

// NewDraft asks g for a post around keyword and captures the outcome.
func NewDraft(ctx context.Context, g Generator, keyword string) Draft {
	if g == nil {
		return Draft{Keyword: keyword, Err: ErrNoGenerator}
	}
	content, err := g.GeneratePost(ctx, keyword)
	return Draft{Keyword: keyword, Content: content, Err: err}
}
