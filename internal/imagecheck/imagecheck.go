// Package imagecheck verifies that remote story images are reachable
// before rendering. Broken image URLs otherwise surface only as blank
// boxes in the final PDF.
package imagecheck

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	story2pdf "github.com/alnah/go-story2pdf"
	"github.com/alnah/go-story2pdf/internal/fileutil"
)

// Defaults for the HTTP client. Generation endpoints can be slow on a
// cold prompt, so the timeout is generous and failures retry.
const (
	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 3
	retryWaitTime     = 2 * time.Second
	retryMaxWaitTime  = 10 * time.Second
)

// Problem describes one unreachable image.
type Problem struct {
	Chapter int    // 0 for the cover image
	URL     string
	Reason  string
}

// Checker probes image URLs with HEAD requests.
type Checker struct {
	client *resty.Client
}

// NewChecker creates a Checker with retry and backoff configured.
func NewChecker() *Checker {
	client := resty.New().
		SetTimeout(defaultTimeout).
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	return &Checker{client: client}
}

// SetBaseClient replaces the underlying client (used by tests).
func (c *Checker) SetBaseClient(client *resty.Client) {
	c.client = client
}

// Check probes a single URL. Non-URL image references (local paths,
// data URIs) are skipped and report as reachable.
func (c *Checker) Check(ctx context.Context, imageURL string) error {
	if !fileutil.IsURL(imageURL) {
		return nil
	}

	resp, err := c.client.R().SetContext(ctx).Head(imageURL)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", imageURL, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("%s returned status %d", imageURL, resp.StatusCode())
	}
	return nil
}

// CheckStory probes the cover image and every chapter image, returning
// one Problem per unreachable URL. A nil slice means all images resolved.
func (c *Checker) CheckStory(ctx context.Context, story *story2pdf.Story, coverImage string) []Problem {
	var problems []Problem

	if coverImage != "" {
		if err := c.Check(ctx, coverImage); err != nil {
			problems = append(problems, Problem{Chapter: 0, URL: coverImage, Reason: err.Error()})
		}
	}

	for _, ch := range story.Chapters {
		if ch.Image == "" {
			continue
		}
		if err := c.Check(ctx, ch.Image); err != nil {
			problems = append(problems, Problem{Chapter: ch.Number, URL: ch.Image, Reason: err.Error()})
		}
	}

	return problems
}
