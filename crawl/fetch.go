package crawl

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/fwojciec/grail"
)

// Ensure FetchContext implements grail.PageFetcher at compile time.
var _ grail.PageFetcher = (*FetchContext)(nil)

// FetchContext carries everything a page fetch needs: the content API, the
// cache and the politeness settings. It is passed explicitly to every
// fetch and discovery call.
type FetchContext struct {
	API     grail.PageAPI
	Fetcher grail.Fetcher
	Cache   grail.CacheStore
	Policy  grail.CachePolicy

	// Delay is the base pause before each network call. Zero disables it.
	Delay time.Duration

	// Rand returns a uniform value in [0, 1). Defaults to math/rand/v2.
	Rand func() float64

	// Sleep blocks for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// FetchPage returns the rendered HTML of title. When the rendered request
// is refused with 403 or 429 it returns the raw wikitext instead. Other
// failures propagate.
func (f *FetchContext) FetchPage(ctx context.Context, title string) (*grail.Page, error) {
	page, err := f.fetch(ctx, grail.PageHandle{Title: title, Representation: grail.Rendered}, f.API.Rendered)
	if err == nil {
		return page, nil
	}
	if !fallbackStatus(grail.StatusCode(err)) {
		return nil, err
	}

	page, rawErr := f.fetch(ctx, grail.PageHandle{Title: title, Representation: grail.Raw}, f.API.Raw)
	if rawErr != nil {
		return nil, fmt.Errorf("raw fallback for %s after %v: %w", title, err, rawErr)
	}
	return page, nil
}

func fallbackStatus(code int) bool {
	return code == http.StatusForbidden || code == http.StatusTooManyRequests
}

func (f *FetchContext) fetch(ctx context.Context, h grail.PageHandle, get func(context.Context, string) (string, error)) (*grail.Page, error) {
	content, err := f.Cache.GetOrFetch(ctx, h.CacheKey(), f.Policy, func(ctx context.Context) (string, error) {
		if err := f.pause(ctx); err != nil {
			return "", err
		}
		return get(ctx, h.Title)
	})
	if err != nil {
		return nil, err
	}
	return &grail.Page{
		Title:          h.Title,
		Representation: h.Representation,
		Content:        content,
		SourceURL:      f.API.PageURL(h.Title),
	}, nil
}

// FetchURL returns the body of an arbitrary URL outside the wiki API,
// cached under "ext_" + url with the same delay and freshness rules.
func (f *FetchContext) FetchURL(ctx context.Context, url string) (string, error) {
	return f.Cache.GetOrFetch(ctx, "ext_"+url+".html", f.Policy, func(ctx context.Context) (string, error) {
		if err := f.pause(ctx); err != nil {
			return "", err
		}
		return f.Fetcher.Fetch(ctx, url)
	})
}

// Jitter returns the delay for the next network call: Delay scaled by a
// uniform factor in [0.7, 1.3).
func (f *FetchContext) Jitter() time.Duration {
	if f.Delay <= 0 {
		return 0
	}
	r := rand.Float64
	if f.Rand != nil {
		r = f.Rand
	}
	return time.Duration(float64(f.Delay) * (0.7 + 0.6*r()))
}

func (f *FetchContext) pause(ctx context.Context) error {
	d := f.Jitter()
	if d == 0 {
		return nil
	}
	if f.Sleep != nil {
		return f.Sleep(ctx, d)
	}
	return sleep(ctx, d)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
