package http

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fwojciec/grail"
)

// Upstream wiki locations.
const (
	DefaultAPIURL  = "https://diablo.fandom.com/api.php"
	DefaultWikiURL = "https://diablo.fandom.com/wiki/"
)

// Ensure API implements grail.PageAPI at compile time.
var _ grail.PageAPI = (*API)(nil)

// API reads page content through the MediaWiki action API.
type API struct {
	client   *Client
	endpoint string
	wikiBase string
}

// NewAPI creates an API that sends requests to endpoint and builds page
// URLs under wikiBase.
func NewAPI(client *Client, endpoint, wikiBase string) *API {
	return &API{
		client:   client,
		endpoint: endpoint,
		wikiBase: wikiBase,
	}
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type parseResponse struct {
	Parse struct {
		Title string            `json:"title"`
		Text  map[string]string `json:"text"`
	} `json:"parse"`
	Error *apiError `json:"error"`
}

type queryResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Star    string `json:"*"`
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

// Rendered returns the page rendered to HTML.
// Returns ENOTFOUND if the response carries no HTML payload.
func (a *API) Rendered(ctx context.Context, title string) (string, error) {
	body, err := a.client.Get(ctx, a.endpoint, map[string]string{
		"action":    "parse",
		"page":      title,
		"prop":      "text",
		"format":    "json",
		"origin":    "*",
		"redirects": "1",
	})
	if err != nil {
		return "", err
	}

	var resp parseResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return "", fmt.Errorf("decode parse response for %s: %w", title, err)
	}
	if resp.Error != nil {
		return "", grail.Errorf(grail.ENOTFOUND, "no HTML for page %q: %s", title, resp.Error.Info)
	}
	html := resp.Parse.Text["*"]
	if html == "" {
		return "", grail.Errorf(grail.ENOTFOUND, "no HTML for page %q", title)
	}
	return html, nil
}

// Raw returns the page's wikitext source.
// Returns ENOTFOUND if the response carries no wikitext payload.
func (a *API) Raw(ctx context.Context, title string) (string, error) {
	body, err := a.client.Get(ctx, a.endpoint, map[string]string{
		"action":    "query",
		"prop":      "revisions",
		"rvslots":   "*",
		"rvprop":    "content",
		"titles":    title,
		"format":    "json",
		"origin":    "*",
		"redirects": "1",
	})
	if err != nil {
		return "", err
	}

	var resp queryResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return "", fmt.Errorf("decode query response for %s: %w", title, err)
	}
	if resp.Error != nil {
		return "", grail.Errorf(grail.ENOTFOUND, "no wikitext for page %q: %s", title, resp.Error.Info)
	}

	// A single title yields one page; keys are sorted so the choice is
	// stable should the API ever return more.
	ids := make([]string, 0, len(resp.Query.Pages))
	for id := range resp.Query.Pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		page := resp.Query.Pages[id]
		if len(page.Revisions) == 0 {
			continue
		}
		main := page.Revisions[0].Slots.Main
		if main.Star != "" {
			return main.Star, nil
		}
		if main.Content != "" {
			return main.Content, nil
		}
	}
	return "", grail.Errorf(grail.ENOTFOUND, "no wikitext for page %q", title)
}

// PageURL returns the human-facing URL of a page.
func (a *API) PageURL(title string) string {
	return a.wikiBase + title
}
