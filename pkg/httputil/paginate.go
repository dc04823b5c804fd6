package httputil

import (
	"context"
	"encoding/json"
)

// MaxPages bounds how many pages [Collect] will follow. Upstream result
// counts are finite; hitting this bound means the cursor chain is broken.
const MaxPages = 1000

// page is the cursor-pagination envelope shared by the paged upstreams:
// a results array plus an optional next-page URL.
type page struct {
	Results []json.RawMessage `json:"results"`
	Next    string            `json:"next"`
}

// Writer persists a collected result set. Implemented by snapshot.Sink.
type Writer interface {
	WriteJSON(path string, v any) error
}

// Collect follows the "next" cursor from startURL until exhausted and
// returns the accumulated results in API order, without deduplication.
//
// A body that fails to parse as JSON ends the loop; whatever was collected
// so far is returned without error. An absent "results" field contributes
// nothing; an absent or empty "next" field ends the loop. Revisiting an
// already-seen cursor ends the loop rather than cycling. HTTP-level
// failures surface as errors after the client's retry budget is exhausted.
func Collect(ctx context.Context, c *Client, startURL string) ([]json.RawMessage, error) {
	var results []json.RawMessage

	visited := make(map[string]bool)
	url := startURL

	for pageNum := 0; pageNum < MaxPages; pageNum++ {
		if visited[url] {
			break
		}
		visited[url] = true

		body, err := c.GetBytes(ctx, url)
		if err != nil {
			return nil, err
		}

		var p page
		if err := json.Unmarshal(body, &p); err != nil {
			break
		}

		results = append(results, p.Results...)

		if p.Next == "" {
			break
		}
		url = p.Next
	}

	return results, nil
}

// Drain collects all pages from startURL and, if any results were
// accumulated, persists them through w at path. An empty result set writes
// nothing; the absence of an output file signals "no data", not an error.
func Drain(ctx context.Context, c *Client, startURL, path string, w Writer) ([]json.RawMessage, error) {
	results, err := Collect(ctx, c, startURL)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		if err := w.WriteJSON(path, results); err != nil {
			return nil, err
		}
	}
	return results, nil
}
