package codecov

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mwaltz/sitesnap/pkg/errors"
	"github.com/mwaltz/sitesnap/pkg/httputil"
	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

const defaultBaseURL = "https://api.codecov.io"

// pageSize caps the single repository-listing page.
const pageSize = 500

// Config holds the job's targets and overrides.
type Config struct {
	BaseURL string            // empty = public Codecov API
	Owner   string            // repository owner to list
	Token   string            // API token
	Client  []httputil.Option // extra HTTP client options
}

// Job snapshots the owner's repository listing and per-repository coverage.
type Job struct {
	client  *httputil.Client
	sink    *snapshot.Sink
	baseURL string
	owner   string
}

// New creates the Codecov source job.
func New(sink *snapshot.Sink, cfg Config) *Job {
	opts := append([]httputil.Option{
		httputil.WithHeaders(map[string]string{
			"Authorization": "Bearer " + cfg.Token,
		}),
	}, cfg.Client...)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Job{
		client:  httputil.NewClient(opts...),
		sink:    sink,
		baseURL: baseURL,
		owner:   cfg.Owner,
	}
}

func (j *Job) Name() string { return "codecov" }

func (j *Job) Credentials() []string {
	return []string{snapshot.CredGitHubOwner, snapshot.CredCodecovToken}
}

// Run fetches the size-capped repository page, asserts no further pages
// exist, writes the listing, then writes detailed coverage per repository.
func (j *Job) Run(ctx context.Context) error {
	listURL := fmt.Sprintf("%s/api/v2/github/%s/repos?page_size=%d", j.baseURL, j.owner, pageSize)

	var listing repoPage
	if err := j.client.Get(ctx, listURL, &listing); err != nil {
		return fmt.Errorf("list repos: %w", err)
	}
	if listing.Next != "" {
		return errors.New(errors.ErrCodePaginationNotImplemented,
			"repository listing for %s exceeds %d entries; pagination not implemented", j.owner, pageSize)
	}
	if err := j.sink.WriteJSON("codecov/repos", listing.Results); err != nil {
		return err
	}

	for _, raw := range listing.Results {
		var r struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &r); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidResponse, err, "decode repo entry")
		}

		detailURL := fmt.Sprintf("%s/api/v2/github/%s/repos/%s", j.baseURL, j.owner, r.Name)
		detail, err := j.client.GetRaw(ctx, detailURL)
		if err != nil {
			return fmt.Errorf("fetch coverage for %s: %w", r.Name, err)
		}
		if err := j.sink.WriteJSON("codecov/repos/"+r.Name, detail); err != nil {
			return err
		}
	}
	return nil
}

type repoPage struct {
	Results []json.RawMessage `json:"results"`
	Next    string            `json:"next"`
}
