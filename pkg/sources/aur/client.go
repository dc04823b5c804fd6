package aur

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mwaltz/sitesnap/pkg/httputil"
	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

const defaultBaseURL = "https://aur.archlinux.org"

// Config holds the job's targets and overrides.
type Config struct {
	BaseURL  string            // empty = public AUR endpoint
	Packages []string          // package names to query
	Client   []httputil.Option // extra HTTP client options
}

// Job snapshots AUR package info responses.
type Job struct {
	client   *httputil.Client
	sink     *snapshot.Sink
	baseURL  string
	packages []string
}

// New creates the AUR source job.
func New(sink *snapshot.Sink, cfg Config) *Job {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Job{
		client:   httputil.NewClient(cfg.Client...),
		sink:     sink,
		baseURL:  baseURL,
		packages: cfg.Packages,
	}
}

func (j *Job) Name() string { return "aur" }

// Credentials returns nil; the AUR RPC is unauthenticated.
func (j *Job) Credentials() []string { return nil }

// Run queries the info endpoint for each configured package and writes the
// response verbatim.
func (j *Job) Run(ctx context.Context) error {
	for _, pkg := range j.packages {
		infoURL := fmt.Sprintf("%s/rpc?v=5&type=info&arg=%s", j.baseURL, url.QueryEscape(pkg))
		data, err := j.client.GetRaw(ctx, infoURL)
		if err != nil {
			return fmt.Errorf("fetch %s info: %w", pkg, err)
		}
		if err := j.sink.WriteJSON("aur/"+pkg, data); err != nil {
			return err
		}
	}
	return nil
}
