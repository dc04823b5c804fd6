package readthedocs

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mwaltz/sitesnap/pkg/errors"
	"github.com/mwaltz/sitesnap/pkg/httputil"
	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

const defaultBaseURL = "https://readthedocs.org"

// Config holds the job's targets and overrides.
type Config struct {
	BaseURL string            // empty = readthedocs.org
	Token   string            // API token
	Client  []httputil.Option // extra HTTP client options
}

// Job snapshots the project listing and every advertised link relation.
type Job struct {
	client  *httputil.Client
	sink    *snapshot.Sink
	baseURL string
}

// New creates the Read the Docs source job.
func New(sink *snapshot.Sink, cfg Config) *Job {
	opts := append([]httputil.Option{
		httputil.WithHeaders(map[string]string{
			"Authorization": "Token " + cfg.Token,
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
	}
}

func (j *Job) Name() string { return "readthedocs" }

func (j *Job) Credentials() []string {
	return []string{snapshot.CredReadTheDocsToken}
}

// Run drains the project listing, then drains each project's link
// relations under a path keyed by the project's repository name.
func (j *Job) Run(ctx context.Context) error {
	projects, err := httputil.Drain(ctx, j.client, j.baseURL+"/api/v3/projects/", "readthedocs/projects", j.sink)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	for _, raw := range projects {
		var p project
		if err := json.Unmarshal(raw, &p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidResponse, err, "decode project")
		}
		repoName := repoNameFromURL(p.Repository.URL)

		// Deterministic relation order keeps runs reproducible.
		relations := make([]string, 0, len(p.Links))
		for rel := range p.Links {
			relations = append(relations, rel)
		}
		sort.Strings(relations)

		for _, rel := range relations {
			path := fmt.Sprintf("readthedocs/%s/%s", rel, repoName)
			if _, err := httputil.Drain(ctx, j.client, p.Links[rel], path, j.sink); err != nil {
				return fmt.Errorf("drain %s for %s: %w", rel, repoName, err)
			}
		}
	}
	return nil
}

// repoNameFromURL extracts the repository name from a clone URL:
// the last path segment with a trailing ".git" stripped.
func repoNameFromURL(cloneURL string) string {
	name := cloneURL
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".git")
}

type project struct {
	Repository struct {
		URL string `json:"url"`
	} `json:"repository"`
	Links map[string]string `json:"_links"`
}
