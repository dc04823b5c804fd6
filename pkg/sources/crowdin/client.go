package crowdin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mwaltz/sitesnap/pkg/errors"
	"github.com/mwaltz/sitesnap/pkg/httputil"
	"github.com/mwaltz/sitesnap/pkg/render"
	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

const defaultBaseURL = "https://api.crowdin.com"

// progressLimit caps the per-project language page; no project tracks
// anywhere near this many languages.
const progressLimit = 500

// Config holds the job's targets and overrides.
type Config struct {
	BaseURL           string            // empty = public Crowdin API
	Token             string            // API token
	ReferenceLanguage string            // forced to the chart front, e.g. "en"
	Client            []httputil.Option // extra HTTP client options
}

// Job snapshots per-project localization progress and renders charts.
type Job struct {
	client    *httputil.Client
	sink      *snapshot.Sink
	baseURL   string
	reference string
}

// New creates the Crowdin source job.
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
		client:    httputil.NewClient(opts...),
		sink:      sink,
		baseURL:   baseURL,
		reference: cfg.ReferenceLanguage,
	}
}

func (j *Job) Name() string { return "crowdin" }

func (j *Job) Credentials() []string {
	return []string{snapshot.CredCrowdinToken}
}

// Run lists all projects and, for each, writes the per-language progress
// and its chart.
func (j *Job) Run(ctx context.Context) error {
	var projects listEnvelope[projectData]
	if err := j.client.Get(ctx, j.baseURL+"/api/v2/projects", &projects); err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	for _, item := range projects.Data {
		if err := j.snapshotProject(ctx, item.Data); err != nil {
			return err
		}
	}
	return nil
}

func (j *Job) snapshotProject(ctx context.Context, p projectData) error {
	progressURL := fmt.Sprintf("%s/api/v2/projects/%d/languages/progress?limit=%d",
		j.baseURL, p.ID, progressLimit)

	var progress listEnvelope[json.RawMessage]
	if err := j.client.Get(ctx, progressURL, &progress); err != nil {
		return fmt.Errorf("fetch progress for %s: %w", p.Identifier, err)
	}

	rows := make([]json.RawMessage, len(progress.Data))
	entries := make([]render.Entry, len(progress.Data))
	for i, item := range progress.Data {
		rows[i] = item.Data

		var row progressRow
		if err := json.Unmarshal(item.Data, &row); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidResponse, err, "decode progress row for %s", p.Identifier)
		}
		entries[i] = render.Entry{
			ID:          row.Language.ID,
			Name:        row.Language.Name,
			Translation: row.TranslationProgress,
			Approval:    row.ApprovalProgress,
		}
	}

	if err := j.sink.WriteJSON("crowdin/"+p.Identifier, rows); err != nil {
		return err
	}
	chart := render.ProgressSVG(entries, j.reference)
	return j.sink.WriteFile("crowdin/"+p.Identifier+"_graph.svg", chart)
}

// listEnvelope is the {"data": [{"data": ...}, ...]} shape of list responses.
type listEnvelope[T any] struct {
	Data []struct {
		Data T `json:"data"`
	} `json:"data"`
}

type projectData struct {
	ID         int    `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

type progressRow struct {
	Language struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"language"`
	TranslationProgress int `json:"translationProgress"`
	ApprovalProgress    int `json:"approvalProgress"`
}
