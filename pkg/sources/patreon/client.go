package patreon

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mwaltz/sitesnap/pkg/httputil"
	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

const defaultBaseURL = "https://www.patreon.com"

// Config holds the job's targets and overrides.
type Config struct {
	BaseURL    string            // empty = public Patreon API
	CampaignID string            // numeric campaign id
	Client     []httputil.Option // extra HTTP client options
}

// Job snapshots the campaign attributes.
type Job struct {
	client   *httputil.Client
	sink     *snapshot.Sink
	baseURL  string
	campaign string
}

// New creates the Patreon source job.
func New(sink *snapshot.Sink, cfg Config) *Job {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Job{
		client:   httputil.NewClient(cfg.Client...),
		sink:     sink,
		baseURL:  baseURL,
		campaign: cfg.CampaignID,
	}
}

func (j *Job) Name() string { return "patreon" }

func (j *Job) Credentials() []string {
	return []string{snapshot.CredPatreonCampaignID}
}

// Run fetches the campaign and writes its attributes verbatim.
func (j *Job) Run(ctx context.Context) error {
	var resp campaignResponse
	campaignURL := fmt.Sprintf("%s/api/campaigns/%s", j.baseURL, j.campaign)
	if err := j.client.Get(ctx, campaignURL, &resp); err != nil {
		return fmt.Errorf("fetch campaign: %w", err)
	}
	return j.sink.WriteJSON("patreon/campaign", resp.Data.Attributes)
}

type campaignResponse struct {
	Data struct {
		Attributes json.RawMessage `json:"attributes"`
	} `json:"data"`
}
