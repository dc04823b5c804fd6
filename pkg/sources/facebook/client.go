package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mwaltz/sitesnap/pkg/httputil"
	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

const defaultBaseURL = "https://graph.facebook.com"

// Config holds the job's targets and overrides.
type Config struct {
	BaseURL string            // empty = public Graph API
	GroupID string            // group to read member counts from
	PageID  string            // page to read insights from
	Token   string            // page access token, shared by both endpoints
	Client  []httputil.Option // extra HTTP client options
}

// Job snapshots group info and page insights.
type Job struct {
	client  *httputil.Client
	sink    *snapshot.Sink
	baseURL string
	groupID string
	pageID  string
	token   string
}

// New creates the Facebook source job.
func New(sink *snapshot.Sink, cfg Config) *Job {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Job{
		client:  httputil.NewClient(cfg.Client...),
		sink:    sink,
		baseURL: baseURL,
		groupID: cfg.GroupID,
		pageID:  cfg.PageID,
		token:   cfg.Token,
	}
}

func (j *Job) Name() string { return "facebook" }

func (j *Job) Credentials() []string {
	return []string{
		snapshot.CredFacebookGroupID,
		snapshot.CredFacebookPageID,
		snapshot.CredFacebookToken,
	}
}

// Run fetches the group info and the page insights. The group response is
// written verbatim; the insights response is rewritten without its "paging"
// field.
func (j *Job) Run(ctx context.Context) error {
	groupURL := fmt.Sprintf("%s/%s?fields=member_count,name,description&access_token=%s",
		j.baseURL, j.groupID, url.QueryEscape(j.token))
	group, err := j.client.GetRaw(ctx, groupURL)
	if err != nil {
		return fmt.Errorf("fetch group: %w", err)
	}
	if err := j.sink.WriteJSON("facebook/group", group); err != nil {
		return err
	}

	insightsURL := fmt.Sprintf("%s/%s/insights?metric=page_fans&access_token=%s",
		j.baseURL, j.pageID, url.QueryEscape(j.token))
	var insights map[string]json.RawMessage
	if err := j.client.Get(ctx, insightsURL, &insights); err != nil {
		return fmt.Errorf("fetch insights: %w", err)
	}
	// Drop only the pagination cursors; any other field the API attaches
	// is preserved.
	delete(insights, "paging")
	return j.sink.WriteJSON("facebook/page", insights)
}
