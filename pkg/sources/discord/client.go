package discord

import (
	"context"
	"fmt"

	"github.com/mwaltz/sitesnap/pkg/httputil"
	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

const defaultBaseURL = "https://discord.com"

// Config holds the job's targets and overrides.
type Config struct {
	BaseURL string            // empty = public Discord API
	Invite  string            // invite code
	Client  []httputil.Option // extra HTTP client options
}

// Job snapshots the invite-info response.
type Job struct {
	client  *httputil.Client
	sink    *snapshot.Sink
	baseURL string
	invite  string
}

// New creates the Discord source job.
func New(sink *snapshot.Sink, cfg Config) *Job {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Job{
		client:  httputil.NewClient(cfg.Client...),
		sink:    sink,
		baseURL: baseURL,
		invite:  cfg.Invite,
	}
}

func (j *Job) Name() string { return "discord" }

func (j *Job) Credentials() []string {
	return []string{snapshot.CredDiscordInvite}
}

// Run fetches the invite info with member counts and writes it verbatim.
func (j *Job) Run(ctx context.Context) error {
	inviteURL := fmt.Sprintf("%s/api/invites/%s?with_counts=true", j.baseURL, j.invite)
	data, err := j.client.GetRaw(ctx, inviteURL)
	if err != nil {
		return fmt.Errorf("fetch invite: %w", err)
	}
	return j.sink.WriteJSON("discord/invite", data)
}
