package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/mwaltz/sitesnap/pkg/errors"
	"github.com/mwaltz/sitesnap/pkg/httputil"
	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

const defaultBaseURL = "https://api.github.com"

// thumbWidth is the fixed width of generated preview thumbnails; height
// follows the source aspect ratio.
const thumbWidth = 400

// openGraphQuery resolves a repository's social preview image URL. The
// owner and name travel as GraphQL variables, never spliced into the query
// body.
const openGraphQuery = `query($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    openGraphImageUrl
  }
}`

// Config holds the job's targets and overrides.
type Config struct {
	BaseURL string            // empty = public GitHub API
	Owner   string            // repository owner to list
	Token   string            // API token for languages and GraphQL
	Client  []httputil.Option // extra HTTP client options
}

// Job snapshots the owner's repositories, their language breakdowns, and
// their open-graph preview images.
type Job struct {
	client  *httputil.Client
	sink    *snapshot.Sink
	baseURL string
	owner   string
}

// New creates the GitHub source job.
func New(sink *snapshot.Sink, cfg Config) *Job {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	opts := append([]httputil.Option{
		httputil.WithHeaders(map[string]string{
			"Authorization": "token " + cfg.Token,
			"Accept":        "application/vnd.github.v3+json",
		}),
	}, cfg.Client...)
	return &Job{
		client:  httputil.NewClient(opts...),
		sink:    sink,
		baseURL: baseURL,
		owner:   cfg.Owner,
	}
}

func (j *Job) Name() string { return "github" }

func (j *Job) Credentials() []string {
	return []string{snapshot.CredGitHubOwner, snapshot.CredGitHubToken}
}

// Run lists the owner's repositories, writes the listing verbatim, then
// per repository writes the language breakdown and fetches the open-graph
// preview image.
func (j *Job) Run(ctx context.Context) error {
	reposURL := fmt.Sprintf("%s/users/%s/repos", j.baseURL, j.owner)
	body, err := j.client.GetBytes(ctx, reposURL)
	if err != nil {
		return fmt.Errorf("list repos: %w", err)
	}
	if err := j.sink.WriteJSON("github/repos", json.RawMessage(body)); err != nil {
		return err
	}

	var repos []repo
	if err := json.Unmarshal(body, &repos); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidResponse, err, "decode repo listing")
	}

	for _, r := range repos {
		if err := j.snapshotRepo(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (j *Job) snapshotRepo(ctx context.Context, r repo) error {
	languages, err := j.client.GetRaw(ctx, r.LanguagesURL)
	if err != nil {
		return fmt.Errorf("fetch languages for %s: %w", r.Name, err)
	}
	if err := j.sink.WriteJSON("github/languages/"+r.Name, languages); err != nil {
		return err
	}

	imageURL, err := j.openGraphImageURL(ctx, r)
	if err != nil {
		return err
	}
	// Generic placeholder avatars are not worth publishing.
	if strings.Contains(imageURL, "avatars") {
		return nil
	}
	return j.saveImage(ctx, r.Name, imageURL)
}

// openGraphImageURL resolves the preview image URL via GraphQL. A response
// missing the field means the token is invalid; that aborts the run.
func (j *Job) openGraphImageURL(ctx context.Context, r repo) (string, error) {
	payload := graphqlRequest{
		Query: openGraphQuery,
		Variables: map[string]string{
			"owner": r.Owner.Login,
			"name":  r.Name,
		},
	}

	var resp graphqlResponse
	if err := j.client.Post(ctx, j.baseURL+"/graphql", payload, &resp); err != nil {
		return "", fmt.Errorf("graphql query for %s: %w", r.Name, err)
	}
	if resp.Data.Repository == nil || resp.Data.Repository.OpenGraphImageURL == "" {
		return "", errors.New(errors.ErrCodeInvalidToken, "%q is invalid", snapshot.CredGitHubToken)
	}
	return resp.Data.Repository.OpenGraphImageURL, nil
}

// saveImage downloads the preview image and writes it together with a
// fixed-width thumbnail. A thumbnail that cannot be decoded is skipped
// rather than failing the run; the original is still published.
func (j *Job) saveImage(ctx context.Context, name, imageURL string) error {
	data, err := j.client.GetBytes(ctx, imageURL)
	if err != nil {
		return fmt.Errorf("download preview for %s: %w", name, err)
	}
	if err := j.sink.WriteFile("github/openGraphImages/"+name+".png", data); err != nil {
		return err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.FromContext(ctx).Warn("skipping thumbnail, preview not decodable", "repo", name, "err", err)
		return nil
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return fmt.Errorf("encode thumbnail for %s: %w", name, err)
	}
	return j.sink.WriteFile("github/openGraphImages/"+name+"_thumb.png", buf.Bytes())
}

type repo struct {
	Name         string `json:"name"`
	LanguagesURL string `json:"languages_url"`
	Owner        struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		Repository *struct {
			OpenGraphImageURL string `json:"openGraphImageUrl"`
		} `json:"repository"`
	} `json:"data"`
}
