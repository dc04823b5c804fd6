package snapshot

import "context"

// Credential names accepted via flags or environment variables.
// Values are opaque secrets or identifiers; they are never written to the
// output tree.
const (
	CredAURPackages       = "AUR_PACKAGES" // optional, comma-separated override
	CredDiscordInvite     = "DISCORD_INVITE"
	CredFacebookGroupID   = "FACEBOOK_GROUP_ID"
	CredFacebookPageID    = "FACEBOOK_PAGE_ID"
	CredFacebookToken     = "FACEBOOK_TOKEN"
	CredGitHubOwner       = "GITHUB_REPOSITORY_OWNER"
	CredGitHubToken       = "GH_AUTH_TOKEN"
	CredCodecovToken      = "CODECOV_TOKEN"
	CredCrowdinToken      = "CROWDIN_TOKEN"
	CredPatreonCampaignID = "PATREON_CAMPAIGN_ID"
	CredReadTheDocsToken  = "READTHEDOCS_TOKEN"
)

// Credentials maps credential names to their opaque values. The set is
// supplied once at startup and is immutable for the run.
type Credentials map[string]string

// Get returns the named credential value, or "" if unset.
func (c Credentials) Get(name string) string { return c[name] }

// Missing returns the subset of names that have no non-empty value.
func (c Credentials) Missing(names ...string) []string {
	var missing []string
	for _, n := range names {
		if c[n] == "" {
			missing = append(missing, n)
		}
	}
	return missing
}

// Job is one independent unit of work: fetch data from one external system,
// transform it, and persist it through the sink. Jobs never read each
// other's output and never write the same path as another job.
type Job interface {
	// Name identifies the job in logs and the run summary. It is also the
	// top-level output directory the job writes under.
	Name() string

	// Credentials returns the credential names this job requires. The
	// orchestrator validates the full set before any network call.
	Credentials() []string

	// Run executes the job. A returned error is fatal for the run.
	Run(ctx context.Context) error
}
