package cli

import (
	"context"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/mwaltz/sitesnap/pkg/httputil"
	"github.com/mwaltz/sitesnap/pkg/snapshot"
	"github.com/mwaltz/sitesnap/pkg/sources/aur"
	"github.com/mwaltz/sitesnap/pkg/sources/codecov"
	"github.com/mwaltz/sitesnap/pkg/sources/crowdin"
	"github.com/mwaltz/sitesnap/pkg/sources/discord"
	"github.com/mwaltz/sitesnap/pkg/sources/facebook"
	"github.com/mwaltz/sitesnap/pkg/sources/github"
	"github.com/mwaltz/sitesnap/pkg/sources/patreon"
	"github.com/mwaltz/sitesnap/pkg/sources/readthedocs"
)

// runOptions carries the flag values of the root command.
type runOptions struct {
	configPath string
	output     string
	indent     bool
	sequential bool
	envFile    string

	// credentials holds the per-credential flag values, keyed by the
	// credential's environment name. A non-empty flag wins over the
	// environment and the dotenv file.
	credentials map[string]*string
}

// credentialNames is every credential the full job set can consume.
var credentialNames = []string{
	snapshot.CredAURPackages,
	snapshot.CredDiscordInvite,
	snapshot.CredFacebookGroupID,
	snapshot.CredFacebookPageID,
	snapshot.CredFacebookToken,
	snapshot.CredGitHubOwner,
	snapshot.CredGitHubToken,
	snapshot.CredCodecovToken,
	snapshot.CredCrowdinToken,
	snapshot.CredPatreonCampaignID,
	snapshot.CredReadTheDocsToken,
}

// loadCredentials reads credentials from the environment, layering a dotenv
// file underneath when present. Values never reach the output tree.
func loadCredentials(envFile string) snapshot.Credentials {
	// godotenv never overrides variables already set in the environment,
	// so real env vars win over the file.
	_ = godotenv.Load(envFile)

	creds := make(snapshot.Credentials, len(credentialNames))
	for _, name := range credentialNames {
		if v := os.Getenv(name); v != "" {
			creds[name] = v
		}
	}
	return creds
}

// overlayFlagCredentials applies explicitly-set credential flags on top of
// the environment-derived set.
func overlayFlagCredentials(creds snapshot.Credentials, flagValues map[string]*string) {
	for name, v := range flagValues {
		if v != nil && *v != "" {
			creds[name] = *v
		}
	}
}

// runSnapshot is the root command's work: load configuration and
// credentials, build the job set, validate, run, and summarize.
func runSnapshot(ctx context.Context, opts runOptions) error {
	logger := charmlog.FromContext(ctx)

	cfg, err := snapshot.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}

	creds := loadCredentials(opts.envFile)
	overlayFlagCredentials(creds, opts.credentials)

	sink := snapshot.NewSink(cfg.Output, opts.indent)
	jobs := buildJobs(cfg, creds, sink)

	if err := snapshot.Validate(jobs, creds); err != nil {
		return err
	}

	runner := &snapshot.Runner{Logger: logger, Sequential: opts.sequential}
	results, err := runner.Run(ctx, jobs)

	printSummary(results, sink.Dir(), len(sink.Paths()))
	return err
}

// buildJobs assembles the full job set from config and credentials.
func buildJobs(cfg snapshot.Config, creds snapshot.Credentials, sink *snapshot.Sink) []snapshot.Job {
	common := []httputil.Option{
		httputil.WithTimeout(cfg.HTTP.Timeout()),
		httputil.WithRetry(cfg.HTTP.RetryAttempts, httputil.DefaultRetryDelay),
	}

	packages := cfg.AUR.Packages
	if v := creds.Get(snapshot.CredAURPackages); v != "" {
		packages = splitList(v)
	}

	coverageOpts := common
	if cfg.HTTP.InsecureCoverage {
		coverageOpts = append([]httputil.Option{httputil.WithInsecureTLS()}, common...)
	}

	return []snapshot.Job{
		aur.New(sink, aur.Config{
			BaseURL:  cfg.Endpoint("aur"),
			Packages: packages,
			Client:   common,
		}),
		discord.New(sink, discord.Config{
			BaseURL: cfg.Endpoint("discord"),
			Invite:  creds.Get(snapshot.CredDiscordInvite),
			Client:  common,
		}),
		facebook.New(sink, facebook.Config{
			BaseURL: cfg.Endpoint("facebook"),
			GroupID: creds.Get(snapshot.CredFacebookGroupID),
			PageID:  creds.Get(snapshot.CredFacebookPageID),
			Token:   creds.Get(snapshot.CredFacebookToken),
			Client:  common,
		}),
		github.New(sink, github.Config{
			BaseURL: cfg.Endpoint("github"),
			Owner:   creds.Get(snapshot.CredGitHubOwner),
			Token:   creds.Get(snapshot.CredGitHubToken),
			Client:  common,
		}),
		codecov.New(sink, codecov.Config{
			BaseURL: cfg.Endpoint("codecov"),
			Owner:   creds.Get(snapshot.CredGitHubOwner),
			Token:   creds.Get(snapshot.CredCodecovToken),
			Client:  coverageOpts,
		}),
		crowdin.New(sink, crowdin.Config{
			BaseURL:           cfg.Endpoint("crowdin"),
			Token:             creds.Get(snapshot.CredCrowdinToken),
			ReferenceLanguage: cfg.ReferenceLanguage,
			Client:            common,
		}),
		patreon.New(sink, patreon.Config{
			BaseURL:    cfg.Endpoint("patreon"),
			CampaignID: creds.Get(snapshot.CredPatreonCampaignID),
			Client:     common,
		}),
		readthedocs.New(sink, readthedocs.Config{
			BaseURL: cfg.Endpoint("readthedocs"),
			Token:   creds.Get(snapshot.CredReadTheDocsToken),
			Client:  common,
		}),
	}
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
