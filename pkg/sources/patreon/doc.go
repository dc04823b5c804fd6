// Package patreon snapshots funding-campaign statistics.
//
// It fetches a single fixed campaign and persists the campaign's attributes
// as patreon/campaign.json. The campaign id is supplied as an opaque
// credential; the endpoint itself is public.
package patreon
