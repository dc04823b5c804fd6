// Package github snapshots code-hosting metadata for one repository owner.
//
// The job lists the owner's repositories and writes the listing verbatim.
// For each repository it then writes the language breakdown and resolves
// the open-graph preview image URL through the GraphQL API. Non-placeholder
// preview images are downloaded and stored alongside a fixed-width
// thumbnail.
//
// A GraphQL response without the expected openGraphImageUrl field is
// treated as proof of an invalid token and aborts the whole run: a silently
// incomplete snapshot is worse than a failed one.
package github
