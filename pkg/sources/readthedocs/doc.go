// Package readthedocs snapshots documentation-hosting metadata.
//
// The project listing is drained through the cursor-pagination fetcher and
// written as readthedocs/projects.json. Every link relation a project
// advertises in _links (builds, versions, and so on) is then drained the
// same way, written under a path derived from the project's version-control
// repository name. Relations that return a single object rather than a
// results page simply produce no output file.
package readthedocs
