// Package codecov snapshots coverage metrics for one repository owner.
//
// The repository listing is fetched as a single size-capped page. The API
// paginates, but no tracked project set has ever come close to the cap, so
// a listing that still advertises a next page aborts the run loudly instead
// of silently truncating the snapshot.
package codecov
