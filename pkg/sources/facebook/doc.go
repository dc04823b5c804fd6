// Package facebook snapshots social-graph statistics for a group and a page.
//
// Two endpoints are queried with one shared page token: the group info
// (member count, name, description) and the page insights (page fans).
// The pagination metadata the insights endpoint attaches is stripped before
// writing; it carries no data worth publishing.
package facebook
