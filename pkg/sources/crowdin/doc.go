// Package crowdin snapshots localization progress.
//
// The job lists all translation projects visible to the token, then writes
// each project's per-language progress as JSON and renders a sibling
// _graph.svg progress chart through pkg/render.
//
// The API wraps every payload in {"data": ...} envelopes, including each
// element of list responses; the envelope types here mirror that shape.
package crowdin
