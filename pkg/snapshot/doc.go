// Package snapshot contains the run machinery shared by all sources: the
// persistence sink that writes the output tree, the source job contract,
// credential handling, and the orchestrator that runs the job set.
//
// # Model
//
// A snapshot run is a single batch execution. The orchestrator enumerates
// the configured source jobs and runs them to completion, sequentially or
// fanned out. Jobs are independent: they share only an immutable credential
// set and write to disjoint output paths, so no synchronization beyond the
// sink's path bookkeeping is needed.
//
// # Failure policy
//
// The runner always awaits every started job. The first fatal job error
// cancels the group context; sibling jobs observe the cancellation at their
// next HTTP call and unwind. The first error is reported to the caller.
// There is no resume state — rerunning from scratch is the only recovery.
package snapshot
