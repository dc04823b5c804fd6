// Package discord snapshots chat-invite statistics.
//
// It queries the invite-info endpoint with member counts enabled and
// persists the response verbatim as discord/invite.json. The invite code
// is supplied as an opaque credential.
package discord
