// Package aur snapshots package metadata from the AUR RPC interface.
//
// For every configured package name it queries the v5 info endpoint and
// persists the response verbatim under aur/<package>.json. No credential
// is required; the RPC is public.
package aur
