// Package bloglist is a small JSON API for a shared blog collection with
// per-owner write control.
//
// Auth pipeline:
//   - Every request passes through token extraction, which stashes a
//     candidate bearer token without judging it. Operations that require an
//     identity run resolution: token verification against the server secret
//     followed by a user lookup, failing closed with the literal
//     missing/invalid token and invalid user bodies.
//   - Ownership is enforced at delete time only. Likes updates are open to
//     any caller, which mirrors the system this service replaced; changing
//     that would change observable behavior existing clients rely on.
//
// Persistence:
//   - Users and blogs are Bun models. A blog's user_id is the ownership
//     reference; users additionally carry a denormalized blog_ids list that
//     is appended after a blog insert in a second, non-transactional write
//     and left stale after deletion. That gap is inherited behavior, not a
//     bug to fix silently.
package bloglist
