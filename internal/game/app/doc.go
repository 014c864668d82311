// Package app ties player actions to effect production and processing.
//
// A Game owns one in-process match: the player store, the domain services,
// the effect engine, and the choice coordinator. All commands are expected
// to arrive from a single goroutine (the transport hub); a mutex guards
// against accidental concurrent use.
//
// Each trigger follows the same path: guard, build the effect sequence from
// content, process it, journal the outcome, persist a snapshot. A sequence
// that suspends on a choice parks its outcome until ResolveChoice supplies
// the answer; every other command for the match is rejected while a choice
// is outstanding.
package app
