// Package engine interprets effect sequences against game state through
// narrow domain services.
//
// Processing is strictly sequential: later effects observe state mutated by
// earlier ones, and nothing is reordered. A domain rejection of one effect
// is recorded and does not abort its siblings; there is no rollback. Caller
// misuse (a second concurrent choice for one player, a non-targetable group
// template) aborts immediately instead.
//
// Suspension is an explicit value, not control flow: Process returns an
// Outcome that is either completed or suspended on a pending choice.
// A suspended Outcome carries a Resume continuation; the caller supplies
// the selected option and processing picks up exactly where it stopped,
// deterministically. Nested suspensions compose the same way.
package engine
