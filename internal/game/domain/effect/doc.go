// Package effect defines the closed set of typed game effects.
//
// Every game-affecting event (card play, space arrival, dice outcome) is
// translated into an ordered sequence of Effect values that the engine
// interprets uniformly. Effects are pure data:
// - they are constructed by the factory package from content records,
// - consumed exactly once by the engine package,
// - and never persisted.
//
// The set of kinds is closed. Dispatch sites switch exhaustively over Kind
// and treat an unlisted kind as a structural error, so adding a variant
// forces every dispatch site to handle it.
package effect
