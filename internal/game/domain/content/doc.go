// Package content defines the tabular game data records the factory
// translates from: card definitions, per-space effect rows, dice outcome
// tables, and space configuration. Loading is CSV-based, matching the data
// files the game ships with.
//
// Parsing of effect fields is deliberately forgiving: unparseable numeric or
// pattern fields degrade to a zero value instead of failing, and the caller
// decides whether to surface a warning. Data problems must never abort a
// running game.
package content
