// Package factory translates raw content records into ordered effect
// sequences, one entry point per trigger category: card play, space entry,
// and dice roll.
//
// Translation is stateless and deterministic: the same record and context
// always produce the same sequence. Amount signs are decided here from the
// originating verb so the engine never re-interprets intent. Unparseable
// data degrades to a no-op plus a warning log effect instead of an error.
package factory
