// Package storage defines the persistence records and interfaces for game
// snapshots and the game log journal. Implementations live in subpackages;
// the app layer depends only on the interfaces here.
package storage
