// Package models defines the records kept by the pokedex CLI: users, their
// favorites and party members, the session snapshot, and the read-only
// catalog shapes consumed from the Pokémon API.
package models
