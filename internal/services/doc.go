// Package services holds the application logic of the pokedex CLI: account
// registration and login, the persisted session, and the favorites and party
// toggles. Every per-user operation takes the acting user id explicitly.
package services
