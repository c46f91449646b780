// Package cli provides the interactive pokedex shell.
//
// It wires local storage, the catalog client and the services into a
// line-oriented REPL. Typical flow: restore the stored session, browse the
// catalog, and keep favorites and a party for the logged-in trainer.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See App and runREPL for details.
package cli
