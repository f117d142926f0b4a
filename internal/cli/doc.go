// Package cli builds the spellgrid command tree. It translates flags into
// the application's configuration, renders results as tables or JSON and
// maps failures to process exit codes.
package cli
