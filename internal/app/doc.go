// Package app wires configuration, preferences, the catalog API client, and
// the record store together and starts the terminal interface.
package app
