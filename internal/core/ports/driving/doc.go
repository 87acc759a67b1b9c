// Package driving provides interfaces for inbound use cases
// (primary ports): merging patch sets, running translations, and the
// archive workflow operations invoked by the CLI.
package driving
