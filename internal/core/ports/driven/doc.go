// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the external archive packer, the
// translation backend, fragment persistence, the run ledger, and
// configuration.
package driven
