// Package services implements the core use cases: the merge engine,
// the translation orchestrator, and the archive workflow. Services
// depend only on domain types and ports; all I/O goes through driven
// interfaces.
package services
