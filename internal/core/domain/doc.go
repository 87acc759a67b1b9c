// Package domain defines the core business entities for localetool.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has no external dependencies and defines the fundamental types:
//
//   - FragmentFile: An ordered list of id-keyed text records
//   - FragmentSet: A directory's worth of fragment files
//   - TranslationJob: One unit of translation work per record
//   - RunReport: The per-record outcome of a translation run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
package domain
