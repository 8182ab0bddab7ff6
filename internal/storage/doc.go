// Package storage provides the string-keyed persistent store capability.
//
// Keys are hierarchical ("session/current", "cache/segmentize:<hash>",
// "theme/current", "credentials"). Each key maps to one file; writes go
// through a temp file and rename, so single-key atomicity holds but nothing
// stronger. Callers that can tolerate loss (cache, autosave) absorb errors at
// their own layer.
package storage
