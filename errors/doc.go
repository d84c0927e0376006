// Package errors provides standardized error handling patterns for PipeKit.
//
// # Overview
//
// The package implements a three-class error classification system:
// Transient (temporary, retryable by the caller), Invalid (bad input,
// non-retryable), and Fatal (unrecoverable, stop processing). PipeKit
// itself never retries; classification exists so hosts embedding the
// library can make informed retry decisions without string matching.
//
// # Error Taxonomy
//
// The protocol and storage layers report failures through standard
// sentinel variables:
//
//   - ErrDecodeFailed: input is not well-formed JSON
//   - ErrMalformedMessage: valid JSON, but not a valid protocol message
//   - ErrUnknownMessageType: the "type" tag is not RECORD, SCHEMA, or STATE
//   - ErrDocumentNotFound: local document absent on read
//   - ErrBackendIO: remote backend network or auth failure
//   - ErrNoImplementation: extension-point dispatch miss
//
// Note the deliberate asymmetry in the storage layer: a missing local
// document is ErrDocumentNotFound, while a missing remote object is a
// non-error "absent" read result. See the storage package.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Store", "Read", "blob fetch")
//	errors.WrapInvalid(err, "Parser", "ParseMessage", "type dispatch")
//	errors.WrapFatal(err, "Config", "Load", "validation")
//
// All error types support errors.Is, errors.As, and error wrapping
// chains; classification is preserved through the chain.
package errors
