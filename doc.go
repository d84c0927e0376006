// Package pipekit provides the data-interchange core for extract/load
// pipelines: taps produce data, sinks consume it, and the two sides
// exchange schemas, records, and checkpoint state over a line-oriented
// JSON channel.
//
// # Architecture
//
// PipeKit is organized as small, composable packages:
//
//	┌─────────────────────────────────────┐
//	│           Pipeline Driver           │  load config/state,
//	│      (run, discover, persist)       │  dispatch plugins
//	└─────────────────────────────────────┘
//	           ↓ orchestrates
//	┌─────────────────────────────────────┐
//	│          Plugin Registry            │  tap, sink, discover,
//	│      (open dispatch by type tag)    │  transform implementations
//	└─────────────────────────────────────┘
//	           ↓ emit / consume
//	┌─────────────────────────────────────┐
//	│      Message + Catalog Models       │  SCHEMA / RECORD / STATE,
//	│    (line-delimited JSON protocol)   │  stream catalogs
//	└─────────────────────────────────────┘
//	           ↓ persisted via
//	┌─────────────────────────────────────┐
//	│         Document Store              │  config, state, catalog
//	│  (scheme-dispatched storage layer)  │  on local or object storage
//	└─────────────────────────────────────┘
//
// The protocol channel carries newline-delimited JSON objects, one message
// per line, each tagged with a "type" of RECORD, SCHEMA, or STATE. Catalog
// discovery produces a single JSON document describing the available
// streams and their replication metadata.
//
// Document persistence is dispatched by the scheme prefix of a location
// string: "s3://bucket/path" and "nats://bucket/path" select object-store
// backends, while a bare path selects the local filesystem. Adding a
// backend means registering a new scheme; no caller changes.
//
// PipeKit deliberately contains no tap or sink business logic. Concrete
// extractors and loaders register themselves with the plugin registry and
// are resolved at runtime by the type tag carried in the host
// configuration.
package pipekit
