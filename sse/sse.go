// Package sse decodes the Aetheris chat event stream.
//
// The server answers a streaming chat request with a text/event-stream body
// whose data lines each carry one JSON object discriminated by its "type"
// field. A Decoder turns arbitrarily split chunks of that body into ordered
// frames; NewStream wraps an HTTP response body in a pull-based
// [aetheris.Stream] driven by a Decoder.
package sse

// dataPrefix marks the line that carries an event's payload.
const dataPrefix = "data: "

// defaultReadSize is the chunk size requested from the transport per read.
const defaultReadSize = 4096
