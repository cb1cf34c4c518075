// Package protocol implements the friendgraph wire format: every message is
// a 4-byte big-endian length followed by that many bytes of UTF-8 JSON.
//
// The same framing is used in both directions. Requests carry a type, an
// optional payload and an optional encrypted payload; responses carry a
// status with either data or an error message.
package protocol
