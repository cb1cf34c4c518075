// Package client talks to a friendgraph server over its framed JSON protocol.
//
// TCPClient holds one connection and sends one request at a time; the
// protocol has no request ids, so calls are serialized by a mutex.
// REGISTER and LOGIN credentials travel sealed with the shared secret.
//
// Transport failures are reported as ErrUnavailable and drop the connection;
// the next call needs Connect again. Error envelopes become *RemoteError.
package client
