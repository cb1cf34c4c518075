// Package cryptox holds the cryptographic collaborators of friendgraph:
// bcrypt password hashing and the AES-GCM sealer that protects credential
// payloads in transit.
package cryptox
