package cryptox

import "golang.org/x/crypto/argon2"

// KeySize is the length of keys produced by DeriveKey (AES-256).
const KeySize = 32

// keySalt is fixed so client and server derive the same key from the same
// shared secret.
var keySalt = []byte("friendgraph/sealer/v1")

// DeriveKey stretches a shared secret into an AES-256 key with argon2id.
func DeriveKey(secret string) []byte {
	return argon2.IDKey([]byte(secret), keySalt, 1, 64*1024, 4, KeySize)
}
