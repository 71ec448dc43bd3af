package tx

import "context"

// Signer produces a signature over sign bytes. Implementations hash the
// bytes themselves; secp256k1 signers on Cosmos chains use SHA-256 and
// return a 64-byte r||s signature with a 33-byte compressed public key.
type Signer interface {
	Sign(ctx context.Context, signBytes []byte) (pubKey []byte, sig []byte, err error)
}

// Broadcaster submits encoded transactions to a chain. None ships with this
// module; it is the seam for a node or LCD client.
type Broadcaster interface {
	Broadcast(ctx context.Context, txBytes []byte) ([]byte, error)
}
