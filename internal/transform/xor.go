package transform

import (
	"encoding/hex"
	"fmt"
)

// XOR reverses a single-repeating-byte-key XOR obfuscation, the simplest
// de-obfuscation a firmware image is ever protected by and the reference
// transform the CLI's --xor-key flag builds.
type XOR struct {
	Key byte
}

func newXORFromArgs(args string) (Transform, error) {
	raw, err := hex.DecodeString(args)
	if err != nil {
		return nil, fmt.Errorf("transform: xor key must be hex, got %q: %w", args, err)
	}
	if len(raw) != 1 {
		return nil, fmt.Errorf("transform: xor key must be exactly one byte, got %d", len(raw))
	}
	return &XOR{Key: raw[0]}, nil
}

func (*XOR) Init(int) error { return nil }

func (x *XOR) Transform(block []byte) error {
	for i, b := range block {
		block[i] = b ^ x.Key
	}
	return nil
}

func (*XOR) Teardown() error { return nil }
