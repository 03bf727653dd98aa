// Package transform provides the pluggable block-deobfuscation strategies
// the Window Scanner applies before signature/string matching. It is
// deliberately not aware of magic rules or the scan loop; it only knows
// how to turn one opaque block of bytes into another, in place.
package transform

import "fmt"

// Transform is the three-phase lifecycle: Init once per invocation,
// Transform once per offset, Teardown once at the end. The scanner calls
// Transform; Init and Teardown are called by whoever builds the scanner.
// Implementations may hold state between Transform calls —
// the scanner never runs two Transforms concurrently over the same
// instance.
type Transform interface {
	Init(blocksize int) error
	Transform(block []byte) error
	Teardown() error
}

// Named is a factory registered under a flag-friendly name, so a caller
// can select a transform by name rather than wiring up a concrete type.
type Named func(args string) (Transform, error)

var registry = map[string]Named{
	"identity": func(string) (Transform, error) { return &Identity{}, nil },
	"xor":      newXORFromArgs,
}

// Register adds or replaces a named transform factory. Callers outside
// this package can extend the registry with their own de-obfuscation
// strategies without modifying this file.
func Register(name string, factory Named) {
	registry[name] = factory
}

// Lookup builds the transform registered under name, passing args through
// to its factory (e.g. a hex-encoded key for "xor"). An unknown name is a
// usage error, not a database defect.
func Lookup(name, args string) (Transform, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("transform: no such transform %q", name)
	}
	return factory(args)
}
