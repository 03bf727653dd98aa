// Package scanner drives the signature-matching and string-search engines
// across every byte offset of a firmware image. It has no knowledge of
// file I/O, CLI flags, or the user's block transform beyond the
// transform.Transform interface it is handed.
package scanner

import "github.com/kittennbfive/fsmagic-scanner/internal/magic"

// ReadUnsigned combines width consecutive bytes from window[offset:] in
// the requested byte order. It panics if endian is unspecified and width
// isn't 1 — that combination is a database defect (magic.Rule.Validate
// rejects it at load time), never a runtime condition.
func ReadUnsigned(window []byte, offset, width int, endian magic.Endian) uint64 {
	if endian == magic.EndianUnspecified && width != 1 {
		panic("scanner: unspecified endian for width != 1")
	}

	var ret uint64
	switch endian {
	case magic.EndianLittle, magic.EndianUnspecified:
		for i := 0; i < width; i++ {
			ret |= uint64(window[offset+i]) << (8 * uint(i))
		}
	case magic.EndianBig:
		for i := 0; i < width; i++ {
			ret |= uint64(window[offset+i]) << (8 * uint(width-i-1))
		}
	}
	return ret
}

// ReadSigned combines the same bytes as ReadUnsigned, then sign-extends
// from width*8 bits to 64.
func ReadSigned(window []byte, offset, width int, endian magic.Endian) int64 {
	u := ReadUnsigned(window, offset, width, endian)
	bit := uint64(1) << (8*uint(width) - 1)
	if u&bit != 0 {
		return -int64((u - 1) ^ (bit<<1 - 1))
	}
	return int64(u)
}
