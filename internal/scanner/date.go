package scanner

import (
	"time"

	"github.com/kittennbfive/fsmagic-scanner/internal/magic"
)

// FormatDate interprets the 32-bit value at rule's offset as seconds
// since the Unix epoch — signed for magic.DataDateSigned, unsigned for
// magic.DataDateUnsigned — widened to 64 bits, and renders it as a local
// calendar string. time.Time formatting is inherently re-entrant, so no
// shared state crosses calls.
func FormatDate(window []byte, offset int, endian magic.Endian, dataType magic.DataType) string {
	var seconds int64
	if dataType == magic.DataDateSigned {
		seconds = ReadSigned(window, offset, 4, endian)
	} else {
		seconds = int64(ReadUnsigned(window, offset, 4, endian))
	}
	return time.Unix(seconds, 0).Local().Format("Mon Jan _2 15:04:05 2006") + "\n"
}
