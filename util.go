package serialize

import "encoding/binary"

// wireOrder is the byte order of every encoded value. It is fixed so that
// streams produced on one machine decode identically on any other,
// regardless of host endianness.
var wireOrder = binary.LittleEndian

const bufferSize = 4096

var empty [bufferSize]byte
