package serialize

import (
	"bytes"
	"sync"
)

// bytesBufPool reuses scratch buffers for one-shot encodes. This reduces GC
// pressure by avoiding an allocation per Marshal or frame write. We pool
// *bytes.Buffer because they are easily reset and resized.
var bytesBufPool = sync.Pool{
	New: func() any {
		// A 4KB default avoids re-allocations for common message sizes.
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}
