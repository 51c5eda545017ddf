package handler

import (
	"bytes"
	"sync"
)

// Room state responses carry every wager on the board, so buffers are sized for that
// and oversized ones (a crowded board) are dropped rather than pinned in the pool.
const (
	responseBufferSize    = 2 << 10
	maxPooledResponseSize = 64 << 10
)

var responseBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return responseBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledResponseSize {
		return
	}
	buf.Reset()
	responseBuffers.Put(buf)
}
