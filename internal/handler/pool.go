package handler

import (
	"bytes"
	"sync"
)

const (
	responseBufferSize = 1 << 10
	// Snapshot and catalog responses can be large; buffers grown past this are dropped
	maxPooledResponseBuffer = 64 << 10
)

var responseBuffers = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return responseBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledResponseBuffer {
		return
	}
	buf.Reset()
	responseBuffers.Put(buf)
}
