package handler

import (
	"bytes"
	"sync"
)

// maxPooledBufferCap keeps one large job listing from pinning memory in the pool
const maxPooledBufferCap = 64 << 10

var bufferPool = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 512)) },
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer returns buf to the pool unless it grew past maxPooledBufferCap
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferCap {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
