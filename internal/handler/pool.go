package handler

import (
	"bytes"
	"sync"
)

// responseBufferSize covers a typical farm view without growing
const responseBufferSize = 2048

// bufferPool recycles response encoding buffers
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
