package bufferutil

import (
	"bytes"
	"encoding/binary"
)

// BufferWriter implements methods that help to serialize fixed-layout
// records. Multi-byte integers are written big-endian.
type BufferWriter struct {
	buffer *bytes.Buffer
}

// NewBufferWriter returns an instance of BufferWriter with room for size
// bytes.
func NewBufferWriter(size int) *BufferWriter {
	return &BufferWriter{bytes.NewBuffer(make([]byte, 0, size))}
}

// Bytes returns writer's buffer
func (bw *BufferWriter) Bytes() []byte {
	return bw.buffer.Bytes()
}

// Len returns the number of bytes written so far.
func (bw *BufferWriter) Len() int {
	return bw.buffer.Len()
}

// WriteUint8 writes the given uint8 value to writer's buffer.
func (bw *BufferWriter) WriteUint8(val uint8) {
	bw.buffer.WriteByte(val)
}

// WriteUint32 writes the given uint32 value to writer's buffer.
func (bw *BufferWriter) WriteUint32(val uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], val)
	bw.buffer.Write(b[:])
}

// WriteSlice appends the given byte array to the writer's buffer
func (bw *BufferWriter) WriteSlice(val []byte) {
	bw.buffer.Write(val)
}
