package bufferutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	w := NewBufferWriter(16)
	w.WriteUint8(0xab)
	w.WriteUint32(0x80000001)
	w.WriteSlice([]byte{1, 2, 3, 0, 0, 0, 9})

	assert.Equal(t, 12, w.Len())
	assert.Equal(t,
		[]byte{0xab, 0x80, 0x00, 0x00, 0x01, 1, 2, 3, 0, 0, 0, 9},
		w.Bytes(),
	)
}
