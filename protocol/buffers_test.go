package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceInputBuffer(t *testing.T) {
	buf := NewSliceInputBuffer([]byte{1, 2, 3, 4, 5})
	assert.Equal(t, 5, buf.Available())

	buf.Pop(2)
	assert.Equal(t, 3, buf.Available())
	assert.Equal(t, []byte{3, 4, 5}, buf.Data())

	buf.Pop(10)
	assert.Equal(t, 0, buf.Available())
}

func TestScratchOutput(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output([]byte{1, 2, 3})
	assert.Equal(t, 3, scratch.CurPosition())

	scratch.Output([]byte{4, 5})
	assert.Equal(t, 5, scratch.CurPosition())

	scratch.Update(0, 99)
	assert.Equal(t, byte(99), scratch.Result()[0])

	// Updates past the write position are ignored
	scratch.Update(7, 42)
	assert.Len(t, scratch.Result(), 5)

	assert.Equal(t, []byte{3, 4, 5}, scratch.DataSince(2))
	assert.Nil(t, scratch.DataSince(6))

	scratch.Reset()
	assert.Equal(t, 0, scratch.CurPosition())
}

func TestScratchOutputTruncates(t *testing.T) {
	scratch := NewScratchOutput()
	big := make([]byte, MessageLengthMax*3)
	scratch.Output(big)
	assert.Equal(t, MessageLengthMax*2, scratch.CurPosition())
}

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(10)
	assert.Equal(t, 0, fifo.Available())
	assert.Equal(t, 9, fifo.Free())

	written := fifo.Write([]byte{1, 2, 3, 4, 5})
	require.Equal(t, 5, written)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, fifo.Data())

	fifo.Pop(3)
	assert.Equal(t, []byte{4, 5}, fifo.Data())

	// One slot is reserved to tell full from empty
	fifo.Reset()
	big := make([]byte, 12)
	assert.Equal(t, 9, fifo.Write(big))
	assert.Equal(t, 0, fifo.Free())
}

func TestFifoBufferWrapAround(t *testing.T) {
	fifo := NewFifoBuffer(5)
	fifo.Write([]byte{1, 2, 3, 4})
	fifo.Pop(2)

	written := fifo.Write([]byte{5, 6})
	require.Equal(t, 2, written)

	assert.Equal(t, 4, fifo.Available())
	assert.Equal(t, []byte{3, 4, 5, 6}, fifo.Data())

	fifo.Pop(100)
	assert.Equal(t, 0, fifo.Available())
}
