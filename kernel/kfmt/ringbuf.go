package kfmt

import "io"

// ringBufferSize is large enough to hold a full 80x25 screen of early output.
// It must always be a power of 2.
const ringBufferSize = 2048

// ringBuffer keeps the most recent ringBufferSize bytes written to it. Once
// full, each new byte overwrites the oldest one.
type ringBuffer struct {
	buffer     [ringBufferSize]byte
	head, size int
}

// Write appends p to the buffer, discarding the oldest bytes if needed.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.buffer[(rb.head+rb.size)&(ringBufferSize-1)] = b
		if rb.size == ringBufferSize {
			rb.head = (rb.head + 1) & (ringBufferSize - 1)
			continue
		}
		rb.size++
	}

	return len(p), nil
}

// Read copies up to len(p) of the oldest buffered bytes into p. Reads never
// wrap around the end of the backing array in a single call. Read returns
// io.EOF when the buffer is empty.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.size == 0 {
		return 0, io.EOF
	}

	n := rb.size
	if rb.head+n > ringBufferSize {
		n = ringBufferSize - rb.head
	}
	if n > len(p) {
		n = len(p)
	}

	copy(p, rb.buffer[rb.head:rb.head+n])
	rb.head = (rb.head + n) & (ringBufferSize - 1)
	rb.size -= n

	return n, nil
}
