// Package pool provides a pooled, growable byte buffer backing
// stream.Writer. Growth follows the same amortized strategy as the
// teacher's blob buffer pool: small buffers grow by a fixed increment,
// larger ones by a fraction of their current capacity, to keep
// reallocation frequency down for a writer that appends many small values.
package pool

import "sync"

const (
	// DefaultSize is the initial capacity handed out by Get.
	DefaultSize = 1024 * 4 // 4KiB

	// smallBufferThreshold is the capacity up to which (inclusive) Grow uses
	// a fixed increment rather than a percentage of current capacity.
	smallBufferThreshold = 1024 * 32 // 32KiB
	fixedGrowIncrement   = 1024 * 4  // 4KiB
)

// ByteBuffer is a growable []byte with an amortized growth strategy, meant
// to be reused via the package-level pool rather than allocated per frame.
type ByteBuffer struct {
	B []byte
}

// Bytes returns the buffer's current contents.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the buffer's current capacity.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures at least requiredBytes of spare capacity beyond the current
// length, reallocating and copying if necessary.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := fixedGrowIncrement
	if cap(bb.B) > smallBufferThreshold {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// SetLength sets the buffer's length to n, which must not exceed its
// current capacity; callers typically Grow first.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("pool: SetLength out of range")
	}
	bb.B = bb.B[:n]
}

// Pool manages reuse of ByteBuffer instances.
type Pool struct {
	pool sync.Pool
}

// NewPool creates a Pool whose buffers start at defaultSize capacity.
func NewPool(defaultSize int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &ByteBuffer{B: make([]byte, 0, defaultSize)}
			},
		},
	}
}

// Get returns a reset ByteBuffer from the pool, allocating one if empty.
func (p *Pool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)

	return bb
}

// Put returns bb to the pool after resetting it.
func (p *Pool) Put(bb *ByteBuffer) {
	bb.Reset()
	p.pool.Put(bb)
}

var defaultPool = NewPool(DefaultSize)

// GetBuffer returns a reset ByteBuffer from the package-level default pool.
func GetBuffer() *ByteBuffer { return defaultPool.Get() }

// PutBuffer returns bb to the package-level default pool.
func PutBuffer(bb *ByteBuffer) { defaultPool.Put(bb) }
