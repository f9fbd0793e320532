package experiment

import "sync"

// bufferPool recycles the scratch arrays a replay writes into.
type bufferPool struct {
	pool sync.Pool
}

func newBufferPool() *bufferPool {
	return &bufferPool{
		pool: sync.Pool{
			New: func() any { return new([]int) },
		},
	}
}

// get returns a buffer holding a copy of src.
func (p *bufferPool) get(src []int) []int {
	bp := p.pool.Get().(*[]int)
	buf := append((*bp)[:0], src...)
	*bp = buf
	return buf
}

func (p *bufferPool) put(buf []int) {
	clear(buf)
	buf = buf[:0]
	p.pool.Put(&buf)
}
