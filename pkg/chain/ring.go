package chain

// ring is a fixed-capacity wrap-around buffer indexed modulo its capacity.
// The indexers use one as the sliding window of the last `order` words:
// writes address it by a monotonically increasing word position, and window
// materializes the logical contents oldest to newest.
type ring[T any] struct {
	data []T
}

func newRing[T any](capacity int) *ring[T] {
	if capacity <= 0 {
		panic("chain: ring capacity must be positive")
	}
	return &ring[T]{data: make([]T, capacity)}
}

func (r *ring[T]) set(pos int, v T) {
	r.data[pos%len(r.data)] = v
}

func (r *ring[T]) at(pos int) T {
	return r.data[pos%len(r.data)]
}

// window appends the logical contents, oldest first, to dst. pos must be one
// past the newest written position, with at least capacity positions written
// since the window was last restarted.
func (r *ring[T]) window(pos int, dst []T) []T {
	dst = dst[:0]
	for i := range r.data {
		dst = append(dst, r.at(pos+i))
	}
	return dst
}
