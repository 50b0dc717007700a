package mocks

// MockRandom is a Random that returns queued values. When the queue is
// empty, Intn returns n-1, which makes a Fisher-Yates shuffle the identity
// permutation, so tests get a deck in canonical order.
type MockRandom struct {
	queue []int
}

// NewMockRandom creates a MockRandom with the given queued Intn results.
func NewMockRandom(values ...int) *MockRandom {
	return &MockRandom{queue: values}
}

// Intn returns the next queued value, clamped into [0, n).
func (r *MockRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if len(r.queue) == 0 {
		return n - 1
	}
	v := r.queue[0]
	r.queue = r.queue[1:]
	if v < 0 {
		return 0
	}
	return v % n
}

// Queue appends more Intn results.
func (r *MockRandom) Queue(values ...int) {
	r.queue = append(r.queue, values...)
}
