package mocks

import "sync"

// MockRandom implements random.Random with queued deterministic results for testing
type MockRandom struct {
	mu sync.Mutex

	// intQueue holds queued results for Intn; when empty, Intn returns 0
	intQueue []int

	// stringQueue holds queued results for String; when empty, String returns
	// the first character of the alphabet repeated to length
	stringQueue []string
}

// NewMockRandom creates a MockRandom with empty queues
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// QueueInt queues results to be returned by subsequent Intn calls
func (r *MockRandom) QueueInt(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intQueue = append(r.intQueue, values...)
}

// QueueString queues results to be returned by subsequent String calls
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stringQueue = append(r.stringQueue, values...)
}

// Intn returns the next queued int clamped to [0, n), or 0 when the queue is empty
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.intQueue) == 0 {
		return 0
	}
	v := r.intQueue[0]
	r.intQueue = r.intQueue[1:]
	if n <= 0 {
		return 0
	}
	if v < 0 || v >= n {
		v = v % n
		if v < 0 {
			v += n
		}
	}
	return v
}

// String returns the next queued string, or the alphabet's first character
// repeated to length when the queue is empty
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stringQueue) > 0 {
		v := r.stringQueue[0]
		r.stringQueue = r.stringQueue[1:]
		return v
	}
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := range result {
		result[i] = alphabet[0]
	}
	return string(result)
}

// Shuffle performs a Fisher-Yates shuffle driven by Intn. With an empty int
// queue the order is left unchanged; queued ints pick the permutation.
func (r *MockRandom) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	empty := len(r.intQueue) == 0
	r.mu.Unlock()
	if empty {
		return
	}
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}
