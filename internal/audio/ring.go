package audio

// Ring keeps the most recent samples so the start of an utterance, which
// arrives before speech is detected, is not lost.
type Ring struct {
	buf    []int16
	head   int
	filled int
}

func NewRing(size int) *Ring {
	return &Ring{buf: make([]int16, size)}
}

// Add appends samples, overwriting the oldest ones when full.
func (r *Ring) Add(samples []int16) {
	for _, s := range samples {
		r.buf[r.head] = s
		r.head = (r.head + 1) % len(r.buf)
	}
	r.filled = min(r.filled+len(samples), len(r.buf))
}

// Read returns the stored samples, oldest first.
func (r *Ring) Read() []int16 {
	out := make([]int16, r.filled)
	start := (r.head - r.filled + len(r.buf)) % len(r.buf)
	for i := range out {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out
}

// Len returns the number of stored samples.
func (r *Ring) Len() int {
	return r.filled
}

func (r *Ring) Reset() {
	r.head = 0
	r.filled = 0
}
