package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

const maxLineBytes = 1024 * 1024

// Ring keeps the most recent values pushed into it. A zero or negative
// capacity keeps everything.
type Ring[T any] struct {
	buf     []T
	limit   int
	idx     int
	count   int
	dropped int
}

// NewRing returns a ring holding at most limit values.
func NewRing[T any](limit int) *Ring[T] {
	r := &Ring[T]{limit: limit}
	if limit > 0 {
		r.buf = make([]T, limit)
	}
	return r
}

// Push appends v, evicting the oldest value when the ring is full.
func (r *Ring[T]) Push(v T) {
	if r.limit <= 0 {
		r.buf = append(r.buf, v)
		r.count++
		return
	}
	if r.count == r.limit {
		r.dropped++
	} else {
		r.count++
	}
	r.buf[r.idx] = v
	r.idx = (r.idx + 1) % r.limit
}

// Len returns the number of retained values.
func (r *Ring[T]) Len() int { return r.count }

// Dropped returns how many values were evicted.
func (r *Ring[T]) Dropped() int { return r.dropped }

// Values returns the retained values oldest first.
func (r *Ring[T]) Values() []T {
	if r.count == 0 {
		return nil
	}
	out := make([]T, r.count)
	if r.limit <= 0 || r.count < r.limit {
		copy(out, r.buf[:r.count])
		return out
	}
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.idx+i)%r.limit]
	}
	return out
}

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. Missing files yield no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	return ReadFrom(file, maxLines)
}

// ReadFrom is Read over an arbitrary reader.
func ReadFrom(r io.Reader, maxLines int) ([]string, error) {
	ring := NewRing[string](maxLines)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		ring.Push(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return ring.Values(), nil
}
