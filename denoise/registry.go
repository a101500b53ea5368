// SPDX-License-Identifier: EPL-2.0

package denoise

import (
	"errors"
	"fmt"
	"sync"
)

// Token identifies a State held by a Registry. Zero is never issued.
type Token uint64

// Registry owns States on behalf of callers that only keep an integer.
type Registry struct {
	backend Backend
	states  map[Token]*State
	next    Token

	mtx *sync.Mutex
}

func NewRegistry(b Backend) *Registry {
	return &Registry{
		backend: b,
		states:  make(map[Token]*State),
		mtx:     &sync.Mutex{},
	}
}

// Create makes a new State and returns its token.
func (r *Registry) Create() (Token, error) {
	st, err := NewState(r.backend)
	if err != nil {
		return 0, err
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.next++
	r.states[r.next] = st
	return r.next, nil
}

// Get returns the State behind tok.
func (r *Registry) Get(tok Token) (*State, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	st, ok := r.states[tok]
	return st, ok
}

// Destroy closes the State behind tok and forgets the token.
// Destroying an unknown or already destroyed token is ErrUnknownToken.
func (r *Registry) Destroy(tok Token) error {
	r.mtx.Lock()
	st, ok := r.states[tok]
	delete(r.states, tok)
	r.mtx.Unlock()

	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownToken, tok)
	}
	return st.Close()
}

// Denoise runs one frame through the State behind tok. samples must be
// FrameSize long; the returned slice is samples itself.
func (r *Registry) Denoise(tok Token, samples []float32) ([]float32, error) {
	f, err := FrameOf(samples)
	if err != nil {
		return nil, err
	}

	st, ok := r.Get(tok)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownToken, tok)
	}

	if _, err := st.Denoise(f); err != nil {
		return nil, err
	}
	return samples, nil
}

// Len is the number of live States.
func (r *Registry) Len() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return len(r.states)
}

// Close destroys every live State.
func (r *Registry) Close() error {
	r.mtx.Lock()
	states := r.states
	r.states = make(map[Token]*State)
	r.mtx.Unlock()

	var errs []error
	for _, st := range states {
		errs = append(errs, st.Close())
	}
	return errors.Join(errs...)
}
