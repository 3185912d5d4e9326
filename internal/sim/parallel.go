package sim

import (
	"context"
	"sync"
)

// Ensemble plays the same frames through several independent sessions, one
// goroutine each. Sessions share no state, so each stays single-threaded.
type Ensemble struct {
	sessions []*Session
}

func NewEnsemble(sessions ...*Session) *Ensemble {
	return &Ensemble{sessions: sessions}
}

// Run returns results in session order. The first error wins.
func (e *Ensemble) Run(ctx context.Context, frames []Frame) ([]*Result, error) {
	results := make([]*Result, len(e.sessions))
	errs := make([]error, len(e.sessions))

	var wg sync.WaitGroup
	for i, s := range e.sessions {
		wg.Add(1)
		go func(idx int, s *Session) {
			defer wg.Done()
			results[idx], errs[idx] = s.Run(ctx, frames)
		}(i, s)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
