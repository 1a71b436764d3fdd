package attrinput

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBatchSealed is returned by InitValues once the batch has been sealed.
var ErrBatchSealed = errors.New("attrinput: batch is sealed")

// Batch tracks the value loads started by one RenderInputs call.
type Batch struct {
	service  *Service
	id       string
	done     chan struct{}
	finished chan struct{}

	mu       sync.Mutex
	pending  int
	sealed   bool
	settled  bool
	callback func()
	errs     []error
}

// NewBatch returns an open batch bound to s.
func (s *Service) NewBatch() *Batch {
	return &Batch{
		service:  s,
		id:       uuid.NewString(),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// ID identifies the batch in logs.
func (b *Batch) ID() string {
	return b.id
}

// OnInit registers the completion callback, replacing any previous one. A
// nil callback clears the registration. Callbacks registered after the batch
// settled are never called. The callback runs after Done is closed, so it may
// Wait on its own batch.
func (b *Batch) OnInit(callback func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callback = callback
}

// InitValues loads the values of input in the background and writes them
// into it.
func (b *Batch) InitValues(ctx context.Context, input Target, typeID string) error {
	if input == nil {
		return errors.New("attrinput: input is nil")
	}
	b.mu.Lock()
	if b.sealed {
		b.mu.Unlock()
		return ErrBatchSealed
	}
	b.pending++
	b.mu.Unlock()

	go b.run(ctx, input, typeID)
	return nil
}

func (b *Batch) run(ctx context.Context, input Target, typeID string) {
	s := b.service
	code := input.Code()

	values, err := s.LoadValues(ctx, typeID, code)
	if err != nil {
		s.reporter.NotifyError("Attribute values failed to load", err.Error(), false)
	} else {
		err = s.WriteValues(ctx, input, values)
	}
	if err != nil {
		s.logger.Warn("attribute input failed",
			zap.String("batch", b.id),
			zap.String("code", code),
			zap.Error(err))
	}

	b.mu.Lock()
	b.pending--
	if err != nil {
		b.errs = append(b.errs, err)
	}
	settled, callback := b.settleLocked()
	b.mu.Unlock()

	if settled {
		b.complete(callback)
	}
}

// Seal marks discovery as finished. The batch settles as soon as no load is
// pending.
func (b *Batch) Seal() {
	b.mu.Lock()
	b.sealed = true
	settled, callback := b.settleLocked()
	b.mu.Unlock()

	if settled {
		b.complete(callback)
	}
}

// settleLocked reports whether this call settled the batch, along with the
// callback to run. Only one caller ever observes settled == true.
func (b *Batch) settleLocked() (bool, func()) {
	if !b.sealed || b.pending > 0 || b.settled {
		return false, nil
	}
	b.settled = true

	callback := b.callback
	b.callback = nil
	b.service.logger.Debug("attribute batch settled",
		zap.String("batch", b.id),
		zap.Int("errors", len(b.errs)))
	if len(b.errs) > 0 {
		return true, nil
	}
	return true, callback
}

// complete releases waiters, then runs the callback.
func (b *Batch) complete(callback func()) {
	close(b.done)
	defer close(b.finished)
	if callback != nil {
		callback()
	}
}

// Done is closed once the batch settles, before the callback runs.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Finished is closed after the callback returned, or right after Done when
// no callback runs.
func (b *Batch) Finished() <-chan struct{} {
	return b.finished
}

// Wait blocks until the batch settles or ctx ends, and returns the joined
// load and write errors.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return b.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the errors recorded so far.
func (b *Batch) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return errors.Join(b.errs...)
}
