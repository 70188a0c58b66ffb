package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Veraticus/ecosort/internal/common"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/service"
)

// Preview is a transient resource tied to a staged input, such as a temp copy
// of an image for an external viewer. The session owns it exclusively.
type Preview interface {
	io.Closer
	Location() string
}

// PreviewFactory creates a preview for a staged input. It may return a nil
// Preview for inputs that have none.
type PreviewFactory func(model.Input) (Preview, error)

// Option configures a Session.
type Option func(*Session)

// WithPreviewFactory makes the session create a preview for every staged input.
func WithPreviewFactory(factory PreviewFactory) Option {
	return func(s *Session) {
		s.newPreview = factory
	}
}

// Session manages exactly one classification attempt end-to-end. At most one
// request is in flight at any time.
type Session struct {
	classifier service.Classifier
	newPreview PreviewFactory
	preview    Preview
	state      State
	mu         sync.Mutex
}

// New creates an idle session.
func New(classifier service.Classifier, opts ...Option) *Session {
	s := &Session{classifier: classifier}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PreviewLocation returns where the current preview lives, if any.
func (s *Session) PreviewLocation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preview == nil {
		return ""
	}
	return s.preview.Location()
}

// SetInput stages a new input, discarding any prior result or error. Invalid
// input is rejected with common.ErrInvalidInput and the state is unchanged.
func (s *Session) SetInput(in model.Input) error {
	if err := in.Validate(); err != nil {
		slog.Debug("Rejected input", "kind", in.Kind, "error", err)
		return err
	}

	var preview Preview
	if s.newPreview != nil {
		p, err := s.newPreview(in)
		if err != nil {
			slog.Warn("Failed to create preview", "error", err)
		} else {
			preview = p
		}
	}

	s.mu.Lock()
	old := s.preview
	s.preview = preview
	s.state = stage(s.state, in)
	s.mu.Unlock()

	releasePreview(old)
	slog.Debug("Input staged", "input", in.Describe())
	return nil
}

// Classify submits the staged input. It is a no-op while a request is already
// pending and returns common.ErrNotReady when nothing is staged or a result is
// already shown. A failed request is returned as an error and recorded in the
// state; a response for input that was replaced or cleared meanwhile is dropped.
func (s *Session) Classify(ctx context.Context) error {
	return s.submit(ctx, StatusReady)
}

// Retry reissues the request for the staged input after a failure.
func (s *Session) Retry(ctx context.Context) error {
	return s.submit(ctx, StatusFailed)
}

// Clear releases the staged input and its preview and returns to Idle.
func (s *Session) Clear() {
	s.mu.Lock()
	old := s.preview
	s.preview = nil
	s.state = reset(s.state)
	s.mu.Unlock()

	releasePreview(old)
}

// Close releases all resources held by the session.
func (s *Session) Close() error {
	s.Clear()
	return nil
}

func (s *Session) submit(ctx context.Context, from Status) error {
	s.mu.Lock()
	if s.state.Status == StatusPending {
		s.mu.Unlock()
		slog.Debug("Classification already in flight, ignoring request")
		return nil
	}
	next, generation, ok := begin(s.state, from)
	if !ok {
		status := s.state.Status
		s.mu.Unlock()
		return fmt.Errorf("%w: session is %s", common.ErrNotReady, status)
	}
	s.state = next
	in := *next.Input
	s.mu.Unlock()

	result, err := s.send(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		var committed bool
		s.state, committed = fail(s.state, generation, common.ServerMessage(err, FallbackMessage), common.IsRetryable(err))
		if !committed {
			slog.Debug("Dropping failure for superseded input", "error", err)
			return nil
		}
		return fmt.Errorf("classification failed: %w", err)
	}

	var committed bool
	s.state, committed = succeed(s.state, generation, result)
	if !committed {
		slog.Debug("Dropping result for superseded input")
		return nil
	}

	slog.Info("Classification complete",
		"category", result.Category,
		"confidence", result.Confidence)
	return nil
}

func (s *Session) send(ctx context.Context, in model.Input) (model.Result, error) {
	switch in.Kind {
	case model.InputImage:
		return s.classifier.ClassifyImage(ctx, *in.Image)
	default:
		return s.classifier.ClassifyText(ctx, in.Text)
	}
}

func releasePreview(p Preview) {
	if p == nil {
		return
	}
	if err := p.Close(); err != nil {
		slog.Warn("Failed to release preview", "location", p.Location(), "error", err)
	}
}
