package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/NethermindEth/amanti/pkg/amanti/card"
	"github.com/NethermindEth/amanti/pkg/amanti/lifecycle"
	"github.com/NethermindEth/amanti/pkg/amanti/metrics"
	"github.com/NethermindEth/amanti/pkg/amanti/note"
)

type NoteClient interface {
	Generate(ctx context.Context, input note.FormInput) (string, error)
}

type CardRenderer interface {
	Render(c card.Card) ([]byte, error)
}

// Session is one visitor's UI state. The lock is only held while
// dispatching, never across the completion call.
type Session struct {
	id string

	client   NoteClient
	renderer CardRenderer
	pool     pond.ResultPool[string]

	machine *lifecycle.Machine
	mu      sync.Mutex
}

type Download struct {
	FileName string
	Data     []byte
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) View() lifecycle.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.machine.View()
}

func (s *Session) UpdateForm(input note.FormInput) lifecycle.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.machine.Dispatch(lifecycle.SetName{Value: input.Name})
	s.machine.Dispatch(lifecycle.SetDetails{Value: input.Details})
	s.machine.Dispatch(lifecycle.SetStyle{Value: input.Style})

	return s.machine.View()
}

func (s *Session) CloseModal() lifecycle.View {
	return s.dispatch(lifecycle.CloseModal{})
}

func (s *Session) ToggleOptions() lifecycle.View {
	return s.dispatch(lifecycle.ToggleOptions{})
}

func (s *Session) dispatch(action lifecycle.Action) lifecycle.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.machine.Dispatch(action); err != nil {
		slog.Warn("failed to dispatch action", "session", s.id, "action", fmt.Sprintf("%T", action), "error", err)
	}

	return s.machine.View()
}

// Generate runs one generation for the current form. A second call while one
// is outstanding fails with lifecycle.ErrRequestInFlight without a network
// call.
func (s *Session) Generate(ctx context.Context) (lifecycle.View, error) {
	s.mu.Lock()
	effect, err := s.machine.Dispatch(lifecycle.Generate{})
	if err != nil {
		status := metrics.StatusRejected
		var validationErr *note.ValidationError
		if errors.As(err, &validationErr) {
			status = metrics.StatusValidation
		}
		metrics.GenerationsTotal.WithLabelValues(status).Inc()

		view := s.machine.View()
		s.mu.Unlock()
		return view, err
	}
	s.mu.Unlock()

	request, ok := effect.(lifecycle.RequestCompletion)
	if !ok {
		return s.View(), fmt.Errorf("unexpected effect %T", effect)
	}

	start := time.Now()
	text, err := s.pool.SubmitErr(func() (string, error) {
		return s.client.Generate(ctx, request.Input)
	}).Wait()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Error("failed to generate note", "session", s.id, "error", err)
		metrics.GenerationsTotal.WithLabelValues(metrics.StatusFailed).Inc()

		if _, dispatchErr := s.machine.Dispatch(lifecycle.GenerationFailed{Err: err}); dispatchErr != nil {
			slog.Error("failed to record generation failure", "session", s.id, "error", dispatchErr)
		}
		return s.machine.View(), err
	}

	if _, err := s.machine.Dispatch(lifecycle.GenerationSucceeded{Text: text}); err != nil {
		return s.machine.View(), err
	}

	// The machine refuses blank completions and lands in Failed.
	if failed, ok := s.machine.State().(lifecycle.Failed); ok {
		slog.Error("failed to generate note", "session", s.id, "error", failed.Err)
		metrics.GenerationsTotal.WithLabelValues(metrics.StatusFailed).Inc()
		return s.machine.View(), &note.GenerationError{Cause: failed.Err}
	}
	metrics.GenerationsTotal.WithLabelValues(metrics.StatusSuccess).Inc()

	return s.machine.View(), nil
}

// Copy returns the text to place on the clipboard.
func (s *Session) Copy() (string, lifecycle.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	effect, err := s.machine.Dispatch(lifecycle.Copy{})
	if err != nil {
		return "", s.machine.View(), err
	}

	return effect.(lifecycle.WriteClipboard).Text, s.machine.View(), nil
}

// Export rasterizes the visible card. Without one it returns card.ErrNoTarget
// and leaves the session untouched.
func (s *Session) Export() (*Download, error) {
	s.mu.Lock()
	effect, err := s.machine.Dispatch(lifecycle.Export{})
	s.mu.Unlock()
	if err != nil {
		metrics.ExportsTotal.WithLabelValues(metrics.StatusNoTarget).Inc()
		return nil, err
	}

	target := effect.(lifecycle.DownloadCard).Card
	data, err := s.renderer.Render(target)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues(metrics.StatusFailed).Inc()
		return nil, fmt.Errorf("failed to render card: %w", err)
	}
	metrics.ExportsTotal.WithLabelValues(metrics.StatusSuccess).Inc()

	return &Download{
		FileName: card.FileName(target.Name),
		Data:     data,
	}, nil
}
