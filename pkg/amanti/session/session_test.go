package session_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/amanti/pkg/amanti/card"
	"github.com/NethermindEth/amanti/pkg/amanti/lifecycle"
	"github.com/NethermindEth/amanti/pkg/amanti/note"
	"github.com/NethermindEth/amanti/pkg/amanti/session"
)

type mockNoteClient struct {
	calls    atomic.Int32
	generate func(ctx context.Context, input note.FormInput) (string, error)
}

func (m *mockNoteClient) Generate(ctx context.Context, input note.FormInput) (string, error) {
	m.calls.Add(1)
	return m.generate(ctx, input)
}

type mockRenderer struct {
	render func(c card.Card) ([]byte, error)
}

func (m *mockRenderer) Render(c card.Card) ([]byte, error) {
	return m.render(c)
}

func setupTestStore(t *testing.T, client session.NoteClient, renderer session.CardRenderer) *session.Store {
	pool := pond.NewResultPool[string](4)
	t.Cleanup(pool.StopAndWait)

	if renderer == nil {
		renderer = &mockRenderer{render: func(c card.Card) ([]byte, error) {
			return []byte("png"), nil
		}}
	}

	store, err := session.NewStore(&session.StoreConfig{
		Client:   client,
		Renderer: renderer,
		Pool:     pool,
	})
	require.NoError(t, err)
	return store
}

func TestNewStore(t *testing.T) {
	pool := pond.NewResultPool[string](1)
	defer pool.StopAndWait()

	client := &mockNoteClient{}
	renderer := &mockRenderer{}

	tests := []struct {
		name    string
		config  *session.StoreConfig
		wantErr bool
	}{
		{name: "valid config", config: &session.StoreConfig{Client: client, Renderer: renderer, Pool: pool}},
		{name: "nil config", config: nil, wantErr: true},
		{name: "missing client", config: &session.StoreConfig{Renderer: renderer, Pool: pool}, wantErr: true},
		{name: "missing renderer", config: &session.StoreConfig{Client: client, Pool: pool}, wantErr: true},
		{name: "missing pool", config: &session.StoreConfig{Client: client, Renderer: renderer}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := session.NewStore(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, store)
		})
	}
}

func TestStore_NewGetRemove(t *testing.T) {
	store := setupTestStore(t, &mockNoteClient{}, nil)

	first := store.New()
	second := store.New()
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 2, store.Len())

	got, ok := store.Get(first.ID())
	require.True(t, ok)
	assert.Same(t, first, got)

	_, ok = store.Get("")
	assert.False(t, ok)

	store.Remove(first.ID())
	_, ok = store.Get(first.ID())
	assert.False(t, ok)
}

func TestSession_GenerateScenario(t *testing.T) {
	var gotInput note.FormInput
	client := &mockNoteClient{generate: func(ctx context.Context, input note.FormInput) (string, error) {
		gotInput = input
		return "Happy Valentine's, Alex.", nil
	}}
	s := setupTestStore(t, client, nil).New()

	s.UpdateForm(note.FormInput{Name: "Alex", Details: "", Style: note.StyleRomantic})

	view, err := s.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), client.calls.Load())
	assert.Equal(t, "Alex", gotInput.Name)
	assert.Equal(t, note.StyleRomantic, gotInput.Style)
	assert.True(t, view.ModalOpen)
	assert.False(t, view.Loading)
	assert.Equal(t, "Happy Valentine's, Alex.", view.Result)
}

func TestSession_GenerateWithEmptyName(t *testing.T) {
	client := &mockNoteClient{}
	s := setupTestStore(t, client, nil).New()

	view, err := s.Generate(context.Background())

	var validationErr *note.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, int32(0), client.calls.Load())
	assert.False(t, view.ModalOpen)
	assert.Equal(t, []lifecycle.Notice{{Level: lifecycle.NoticeError, Message: "Please enter a name!"}}, view.Notices)
}

func TestSession_GenerateFailure(t *testing.T) {
	client := &mockNoteClient{generate: func(ctx context.Context, input note.FormInput) (string, error) {
		return "", &note.GenerationError{Cause: assert.AnError}
	}}
	s := setupTestStore(t, client, nil).New()
	s.UpdateForm(note.FormInput{Name: "Sam"})

	view, err := s.Generate(context.Background())

	var generationErr *note.GenerationError
	require.ErrorAs(t, err, &generationErr)
	assert.False(t, view.ModalOpen)
	assert.False(t, view.Loading)
	assert.Equal(t, "failed", view.State)
	assert.Equal(t, []lifecycle.Notice{{Level: lifecycle.NoticeError, Message: lifecycle.MessageGenerationFailed}}, view.Notices)
}

func TestSession_GenerateBlankCompletion(t *testing.T) {
	client := &mockNoteClient{generate: func(ctx context.Context, input note.FormInput) (string, error) {
		return "  \n", nil
	}}
	s := setupTestStore(t, client, nil).New()
	s.UpdateForm(note.FormInput{Name: "Sam"})

	view, err := s.Generate(context.Background())

	var generationErr *note.GenerationError
	require.ErrorAs(t, err, &generationErr)
	assert.Equal(t, "failed", view.State)
	assert.False(t, view.ModalOpen)
	assert.False(t, view.Loading)
	assert.Equal(t, []lifecycle.Notice{{Level: lifecycle.NoticeError, Message: lifecycle.MessageGenerationFailed}}, view.Notices)
}

func TestSession_GenerateRejectsDuplicate(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	client := &mockNoteClient{generate: func(ctx context.Context, input note.FormInput) (string, error) {
		close(started)
		<-release
		return "Be mine.", nil
	}}
	s := setupTestStore(t, client, nil).New()
	s.UpdateForm(note.FormInput{Name: "Sam"})

	done := make(chan error, 1)
	go func() {
		_, err := s.Generate(context.Background())
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("generation did not start")
	}

	assert.True(t, s.View().Loading)

	_, err := s.Generate(context.Background())
	assert.ErrorIs(t, err, lifecycle.ErrRequestInFlight)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), client.calls.Load())
	view := s.View()
	assert.True(t, view.ModalOpen)
	assert.Equal(t, "Be mine.", view.Result)
}

func TestSession_CopyAndExport(t *testing.T) {
	var rendered card.Card
	renderer := &mockRenderer{render: func(c card.Card) ([]byte, error) {
		rendered = c
		return []byte("png-bytes"), nil
	}}
	client := &mockNoteClient{generate: func(ctx context.Context, input note.FormInput) (string, error) {
		return "Be mine.", nil
	}}
	s := setupTestStore(t, client, renderer).New()

	_, _, err := s.Copy()
	assert.ErrorIs(t, err, lifecycle.ErrNoResult)

	download, err := s.Export()
	assert.ErrorIs(t, err, card.ErrNoTarget)
	assert.Nil(t, download)
	assert.Empty(t, s.View().Notices)

	s.UpdateForm(note.FormInput{Name: "Alex"})
	_, err = s.Generate(context.Background())
	require.NoError(t, err)

	text, view, err := s.Copy()
	require.NoError(t, err)
	assert.Equal(t, "Be mine.", text)
	assert.Equal(t, []lifecycle.Notice{{Level: lifecycle.NoticeSuccess, Message: lifecycle.MessageCopied}}, view.Notices)

	download, err = s.Export()
	require.NoError(t, err)
	assert.Equal(t, "Valentine_Alex.png", download.FileName)
	assert.Equal(t, []byte("png-bytes"), download.Data)
	assert.Equal(t, card.Card{Text: "Be mine.", Name: "Alex"}, rendered)
}

func TestSession_ExportRenderFailure(t *testing.T) {
	renderer := &mockRenderer{render: func(c card.Card) ([]byte, error) {
		return nil, assert.AnError
	}}
	client := &mockNoteClient{generate: func(ctx context.Context, input note.FormInput) (string, error) {
		return "Be mine.", nil
	}}
	s := setupTestStore(t, client, renderer).New()
	s.UpdateForm(note.FormInput{Name: "Alex"})
	_, err := s.Generate(context.Background())
	require.NoError(t, err)

	_, err = s.Export()
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSession_ModalAndOptions(t *testing.T) {
	client := &mockNoteClient{generate: func(ctx context.Context, input note.FormInput) (string, error) {
		return "Be mine.", nil
	}}
	s := setupTestStore(t, client, nil).New()
	s.UpdateForm(note.FormInput{Name: "Alex"})
	_, err := s.Generate(context.Background())
	require.NoError(t, err)

	assert.True(t, s.ToggleOptions().OptionsMenuOpen)

	view := s.CloseModal()
	assert.False(t, view.ModalOpen)
	assert.False(t, view.OptionsMenuOpen)
	assert.Empty(t, view.Result)
}
