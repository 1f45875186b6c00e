package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NethermindEth/amanti/pkg/amanti/card"
	"github.com/NethermindEth/amanti/pkg/amanti/note"
)

var (
	ErrRequestInFlight = errors.New("a generation request is already in flight")
	ErrNotRequesting   = errors.New("no generation request is in flight")
	ErrNoResult        = errors.New("no generated note to copy")
)

// Effect is work the caller has to perform after a dispatch. The machine
// itself never talks to the network, the clipboard or the file system.
type Effect interface {
	isEffect()
}

type RequestCompletion struct {
	Input note.FormInput
}

type WriteClipboard struct {
	Text string
}

type DownloadCard struct {
	Card card.Card
}

func (RequestCompletion) isEffect() {}
func (WriteClipboard) isEffect()    {}
func (DownloadCard) isEffect()      {}

// Machine holds one session's form, lifecycle state and result. It is not
// safe for concurrent use.
type Machine struct {
	form            note.FormInput
	state           State
	result          string
	optionsMenuOpen bool
	notices         []Notice
}

func NewMachine() *Machine {
	return &Machine{
		form:  note.NewFormInput(),
		state: Idle{},
	}
}

func (m *Machine) Dispatch(action Action) (Effect, error) {
	switch a := action.(type) {
	case SetName:
		m.form.Name = a.Value
	case SetDetails:
		m.form.Details = a.Value
	case SetStyle:
		m.form.Style = a.Value
	case Generate:
		return m.generate()
	case GenerationSucceeded:
		return nil, m.succeed(a.Text)
	case GenerationFailed:
		return nil, m.fail(a.Err)
	case CloseModal:
		if _, ok := m.state.(Success); ok {
			m.state = Idle{}
		}
		m.optionsMenuOpen = false
	case ToggleOptions:
		if m.ModalOpen() {
			m.optionsMenuOpen = !m.optionsMenuOpen
		}
	case Copy:
		return m.copy()
	case Export:
		return m.export()
	default:
		return nil, fmt.Errorf("unknown action %T", action)
	}

	return nil, nil
}

func (m *Machine) generate() (Effect, error) {
	if m.Loading() {
		return nil, ErrRequestInFlight
	}

	if err := m.form.Validate(); err != nil {
		var validationErr *note.ValidationError
		if errors.As(err, &validationErr) {
			m.notify(NoticeError, validationErr.Message)
		}
		return nil, err
	}

	m.state = Requesting{}
	m.optionsMenuOpen = false

	return RequestCompletion{Input: m.form}, nil
}

func (m *Machine) succeed(text string) error {
	if !m.Loading() {
		return ErrNotRequesting
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return m.fail(errors.New("empty completion"))
	}

	m.result = text
	m.state = Success{Text: text}

	return nil
}

func (m *Machine) fail(err error) error {
	if !m.Loading() {
		return ErrNotRequesting
	}

	m.state = Failed{Err: err}
	m.notify(NoticeError, MessageGenerationFailed)

	return nil
}

func (m *Machine) copy() (Effect, error) {
	success, ok := m.state.(Success)
	if !ok {
		return nil, ErrNoResult
	}

	m.optionsMenuOpen = false
	m.notify(NoticeSuccess, MessageCopied)

	return WriteClipboard{Text: success.Text}, nil
}

// export only works while the card is on screen. Without it there is nothing
// to rasterize and the caller is expected to ignore card.ErrNoTarget.
func (m *Machine) export() (Effect, error) {
	success, ok := m.state.(Success)
	if !ok {
		return nil, card.ErrNoTarget
	}

	m.optionsMenuOpen = false
	m.notify(NoticeSuccess, MessageDownloaded)

	return DownloadCard{Card: card.Card{Text: success.Text, Name: strings.TrimSpace(m.form.Name)}}, nil
}

func (m *Machine) notify(level NoticeLevel, message string) {
	m.notices = append(m.notices, Notice{Level: level, Message: message})
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Form() note.FormInput {
	return m.form
}

func (m *Machine) Result() string {
	return m.result
}

func (m *Machine) Loading() bool {
	_, ok := m.state.(Requesting)
	return ok
}

func (m *Machine) ModalOpen() bool {
	_, ok := m.state.(Success)
	return ok
}

func (m *Machine) OptionsMenuOpen() bool {
	return m.optionsMenuOpen
}

// DrainNotices returns the pending notices and forgets them.
func (m *Machine) DrainNotices() []Notice {
	notices := m.notices
	m.notices = nil
	return notices
}
