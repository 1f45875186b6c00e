package lifecycle

import "github.com/NethermindEth/amanti/pkg/amanti/note"

type Action interface {
	isAction()
}

type SetName struct{ Value string }

type SetDetails struct{ Value string }

type SetStyle struct{ Value note.Style }

type Generate struct{}

type GenerationSucceeded struct{ Text string }

type GenerationFailed struct{ Err error }

type CloseModal struct{}

type ToggleOptions struct{}

type Copy struct{}

type Export struct{}

func (SetName) isAction()             {}
func (SetDetails) isAction()          {}
func (SetStyle) isAction()            {}
func (Generate) isAction()            {}
func (GenerationSucceeded) isAction() {}
func (GenerationFailed) isAction()    {}
func (CloseModal) isAction()          {}
func (ToggleOptions) isAction()       {}
func (Copy) isAction()                {}
func (Export) isAction()              {}
