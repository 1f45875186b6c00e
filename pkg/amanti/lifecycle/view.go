package lifecycle

import "github.com/NethermindEth/amanti/pkg/amanti/note"

type View struct {
	State           string         `json:"state"`
	Form            note.FormInput `json:"form"`
	Loading         bool           `json:"loading"`
	ModalOpen       bool           `json:"modalOpen"`
	OptionsMenuOpen bool           `json:"optionsMenuOpen"`
	Result          string         `json:"result,omitempty"`
	Notices         []Notice       `json:"notices"`
}

// View snapshots the machine and drains its notices.
func (m *Machine) View() View {
	view := View{
		State:           m.state.Name(),
		Form:            m.form,
		Loading:         m.Loading(),
		ModalOpen:       m.ModalOpen(),
		OptionsMenuOpen: m.optionsMenuOpen,
		Notices:         m.DrainNotices(),
	}
	if view.ModalOpen {
		view.Result = m.result
	}
	if view.Notices == nil {
		view.Notices = []Notice{}
	}

	return view
}
