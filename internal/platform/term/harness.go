package term

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the terminal model without a TTY for integration tests.
type Harness struct {
	model *model
	quit  bool
}

// NewHarness creates a model for app, runs its launch message and returns
// the harness. tick plays the role of the shell loop.
func NewHarness(app *App, tick func()) *Harness {
	h := &Harness{model: newModel(app, tick)}
	h.processCmd(h.model.Init())
	return h
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	_, cmd := h.model.Update(msg)
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		switch msg := msg.(type) {
		case nil:
			return
		case tea.QuitMsg:
			h.quit = true
			return
		case tea.BatchMsg:
			for _, c := range msg {
				h.processCmd(c)
			}
			return
		}
		_, cmd = h.model.Update(msg)
	}
}

// Wake delivers the message a waker would post to a running program.
func (h *Harness) Wake() {
	h.Send(wakeMsg{})
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}
