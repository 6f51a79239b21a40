// Package app hosts the root Bubble Tea model that frames the active screen.
package app

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/chance/internal/catalog"
	"github.com/abhisek/chance/internal/cue"
	"github.com/abhisek/chance/internal/quiz"
	"github.com/abhisek/chance/internal/router"
	"github.com/abhisek/chance/internal/screen"
	"github.com/abhisek/chance/internal/screens/experiment"
	"github.com/abhisek/chance/internal/screens/start"
	"github.com/abhisek/chance/internal/ui/layout"
)

// Options holds the collaborators the interactive app runs with.
type Options struct {
	Catalog    *catalog.Catalog
	Controller *quiz.Controller
	Cue        *cue.Safe
	Logger     *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	log    *zap.Logger
	width  int
	height int
}

// NewAppModel creates an AppModel with the start screen at the root.
func NewAppModel(opts Options) (AppModel, error) {
	if opts.Catalog == nil || opts.Controller == nil {
		return AppModel{}, errors.New("app: catalog and controller are required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	deps := experiment.Deps{
		Controller: opts.Controller,
		Cue:        opts.Cue,
		Logger:     opts.Logger,
	}
	home := start.New(func() screen.Screen {
		return experiment.New(deps)
	}, opts.Catalog.Len())

	return AppModel{
		router: router.New(home),
		log:    opts.Logger,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.log.Debug("quit requested")
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopToRootMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the framed active screen for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	model, err := NewAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		model.log.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}
