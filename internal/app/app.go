// Package app is the root Bubble Tea model of the terminal quiz.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/router"
	"github.com/myoquiz/myoquiz/internal/screen"
	"github.com/myoquiz/myoquiz/internal/screens/home"
	"github.com/myoquiz/myoquiz/internal/screens/quiz"
	"github.com/myoquiz/myoquiz/internal/settings"
	"github.com/myoquiz/myoquiz/internal/store"
	"github.com/myoquiz/myoquiz/internal/ui/layout"
)

// Options configures the application. Grader and EventRepo are optional.
type Options struct {
	Catalog   *catalog.Catalog
	Generator *quizgen.Generator
	Settings  *settings.Store
	Grader    grading.Grader
	EventRepo store.EventRepo

	// Start, when set, opens a quiz in that mode on top of the home screen.
	Start *quiz.Mode
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	settings <-chan settings.Settings
	start    screen.Screen
	width    int
	height   int
}

// runtime holds what must be released when the program exits.
type runtime struct {
	dispatcher  *grading.Dispatcher
	unsubscribe func()
}

func (r *runtime) close(rt *router.Router) {
	rt.CloseAll()
	if r.dispatcher != nil {
		r.dispatcher.Close()
	}
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) (AppModel, *runtime) {
	if opts.Settings == nil {
		opts.Settings, _ = settings.Open("")
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Generator == nil {
		opts.Generator = quizgen.NewGenerator()
	}

	rt := &runtime{}
	if opts.Grader != nil {
		rt.dispatcher = grading.NewDispatcher(opts.Grader)
	}

	// Saves happen on the UI goroutine; the channel hands them back to
	// the program loop as messages. Only the latest value matters.
	ch := make(chan settings.Settings, 1)
	rt.unsubscribe = opts.Settings.Subscribe(func(s settings.Settings) {
		select {
		case <-ch:
		default:
		}
		ch <- s
	})

	deps := home.Deps{
		Catalog:    opts.Catalog,
		Generator:  opts.Generator,
		Settings:   opts.Settings,
		Dispatcher: rt.dispatcher,
		EventRepo:  opts.EventRepo,
	}

	m := AppModel{
		router:   router.New(home.New(deps)),
		settings: ch,
	}
	if opts.Start != nil && (*opts.Start != quiz.FreeText || rt.dispatcher != nil) {
		m.start = quiz.New(*opts.Start, quiz.Deps{
			Catalog:    opts.Catalog,
			Generator:  opts.Generator,
			Settings:   opts.Settings.Get(),
			Dispatcher: rt.dispatcher,
		})
	}
	return m, rt
}

func waitForSettings(ch <-chan settings.Settings) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return screen.SettingsChangedMsg{Settings: s}
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForSettings(m.settings)}
	if m.start != nil {
		cmds = append(cmds, m.router.Push(m.start))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SettingsChangedMsg:
		return m, tea.Batch(m.router.Broadcast(msg), waitForSettings(m.settings))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturesInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
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

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m, rt := newAppModel(opts)
	defer rt.close(m.router)

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
