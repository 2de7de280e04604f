package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/router"
	"github.com/myoquiz/myoquiz/internal/screen"
	"github.com/myoquiz/myoquiz/internal/screens/encyclopedia"
	"github.com/myoquiz/myoquiz/internal/screens/history"
	"github.com/myoquiz/myoquiz/internal/screens/quiz"
	"github.com/myoquiz/myoquiz/internal/screens/settingspanel"
	"github.com/myoquiz/myoquiz/internal/settings"
	"github.com/myoquiz/myoquiz/internal/store"
	"github.com/myoquiz/myoquiz/internal/ui/components"
	"github.com/myoquiz/myoquiz/internal/ui/layout"
)

// Deps are the collaborators reachable from the home menu. Dispatcher
// and EventRepo are optional; their entries are disabled when nil.
type Deps struct {
	Catalog    *catalog.Catalog
	Generator  *quizgen.Generator
	Settings   *settings.Store
	Dispatcher *grading.Dispatcher
	EventRepo  store.EventRepo
}

// Menu entry indices.
const (
	itemQuiz = iota
	itemAIQuiz
	itemEncyclopedia
	itemSettings
	itemHistory
	itemExit
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	stats      homeStats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Generator == nil {
		deps.Generator = quizgen.NewGenerator()
	}
	if deps.Settings == nil {
		deps.Settings, _ = settings.Open("")
	}

	h := &HomeScreen{
		deps:       deps,
		menuLabels: []string{"QUIZ", "AI QUIZ", "ENCYCLOPEDIA", "SETTINGS", "HISTORY", "EXIT"},
		disabled: map[int]bool{
			itemAIQuiz:  deps.Dispatcher == nil,
			itemHistory: deps.EventRepo == nil,
		},
	}

	items := []components.MenuItem{
		{Label: h.menuLabels[itemQuiz], Action: func() tea.Cmd {
			return push(quiz.New(quiz.MultipleChoice, h.quizDeps()))
		}},
		{Label: h.menuLabels[itemAIQuiz], Disabled: h.disabled[itemAIQuiz], Action: func() tea.Cmd {
			return push(quiz.New(quiz.FreeText, h.quizDeps()))
		}},
		{Label: h.menuLabels[itemEncyclopedia], Action: func() tea.Cmd {
			return push(encyclopedia.New(deps.Catalog))
		}},
		{Label: h.menuLabels[itemSettings], Action: func() tea.Cmd {
			return push(settingspanel.New(deps.Settings))
		}},
		{Label: h.menuLabels[itemHistory], Disabled: h.disabled[itemHistory], Action: func() tea.Cmd {
			return push(history.New(deps.EventRepo))
		}},
		{Label: h.menuLabels[itemExit], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.refreshStats(deps.Settings.Get())
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) quizDeps() quiz.Deps {
	return quiz.Deps{
		Catalog:    h.deps.Catalog,
		Generator:  h.deps.Generator,
		Settings:   h.deps.Settings.Get(),
		Dispatcher: h.deps.Dispatcher,
	}
}

func (h *HomeScreen) refreshStats(s settings.Settings) {
	h.stats = homeStats{
		muscles:            h.deps.Catalog.Len(),
		groups:             len(h.deps.Catalog.Groups()),
		types:              len(s.EnabledTypes),
		questionsPerMuscle: s.QuestionsPerMuscle,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(screen.SettingsChangedMsg); ok {
		h.refreshStats(msg.Settings)
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header and footer.
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if h.disabled[itemAIQuiz] {
		sections = append(sections, renderLLMBanner(cw))
	}
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	content := strings.Join(sections, "\n\n")

	// Wrap in cabinet frame, centered in the full area
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
