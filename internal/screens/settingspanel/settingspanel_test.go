package settingspanel

import (
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/settings"
)

func openStore(t *testing.T) *settings.Store {
	t.Helper()
	st, err := settings.Open(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	return st
}

func TestSettingsScreen_ToggleSaves(t *testing.T) {
	st := openStore(t)
	var seen []settings.Settings
	st.Subscribe(func(s settings.Settings) { seen = append(seen, s) })

	s := New(st)
	// Row 0 is origin, enabled by default.
	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})

	assert.False(t, st.Get().Enabled(quizgen.TypeOrigin))
	assert.False(t, s.Current().Enabled(quizgen.TypeOrigin))
	require.Len(t, seen, 1)

	reopened, err := settings.Open(st.Path())
	require.NoError(t, err)
	assert.False(t, reopened.Get().Enabled(quizgen.TypeOrigin))
}

func TestSettingsScreen_EnableNameType(t *testing.T) {
	st := openStore(t)
	s := New(st)
	for range 3 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, st.Get().Enabled(quizgen.TypeName))
}

func TestSettingsScreen_LastTypeStays(t *testing.T) {
	st := openStore(t)
	_, err := st.Save(settings.Settings{
		EnabledTypes:       []quizgen.QuestionType{quizgen.TypeOrigin},
		QuestionsPerMuscle: 1,
	})
	require.NoError(t, err)

	s := New(st)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, []quizgen.QuestionType{quizgen.TypeOrigin}, st.Get().EnabledTypes)
}

func TestSettingsScreen_CountBounds(t *testing.T) {
	st := openStore(t)
	s := New(st)

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, settings.DefaultQuestionsPerMuscle+1, st.Get().QuestionsPerMuscle)

	for range 10 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	}
	assert.Equal(t, MaxQuestionsPerMuscle, st.Get().QuestionsPerMuscle)

	for range 10 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	}
	assert.Equal(t, 1, st.Get().QuestionsPerMuscle)
}

func TestSettingsScreen_ResetDefaults(t *testing.T) {
	st := openStore(t)
	s := New(st)
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	s.Update(tea.KeyPressMsg{Code: 'd', Text: "d"})

	assert.True(t, st.Get().Equal(settings.Default()))
	assert.True(t, s.Current().Equal(settings.Default()))
}

func TestSettingsScreen_CursorBounds(t *testing.T) {
	s := New(openStore(t))
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.cursor)
	for range 20 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, countRow(), s.cursor)
}
