package term

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timepiece/internal/core/clock"
	"timepiece/internal/core/model"
	"timepiece/internal/core/timekeeper"
	"timepiece/internal/core/timepiece"
)

func newTestModel(t *testing.T) (*Model, *timepiece.Manager, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock(time.Date(2024, time.January, 15, 8, 0, 0, 0, time.Local))
	scheduler := clock.NewScheduler(mock)
	manager := timepiece.NewManager(timepiece.Deps{
		Clock:     mock,
		Scheduler: scheduler,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, model.DefaultRefreshConfig())
	manager.Start()
	t.Cleanup(manager.Close)
	return NewModel(manager, scheduler, mock, 100*time.Millisecond), manager, mock
}

func press(screen *Model, keys ...string) {
	for _, value := range keys {
		var msg tea.KeyMsg
		switch value {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
		}
		screen.Update(msg)
	}
}

func advance(screen *Model, mock *clock.Mock, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += screen.resolution {
		mock.Advance(screen.resolution)
		screen.Update(tickMsg(mock.Now()))
		drain(screen)
	}
}

// drain feeds queued manager events back into the model.
func drain(screen *Model) {
	for len(screen.events) > 0 {
		screen.Update(eventMsg(<-screen.events))
	}
}

func TestKeysCreateAndSelectItems(t *testing.T) {
	screen, manager, _ := newTestModel(t)
	press(screen, "s", "t", "a")

	require.Len(t, manager.All(), 3)
	assert.Equal(t, 2, screen.selected)
	assert.Equal(t, model.KindAlarm, screen.current().Kind())

	press(screen, "tab")
	assert.Equal(t, 0, screen.selected)
	press(screen, "k")
	assert.Equal(t, 2, screen.selected)
}

func TestTimerRunsFromTicksAndAlerts(t *testing.T) {
	screen, manager, mock := newTestModel(t)
	press(screen, "t", "+", "+")
	timer := manager.Items(model.KindTimer)[0].(*timepiece.TimerItem)
	assert.Equal(t, int64(120), timer.Target())

	press(screen, "space")
	assert.Equal(t, timekeeper.StateRunning, timer.State())
	press(screen, "+")
	assert.Equal(t, "3:00", timer.MenuText())

	advance(screen, mock, 181*time.Second)
	drain(screen)
	assert.True(t, screen.alerted[timer.ID()])
	assert.Contains(t, screen.View(), "Time's up")

	press(screen, "r")
	assert.False(t, screen.alerted[timer.ID()])
	assert.Equal(t, "2:00", timer.MenuText())

	press(screen, "-", "-", "-")
	assert.Equal(t, int64(0), timer.Target())
}

func TestAlarmKeysEditTime(t *testing.T) {
	screen, manager, _ := newTestModel(t)
	press(screen, "a", "-", "]", "]")

	alarm := manager.Items(model.KindAlarm)[0].(*timepiece.AlarmItem)
	assert.Equal(t, model.AlarmConfig{Hour: 8, Minute: 59}, alarm.Config())

	press(screen, "m")
	assert.Equal(t, model.AlarmConfig{Hour: 8, Minute: 59}, alarm.Config(), "24-hour alarms ignore am/pm")
}

func TestHideAndRemoveSelected(t *testing.T) {
	screen, manager, _ := newTestModel(t)
	press(screen, "s", "s")
	second := screen.current().ID()

	press(screen, "h")
	assert.False(t, manager.Visible(second))
	assert.Contains(t, screen.View(), "(hidden)")
	press(screen, "h")
	assert.True(t, manager.Visible(second))

	press(screen, "x")
	assert.Len(t, manager.All(), 1)
	assert.Equal(t, 0, screen.selected)
	press(screen, "x")
	assert.Empty(t, manager.All())
	assert.Contains(t, screen.View(), "No stop watches")
}

func TestQuitKey(t *testing.T) {
	screen, _, _ := newTestModel(t)
	_, cmd := screen.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
