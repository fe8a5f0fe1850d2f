// Package main provides the entrypoint for Timepiece.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"timepiece/internal/core/clock"
	"timepiece/internal/core/model"
	"timepiece/internal/core/timepiece"
	"timepiece/internal/platform"
	"timepiece/internal/storage"
	"timepiece/internal/ui/overlay"
	"timepiece/internal/ui/preferences"
	termui "timepiece/internal/ui/term"
	"timepiece/internal/ui/tray"
	"timepiece/resources"
)

const (
	appName = "Timepiece"
	appDir  = "timepiece"
	appID   = "org.timepiece.applet"

	schedulerResolution = 10 * time.Millisecond
	trayRefresh         = time.Second
)

var (
	configPath string
	storePath  string
	forceTUI   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "timepiece",
		Short:        "Stop watches, timers and alarms for the desktop panel",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runTimepiece,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "settings file (.yaml or .toml)")
	rootCmd.Flags().StringVar(&storePath, "store", "", "settings store database path")
	rootCmd.Flags().BoolVar(&forceTUI, "tui", false, "run the terminal front end instead of the tray")

	return rootCmd
}

// session is everything a front end needs once the core is running.
type session struct {
	settings     preferences.Settings
	settingsPath string
	logger       *slog.Logger
	level        *slog.LevelVar
	service      platform.Service
	store        storage.Store
	clock        clock.Clock
	scheduler    *clock.Scheduler
	manager      *timepiece.Manager
	guard        *platform.InstanceGuard
}

func runTimepiece(cmd *cobra.Command, _ []string) error {
	settingsPath := configPath
	if settingsPath == "" {
		var err error
		settingsPath, err = storage.SettingsPath(appDir)
		if err != nil {
			return err
		}
	}
	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if cmd.Flags().Changed("store") {
		settings.StorePath = storePath
	}

	level := new(slog.LevelVar)
	level.Set(settings.Level())
	logger := newLogger(os.Stderr, level)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if err := platform.ActivateRunning(appName); err != nil {
				logger.Warn("activate running instance", "error", err)
			}
			logger.Info("already running")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	logger.Debug("single instance guard", "address", guard.Address())
	defer func() {
		_ = guard.Release()
	}()

	service := platform.NewService()
	store, closeStore := openStore(service, settings, logger)
	defer closeStore()
	mirrorSoundPaths(store, settings, logger)

	realClock := clock.Real()
	scheduler := clock.NewScheduler(realClock)
	manager := timepiece.NewManager(timepiece.Deps{
		Clock:       realClock,
		Scheduler:   scheduler,
		Store:       store,
		Player:      platform.NewSoundPlayer(logger),
		ClockFormat: clockFormatFor(settings.ClockFormat, logger),
		Logger:      logger,
	}, settings.RefreshConfig())
	manager.Start()
	defer manager.Close()

	applyAutostart(service, settings, logger)

	current := &session{
		settings:     settings,
		settingsPath: settingsPath,
		logger:       logger,
		level:        level,
		service:      service,
		store:        store,
		clock:        realClock,
		scheduler:    scheduler,
		manager:      manager,
		guard:        guard,
	}

	if forceTUI {
		return runTerminal(current)
	}

	fyneApp := app.NewWithID(appID)
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Info("system tray unsupported, falling back to terminal")
		return runTerminal(current)
	}
	runTray(current, fyneApp, desktopApp)
	return nil
}

func runTerminal(current *session) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("terminal front end needs a terminal on stdout")
	}
	go current.guard.Serve(func() {
		current.logger.Info("activation requested while running in terminal")
	})
	return termui.Run(current.manager, current.scheduler, current.clock, current.settings.StopwatchRefresh)
}

func runTray(current *session, fyneApp fyne.App, desktopApp desktop.App) {
	fyneApp.SetIcon(resources.AppIcon())
	logger := current.logger
	manager := current.manager

	cards := overlay.New(fyneApp, manager, overlay.Config{
		Opacity: overlay.OpacityFromFraction(current.settings.OverlayOpacity),
	}, logger)

	prefsWindow := preferences.New(fyneApp, current.settings, func(updated preferences.Settings) {
		current.apply(updated)
		cards.UpdateConfig(overlay.Config{Opacity: overlay.OpacityFromFraction(updated.OverlayOpacity)})
	})

	ctx, cancel := context.WithCancel(context.Background())
	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnNewStopwatch: func() { cards.ShowItem(manager.NewStopwatch().ID()) },
		OnNewTimer:     func() { cards.ShowItem(manager.NewTimer().ID()) },
		OnNewAlarm:     func() { cards.ShowItem(manager.NewAlarm(model.DefaultAlarm()).ID()) },
		OnShowItem:     cards.ShowItem,
		OnPreferences:  prefsWindow.Show,
		OnQuit: func() {
			cancel()
			cards.Close()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(resources.AppIcon())

	refreshTray := func(time.Time) {
		trayManager.SetEntries(trayEntries(manager))
	}
	refreshTray(time.Time{})
	trayTicker := current.scheduler.Every(trayRefresh, refreshTray)
	defer trayTicker.Cancel()

	events := manager.Subscribe(256)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				cards.HandleEvent(event)
				if structural(event) {
					refreshTray(event.At)
				}
			})
		}
	}()

	go current.guard.Serve(func() {
		fyne.Do(cards.Show)
	})
	go current.scheduler.Run(ctx, schedulerResolution, fyne.Do)

	fyneApp.Run()
	cancel()
}

// apply persists updated preferences and pushes them into the running core.
// Refresh intervals take effect on the next start.
func (current *session) apply(updated preferences.Settings) {
	updated = updated.Normalize()
	if err := storage.SaveSettings(current.settingsPath, updated); err != nil {
		current.logger.Warn("save settings", "error", err)
	}
	current.level.Set(updated.Level())
	mirrorSoundPaths(current.store, updated, current.logger)
	if updated.StartAtLogin != current.settings.StartAtLogin {
		applyAutostart(current.service, updated, current.logger)
	}
	if updated.RefreshConfig() != current.settings.RefreshConfig() {
		current.logger.Info("refresh intervals change after restart")
	}
	current.settings = updated
}

func newLogger(out io.Writer, level *slog.LevelVar) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// openStore opens the SQLite settings store, or an in-memory one when the
// database is unavailable.
func openStore(service platform.Service, settings preferences.Settings, logger *slog.Logger) (storage.Store, func()) {
	path := settings.StorePath
	if path == "" {
		dataDir, err := service.GetDataDir()
		if err != nil {
			logger.Warn("settings store unavailable, alarms will not persist", "error", err)
			return storage.NewMemoryStore(), func() {}
		}
		path = storage.DefaultStorePath(dataDir, appDir)
	}

	store, err := storage.OpenSQLite(path)
	if err != nil {
		logger.Warn("settings store unavailable, alarms will not persist", "path", path, "error", err)
		return storage.NewMemoryStore(), func() {}
	}
	logger.Debug("settings store opened", "path", path)
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("close settings store", "error", err)
		}
	}
}

func mirrorSoundPaths(store storage.Store, settings preferences.Settings, logger *slog.Logger) {
	values := map[string]string{
		storage.AlarmSoundPathKey: settings.AlarmSoundPath,
		storage.TimerSoundPathKey: settings.TimerSoundPath,
	}
	for key, value := range values {
		if err := store.Set(key, value); err != nil {
			logger.Warn("store sound path", "key", key, "error", err)
		}
	}
}

func clockFormatFor(format preferences.ClockFormat, logger *slog.Logger) timepiece.ClockFormat {
	switch format {
	case preferences.ClockFormat12h:
		return platform.FixedClockFormat(false)
	case preferences.ClockFormat24h:
		return platform.FixedClockFormat(true)
	default:
		return platform.NewClockFormat(true, logger)
	}
}

func applyAutostart(service platform.Service, settings preferences.Settings, logger *slog.Logger) {
	var err error
	if settings.StartAtLogin {
		var execPath string
		execPath, err = os.Executable()
		if err == nil {
			err = service.EnableAutostart(appName, execPath)
		}
	} else {
		err = service.DisableAutostart(appName)
	}
	switch {
	case errors.Is(err, platform.ErrUnsupported):
		logger.Debug("autostart unsupported on this platform")
	case err != nil:
		logger.Warn("update autostart", "enabled", settings.StartAtLogin, "error", err)
	}
}

func trayEntries(manager *timepiece.Manager) []tray.Entry {
	items := manager.All()
	entries := make([]tray.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, tray.Entry{ID: item.ID(), Kind: item.Kind(), Label: item.MenuText()})
	}
	return entries
}

func structural(event timepiece.Event) bool {
	switch event.Type {
	case timepiece.EventItemAdded, timepiece.EventItemRemoved, timepiece.EventItemState:
		return true
	}
	return false
}
