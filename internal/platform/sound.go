package platform

import (
	"log/slog"
	"os"
	"os/exec"
)

var soundPlayers = []struct {
	name string
	args func(path string) []string
}{
	{name: "paplay", args: func(path string) []string { return []string{path} }},
	{name: "canberra-gtk-play", args: func(path string) []string { return []string{"-f", path} }},
	{name: "aplay", args: func(path string) []string { return []string{"-q", path} }},
}

// SoundPlayer plays sound files through the first available command line
// player.
type SoundPlayer struct {
	command string
	args    func(path string) []string
	start   func(cmd *exec.Cmd) error
	logger  *slog.Logger
}

// NewSoundPlayer looks up a player. Without one, Play only logs.
func NewSoundPlayer(logger *slog.Logger) *SoundPlayer {
	if logger == nil {
		logger = slog.Default()
	}
	player := &SoundPlayer{logger: logger, start: startAndReap}
	for _, candidate := range soundPlayers {
		path, err := exec.LookPath(candidate.name)
		if err != nil {
			continue
		}
		player.command = path
		player.args = candidate.args
		break
	}
	if player.command == "" {
		logger.Warn("no sound player found; alerts will be silent")
	}
	return player
}

// Play starts playback of path and returns immediately.
func (player *SoundPlayer) Play(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		player.logger.Warn("sound file unavailable", "path", path, "error", err)
		return
	}
	if player.command == "" {
		return
	}

	cmd := exec.Command(player.command, player.args(path)...)
	if err := player.start(cmd); err != nil {
		player.logger.Warn("play sound", "path", path, "error", err)
	}
}

func startAndReap(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
