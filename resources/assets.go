package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"timepiece/internal/core/model"
)

const iconDir = "icons/"

//go:embed icons/*.svg
var iconFS embed.FS

var iconCache sync.Map

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// AppIcon is the tray and window icon.
func AppIcon() fyne.Resource {
	return MustIcon("timepiece.svg")
}

// KindIcon returns the icon drawn on cards of kind.
func KindIcon(kind model.Kind) fyne.Resource {
	switch kind {
	case model.KindStopwatch:
		return MustIcon("stopwatch.svg")
	case model.KindTimer:
		return MustIcon("timer.svg")
	default:
		return MustIcon("alarm.svg")
	}
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
