package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timepiece/internal/core/model"
)

func TestIconsAreEmbedded(t *testing.T) {
	for _, kind := range model.Kinds {
		resource := KindIcon(kind)
		require.NotNil(t, resource)
		assert.Contains(t, string(resource.Content()), "<svg")
	}
	assert.Same(t, AppIcon(), AppIcon())
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("nope.svg")
	assert.Error(t, err)
}
