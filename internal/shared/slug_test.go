package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Standard Chair", "standard-chair"},
		{"Jean Prouvé", "jean-prouve"},
		{"LC2  Armchair!", "lc2-armchair"},
		{"  PH5 / Pendant  ", "ph5-pendant"},
		{"Fauteuil à dossier basculant", "fauteuil-a-dossier-basculant"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestSlugifyCJKFallsBackToTimestamp(t *testing.T) {
	slug := Slugify("标准椅")
	assert.True(t, strings.HasPrefix(slug, "item-"), slug)
}

func TestSlugifyMixedKeepsLatinPart(t *testing.T) {
	assert.Equal(t, "lc2", Slugify("LC2 扶手椅"))
}

func TestUniqueSlug(t *testing.T) {
	existing := map[string]bool{
		"standard-chair":   true,
		"standard-chair-2": true,
	}
	assert.Equal(t, "standard-chair-3", UniqueSlug("standard-chair", existing))
	assert.Equal(t, "ph5-pendant", UniqueSlug("ph5-pendant", existing))
	assert.Equal(t, "anything", UniqueSlug("anything", nil))
}
