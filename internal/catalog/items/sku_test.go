package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSKUPrefix(t *testing.T) {
	tests := []struct {
		series string
		want   string
	}{
		{"Jean Prouve", "JP"},
		{"Le Corbusier", "LC"},
		{"Charlotte Perriand", "CP"},
		{"Eames", "EM"},
		{"昌迪加尔", "PJ"},
		{"Pierre Chapo", "PC"},
		{"Poul Henningsen", "PH"},
		{"Bernard-Albin Gras", "BG"},
		{"其他", "OT"},
		{"", "GD"},
		{"Unknown Designer", "GD"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SKUPrefix(tt.series), tt.series)
	}
}

func TestFormatSKU(t *testing.T) {
	assert.Equal(t, "JP-001", FormatSKU("JP", 1))
	assert.Equal(t, "JP-027", FormatSKU("JP", 27))
	assert.Equal(t, "JP-999", FormatSKU("JP", 999))
	assert.Equal(t, "JP-1000", FormatSKU("JP", 1000))
}

func TestParseSKURoundTrip(t *testing.T) {
	for _, seq := range []int{1, 42, 999, 1000} {
		prefix, parsed, err := ParseSKU(FormatSKU("LC", seq))
		require.NoError(t, err)
		assert.Equal(t, "LC", prefix)
		assert.Equal(t, seq, parsed)
	}
}

func TestParseSKURejectsMalformed(t *testing.T) {
	for _, code := range []string{"", "JP", "-001", "JP-xyz"} {
		_, _, err := ParseSKU(code)
		assert.Error(t, err, code)
	}
}

func TestNextSKUSequence(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		prefix   string
		want     int
	}{
		{"empty starts at one", nil, "JP", 1},
		{"increments highest for prefix", []string{"JP-001", "JP-005", "JP-002"}, "JP", 6},
		{"other prefixes are ignored", []string{"JP-009", "LC-044"}, "LC", 45},
		{"gap is not reused", []string{"JP-001", "JP-008"}, "JP", 9},
		{"numeric beyond three digits", []string{"JP-999", "JP-1000"}, "JP", 1001},
		{"junk codes are skipped", []string{"JP-002", "broken", "JP-"}, "JP", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextSKUSequence(tt.existing, tt.prefix))
		})
	}
}
