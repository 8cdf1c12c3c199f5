package items

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSKUPrefix is used when an item carries no designer series or the
// series is not in the lookup table. GD stands for the gallery itself.
const DefaultSKUPrefix = "GD"

// skuPrefixes maps a designer series to its fixed 2-letter SKU prefix.
var skuPrefixes = map[string]string{
	"Eames":              "EM",
	"昌迪加尔":               "PJ",
	"Le Corbusier":       "LC",
	"Charlotte Perriand": "CP",
	"Jean Prouve":        "JP",
	"Pierre Chapo":       "PC",
	"Poul Henningsen":    "PH",
	"Bernard-Albin Gras": "BG",
	"其他":                 "OT",
}

// SKUPrefix resolves the prefix for a designer series, falling back to the
// default when the series is absent or unrecognized.
func SKUPrefix(designerSeries string) string {
	if prefix, ok := skuPrefixes[designerSeries]; ok {
		return prefix
	}
	return DefaultSKUPrefix
}

// FormatSKU renders {PREFIX}-{SEQ} with the sequence zero-padded to a
// minimum of 3 digits.
func FormatSKU(prefix string, sequence int) string {
	return fmt.Sprintf("%s-%03d", prefix, sequence)
}

// ParseSKU splits a SKU code into prefix and sequence.
func ParseSKU(code string) (prefix string, sequence int, err error) {
	idx := strings.IndexByte(code, '-')
	if idx <= 0 {
		return "", 0, fmt.Errorf("items: malformed SKU code %q", code)
	}
	sequence, err = strconv.Atoi(code[idx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("items: malformed sequence in %q", code)
	}
	return code[:idx], sequence, nil
}

// nextSKUSequence computes the successor of the highest numeric suffix among
// existing codes sharing the prefix. Unparseable codes are skipped; gaps
// from deleted items are never reused.
func nextSKUSequence(existing []string, prefix string) int {
	max := 0
	for _, code := range existing {
		p, seq, err := ParseSKU(code)
		if err != nil || p != prefix {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1
}
