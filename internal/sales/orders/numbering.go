package orders

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OrderNumberPrefix is the document prefix for sales orders.
const OrderNumberPrefix = "SO"

// FormatOrderNumber renders {PREFIX}-{YEAR}-{SEQ}, zero-padding the sequence
// to a minimum of 3 digits. Sequences beyond 999 are not re-padded:
// SO-2026-999 is followed by SO-2026-1000.
func FormatOrderNumber(prefix string, year, sequence int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, sequence)
}

// ParseOrderNumber splits an order number back into prefix, year and
// sequence. Round-trips with FormatOrderNumber.
func ParseOrderNumber(number string) (prefix string, year, sequence int, err error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("orders: malformed order number %q", number)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("orders: malformed year in %q", number)
	}
	sequence, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("orders: malformed sequence in %q", number)
	}
	return parts[0], year, sequence, nil
}

// YearPrefix returns the startsWith scan prefix for the given year,
// e.g. "SO-2026-". Scoping the scan to the current year makes the sequence
// reset naturally on year rollover.
func YearPrefix(prefix string, year int) string {
	return fmt.Sprintf("%s-%d-", prefix, year)
}

// nextSequence computes the successor of the highest numeric suffix among
// existing order numbers. Numbers that fail to parse are skipped, matching
// the tolerance of the scan-based generator: a gap from a deleted record is
// never reused, but junk rows never wedge generation either.
func nextSequence(existing []string) int {
	max := 0
	for _, number := range existing {
		_, _, seq, err := ParseOrderNumber(number)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1
}

func currentYear(now func() time.Time) int {
	if now == nil {
		now = time.Now
	}
	return now().Year()
}
