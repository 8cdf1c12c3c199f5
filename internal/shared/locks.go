package shared

import "fmt"

// NumberingLockKey builds the advisory-lock key serialising document-number
// generation for one prefix, e.g. "numbering:SO-2026" or "numbering:PJ".
// Scan-then-increment is only collision free when writers holding the same
// prefix are serialised; repositories take a transaction-scoped pg advisory
// lock on this key before scanning for the current maximum.
func NumberingLockKey(prefix string) string {
	return fmt.Sprintf("numbering:%s", prefix)
}
