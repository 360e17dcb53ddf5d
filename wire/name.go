package wire

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/text/cases"
)

var ErrBadName = errors.New("player names must be non-empty and made of letters")

// NormalizeName case-folds a player name and checks that it contains
// only letters. Digits are reserved: they delimit heights and worker
// indices in the cell encoding.
func NormalizeName(s string) (string, error) {
	n := cases.Fold().String(s)
	if !isName(n) {
		return "", fmt.Errorf("%w: %q", ErrBadName, s)
	}
	return n, nil
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
