// Package slugger derives the unique URL-safe identifier of a listing from
// its title. Generation runs once, at creation time; titles are immutable so
// a slug is never recomputed.
package slugger

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
)

// suffixPadding is the zero-padded width of collision suffixes.
const suffixPadding = 4

// maxProbes bounds sequential probing; the suffix space is four digits.
const maxProbes = 9999

// ErrExhausted is returned when every probe in the suffix space is taken.
var ErrExhausted = errors.New("slug_space_exhausted")

// Lookup reports whether a slug is already taken.
type Lookup func(slug string) (bool, error)

// Generate normalizes the title and probes for an unused slug: the bare
// normalized form first, then "-0001", "-0002", … sequentially.
func Generate(title string, taken Lookup) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "listing"
	}

	used, err := taken(base)
	if err != nil {
		return "", err
	}
	if !used {
		return base, nil
	}

	for n := 1; n <= maxProbes; n++ {
		candidate := fmt.Sprintf("%s-%0*d", base, suffixPadding, n)
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
	}

	return "", ErrExhausted
}
