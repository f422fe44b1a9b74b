package usecase

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL checks a candidate feed URL for syntactic validity and
// non-duplication against the already submitted URLs. It is a pure
// decision function: leading and trailing whitespace is ignored (the
// stored URLs are trimmed the same way), everything else compares
// exactly since URL paths are case-significant.
func ValidateURL(candidate string, known []string) error {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return fmt.Errorf("%w: empty input", ErrNotAURL)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotAURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrNotAURL, trimmed)
	}

	for _, k := range known {
		if k == trimmed {
			return fmt.Errorf("%w: %q", ErrAlreadyExists, trimmed)
		}
	}
	return nil
}
