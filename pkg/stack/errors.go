// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package stack

import (
	"errors"
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
)

var (
	// ErrNotFound marks a name-based lookup that matched nothing.
	ErrNotFound = errors.New("resource not found")

	// ErrAmbiguous marks a name-based lookup that matched more than one
	// resource. Display names are the only cross-run key, so duplicates
	// cannot be resolved safely.
	ErrAmbiguous = errors.New("display name is ambiguous")
)

// Outcome reports what a best-effort delete actually did. Real errors are
// returned separately.
type Outcome int

const (
	OutcomeDeleted Outcome = iota
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeNotFound:
		return "not found"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// isServiceNotFound reports whether err is an OCI service error for a missing
// resource. The error chain is unwrapped to find service errors even when
// they're wrapped.
func isServiceNotFound(err error) bool {
	current := err
	for current != nil {
		if serviceErr, ok := common.IsServiceError(current); ok {
			return serviceErr.GetHTTPStatusCode() == 404 ||
				serviceErr.GetCode() == "NotAuthorizedOrNotFound"
		}
		current = errors.Unwrap(current)
	}
	return false
}

// uniqueMatch enforces the lookup contract: exactly one resource per derived
// display name.
func uniqueMatch[T any](matches []T, kind, name string) (T, error) {
	var zero T
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%s %q matched %d resources: %w", kind, name, len(matches), ErrAmbiguous)
	}
}
