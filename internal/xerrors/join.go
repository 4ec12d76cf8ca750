// Package xerrors joins the errors collected while running teardown
// finalizers or reporting a panic, without taking on a third-party
// multi-error dependency for what the standard library already covers.
package xerrors

import "errors"

// Join wraps errors.Join. It exists so callers in this module import
// one internal package instead of reaching for "errors" directly,
// keeping a single seam if the join strategy ever needs to change.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
