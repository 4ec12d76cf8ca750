// Copyright 2025 samber.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://github.com/samber/ro/blob/main/licenses/LICENSE.apache.md
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package monifu

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the public API. They are plain values so
// callers can match them with errors.Is.
var (
	ErrConnectableObservableMissingConnectorFactory = errors.New("monifu: connectable observable is missing a connector factory")
	ErrClampLowerLessThanUpper                      = errors.New("monifu: clamp lower bound must not exceed upper bound")
	ErrZipQueueClosed                                = errors.New("monifu: zip queue closed before value arrived")
	ErrReduceOnEmptySource                           = errors.New("monifu: reduce has no seed and the source was empty")
	ErrAsFutureEmptySource                           = errors.New("monifu: asFuture source completed without emitting a value")
)

// observerError wraps a panic recovered from a user-provided observer
// callback (onNext/onError/onComplete).
type observerError struct {
	cause error
}

func newObserverError(cause error) error {
	return &observerError{cause: cause}
}

func (e *observerError) Error() string {
	return fmt.Sprintf("monifu: observer callback panicked: %s", e.cause.Error())
}

func (e *observerError) Unwrap() error {
	return e.cause
}

// observableError wraps a panic recovered from a subscribe function
// (the constructor passed to Create).
type observableError struct {
	cause error
}

func newObservableError(cause error) error {
	return &observableError{cause: cause}
}

func (e *observableError) Error() string {
	return fmt.Sprintf("monifu: subscribe function panicked: %s", e.cause.Error())
}

func (e *observableError) Unwrap() error {
	return e.cause
}

// unsubscriptionError wraps a panic recovered from a teardown finalizer.
type unsubscriptionError struct {
	cause error
}

func newUnsubscriptionError(cause error) error {
	return &unsubscriptionError{cause: cause}
}

func (e *unsubscriptionError) Error() string {
	return fmt.Sprintf("monifu: teardown panicked: %s", e.cause.Error())
}

func (e *unsubscriptionError) Unwrap() error {
	return e.cause
}

// recoverValueToError converts the value returned by recover() into an
// error, preserving it if it already is one.
func recoverValueToError(v any) error {
	if v == nil {
		return nil
	}

	if err, ok := v.(error); ok {
		return err
	}

	return fmt.Errorf("%v", v)
}
