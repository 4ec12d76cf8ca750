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

// Pipe1 applies a single operator to source. Go generics cannot express
// a variadic chain across changing type parameters, so Pipe1..Pipe4
// cover the common chain lengths explicitly.
func Pipe1[T, A any](source Observable[T], op1 func(Observable[T]) Observable[A]) Observable[A] {
	return op1(source)
}

// Pipe2 applies two operators in sequence.
func Pipe2[T, A, B any](
	source Observable[T],
	op1 func(Observable[T]) Observable[A],
	op2 func(Observable[A]) Observable[B],
) Observable[B] {
	return op2(op1(source))
}

// Pipe3 applies three operators in sequence.
func Pipe3[T, A, B, C any](
	source Observable[T],
	op1 func(Observable[T]) Observable[A],
	op2 func(Observable[A]) Observable[B],
	op3 func(Observable[B]) Observable[C],
) Observable[C] {
	return op3(op2(op1(source)))
}

// Pipe4 applies four operators in sequence.
func Pipe4[T, A, B, C, D any](
	source Observable[T],
	op1 func(Observable[T]) Observable[A],
	op2 func(Observable[A]) Observable[B],
	op3 func(Observable[B]) Observable[C],
	op4 func(Observable[C]) Observable[D],
) Observable[D] {
	return op4(op3(op2(op1(source))))
}
