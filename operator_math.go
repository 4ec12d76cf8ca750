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
	"context"
	"math"
	"math/big"

	"github.com/samber/lo"

	"github.com/creyer/monifu/internal/constraints"
)

// maxPow10Chunk is the largest decimal exponent n for which 10^n fits in a
// float64 (IEEE-754). math.Pow10(308) == 1e308 is finite; math.Pow10(309)
// overflows to +Inf. The code uses math.Pow10(step) and then converts that
// finite float64 into a big.Float when constructing chunk factors. Keeping
// the step ≤ 308 prevents creating +Inf/NaN from math.Pow10 before moving to
// big.Float arithmetic.
const maxPow10Chunk = 308

// maxPow10ChunkCount caps the number of 308-digit chunks we are willing to
// process when emulating arbitrary-precision ceil operations. 32 chunks
// (32 * 308 ≈ 9856 decimal digits) keep allocations bounded while still
// covering far more precision than realistic callers require. If the required
// chunk count exceeds this value the implementation falls back to a safe
// no-op or infinite-precision handler to avoid runaway allocations.
const maxPow10ChunkCount = 32

// Average calculates the average of the values emitted by the source Observable.
// It emits the average when the source completes. If the source is empty, it emits NaN.
func Average[T constraints.Numeric]() func(Observable[T]) Observable[float64] {
	return func(source Observable[T]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			sum := float64(0)
			count := int64(0)

			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					sum += float64(value)
					count++
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					if count == 0 {
						destination.OnNext(ctx, math.NaN())
						destination.OnComplete(ctx)
						return
					}

					destination.OnNext(ctx, sum/float64(count))
					destination.OnComplete(ctx)
				},
			))
		})
	}
}

// Count counts the number of values emitted by the source Observable.
// It emits the count when the source completes.
func Count[T any]() func(Observable[T]) Observable[int64] {
	return func(source Observable[T]) Observable[int64] {
		return Create(func(ctx context.Context, destination Observer[int64]) Cancelable {
			count := int64(0)

			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					count++
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					destination.OnNext(ctx, count)
					destination.OnComplete(ctx)
				},
			))
		})
	}
}

// Sum calculates the sum of the values emitted by the source Observable.
// It emits the sum when the source completes.
func Sum[T constraints.Numeric]() func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			var sum T

			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					sum += value
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					destination.OnNext(ctx, sum)
					destination.OnComplete(ctx)
				},
			))
		})
	}
}

// Round emits the rounded values emitted by the source Observable.
func Round() func(Observable[float64]) Observable[float64] {
	return func(source Observable[float64]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value float64) Ack {
					return destination.OnNext(ctx, math.Round(value))
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// Min emits the minimum value emitted by the source Observable.
// It emits the minimum value when the source completes. If the source is empty,
// it emits no value.
func Min[T constraints.Numeric]() func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			var min lo.Tuple2[context.Context, T]
			first := true

			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					if first || value < min.B {
						min = lo.T2(ctx, value)
						first = false
					}
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					if !first {
						destination.OnNext(min.A, min.B)
					}
					destination.OnComplete(ctx)
				},
			))
		})
	}
}

// Max emits the maximum value emitted by the source Observable. It emits the
// maximum value when the source completes. If the source is empty, it emits no value.
func Max[T constraints.Numeric]() func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			var max lo.Tuple2[context.Context, T]
			first := true

			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					if first || value > max.B {
						max = lo.T2(ctx, value)
						first = false
					}
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					if !first {
						destination.OnNext(max.A, max.B)
					}
					destination.OnComplete(ctx)
				},
			))
		})
	}
}

// Clamp emits the number within the inclusive lower and upper bounds.
func Clamp[T constraints.Numeric](lower, upper T) func(Observable[T]) Observable[T] {
	if lower > upper {
		panic(ErrClampLowerLessThanUpper)
	}

	return func(source Observable[T]) Observable[T] {
		return Create(func(ctx context.Context, destination Observer[T]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					switch {
					case value < lower:
						return destination.OnNext(ctx, lower)
					case value > upper:
						return destination.OnNext(ctx, upper)
					default:
						return destination.OnNext(ctx, value)
					}
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// Abs emits the absolute values emitted by the source Observable.
func Abs() func(Observable[float64]) Observable[float64] {
	return func(source Observable[float64]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value float64) Ack {
					return destination.OnNext(ctx, math.Abs(value))
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// Floor emits the floor of the values emitted by the source Observable.
func Floor() func(Observable[float64]) Observable[float64] {
	return func(source Observable[float64]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value float64) Ack {
					return destination.OnNext(ctx, math.Floor(value))
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// Ceil emits the ceiling of the values emitted by the source Observable.
func Ceil() func(Observable[float64]) Observable[float64] {
	return func(source Observable[float64]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value float64) Ack {
					return destination.OnNext(ctx, math.Ceil(value))
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// CeilWithPrecision emits the ceiling of the values emitted by the source Observable.
// It uses the provided decimal precision. Positive precisions apply the ceiling to the
// specified number of digits to the right of the decimal point, while negative
// precisions round to powers of ten.
func CeilWithPrecision(places int) func(Observable[float64]) Observable[float64] {
	if places < 0 {
		if places == math.MinInt {
			return ceilWithInfiniteNegativePrecision()
		}

		negPlaces := -places
		if negPlaces < 0 {
			return ceilWithInfiniteNegativePrecision()
		}

		if negPlaces > maxPow10Chunk {
			return ceilWithLargeNegativePrecision(negPlaces)
		}
	}

	if places > maxPow10Chunk {
		return ceilWithLargePositivePrecision(places)
	}

	factor := math.Pow10(places)

	if factor == 0 {
		return Ceil()
	}

	if places > 0 && math.IsInf(factor, 0) {
		return ceilWithLargePositivePrecision(places)
	}

	inverseFactor := 1 / factor
	if math.IsInf(inverseFactor, 0) {
		if places < 0 {
			negPlaces := -places
			if negPlaces < 0 {
				return ceilWithInfiniteNegativePrecision()
			}

			return ceilWithLargeNegativePrecision(negPlaces)
		}

		return Ceil()
	}

	var ceilWithBigFactor func(float64) float64
	var ceilWithSmallFactor func(float64) float64

	if places > 0 {
		ceilWithBigFactor = makeCeilWithBigFactor(factor)
	} else if places < 0 {
		ceilWithSmallFactor = makeCeilWithSmallFactor(factor)
	}

	return func(source Observable[float64]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value float64) Ack {
					scaled := value * factor
					if math.IsInf(scaled, 0) {
						if ceilWithBigFactor != nil {
							return destination.OnNext(ctx, ceilWithBigFactor(value))
						}
						return destination.OnNext(ctx, math.Ceil(value))
					}

					if places < 0 && scaled == 0 && value > 0 && !math.IsNaN(value) && !math.IsInf(value, 0) {
						if ceilWithSmallFactor != nil {
							return destination.OnNext(ctx, ceilWithSmallFactor(value))
						}
						return destination.OnNext(ctx, math.Ceil(value))
					}

					ceiled := math.Ceil(scaled)
					result := ceiled * inverseFactor
					if math.IsInf(result, 0) || math.IsNaN(result) {
						if places < 0 && !math.IsNaN(value) && !math.IsInf(value, 0) && value > 0 {
							if ceilWithSmallFactor != nil {
								return destination.OnNext(ctx, ceilWithSmallFactor(value))
							}
							return destination.OnNext(ctx, math.Inf(1))
						} else if ceilWithBigFactor != nil {
							return destination.OnNext(ctx, ceilWithBigFactor(value))
						}
						return destination.OnNext(ctx, math.Ceil(value))
					}

					return destination.OnNext(ctx, result)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

func ceilWithInfiniteNegativePrecision() func(Observable[float64]) Observable[float64] {
	return func(source Observable[float64]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value float64) Ack {
					if math.IsNaN(value) || math.IsInf(value, 0) {
						return destination.OnNext(ctx, math.Ceil(value))
					}

					if value > 0 {
						return destination.OnNext(ctx, math.Inf(1))
					}

					return destination.OnNext(ctx, 0)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

func ceilWithLargePositivePrecision(places int) func(Observable[float64]) Observable[float64] {
	if places >= math.MaxInt-(maxPow10Chunk-1) {
		return func(source Observable[float64]) Observable[float64] {
			return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
				return source.Subscribe(ctx, NewObserver(
					func(ctx context.Context, value float64) Ack {
						return destination.OnNext(ctx, value)
					},
					destination.OnError,
					destination.OnComplete,
				))
			})
		}
	}

	chunkCount := (places + maxPow10Chunk - 1) / maxPow10Chunk
	if chunkCount > maxPow10ChunkCount {
		return func(source Observable[float64]) Observable[float64] {
			return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
				return source.Subscribe(ctx, NewObserver(
					func(ctx context.Context, value float64) Ack {
						return destination.OnNext(ctx, value)
					},
					destination.OnError,
					destination.OnComplete,
				))
			})
		}
	}

	chunkFactors := make([]*big.Float, 0, chunkCount)

	for remaining := places; remaining > 0; {
		step := remaining
		if step > maxPow10Chunk {
			step = maxPow10Chunk
		}

		factor := math.Pow10(step)
		chunkFactors = append(chunkFactors, new(big.Float).SetPrec(256).SetFloat64(factor))
		remaining -= step
	}

	return func(source Observable[float64]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value float64) Ack {
					if math.IsNaN(value) || math.IsInf(value, 0) {
						return destination.OnNext(ctx, math.Ceil(value))
					}

					scaled := new(big.Float).SetPrec(256).SetFloat64(value)
					for _, factor := range chunkFactors {
						scaled.Mul(scaled, factor)
					}

					ceiled := ceilBigFloat(scaled)

					for i := len(chunkFactors) - 1; i >= 0; i-- {
						ceiled.Quo(ceiled, chunkFactors[i])
					}

					result, _ := ceiled.Float64()
					if math.IsInf(result, 0) || math.IsNaN(result) {
						return destination.OnNext(ctx, math.Ceil(value))
					}

					return destination.OnNext(ctx, result)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

func ceilWithLargeNegativePrecision(places int) func(Observable[float64]) Observable[float64] {
	if places >= math.MaxInt-(maxPow10Chunk-1) {
		return ceilWithInfiniteNegativePrecision()
	}

	chunkCount := (places + maxPow10Chunk - 1) / maxPow10Chunk
	if chunkCount > maxPow10ChunkCount {
		return ceilWithInfiniteNegativePrecision()
	}

	chunkFactors := make([]*big.Float, 0, chunkCount)

	for remaining := places; remaining > 0; {
		step := remaining
		if step > maxPow10Chunk {
			step = maxPow10Chunk
		}

		factor := math.Pow10(step)
		chunkFactors = append(chunkFactors, new(big.Float).SetPrec(256).SetFloat64(factor))
		remaining -= step
	}

	return func(source Observable[float64]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value float64) Ack {
					if math.IsNaN(value) || math.IsInf(value, 0) {
						return destination.OnNext(ctx, math.Ceil(value))
					}

					scaled := new(big.Float).SetPrec(256).SetFloat64(value)
					for _, factor := range chunkFactors {
						scaled.Quo(scaled, factor)
					}

					ceiled := ceilBigFloat(scaled)

					for i := len(chunkFactors) - 1; i >= 0; i-- {
						ceiled.Mul(ceiled, chunkFactors[i])
					}

					result, _ := ceiled.Float64()
					return destination.OnNext(ctx, result)
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

func ceilBigFloat(x *big.Float) *big.Float {
	prec := x.Prec()

	integer := new(big.Int)
	x.Int(integer)

	result := new(big.Float).SetPrec(prec).SetInt(integer)

	if x.Sign() > 0 {
		fractional := new(big.Float).SetPrec(prec)
		fractional.Sub(x, result)
		if fractional.Sign() > 0 {
			integer.Add(integer, big.NewInt(1))
			result.SetInt(integer)
		}
	}

	return result
}

// makeCeilWithBigFactor builds a ceiler using a big.Float factor (positive places).
func makeCeilWithBigFactor(factor float64) func(float64) float64 {
	bigFactor := new(big.Float).SetPrec(256).SetFloat64(factor)
	return func(value float64) float64 {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return math.Ceil(value)
		}

		scaled := new(big.Float).SetPrec(256).SetFloat64(value)
		scaled.Mul(scaled, bigFactor)

		ceiled := ceilBigFloat(scaled)
		ceiled.Quo(ceiled, bigFactor)

		result, _ := ceiled.Float64()
		if math.IsInf(result, 0) || math.IsNaN(result) {
			return math.Ceil(value)
		}

		return result
	}
}

// makeCeilWithSmallFactor builds a ceiler using a big.Float factor (negative places).
func makeCeilWithSmallFactor(factor float64) func(float64) float64 {
	smallFactor := new(big.Float).SetPrec(256).SetFloat64(factor)
	return func(value float64) float64 {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return math.Ceil(value)
		}

		scaled := new(big.Float).SetPrec(256).SetFloat64(value)
		scaled.Mul(scaled, smallFactor)

		ceiled := ceilBigFloat(scaled)
		ceiled.Quo(ceiled, smallFactor)

		result, _ := ceiled.Float64()
		if math.IsInf(result, 0) || math.IsNaN(result) {
			if value > 0 {
				return math.Inf(1)
			}
			return math.Ceil(value)
		}

		return result
	}
}

// Trunc emits the truncated values emitted by the source Observable.
func Trunc() func(Observable[float64]) Observable[float64] {
	return func(source Observable[float64]) Observable[float64] {
		return Create(func(ctx context.Context, destination Observer[float64]) Cancelable {
			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value float64) Ack {
					return destination.OnNext(ctx, math.Trunc(value))
				},
				destination.OnError,
				destination.OnComplete,
			))
		})
	}
}

// Reduce applies an accumulator function over the source Observable, and emits
// the result when the source completes. It takes a seed value as the initial
// accumulator value. If the source is empty, it emits nothing (§4.3 "reduce"),
// not even the seed.
func Reduce[T, R any](accumulator func(agg R, item T) R, seed R) func(Observable[T]) Observable[R] {
	return ReduceIWithContext(func(ctx context.Context, agg R, item T, _ int64) (context.Context, R) {
		return ctx, accumulator(agg, item)
	}, seed)
}

// ReduceWithContext is Reduce with access to the per-item context.
func ReduceWithContext[T, R any](accumulator func(ctx context.Context, agg R, item T) (context.Context, R), seed R) func(Observable[T]) Observable[R] {
	return ReduceIWithContext(func(ctx context.Context, agg R, item T, _ int64) (context.Context, R) {
		return accumulator(ctx, agg, item)
	}, seed)
}

// ReduceI is Reduce with access to the zero-based item index.
func ReduceI[T, R any](accumulator func(agg R, item T, index int64) R, seed R) func(Observable[T]) Observable[R] {
	return ReduceIWithContext(func(ctx context.Context, agg R, item T, index int64) (context.Context, R) {
		return ctx, accumulator(agg, item, index)
	}, seed)
}

// ReduceIWithContext is Reduce with access to both the per-item context and
// the zero-based item index. This is the one actual implementation every
// other Reduce* variant in this file composes down to.
func ReduceIWithContext[T, R any](accumulator func(ctx context.Context, agg R, item T, index int64) (context.Context, R), seed R) func(Observable[T]) Observable[R] {
	return func(source Observable[T]) Observable[R] {
		return Create(func(ctx context.Context, destination Observer[R]) Cancelable {
			output := seed
			var lastCtx context.Context
			i := int64(0)

			return source.Subscribe(ctx, NewObserver(
				func(ctx context.Context, value T) Ack {
					lastCtx, output = accumulator(ctx, output, value, i)
					i++
					return ContinueAck()
				},
				destination.OnError,
				func(ctx context.Context) {
					if i > 0 {
						destination.OnNext(lastCtx, output)
					}
					destination.OnComplete(ctx)
				},
			))
		})
	}
}
