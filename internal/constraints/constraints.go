// Package constraints defines the numeric type sets used by the atomic
// cell and the math operators. It is a thin façade over
// golang.org/x/exp/constraints so call sites only need one import.
package constraints

import "golang.org/x/exp/constraints"

// Numeric is any type the atomic cell and math operators can add,
// compare and average over.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Integer is any machine integer type, signed or unsigned.
type Integer interface {
	constraints.Integer
}

// Float is any machine floating point type.
type Float interface {
	constraints.Float
}
