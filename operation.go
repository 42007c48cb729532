package geocrs

import (
	"fmt"
	"math"
	"reflect"
)

// CoordinateOperation is the capability interface every atomic or composed
// coordinate operation implements. Operations mutate the
// caller-supplied coordinate buffer in place.
type CoordinateOperation interface {
	// Transform mutates coord in place. coord must carry at least as many
	// components as the operation needs; MemoizeCoord/LoadMemorizedCoord
	// additionally use a scratch area past the live dimensions.
	Transform(coord []float64) error
	// Inverse returns the mechanically-inverted operation, or a
	// NonInvertibleError if none exists.
	Inverse() (CoordinateOperation, error)
	// Precision estimates the worst-case error in meters at output.
	Precision() float64
	// IsIdentity reports whether this operation is a no-op.
	IsIdentity() bool
	// String names the operation, used in error messages.
	String() string
}

// Equal reports whether a and b are the same operation. Operations in this
// package are plain value structs, so structural equality is exact and
// meaningful; Sequence.SequenceEqual relies on this: two sequences
// compare equal element-wise.
func Equal(a, b CoordinateOperation) bool {
	return reflect.DeepEqual(a, b)
}

// Sequence owns an ordered list of CoordinateOperations.
type Sequence struct {
	Steps []CoordinateOperation
}

// Compose builds a Sequence out of ops, flattening any nested Sequences and
// collapsing to Identity if every step is a no-op. This is the constructor
// every pipeline-building function in crs.go/graph.go goes through, so the
// simplification rule is enforced in one place.
func Compose(ops ...CoordinateOperation) CoordinateOperation {
	var flat []CoordinateOperation
	for _, op := range ops {
		if op == nil {
			continue
		}
		if seq, ok := op.(Sequence); ok {
			flat = append(flat, seq.Steps...)
			continue
		}
		flat = append(flat, op)
	}
	allIdentity := true
	for _, op := range flat {
		if !op.IsIdentity() {
			allIdentity = false
			break
		}
	}
	if allIdentity {
		return Identity{}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Sequence{Steps: flat}
}

func (s Sequence) Transform(coord []float64) error {
	for _, step := range s.Steps {
		if err := step.Transform(coord); err != nil {
			return err
		}
	}
	return nil
}

// Inverse returns a Sequence of the reversed inverses; fails
// fast if any step is non-invertible.
func (s Sequence) Inverse() (CoordinateOperation, error) {
	inv := make([]CoordinateOperation, len(s.Steps))
	for i, step := range s.Steps {
		invStep, err := step.Inverse()
		if err != nil {
			return nil, err
		}
		inv[len(s.Steps)-1-i] = invStep
	}
	return Compose(inv...), nil
}

// Precision is the Euclidean sum (sqrt(sum p_i^2)) of step precisions.
func (s Sequence) Precision() float64 {
	sum := 0.0
	for _, step := range s.Steps {
		p := step.Precision()
		sum += p * p
	}
	return math.Sqrt(sum)
}

func (s Sequence) IsIdentity() bool {
	for _, step := range s.Steps {
		if !step.IsIdentity() {
			return false
		}
	}
	return true
}

func (s Sequence) String() string {
	return fmt.Sprintf("Sequence(%d steps)", len(s.Steps))
}

// SequenceEqual compares two sequences element-wise.
func (s Sequence) SequenceEqual(o Sequence) bool {
	if len(s.Steps) != len(o.Steps) {
		return false
	}
	for i := range s.Steps {
		if !Equal(s.Steps[i], o.Steps[i]) {
			return false
		}
	}
	return true
}
