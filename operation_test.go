package geocrs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeFlattensNestedSequences(t *testing.T) {
	inner := Sequence{Steps: []CoordinateOperation{
		Translation3D{DX: 1},
		Translation3D{DY: 2},
	}}
	got := Compose(inner, Translation3D{DZ: 3})

	want := Sequence{Steps: []CoordinateOperation{
		Translation3D{DX: 1},
		Translation3D{DY: 2},
		Translation3D{DZ: 3},
	}}
	seq, ok := got.(Sequence)
	require.True(t, ok, "Compose should flatten a nested Sequence into one, got %T", got)
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Errorf("flattened sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeCollapsesAllIdentitySteps(t *testing.T) {
	got := Compose(Identity{}, Identity{}, Identity{})
	assert.Equal(t, Identity{}, got, "an all-Identity Compose should collapse to a single Identity")
	assert.True(t, got.IsIdentity())
}

func TestComposeSingleStepUnwraps(t *testing.T) {
	step := Translation3D{DX: 5, DY: 6, DZ: 7}
	got := Compose(step)
	assert.Equal(t, step, got, "a single non-identity step should not be wrapped in a Sequence")
}

func TestComposeDropsNilSteps(t *testing.T) {
	got := Compose(nil, Translation3D{DX: 1}, nil)
	assert.Equal(t, Translation3D{DX: 1}, got)
}

func TestSequenceInverseReversesOrder(t *testing.T) {
	seq := Sequence{Steps: []CoordinateOperation{
		Translation3D{DX: 1},
		Translation3D{DY: 2},
	}}
	inv, err := seq.Inverse()
	require.NoError(t, err)

	invSeq, ok := inv.(Sequence)
	require.True(t, ok)
	want := []CoordinateOperation{
		Translation3D{DY: -2},
		Translation3D{DX: -1},
	}
	if diff := cmp.Diff(want, invSeq.Steps); diff != "" {
		t.Errorf("inverse step order mismatch (-want +got):\n%s", diff)
	}
}

func TestSequencePrecisionIsEuclideanSum(t *testing.T) {
	seq := Sequence{Steps: []CoordinateOperation{
		Translation3D{Prec: 3},
		Translation3D{Prec: 4},
	}}
	assert.InDelta(t, 5.0, seq.Precision(), 1e-12) // 3-4-5 triangle
}

func TestEqualUsesStructuralComparison(t *testing.T) {
	a := Translation3D{DX: 1, DY: 2, DZ: 3}
	b := Translation3D{DX: 1, DY: 2, DZ: 3}
	c := Translation3D{DX: 1, DY: 2, DZ: 4}
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}
