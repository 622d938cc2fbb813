package vmath

import (
	"math"
	"testing"
)

func TestV3DistMatchesMag(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 6, 3}

	if got := V3Dist(a, b); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("Expected distance 5, got %v", got)
	}
	if got := V3DistSq(a, b); math.Abs(got-25.0) > 1e-12 {
		t.Errorf("Expected squared distance 25, got %v", got)
	}
}

func TestV3NormalizeZeroVector(t *testing.T) {
	if got := V3Normalize(Vec3{}); got != (Vec3{}) {
		t.Errorf("Expected zero vector to normalize to zero, got %+v", got)
	}
}

func TestV3NormalizeUnitLength(t *testing.T) {
	n := V3Normalize(Vec3{3, 4, 0})
	if math.Abs(V3Mag(n)-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %v", V3Mag(n))
	}
}

func TestV3LerpClamps(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 0, 0}

	if got := V3Lerp(a, b, -1); got != a {
		t.Errorf("Expected clamp to a, got %+v", got)
	}
	if got := V3Lerp(a, b, 2); got != b {
		t.Errorf("Expected clamp to b, got %+v", got)
	}
	if got := V3Lerp(a, b, 0.5); got != (Vec3{5, 0, 0}) {
		t.Errorf("Expected midpoint, got %+v", got)
	}
}
