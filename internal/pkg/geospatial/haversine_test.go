package geospatial

import (
	"math"
	"testing"
)

func TestHaversine_SamePoint(t *testing.T) {
	d := Haversine(43.2630, -2.9350, 43.2630, -2.9350)
	if d != 0 {
		t.Errorf("expected 0 for identical coordinates, got %f", d)
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Bilbao city hall to San Mamés is roughly 2.0 km.
	d := Haversine(43.2690, -2.9236, 43.2641, -2.9494)
	if d < 1900 || d > 2200 {
		t.Errorf("expected ~2000m, got %f", d)
	}
}

func TestHaversine_ShortDistance(t *testing.T) {
	// ~0.001 degrees of latitude is about 111 meters.
	d := Haversine(43.2630, -2.9350, 43.2640, -2.9350)
	if math.Abs(d-111.2) > 1.0 {
		t.Errorf("expected ~111m, got %f", d)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Haversine(40.4168, -3.7038, 41.3874, 2.1686)
	b := Haversine(41.3874, 2.1686, 40.4168, -3.7038)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestHaversine_AntipodalIsHalfCircumference(t *testing.T) {
	d := Haversine(0, 0, 0, 180)
	half := math.Pi * earthRadiusKm * 1000
	if math.Abs(d-half) > 1000 {
		t.Errorf("expected ~%0.f, got %f", half, d)
	}
}
