package searchutils

import "testing"

var testPool = [][]float64{
	{0, 0},
	{1, 1},
	{10, 10},
}

func TestNearestIndex(t *testing.T) {
	if i := NearestIndex([]float64{0.9, 0.9}, SliceGenerator(testPool)); i != 1 {
		t.Fatal("wrong nearest index:", i)
	}
	// Empty pool.
	if i := NearestIndex([]float64{0}, SliceGenerator(nil)); i != -1 {
		t.Fatal("empty pool should give -1, got", i)
	}
}

func TestFurthestIndex(t *testing.T) {
	if i := FurthestIndex([]float64{0, 0}, SliceGenerator(testPool)); i != 2 {
		t.Fatal("wrong furthest index:", i)
	}
}

func TestRadiusNeighbors(t *testing.T) {
	// Case 1: radius covers the two close vectors; the target is part of
	// the pool and counts as its own neighbour.
	n := RadiusNeighbors([]float64{0, 0}, SliceGenerator(testPool), 2)
	if len(n) != 2 || n[0] != 0 || n[1] != 1 {
		t.Fatal("wrong neighbourhood:", n)
	}

	// Case 2: tight radius isolates the target.
	n = RadiusNeighbors([]float64{0, 0}, SliceGenerator(testPool), 0.5)
	if len(n) != 1 || n[0] != 0 {
		t.Fatal("expected only self in neighbourhood, got", n)
	}
}
