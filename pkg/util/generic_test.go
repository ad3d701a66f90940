// pkg/util/generic_test.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"testing"
)

func TestSelect(t *testing.T) {
	if Select(true, 1, 2) != 1 {
		t.Errorf("Select true failed")
	}
	if Select(false, 1, 2) != 2 {
		t.Errorf("Select false failed")
	}
}

func TestMapSlice(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := MapSlice(a, func(i int) float32 { return 2 * float32(i) })
	if len(a) != len(b) {
		t.Errorf("lengths mismatch: %d vs %d", len(a), len(b))
	}
	for i := range b {
		if b[i] != 2*float32(a[i]) {
			t.Errorf("%d: got %f, expected %f", i, b[i], 2*float32(a[i]))
		}
	}
}

func TestReduceMap(t *testing.T) {
	m := map[int]string{0: "a", 1: "ab", 2: "abc"}
	n := ReduceMap(m, func(k int, v string, total int) int { return total + len(v) }, 0)
	if n != 6 {
		t.Errorf("got %d, expected 6", n)
	}
}
