package extract

import (
	"testing"
)

func TestStride(t *testing.T) {

	tests := []struct {
		nativeFPS float64
		targetFPS int
		expected  int
	}{
		{30, 5, 6},
		{30, 30, 1},
		{25, 5, 5},
		{29.97, 5, 5},
		{30, 60, 1},
		{60, 8, 7},
		{30, 0, 1},
		{0, 5, 1},
	}

	for _, tc := range tests {
		got := Stride(tc.nativeFPS, tc.targetFPS)

		if got != tc.expected {
			t.Errorf("Stride(%v, %d) = %d, expected %d",
				tc.nativeFPS, tc.targetFPS, got, tc.expected)
		}
	}
}

func TestKeptFrames(t *testing.T) {

	tests := []struct {
		totalFrames int
		stride      int
		expected    int
	}{
		// 10 frames at 30fps sampled at 5fps, stride=6 keeps frames 0 and 6
		{10, 6, 2},
		{10, 1, 10},
		{12, 6, 2},
		{13, 6, 3},
		{1, 6, 1},
		{0, 6, 0},
	}

	for _, tc := range tests {
		got := KeptFrames(tc.totalFrames, tc.stride)

		if got != tc.expected {
			t.Errorf("KeptFrames(%d, %d) = %d, expected %d",
				tc.totalFrames, tc.stride, got, tc.expected)
		}
	}
}

func TestFrameName(t *testing.T) {

	tests := []struct {
		idx      int
		expected string
	}{
		{0, "frame_00000.jpg"},
		{7, "frame_00007.jpg"},
		{12345, "frame_12345.jpg"},
	}

	for _, tc := range tests {
		if got := FrameName(tc.idx); got != tc.expected {
			t.Errorf("FrameName(%d) = %s, expected %s", tc.idx, got, tc.expected)
		}
	}
}
