package reembed

import "math"

// NormalizeVector scales a vector to unit length, returning a new slice.
// A zero vector stays zero.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sum float32
	for _, val := range v {
		sum += val * val
	}
	magnitude := float32(math.Sqrt(float64(sum)))

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}
