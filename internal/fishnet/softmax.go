// softmax.go converts raw model scores into a probability distribution
package fishnet

import "math"

// softmax applies the normalized exponential transform over the raw scores.
// The result is a genuine probability distribution: the returned confidence
// values sum to 1 across all labels.
func softmax(logits []float32) []float64 {
	probs := make([]float64, len(logits))
	if len(logits) == 0 {
		return probs
	}

	// Subtract the max for numerical stability.
	maxLogit := float64(logits[0])
	for _, v := range logits[1:] {
		if float64(v) > maxLogit {
			maxLogit = float64(v)
		}
	}

	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(float64(v) - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// argmax returns the index and value of the maximum probability.
func argmax(probs []float64) (int, float64) {
	idx := 0
	best := probs[0]
	for i, p := range probs[1:] {
		if p > best {
			best = p
			idx = i + 1
		}
	}
	return idx, best
}
