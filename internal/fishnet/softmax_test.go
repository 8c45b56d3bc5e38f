package fishnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoftmax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		logits  []float32
		wantTop int
	}{
		{name: "distinct scores", logits: []float32{1, 3, 2}, wantTop: 1},
		{name: "large scores stay finite", logits: []float32{1000, 999, 998}, wantTop: 0},
		{name: "negative scores", logits: []float32{-5, -1, -3}, wantTop: 1},
		{name: "single class", logits: []float32{0.5}, wantTop: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			probs := softmax(tt.logits)

			var sum float64
			for _, p := range probs {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "probabilities must sum to 1")

			idx, best := argmax(probs)
			assert.Equal(t, tt.wantTop, idx)
			assert.Equal(t, probs[idx], best)
		})
	}
}

func TestSoftmaxUniform(t *testing.T) {
	t.Parallel()

	probs := softmax([]float32{2, 2, 2, 2})
	for _, p := range probs {
		assert.InDelta(t, 0.25, p, 1e-9)
	}
}

func TestSoftmaxEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, softmax(nil))
}
