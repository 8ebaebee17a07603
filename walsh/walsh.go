// Generates the recursive Walsh/Hadamard spreading codes used by all the
// stations sharing the CDMA channel.
package walsh

import (
	"errors"
	"fmt"

	"github.com/wiless/vlib"
)

var ErrInvalidOrder = errors.New("walsh: order must be non-negative")

// Generate builds the 2^order x 2^order Walsh code matrix by Hadamard
// doubling starting from [[1]]. Row i is the spreading code of station i.
// Every doubling step allocates a fresh matrix, the previous one is never
// written to, so returned matrices are safe to share read-only.
func Generate(order int) (vlib.MatrixF, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w : got %d", ErrInvalidOrder, order)
	}

	W := vlib.NewMatrixF(1, 1)
	W[0][0] = 1

	for n := 0; n < order; n++ {
		k := len(W)
		next := vlib.NewMatrixF(2*k, 2*k)
		for r := 0; r < k; r++ {
			for c := 0; c < k; c++ {
				v := W[r][c]
				next[r][c] = v
				next[r][c+k] = v
				next[r+k][c] = v
				next[r+k][c+k] = -v
			}
		}
		W = next
	}
	return W, nil
}

// NStations returns the number of station codes in W.
func NStations(W vlib.MatrixF) int {
	return len(W)
}
