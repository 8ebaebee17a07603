// Spreading (transmit) and correlation recovery (receive) for stations
// sharing a Walsh code matrix.
package TxRx

import (
	"errors"
	"fmt"

	"github.com/wiless/vlib"
)

var (
	ErrDimensionMismatch = errors.New("TxRx: data/code dimensions disagree")
	ErrStationIndex      = errors.New("TxRx: station index out of range")
)

// Spread maps every station's data bit onto its code row: chip sequence i
// is codes[i] scaled by bits[i]. Bit values are not restricted to 0/1 -
// any real value scales the code linearly and decodes back to itself over
// a clean channel. The code matrix is read, never written.
func Spread(codes vlib.MatrixF, bits vlib.VectorF) ([]vlib.VectorF, error) {
	if len(bits) != len(codes) {
		return nil, fmt.Errorf("%w: %d data bits for %d station codes", ErrDimensionMismatch, len(bits), len(codes))
	}

	chips := make([]vlib.VectorF, len(codes))
	for i, row := range codes {
		seq := vlib.NewVectorF(len(row))
		for j, c := range row {
			seq[j] = c * bits[i]
		}
		chips[i] = seq
	}
	return chips, nil
}
