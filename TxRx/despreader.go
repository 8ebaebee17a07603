package TxRx

import (
	"fmt"

	"github.com/wiless/vlib"
)

// Despread recovers one station's bit with a matched filter: project the
// combined signal on the station code and normalize by the chip count.
// Orthogonality of the codes cancels every other station exactly when the
// channel is clean.
func Despread(signal vlib.VectorF, codes vlib.MatrixF, station int) (float64, error) {
	if station < 0 || station >= len(codes) {
		return 0, fmt.Errorf("%w: station %d of %d", ErrStationIndex, station, len(codes))
	}
	code := codes[station]
	if len(signal) != len(code) {
		return 0, fmt.Errorf("%w: signal has %d chips, code has %d", ErrDimensionMismatch, len(signal), len(code))
	}

	inner := vlib.NewVectorF(len(code))
	for i := range code {
		inner[i] = signal[i] * code[i]
	}
	return vlib.Sum(inner) / float64(len(code)), nil
}

// DespreadAll decodes every station in ascending order. The whole batch
// fails on the first dimension error; there is no partial result.
func DespreadAll(signal vlib.VectorF, codes vlib.MatrixF) (vlib.VectorF, error) {
	decoded := vlib.NewVectorF(len(codes))
	for i := range codes {
		b, err := Despread(signal, codes, i)
		if err != nil {
			return nil, err
		}
		decoded[i] = b
	}
	return decoded, nil
}
