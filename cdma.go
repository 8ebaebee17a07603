package cdma

import (
	"math"

	"github.com/wiless/vlib"
)

// DefaultErrThreshold classifies a decode as a bit error when the decoded
// value strays farther than this from the original bit. It is a reporting
// convention only; the decoder itself never rounds or clips.
const DefaultErrThreshold = 0.1

// LinkReport aggregates one end-to-end run over the shared channel.
type LinkReport struct {
	Order        int
	NStations    int
	NoisePower   float64
	ErrThreshold float64
	DataBits     vlib.VectorF
	ChipSignal   vlib.VectorF // combined signal on the medium
	RxSignal     vlib.VectorF // decode input, noisy when NoisePower > 0
	Decoded      vlib.VectorF
	BitErrors    int
	BER          float64
}

// CountBitErrors counts the stations whose decoded value differs from the
// original by more than threshold.
func CountBitErrors(orig, decoded vlib.VectorF, threshold float64) int {
	errs := 0
	for i := range orig {
		if math.Abs(decoded[i]-orig[i]) > threshold {
			errs++
		}
	}
	return errs
}

// IsBinary reports whether every entry of bits is exactly 0 or 1.
func IsBinary(bits vlib.VectorF) bool {
	for _, b := range bits {
		if b != 0 && b != 1 {
			return false
		}
	}
	return true
}
