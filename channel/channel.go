// Models the shared CDMA medium: linear superposition of chip-synchronous
// station transmissions, with an optional additive white Gaussian noise
// impairment. No other channel effect (fading, timing offset) is modelled.
package channel

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/wiless/vlib"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func init() {
	log.Println("Initiated cdma.channel")
}

var (
	ErrDimensionMismatch  = errors.New("channel: chip sequences differ in length")
	ErrNoInput            = errors.New("channel: no chip sequences to combine")
	ErrNegativeNoisePower = errors.New("channel: noise power must be >= 0")
)

// Combine superposes all chip sequences into the single signal every
// receiver sees. All stations transmit simultaneously over the same
// spectrum, so the medium carries the arithmetic sum.
func Combine(chips []vlib.VectorF) (vlib.VectorF, error) {
	if len(chips) == 0 {
		return nil, ErrNoInput
	}

	n := len(chips[0])
	combined := vlib.NewVectorF(n)
	for s, seq := range chips {
		if len(seq) != n {
			return nil, fmt.Errorf("%w: sequence %d has %d chips, want %d", ErrDimensionMismatch, s, len(seq), n)
		}
		for i, v := range seq {
			combined[i] += v
		}
	}
	return combined, nil
}

// AWGN perturbs a signal with zero-mean Gaussian noise. A nil Src uses the
// global source; set one for reproducible runs.
type AWGN struct {
	Src rand.Source
}

// Apply returns signal plus an independent N(0, power) sample per chip,
// i.e. standard deviation sqrt(power). Zero power is a valid no-op and
// returns an untouched copy. The input is never modified.
func (a AWGN) Apply(signal vlib.VectorF, power float64) (vlib.VectorF, error) {
	if power < 0 {
		return nil, fmt.Errorf("%w : got %v", ErrNegativeNoisePower, power)
	}

	out := vlib.NewVectorF(len(signal))
	copy(out, signal)
	if power == 0 {
		return out, nil
	}

	dist := distuv.Normal{Mu: 0, Sigma: math.Sqrt(power), Src: a.Src}
	for i := range out {
		out[i] += dist.Rand()
	}
	return out, nil
}

// AddNoise is the one-shot form of AWGN.Apply.
func AddNoise(signal vlib.VectorF, power float64) (vlib.VectorF, error) {
	return AWGN{}.Apply(signal, power)
}
