package TxRx

import "github.com/wiless/vlib"

// Station couples a node id with its assigned spreading code. It is a
// convenience wrapper over Spread/Despread for drivers that keep the
// per-station view rather than the whole-matrix view.
type Station struct {
	nid  int
	code vlib.VectorF
}

func NewStation(id int, code vlib.VectorF) Station {
	return Station{nid: id, code: code}
}

func (s Station) GetID() int {
	return s.nid
}

func (s *Station) SetID(id int) {
	s.nid = id
}

// Code returns the station's spreading code. Read-only.
func (s Station) Code() vlib.VectorF {
	return s.code
}

// Spread returns this station's chip sequence for one data bit.
func (s Station) Spread(bit float64) vlib.VectorF {
	seq := vlib.NewVectorF(len(s.code))
	for j, c := range s.code {
		seq[j] = c * bit
	}
	return seq
}

// Despread correlates the shared signal against this station's code.
func (s Station) Despread(signal vlib.VectorF) (float64, error) {
	if len(signal) != len(s.code) {
		return 0, ErrDimensionMismatch
	}

	inner := vlib.NewVectorF(len(s.code))
	for i := range s.code {
		inner[i] = signal[i] * s.code[i]
	}
	return vlib.Sum(inner) / float64(len(s.code)), nil
}
