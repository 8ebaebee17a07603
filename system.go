package cdma

import (
	log "github.com/sirupsen/logrus"
	"github.com/wiless/cdma/TxRx"
	"github.com/wiless/cdma/channel"
	"github.com/wiless/cdma/walsh"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/stat"
)

// System owns the Walsh code matrix for 2^Order stations and sequences one
// simulation run: spread -> combine -> noise -> despread -> report. The
// matrix is generated once by New and never written to afterwards.
type System struct {
	Order        int
	ErrThreshold float64
	StrictBits   bool // warn (never fail) on non 0/1 data bits
	Noise        channel.AWGN
	codes        vlib.MatrixF
}

func New(order int) (*System, error) {
	W, err := walsh.Generate(order)
	if err != nil {
		return nil, err
	}
	s := &System{Order: order, ErrThreshold: DefaultErrThreshold, codes: W}
	log.Infof("cdma: system ready, %d stations on a %d-chip channel", s.NStations(), s.NStations())
	return s, nil
}

func (s *System) NStations() int {
	return len(s.codes)
}

// Codes returns the spreading matrix. Callers must treat it as read-only.
func (s *System) Codes() vlib.MatrixF {
	return s.codes
}

// Stations returns one Station per code row, in station order.
func (s *System) Stations() []TxRx.Station {
	result := make([]TxRx.Station, len(s.codes))
	for i, code := range s.codes {
		result[i] = TxRx.NewStation(i, code)
	}
	return result
}

// VerifyCodes checks auto/cross correlation of the code matrix. Diagnostic
// only; it runs independently of the encode/decode path.
func (s *System) VerifyCodes() walsh.Report {
	return walsh.Verify(s.codes)
}

// Run simulates one synchronous transmission of bits with the given noise
// power and decodes every station from the shared signal.
func (s *System) Run(bits vlib.VectorF, noisePower float64) (LinkReport, error) {
	if s.StrictBits && !IsBinary(bits) {
		log.Warnf("cdma: non-binary data bits %v , decode is linear but not bit-like", bits)
	}

	chips, err := TxRx.Spread(s.codes, bits)
	if err != nil {
		return LinkReport{}, err
	}

	combined, err := channel.Combine(chips)
	if err != nil {
		return LinkReport{}, err
	}

	rx, err := s.Noise.Apply(combined, noisePower)
	if err != nil {
		return LinkReport{}, err
	}

	decoded, err := TxRx.DespreadAll(rx, s.codes)
	if err != nil {
		return LinkReport{}, err
	}

	nerrs := CountBitErrors(bits, decoded, s.ErrThreshold)
	return LinkReport{
		Order:        s.Order,
		NStations:    s.NStations(),
		NoisePower:   noisePower,
		ErrThreshold: s.ErrThreshold,
		DataBits:     bits,
		ChipSignal:   combined,
		RxSignal:     rx,
		Decoded:      decoded,
		BitErrors:    nerrs,
		BER:          float64(nerrs) / float64(s.NStations()),
	}, nil
}

// DecodeStation runs the single-station matched filter against a signal
// already on the medium.
func (s *System) DecodeStation(signal vlib.VectorF, station int) (float64, error) {
	return TxRx.Despread(signal, s.codes, station)
}

// NoiseSweep runs the same data bits at each noise power and returns the
// mean squared decode error per power, averaged over trials runs. Decode
// error variance grows with the noise power, so the result is expected to
// be non-decreasing apart from sampling jitter.
func (s *System) NoiseSweep(bits vlib.VectorF, powers vlib.VectorF, trials int) (vlib.VectorF, error) {
	mse := vlib.NewVectorF(len(powers))
	for pi, p := range powers {
		sqerrs := make([]float64, 0, trials*len(bits))
		for t := 0; t < trials; t++ {
			rep, err := s.Run(bits, p)
			if err != nil {
				return nil, err
			}
			for i := range bits {
				d := rep.Decoded[i] - bits[i]
				sqerrs = append(sqerrs, d*d)
			}
		}
		mse[pi] = stat.Mean(sqerrs, nil)
	}
	return mse, nil
}
