package walsh

import (
	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/mat"
)

// Violation records one entry of the correlation matrix that deviates from
// the ideal N*Identity.
type Violation struct {
	Row, Col int
	Value    float64
}

// Report carries the full auto/cross correlation matrix of a code matrix
// together with every entry violating orthogonality. It is diagnostic
// output only and never feeds back into the encode/decode path.
type Report struct {
	NStations   int
	Correlation vlib.MatrixF
	Violations  []Violation
}

func (r Report) Passed() bool {
	return len(r.Violations) == 0
}

// Verify computes the Gram matrix W*Wt of the code matrix and checks it
// against N*Identity: entry (i,i) must be exactly N and entry (i,j), i!=j,
// exactly 0. Any deviation is logged with the offending pair and collected
// in the report; verification never fails hard.
func Verify(W vlib.MatrixF) Report {
	n := len(W)
	report := Report{NStations: n, Correlation: vlib.NewMatrixF(n, n)}
	if n == 0 {
		return report
	}

	flat := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		flat = append(flat, W[i]...)
	}
	dw := mat.NewDense(n, n, flat)

	var gram mat.Dense
	gram.Mul(dw, dw.T())

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := gram.At(i, j)
			report.Correlation[i][j] = v

			want := 0.0
			if i == j {
				want = float64(n)
			}
			if v != want {
				report.Violations = append(report.Violations, Violation{Row: i, Col: j, Value: v})
				log.Warnf("walsh: correlation (%d,%d) = %v , expected %v", i, j, v, want)
			}
		}
	}
	return report
}
