package TxRx_test

import (
	"errors"
	"math"
	"testing"

	"github.com/wiless/cdma/TxRx"
	"github.com/wiless/cdma/walsh"
	"github.com/wiless/vlib"
)

func combine(chips []vlib.VectorF) vlib.VectorF {
	sum := vlib.NewVectorF(len(chips[0]))
	for _, seq := range chips {
		for i, v := range seq {
			sum[i] += v
		}
	}
	return sum
}

func TestSpreadDespreadRoundTrip(t *testing.T) {
	W, _ := walsh.Generate(3)
	bits := vlib.VectorF{1, 0, 1, 1, 0, 0, 1, 0}

	chips, err := TxRx.Spread(W, bits)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := TxRx.DespreadAll(combine(chips), W)
	if err != nil {
		t.Fatal(err)
	}
	for i := range bits {
		if math.Abs(decoded[i]-bits[i]) > 1e-9 {
			t.Errorf("station %d: decoded %v, want %v", i, decoded[i], bits[i])
		}
	}
}

func TestSpreadLinearity(t *testing.T) {
	W, _ := walsh.Generate(2)
	b1 := vlib.VectorF{1, 0, 1, 0}
	b2 := vlib.VectorF{0, 1, 0.5, -1}

	sum := vlib.NewVectorF(len(b1))
	for i := range b1 {
		sum[i] = b1[i] + b2[i]
	}

	c1, _ := TxRx.Spread(W, b1)
	c2, _ := TxRx.Spread(W, b2)
	cs, _ := TxRx.Spread(W, sum)

	for i := range cs {
		for j := range cs[i] {
			if cs[i][j] != c1[i][j]+c2[i][j] {
				t.Fatalf("spread not linear at station %d chip %d", i, j)
			}
		}
	}
}

func TestSpreadNonBinaryBits(t *testing.T) {
	W, _ := walsh.Generate(2)
	bits := vlib.VectorF{2, -1, 0.5, 1}

	chips, err := TxRx.Spread(W, bits)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := TxRx.DespreadAll(combine(chips), W)
	if err != nil {
		t.Fatal(err)
	}
	for i := range bits {
		if math.Abs(decoded[i]-bits[i]) > 1e-9 {
			t.Errorf("station %d: decoded %v, want %v", i, decoded[i], bits[i])
		}
	}
}

func TestSpreadDimensionMismatch(t *testing.T) {
	W, _ := walsh.Generate(2)
	_, err := TxRx.Spread(W, vlib.VectorF{1, 0})
	if !errors.Is(err, TxRx.ErrDimensionMismatch) {
		t.Fatalf("want ErrDimensionMismatch, got %v", err)
	}
}

func TestDespreadAllOnes(t *testing.T) {
	W, _ := walsh.Generate(2)
	chips, _ := TxRx.Spread(W, vlib.VectorF{1, 1, 1, 1})
	combined := combine(chips)

	decoded, err := TxRx.Despread(combined, W, 0)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != 1.0 {
		t.Fatalf("station 0 decoded %v, want exactly 1.0", decoded)
	}
}

func TestDespreadStationOutOfRange(t *testing.T) {
	W, _ := walsh.Generate(2)
	signal := vlib.NewVectorF(4)

	for _, station := range []int{-1, 4} {
		_, err := TxRx.Despread(signal, W, station)
		if !errors.Is(err, TxRx.ErrStationIndex) {
			t.Errorf("station %d: want ErrStationIndex, got %v", station, err)
		}
	}
}

func TestDespreadSignalMismatch(t *testing.T) {
	W, _ := walsh.Generate(2)
	_, err := TxRx.Despread(vlib.NewVectorF(3), W, 0)
	if !errors.Is(err, TxRx.ErrDimensionMismatch) {
		t.Fatalf("want ErrDimensionMismatch, got %v", err)
	}
	if _, err := TxRx.DespreadAll(vlib.NewVectorF(3), W); err == nil {
		t.Fatal("DespreadAll must fail on a bad signal length")
	}
}

func TestStation(t *testing.T) {
	W, _ := walsh.Generate(3)
	st := TxRx.NewStation(5, W[5])

	if st.GetID() != 5 {
		t.Fatalf("GetID = %d, want 5", st.GetID())
	}

	chips, _ := TxRx.Spread(W, vlib.VectorF{1, 0, 1, 1, 0, 0, 1, 0})
	combined := combine(chips)

	fromStation, err := st.Despread(combined)
	if err != nil {
		t.Fatal(err)
	}
	fromMatrix, _ := TxRx.Despread(combined, W, 5)
	if fromStation != fromMatrix {
		t.Fatalf("Station.Despread %v disagrees with Despread %v", fromStation, fromMatrix)
	}

	seq := st.Spread(1)
	for j := range seq {
		if seq[j] != W[5][j] {
			t.Fatalf("Station.Spread(1) must equal the code row, got %v", seq)
		}
	}
}
