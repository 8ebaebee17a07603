// cdmasim runs an end-to-end Walsh-code CDMA channel simulation : generate
// codes, spread random (or all-station supplied) data bits, superpose them
// on the shared medium, optionally add AWGN, despread every station and
// report the bit-error rate. Results are exported for MATLAB/JSON
// post-processing.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/cdma"
	"github.com/wiless/vlib"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var matlab *vlib.Matlab

var (
	order      int
	noisePower float64
	station    int
	trials     int
	visualize  bool
	bitArg     string
	indir      string
	outdir     string
)

func init() {
	matlab = vlib.NewMatlab("cdmasim")
	matlab.Silent = true
	matlab.Json = true
}

func main() {
	flag.IntVar(&order, "order", 3, "Walsh code order, 2^order stations")
	flag.Float64Var(&noisePower, "noise", 0, "AWGN power on the shared channel")
	flag.IntVar(&station, "station", -1, "decode a single station (0-indexed), -1 decodes all")
	flag.IntVar(&trials, "trials", 1, "independent runs to average the BER over")
	flag.BoolVar(&visualize, "visualize", true, "render the code matrix and chip signal")
	flag.StringVar(&bitArg, "bits", "", "comma separated data bits, one per station (default random)")
	flag.StringVar(&indir, "indir", ".", "directory with cdmasim.json config")
	flag.StringVar(&outdir, "outdir", ".", "directory for exported results")
	flag.Parse()

	ReadAppConfig()

	sys, err := cdma.New(cfg.Order)
	if err != nil {
		log.Fatal("cdmasim : ", err)
	}
	sys.ErrThreshold = cfg.ErrThreshold
	if cfg.Seed != 0 {
		sys.Noise.Src = rand.NewSource(cfg.Seed)
	}

	banner(sys.NStations())

	vreport := sys.VerifyCodes()
	if vreport.Passed() {
		log.Infof("cdmasim : all %d codes mutually orthogonal", vreport.NStations)
	} else {
		log.Warnf("cdmasim : code matrix has %d correlation defects", len(vreport.Violations))
	}

	bits, err := dataBits(sys.NStations())
	if err != nil {
		log.Fatal("cdmasim : ", err)
	}

	if visualize {
		printCodes(sys.Codes())
	}

	var report cdma.LinkReport
	totalErrs := 0
	for t := 0; t < cfg.Trials; t++ {
		report, err = sys.Run(bits, cfg.NoisePower)
		if err != nil {
			log.Fatal("cdmasim : ", err)
		}
		totalErrs += report.BitErrors
	}

	if visualize {
		printSignal(report.ChipSignal)
	}

	if station >= 0 {
		decoded, err := sys.DecodeStation(report.RxSignal, station)
		if err != nil {
			log.Fatal("cdmasim : ", err)
		}
		fmt.Printf("Station %d : original %v , decoded %.4f\n", station, bits[station], decoded)
	} else {
		printResults(report)
	}

	ber := float64(totalErrs) / float64(cfg.Trials*sys.NStations())
	fmt.Printf("Bit errors : %d/%d over %d run(s), BER = %.2f%%\n",
		totalErrs, cfg.Trials*sys.NStations(), cfg.Trials, 100*ber)
	if cfg.NoisePower > 0 {
		log.Infof("cdmasim : per-chip SNR %.2f dB", vlib.Db(1.0/cfg.NoisePower))
	}

	export(sys, report)
}

// dataBits parses -bits when given, else draws one fair coin per station.
func dataBits(n int) (vlib.VectorF, error) {
	bits := vlib.NewVectorF(n)
	if bitArg == "" {
		coin := distuv.Bernoulli{P: 0.5}
		if cfg.Seed != 0 {
			coin.Src = rand.NewSource(cfg.Seed)
		}
		for i := range bits {
			bits[i] = coin.Rand()
		}
		return bits, nil
	}

	fields := strings.Split(bitArg, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("need %d bits, got %d", n, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		bits[i] = v
	}
	return bits, nil
}

func banner(nstations int) {
	c := color.New(color.Bold, color.FgHiCyan)
	c.Println("==================================================")
	c.Printf("  CDMA channel simulation : %d stations (Walsh)\n", nstations)
	c.Println("==================================================")
}

func printCodes(W vlib.MatrixF) {
	color.New(color.Bold).Printf("Walsh code matrix %dx%d :\n", len(W), len(W))
	for i, row := range W {
		fmt.Printf("  S%-2d ", i)
		for _, v := range row {
			if v > 0 {
				color.Set(color.FgHiWhite)
				fmt.Print(" +1")
			} else {
				color.Set(color.FgHiBlack)
				fmt.Print(" -1")
			}
		}
		color.Unset()
		fmt.Println()
	}
}

func printSignal(signal vlib.VectorF) {
	color.New(color.Bold).Print("Combined channel signal : ")
	for _, v := range signal {
		switch {
		case v > 0:
			color.Set(color.FgGreen)
		case v < 0:
			color.Set(color.FgRed)
		default:
			color.Set(color.FgMagenta)
		}
		fmt.Printf(" %+g", v)
	}
	color.Unset()
	fmt.Println()
}

func printResults(r cdma.LinkReport) {
	fmt.Printf("%-10s %-10s %-10s %-8s\n", "Station", "Original", "Decoded", "Status")
	for i := range r.DataBits {
		status := color.GreenString("OK")
		if diff := r.Decoded[i] - r.DataBits[i]; diff > r.ErrThreshold || diff < -r.ErrThreshold {
			status = color.RedString("ERROR")
		}
		fmt.Printf("%-10d %-10g %-10.3f %-8s\n", i, r.DataBits[i], r.Decoded[i], status)
	}
}

func export(sys *cdma.System, r cdma.LinkReport) {
	matlab.Export("walsh", sys.Codes())
	matlab.Export("chipsignal", r.ChipSignal)
	matlab.Export("rxsignal", r.RxSignal)
	matlab.Export("decoded", r.Decoded)
	matlab.ExportStruct("LinkReport", r)
	matlab.Close()

	vlib.SaveStructure(r, outdir+"/cdmasim-report.json", true)
	log.Println("Results written to ", outdir)
}
