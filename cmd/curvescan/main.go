// Command curvescan runs the transit-detection pipeline over a light
// curve and prints the detection summary.
//
// Usage:
//
//	curvescan [flags] [file]
//
// The input file holds two numeric columns (time, flux), separated by
// whitespace or commas; lines starting with # are skipped. With -demo a
// synthetic curve with one injected dip is analyzed instead.
//
// Examples:
//
//	curvescan kic1234567.txt
//	curvescan -mode fourier -bins 8 kic1234567.txt
//	curvescan -verbose -minscore 0.05 kic1234567.txt
//	curvescan -demo
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/drgmk/comet-project/detrend"
	"github.com/drgmk/comet-project/lightcurve"
	"github.com/drgmk/comet-project/pipeline"
)

func main() {
	mode := flag.String("mode", "periodogram", "detrend mode: periodogram, fourier or both")
	bins := flag.Int("bins", 5, "bins kept by the fourier filter")
	halfWidth := flag.Int("halfwidth", 20, "max half-width of the detection statistic")
	minScore := flag.Float64("minscore", 0.1, "periodogram power below which iteration stops")
	maxIter := flag.Int("maxiter", 30, "periodogram iteration cap")
	oversample := flag.Float64("oversample", 5, "periodogram frequency grid oversampling")
	peaks := flag.Int("peaks", 0, "print the strongest N spectrum peaks before filtering")
	verbose := flag.Bool("verbose", false, "print each subtracted periodic component")
	demo := flag.Bool("demo", false, "analyze a synthetic curve with one injected dip")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: curvescan [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the transit-detection pipeline over a (time, flux) table.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  curvescan kic1234567.txt\n")
		fmt.Fprintf(os.Stderr, "  curvescan -mode fourier -bins 8 kic1234567.txt\n")
		fmt.Fprintf(os.Stderr, "  curvescan -demo\n")
	}
	flag.Parse()

	var (
		series lightcurve.Series
		err    error
	)
	switch {
	case *demo:
		series = demoSeries()
	case flag.NArg() == 1:
		series, err = readSeries(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	cfg := pipeline.DefaultConfig()
	cfg.FourierBins = *bins
	cfg.MaxHalfWidth = *halfWidth
	cfg.Filter.MinScore = *minScore
	cfg.Filter.MaxIterations = *maxIter
	cfg.Filter.Oversample = *oversample

	switch strings.ToLower(*mode) {
	case "periodogram":
		cfg.Detrend = pipeline.DetrendPeriodogram
	case "fourier":
		cfg.Detrend = pipeline.DetrendFourier
	case "both":
		cfg.Detrend = pipeline.DetrendBoth
	default:
		fmt.Fprintf(os.Stderr, "error: unknown mode %q\n", *mode)
		os.Exit(2)
	}

	if *verbose {
		cfg.Filter.Trace = func(s detrend.TraceStep) {
			fmt.Fprintf(os.Stderr, "iter %2d: subtracted period %.6g (freq %.6g, power %.3f)\n",
				s.Iteration, s.Peak.Period, s.Peak.Freq, s.Peak.Power)
		}
	}

	if *peaks > 0 {
		printPeaks(series, *peaks)
	}

	res, err := pipeline.Run(series, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printResult(res)
}

// demoSeries builds a unit-baseline curve with 1% noise, one sampling
// gap, and a -5 sigma box dip.
func demoSeries() lightcurve.Series {
	const n = 1000
	rng := rand.New(rand.NewSource(42))

	s := lightcurve.Series{
		Time: make([]float64, 0, n),
		Flux: make([]float64, 0, n),
	}
	for i := 0; i < n; i++ {
		if i >= 700 && i < 705 {
			continue // sampling gap
		}
		flux := 1 + 0.01*rng.NormFloat64()
		if i >= 498 && i <= 502 {
			flux -= 0.05
		}
		s.Time = append(s.Time, float64(i)*0.1)
		s.Flux = append(s.Flux, flux)
	}
	return s
}

func readSeries(path string) (lightcurve.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return lightcurve.Series{}, err
	}
	defer f.Close()

	var s lightcurve.Series
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) < 2 {
			return lightcurve.Series{}, fmt.Errorf("%s:%d: want two columns, got %d", path, line, len(fields))
		}

		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return lightcurve.Series{}, fmt.Errorf("%s:%d: bad time value: %v", path, line, err)
		}
		flux, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return lightcurve.Series{}, fmt.Errorf("%s:%d: bad flux value: %v", path, line, err)
		}
		if math.IsNaN(t) || math.IsNaN(flux) {
			continue // upstream cleaning drops NaN rows
		}

		s.Time = append(s.Time, t)
		s.Flux = append(s.Flux, flux)
	}
	if err := sc.Err(); err != nil {
		return lightcurve.Series{}, err
	}

	return s, nil
}

func printPeaks(s lightcurve.Series, count int) {
	norm, err := lightcurve.Normalize(s.Flux)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: spectrum skipped: %v\n", err)
		return
	}
	amp, err := detrend.Spectrum(norm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: spectrum skipped: %v\n", err)
		return
	}

	dt, err := lightcurve.EstimateTimestep(s.Time)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: spectrum skipped: %v\n", err)
		return
	}

	fftSize := 2 * (len(amp) - 1)
	fmt.Printf("Strongest spectrum peaks:\n")
	for _, bin := range detrend.SuggestPeaks(amp, count) {
		freq := float64(bin) / (float64(fftSize) * dt)
		fmt.Printf("  bin %4d  freq %.6g  amplitude %.6g\n", bin, freq, amp[bin])
	}
	fmt.Println()
}

func printResult(res *pipeline.Result) {
	value, halfWidth, center := res.Matrix.Extreme()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "samples\t%d\n", res.Series.Len())
	fmt.Fprintf(tw, "interpolated\t%d\n", countSynthetic(res.Real))
	fmt.Fprintf(tw, "flux stddev\t%.6g\n", res.FluxStats.StdDev)
	fmt.Fprintf(tw, "removed components\t%d (%v)\n", res.Report.Iterations, res.Report.Stop)
	fmt.Fprintf(tw, "extreme statistic\t%.4f\n", value)
	fmt.Fprintf(tw, "extreme half-width\t%d\n", halfWidth)
	fmt.Fprintf(tw, "extreme center\t%d (t=%.6g)\n", center, res.Series.Time[center])
	fmt.Fprintf(tw, "component 1\tamp %.4g  mean %.4g  sigma %.4g\n",
		res.Params.First.Amp, res.Params.First.Mean, res.Params.First.Sigma)
	fmt.Fprintf(tw, "component 2\tamp %.4g  mean %.4g  sigma %.4g\n",
		res.Params.Second.Amp, res.Params.Second.Mean, res.Params.Second.Sigma)
	fmt.Fprintf(tw, "height ratio\t%.4f\n", res.Summary.HeightRatio)
	fmt.Fprintf(tw, "separation\t%.4f\n", res.Summary.Separation)
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func countSynthetic(real []bool) int {
	n := 0
	for _, r := range real {
		if !r {
			n++
		}
	}
	return n
}
