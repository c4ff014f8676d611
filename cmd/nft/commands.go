package main

import (
	"fmt"
	"log"
	"math/cmplx"
	"strings"

	"github.com/spf13/cobra"
	nft "github.com/tphakala/go-nft"
	"github.com/tphakala/go-nft/internal/config"
	"github.com/tphakala/go-nft/internal/sampleio"
	"github.com/tphakala/go-nft/internal/simdops"
)

func forwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward [signal.csv|signal.wav]",
		Short: "continuous spectrum and bound states of a vanishing signal",
		Args:  cobra.ExactArgs(1),
		RunE:  runForward,
	}
	f := cmd.Flags()
	f.StringVar(&cfg.Forward.Discretization, "scheme", cfg.Forward.Discretization, "discretization, e.g. 2SPLIT4B or BO")
	f.StringVar(&cfg.Forward.Localization, "localization", cfg.Forward.Localization, "fasteigenvalue, newton or subsampleandrefine")
	f.StringVar(&cfg.Forward.Filtering, "filtering", cfg.Forward.Filtering, "none, basic or full")
	f.StringVar(&cfg.Forward.DiscreteSpectrum, "discrete", cfg.Forward.DiscreteSpectrum, "norming, residues, both or skip")
	f.Float64Var(&cfg.Forward.Xi1, "xi1", cfg.Forward.Xi1, "first frequency")
	f.Float64Var(&cfg.Forward.Xi2, "xi2", cfg.Forward.Xi2, "last frequency")
	f.IntVar(&cfg.Forward.M, "m", cfg.Forward.M, "number of frequencies")
	f.IntVar(&cfg.Forward.KMax, "kmax", cfg.Forward.KMax, "maximum number of bound states")
	f.BoolVar(&cfg.Forward.Richardson, "richardson", cfg.Forward.Richardson, "Richardson extrapolation")
	return cmd
}

func runForward(_ *cobra.Command, args []string) error {
	q, tw, err := loadSignal(args[0], false)
	if err != nil {
		return err
	}
	opts, err := cfg.ForwardOptions()
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("forward: D=%d on [%g, %g], %s, kappa=%d", len(q), tw.T1, tw.T2, opts.Discretization, cfg.Kappa)
	}
	res, err := nft.Forward(q, tw, cfg.FrequencyWindow(), cfg.Forward.KMax, cfg.KappaValue(), opts)
	if err != nil {
		return err
	}

	fmt.Printf("status: %s\n", res.Status)
	fmt.Printf("bound states: %d (found %d)\n", len(res.BoundStates), res.BoundStatesFound)
	for k, lam := range res.BoundStates {
		line := fmt.Sprintf("  λ = %s", formatComplex(lam))
		if res.NormingConstants != nil {
			line += fmt.Sprintf("  b = %s", formatComplex(res.NormingConstants[k]))
		}
		if res.Residues != nil {
			line += fmt.Sprintf("  r = %s", formatComplex(res.Residues[k]))
		}
		fmt.Println(line)
	}
	if len(res.DegenerateNodes) > 0 {
		fmt.Printf("degenerate nodes: %v\n", res.DegenerateNodes)
	}

	if res.Reflection != nil {
		if plot {
			fmt.Println(plotMagnitude(res.Reflection, "|R(ξ)|"))
		}
		if output != "" {
			return writeCSV(output, "xi,re,im", res.Xi, res.Reflection)
		}
	}
	return nil
}

func inverseCmd() *cobra.Command {
	var boundStates, norming string
	cmd := &cobra.Command{
		Use:   "inverse [reflection.csv]",
		Short: "reconstruct a signal from its reflection coefficient and bound states",
		Long: "The continuous spectrum must be given on the window printed by 'nft xi';\n" +
			"only the re and im columns are used.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInverse(args[0], boundStates, norming)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.Inverse.Discretization, "scheme", cfg.Inverse.Discretization, "2SPLIT2A or 2SPLIT2_MODAL")
	f.StringVar(&cfg.Inverse.Method, "method", cfg.Inverse.Method, "cepstrum or defectcorrection")
	f.IntVar(&cfg.Inverse.D, "d", cfg.Inverse.D, "number of output samples (0 = one per frequency)")
	f.StringVar(&boundStates, "bound-states", "", "comma-separated bound states, e.g. 0.5i,1+0.3i")
	f.StringVar(&norming, "norming", "", "comma-separated norming constants")
	return cmd
}

func runInverse(path, boundStates, norming string) error {
	_, spec, err := readCSVFile(path)
	if err != nil {
		return err
	}
	bs, err := sampleio.ParseComplexList(boundStates)
	if err != nil {
		return err
	}
	nc, err := sampleio.ParseComplexList(norming)
	if err != nil {
		return err
	}
	opts, err := cfg.InverseOptions()
	if err != nil {
		return err
	}
	d := cfg.Inverse.D
	if d == 0 {
		d = len(spec)
	}
	tw := cfg.TimeWindow()
	fw, err := nft.InverseXi(d, tw, len(spec), opts.Discretization)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("inverse: D=%d, M=%d, window [%g, %g]", d, fw.M, fw.Xi1, fw.Xi2)
	}
	res, err := nft.Inverse(spec, fw, bs, nc, d, tw, cfg.KappaValue(), opts)
	if err != nil {
		return err
	}
	fmt.Printf("status: %s\n", res.Status)
	if res.Iterations > 0 {
		fmt.Printf("iterations: %d, residual: %.3g\n", res.Iterations, res.Residual)
	}
	if plot {
		fmt.Println(plotMagnitude(res.Q, "|q(t)|"))
	}
	if output != "" {
		return writeCSV(output, "t,re,im", nft.TimeGrid(len(res.Q), tw), res.Q)
	}
	return nil
}

func xiCmd() *cobra.Command {
	var d, m int
	var scheme string
	cmd := &cobra.Command{
		Use:   "xi",
		Short: "frequency window required by the inverse transform",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			id, err := nft.ParseDiscretization(scheme)
			if err != nil {
				return err
			}
			fw, err := nft.InverseXi(d, cfg.TimeWindow(), m, id)
			if err != nil {
				return err
			}
			fmt.Printf("xi1: %.17g\nxi2: %.17g\nm: %d\n", fw.Xi1, fw.Xi2, fw.M)
			return nil
		},
	}
	cmd.Flags().IntVar(&d, "d", 256, "number of samples")
	cmd.Flags().IntVar(&m, "m", 512, "number of frequencies (at least d)")
	cmd.Flags().StringVar(&scheme, "scheme", "2SPLIT2A", "2SPLIT2A or 2SPLIT2_MODAL")
	return cmd
}

func periodicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periodic [period.csv|period.wav]",
		Short: "main and auxiliary spectrum of one period",
		Args:  cobra.ExactArgs(1),
		RunE:  runPeriodic,
	}
	f := cmd.Flags()
	f.StringVar(&cfg.Periodic.Discretization, "scheme", cfg.Periodic.Discretization, "discretization, e.g. 2SPLIT4A")
	f.StringVar(&cfg.Periodic.Localization, "localization", cfg.Periodic.Localization, "subsampleandrefine, gridsearch or mixed")
	f.StringVar(&cfg.Periodic.Filtering, "filtering", cfg.Periodic.Filtering, "none, manual or auto")
	f.IntVar(&cfg.Periodic.MaxEvaluations, "max-evaluations", cfg.Periodic.MaxEvaluations, "Newton steps per candidate")
	return cmd
}

func runPeriodic(_ *cobra.Command, args []string) error {
	q, tw, err := loadSignal(args[0], true)
	if err != nil {
		return err
	}
	opts, err := cfg.PeriodicOptions()
	if err != nil {
		return err
	}
	res, err := nft.Periodic(q, tw, cfg.KappaValue(), opts)
	if err != nil {
		return err
	}
	fmt.Printf("status: %s\n", res.Status)
	printSpectrum("main", res.Main)
	printSpectrum("aux", res.Aux)
	return nil
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "list discretizations and SIMD features",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("SIMD: %s\n", simdops.Info())
			fmt.Println("discretizations:")
			for _, id := range nft.Discretizations() {
				order, _ := nft.SchemeOrder(id)
				split, _ := nft.SchemeSplitOrder(id)
				inv := ""
				if id.SupportsInverse() {
					inv = " (inverse)"
				}
				fmt.Printf("  %-14s order %d, split order %d%s\n", id, order, split, inv)
			}
		},
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [file.yaml]",
		Short: "write the effective settings as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return config.Save(args[0], cfg)
		},
	}
}

func printSpectrum(name string, s []complex128) {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = formatComplex(v)
	}
	fmt.Printf("%s (%d): %s\n", name, len(s), strings.Join(parts, " "))
}

func formatComplex(z complex128) string {
	if cmplx.IsNaN(z) {
		return "NaN"
	}
	return fmt.Sprintf("%.10g%+.10gi", real(z), imag(z))
}
