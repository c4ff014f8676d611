// Command nft computes nonlinear Fourier spectra of sampled signals.
//
// Usage:
//
//	nft forward signal.csv                    # reflection coefficient and bound states
//	nft forward --plot --m 256 signal.wav     # WAV I/Q input, terminal plot of |R(ξ)|
//	nft xi --d 512 --m 1024                   # frequency window for the inverse
//	nft inverse --d 512 reflection.csv        # reconstruct q(t)
//	nft periodic --t1 0 --t2 6.283 period.csv # main and auxiliary spectrum
//	nft info                                  # schemes and SIMD features
//
// Settings are read from --config (YAML) and overridden by flags.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tphakala/go-nft/internal/config"
)

var (
	configFile string
	verbose    bool
	plot       bool
	output     string

	cfg = config.Default()
)

func main() {
	log.SetFlags(0)

	rootCmd := &cobra.Command{
		Use:   "nft",
		Short: "nonlinear Fourier transform of the nonlinear Schrödinger equation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" {
				return nil
			}
			loaded, err := config.Load(configFile)
			if err != nil {
				return err
			}
			// Flags given explicitly win over the file.
			applyFlags(cmd, loaded)
			cfg = loaded
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write results as CSV to this file")
	rootCmd.PersistentFlags().BoolVar(&plot, "plot", false, "plot the result in the terminal")
	rootCmd.PersistentFlags().IntVar(&cfg.Kappa, "kappa", cfg.Kappa, "+1 focusing, -1 defocusing")
	rootCmd.PersistentFlags().Float64Var(&cfg.Time.T1, "t1", cfg.Time.T1, "time of the first sample (WAV input)")
	rootCmd.PersistentFlags().Float64Var(&cfg.Time.T2, "t2", cfg.Time.T2, "time of the last sample, or end of the period (WAV input)")
	rootCmd.PersistentFlags().IntVar(&cfg.Workers, "workers", 0, "goroutines per transform (0 = GOMAXPROCS)")

	rootCmd.AddCommand(forwardCmd(), inverseCmd(), xiCmd(), periodicCmd(), infoCmd(), configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFlags copies flags set on the command line over the loaded settings.
func applyFlags(cmd *cobra.Command, loaded *config.Config) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("kappa", func() { loaded.Kappa = cfg.Kappa })
	set("t1", func() { loaded.Time.T1 = cfg.Time.T1 })
	set("t2", func() { loaded.Time.T2 = cfg.Time.T2 })
	set("workers", func() { loaded.Workers = cfg.Workers })
	set("scheme", func() {
		loaded.Forward.Discretization = cfg.Forward.Discretization
		loaded.Inverse.Discretization = cfg.Inverse.Discretization
		loaded.Periodic.Discretization = cfg.Periodic.Discretization
	})
	set("localization", func() {
		loaded.Forward.Localization = cfg.Forward.Localization
		loaded.Periodic.Localization = cfg.Periodic.Localization
	})
	set("filtering", func() {
		loaded.Forward.Filtering = cfg.Forward.Filtering
		loaded.Periodic.Filtering = cfg.Periodic.Filtering
	})
	set("xi1", func() { loaded.Forward.Xi1 = cfg.Forward.Xi1 })
	set("xi2", func() { loaded.Forward.Xi2 = cfg.Forward.Xi2 })
	set("m", func() { loaded.Forward.M = cfg.Forward.M })
	set("kmax", func() { loaded.Forward.KMax = cfg.Forward.KMax })
	set("richardson", func() { loaded.Forward.Richardson = cfg.Forward.Richardson })
	set("discrete", func() { loaded.Forward.DiscreteSpectrum = cfg.Forward.DiscreteSpectrum })
	set("method", func() { loaded.Inverse.Method = cfg.Inverse.Method })
	set("d", func() { loaded.Inverse.D = cfg.Inverse.D })
	set("max-evaluations", func() { loaded.Periodic.MaxEvaluations = cfg.Periodic.MaxEvaluations })
}
