package main

import (
	"flag"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edp1096/pulsecoil/internal/config"
	"github.com/edp1096/pulsecoil/internal/consts"
	"github.com/edp1096/pulsecoil/pkg/analysis"
	"github.com/edp1096/pulsecoil/pkg/circuit"
	"github.com/edp1096/pulsecoil/pkg/coil"
	"github.com/edp1096/pulsecoil/pkg/plot"
	"github.com/edp1096/pulsecoil/pkg/rlc"
	"github.com/edp1096/pulsecoil/pkg/util"
	"github.com/edp1096/pulsecoil/pkg/waveform"
)

func main() {
	var (
		currentPlot = flag.String("current", "", "current plot path (overrides config)")
		fieldPlot   = flag.String("field", "", "field plot path (overrides config)")
		csvPath     = flag.String("csv", "", "export the time series as CSV")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	if *currentPlot != "" {
		cfg.Output.CurrentPlot = *currentPlot
	}
	if *fieldPlot != "" {
		cfg.Output.FieldPlot = *fieldPlot
	}
	if *csvPath != "" {
		cfg.Output.CSVPath = *csvPath
	}

	geometry := coil.Geometry{
		TraceThickness: cfg.Coil.TraceThickness,
		TraceWidth:     cfg.Coil.TraceWidth,
		TraceSpacing:   cfg.Coil.TraceSpacing,
		SeriesTurns:    cfg.Coil.SeriesTurns,
		BoardCount:     cfg.Coil.BoardCount,
		OuterDiameter:  cfg.Coil.OuterDiameter,
		InnerDiameter:  cfg.Coil.InnerDiameter,
	}

	derived, err := coil.Derive(geometry)
	if err != nil {
		log.Fatal().Err(err).Msg("deriving coil parameters")
	}

	totalR := derived.Resistance + cfg.Bank.SwitchResistance
	analytic := rlc.Params{
		R:  totalR,
		L:  derived.Inductance,
		C:  cfg.Bank.Capacitance,
		V0: cfg.Bank.InitialVoltage,
	}
	if err := analytic.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid discharge parameters")
	}

	log.Info().
		Int("turns", int(derived.Turns)).
		Str("trace_length", util.FormatValueFactor(derived.TraceLength*1e-3, "m")).
		Str("inductance", util.FormatValueFactor(derived.Inductance, "H")).
		Str("capacitance", util.FormatValueFactor(cfg.Bank.Capacitance, "F")).
		Str("resistance", util.FormatValueFactor(totalR, "Ohm")).
		Msg("coil parameters")

	log.Info().
		Str("regime", analytic.Regime().String()).
		Float64("damping_ratio", analytic.DampingRatio()).
		Str("natural_frequency", util.FormatFrequency(analytic.NaturalFrequency()/(2*math.Pi))).
		Str("estimated_peak_current", util.FormatValueFactor(analytic.PeakCurrent(), "A")).
		Msg("discharge regime")

	step := cfg.Sim.TimeStep
	if suggested := analytic.SuggestTimeStep(); suggested < step {
		log.Debug().Float64("suggested", suggested).Msg("tightening time step to resolve waveform")
		step = suggested
	}

	ckt, err := circuit.NewDischarge("pcb coil discharge", circuit.Params{
		Resistance:  totalR,
		Inductance:  derived.Inductance,
		Capacitance: cfg.Bank.Capacitance,
		BankVoltage: cfg.Bank.InitialVoltage,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("building discharge network")
	}
	defer ckt.Destroy()

	tran := analysis.NewTransient(0, cfg.Sim.StopTime, step, cfg.Sim.MaxStep)
	if err := tran.Setup(ckt); err != nil {
		log.Fatal().Err(err).Msg("transient setup")
	}
	if err := tran.Execute(); err != nil {
		log.Fatal().Err(err).Msg("transient analysis")
	}

	series, err := waveform.FromResults(tran.GetResults(), derived.FieldCoeff)
	if err != nil {
		log.Fatal().Err(err).Msg("extracting waveforms")
	}

	peakCurrent, peakCurrentTime := series.PeakCurrent()
	peakField, peakFieldTime := series.PeakField()
	log.Info().
		Int("samples", series.Len()).
		Str("peak_current", util.FormatValueFactor(peakCurrent, "A")).
		Str("peak_current_time", util.FormatValueFactor(peakCurrentTime, "s")).
		Str("peak_field", util.FormatValueFactor(peakField, "T")).
		Float64("peak_field_gauss", peakField*consts.GAUSSPERT).
		Str("peak_field_time", util.FormatValueFactor(peakFieldTime, "s")).
		Msg("discharge simulated")

	if err := plot.SaveField(series, cfg.Output.FieldPlot); err != nil {
		log.Fatal().Err(err).Msg("rendering field plot")
	}
	if err := plot.SaveCurrent(series, cfg.Output.CurrentPlot); err != nil {
		log.Fatal().Err(err).Msg("rendering current plot")
	}
	log.Info().
		Str("field_plot", cfg.Output.FieldPlot).
		Str("current_plot", cfg.Output.CurrentPlot).
		Msg("plots written")

	if cfg.Output.CSVPath != "" {
		if err := series.SaveCSV(cfg.Output.CSVPath); err != nil {
			log.Fatal().Err(err).Msg("exporting CSV")
		}
		log.Info().Str("csv", cfg.Output.CSVPath).Msg("time series exported")
	}
}
