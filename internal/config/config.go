// Package config loads the simulation parameters. Every value has a default
// matching the reference coil design, can be overridden from an optional
// pulsecoil config file, and from environment variables on top of that.
// Electrical values accept engineering suffixes ("10m", "100u").
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/edp1096/pulsecoil/pkg/util"
)

// Config holds all configuration for the simulator
type Config struct {
	Coil   CoilConfig
	Bank   BankConfig
	Sim    SimConfig
	Output OutputConfig
}

// CoilConfig holds the coil geometry. Lengths are in millimeters.
type CoilConfig struct {
	TraceThickness float64
	TraceWidth     float64
	TraceSpacing   float64
	SeriesTurns    int
	BoardCount     int
	OuterDiameter  float64
	InnerDiameter  float64
}

// BankConfig holds the capacitor bank and switch parameters.
type BankConfig struct {
	Capacitance      float64 // F
	SwitchResistance float64 // ohm
	InitialVoltage   float64 // V
}

// SimConfig holds the transient run span and stepping.
type SimConfig struct {
	StopTime float64 // s
	TimeStep float64 // s
	MaxStep  float64 // s
}

// OutputConfig holds the artifact paths. Empty CSVPath disables the export.
type OutputConfig struct {
	CurrentPlot string
	FieldPlot   string
	CSVPath     string
}

// Load loads configuration from defaults, an optional config file and
// environment variables.
func Load() (*Config, error) {
	// Reference design: 2 oz copper (2 x 0.0348 mm), 1.75 mm traces with
	// 0.25 mm spacing, 2 series windings over 10 boards, 10 mF bank charged
	// to 48 V behind a 10 mOhm MOSFET.
	viper.SetDefault("TRACE_THICKNESS", "0.0696")
	viper.SetDefault("TRACE_WIDTH", "1.75")
	viper.SetDefault("TRACE_SPACING", "0.25")
	viper.SetDefault("SERIES_TURNS", 2)
	viper.SetDefault("BOARD_COUNT", 10)
	viper.SetDefault("OUTER_DIAMETER", "100")
	viper.SetDefault("INNER_DIAMETER", "20")
	viper.SetDefault("BANK_CAPACITANCE", "10m")
	viper.SetDefault("SWITCH_RESISTANCE", "10m")
	viper.SetDefault("BANK_VOLTAGE", "48")
	viper.SetDefault("SIM_STOP", "10m")
	viper.SetDefault("SIM_STEP", "10u")
	viper.SetDefault("SIM_MAX_STEP", "")
	viper.SetDefault("CURRENT_PLOT", "current.png")
	viper.SetDefault("FIELD_PLOT", "field.png")
	viper.SetDefault("CSV_PATH", "")

	viper.SetConfigName("pulsecoil")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Config file is optional.
	_ = viper.ReadInConfig()

	// Environment variables override file values.
	viper.AutomaticEnv()

	var config Config
	var err error

	if config.Coil.TraceThickness, err = parse("TRACE_THICKNESS"); err != nil {
		return nil, err
	}
	if config.Coil.TraceWidth, err = parse("TRACE_WIDTH"); err != nil {
		return nil, err
	}
	if config.Coil.TraceSpacing, err = parse("TRACE_SPACING"); err != nil {
		return nil, err
	}
	config.Coil.SeriesTurns = viper.GetInt("SERIES_TURNS")
	config.Coil.BoardCount = viper.GetInt("BOARD_COUNT")
	if config.Coil.OuterDiameter, err = parse("OUTER_DIAMETER"); err != nil {
		return nil, err
	}
	if config.Coil.InnerDiameter, err = parse("INNER_DIAMETER"); err != nil {
		return nil, err
	}

	if config.Bank.Capacitance, err = parse("BANK_CAPACITANCE"); err != nil {
		return nil, err
	}
	if config.Bank.SwitchResistance, err = parse("SWITCH_RESISTANCE"); err != nil {
		return nil, err
	}
	if config.Bank.InitialVoltage, err = parse("BANK_VOLTAGE"); err != nil {
		return nil, err
	}

	if config.Sim.StopTime, err = parse("SIM_STOP"); err != nil {
		return nil, err
	}
	if config.Sim.TimeStep, err = parse("SIM_STEP"); err != nil {
		return nil, err
	}
	if maxStep := viper.GetString("SIM_MAX_STEP"); maxStep != "" {
		if config.Sim.MaxStep, err = parse("SIM_MAX_STEP"); err != nil {
			return nil, err
		}
	}

	config.Output.CurrentPlot = viper.GetString("CURRENT_PLOT")
	config.Output.FieldPlot = viper.GetString("FIELD_PLOT")
	config.Output.CSVPath = viper.GetString("CSV_PATH")

	return &config, nil
}

func parse(key string) (float64, error) {
	value, err := util.ParseValue(viper.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("config %s: %v", key, err)
	}
	return value, nil
}
