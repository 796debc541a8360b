// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/bbzsolar/solar-roof-map/pkg/solar"
	"github.com/bbzsolar/solar-roof-map/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SOLAR_CALCULATION_PRICEPERKWH.
const EnvPrefix = "SOLAR"

// Configuration holds all configuration for the dashboard.
type Configuration struct {
	Company       Company       `mapstructure:"company" yaml:"company" json:"company"`
	Notifications Notifications `mapstructure:"notifications" yaml:"notifications" json:"notifications"`
	Panels        []PanelModel  `mapstructure:"panels" yaml:"panels" json:"panels"`
	Calculation   Calculation   `mapstructure:"calculation" yaml:"calculation" json:"calculation"`
	Integrations  Integrations  `mapstructure:"integrations" yaml:"integrations" json:"integrations"`
	Logging       LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty" json:"-"`
	Output        OutputConfig  `mapstructure:"output" yaml:"output,omitempty" json:"-"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
}

// Company is printed on proposals and documents.
type Company struct {
	Name    string `mapstructure:"name" yaml:"name" json:"name"`
	Email   string `mapstructure:"email" yaml:"email" json:"email"`
	Phone   string `mapstructure:"phone" yaml:"phone" json:"phone"`
	CNPJ    string `mapstructure:"cnpj" yaml:"cnpj" json:"cnpj"`
	Address string `mapstructure:"address" yaml:"address" json:"address"`
}

// Notifications toggles the e-mail notifications offered by the settings page.
type Notifications struct {
	ProposalApproved  bool `mapstructure:"proposalApproved" yaml:"proposalApproved" json:"proposalApproved"`
	ProposalReminders bool `mapstructure:"proposalReminders" yaml:"proposalReminders" json:"proposalReminders"`
	WeeklySummary     bool `mapstructure:"weeklySummary" yaml:"weeklySummary" json:"weeklySummary"`
}

// PanelModel is a module the company installs. Dimensions are in mm and
// Efficiency is a percentage as printed on the datasheet.
type PanelModel struct {
	Name       string  `mapstructure:"name" yaml:"name" json:"name"`
	PowerW     float64 `mapstructure:"powerW" yaml:"powerW" json:"powerW"`
	WidthMm    float64 `mapstructure:"widthMm" yaml:"widthMm" json:"widthMm"`
	HeightMm   float64 `mapstructure:"heightMm" yaml:"heightMm" json:"heightMm"`
	DepthMm    float64 `mapstructure:"depthMm" yaml:"depthMm" json:"depthMm"`
	Efficiency float64 `mapstructure:"efficiency" yaml:"efficiency" json:"efficiency"`
	Active     bool    `mapstructure:"active" yaml:"active" json:"active"`
}

// Size returns the module footprint for panel-count estimates.
func (p PanelModel) Size() solar.PanelSize {
	return solar.PanelSize{WidthMm: p.WidthMm, HeightMm: p.HeightMm}
}

// EfficiencyFraction converts the datasheet percentage into a fraction.
func (p PanelModel) EfficiencyFraction() float64 {
	return p.Efficiency / 100
}

// Calculation holds the parameters from the "Cálculos" settings tab.
// DefaultIrradiance and SystemEfficiency are informational; the estimator
// uses its fixed regional table and derating factor.
type Calculation struct {
	DefaultIrradiance float64 `mapstructure:"defaultIrradiance" yaml:"defaultIrradiance" json:"defaultIrradiance"`
	SystemEfficiency  float64 `mapstructure:"systemEfficiency" yaml:"systemEfficiency" json:"systemEfficiency"`
	PricePerKWh       float64 `mapstructure:"pricePerKWh" yaml:"pricePerKWh" json:"pricePerKWh"`
	PanelEfficiency   float64 `mapstructure:"panelEfficiency" yaml:"panelEfficiency" json:"panelEfficiency"`
}

// Integrations holds API keys for services that are not wired up yet, plus
// the public Mapbox token used by the heatmap.
type Integrations struct {
	GoogleMapsAPIKey string `mapstructure:"googleMapsApiKey" yaml:"googleMapsApiKey" json:"googleMapsApiKey"`
	NRELAPIKey       string `mapstructure:"nrelApiKey" yaml:"nrelApiKey" json:"nrelApiKey"`
	NASAPowerAPIKey  string `mapstructure:"nasaPowerApiKey" yaml:"nasaPowerApiKey" json:"nasaPowerApiKey"`
	MapboxToken      string `mapstructure:"mapboxToken" yaml:"mapboxToken" json:"mapboxToken"`
}

// DefaultPanelModels returns the modules listed on the settings page.
func DefaultPanelModels() []PanelModel {
	return []PanelModel{
		{
			Name:       "Canadian Solar CS3N-400MS",
			PowerW:     400,
			WidthMm:    1048,
			HeightMm:   1765,
			DepthMm:    40,
			Efficiency: 21.6,
			Active:     true,
		},
		{
			Name:       "Jinko Solar Tiger Neo N-type 455W",
			PowerW:     455,
			WidthMm:    1134,
			HeightMm:   1903,
			DepthMm:    30,
			Efficiency: 22.3,
			Active:     true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("company.name", "BBZ Solar")
	v.SetDefault("company.email", "contato@bbzsolar.com")
	v.SetDefault("company.phone", "(11) 9876-5432")
	v.SetDefault("company.cnpj", "12.345.678/0001-90")
	v.SetDefault("company.address", "Av. Paulista, 1000 - Bela Vista, São Paulo - SP, 01310-100")

	v.SetDefault("notifications.proposalApproved", true)
	v.SetDefault("notifications.proposalReminders", true)
	v.SetDefault("notifications.weeklySummary", false)

	v.SetDefault("calculation.defaultIrradiance", 5.5)
	v.SetDefault("calculation.systemEfficiency", 85.0)
	v.SetDefault("calculation.pricePerKWh", 0.92)
	v.SetDefault("calculation.panelEfficiency", solar.DefaultEfficiency)

	v.SetDefault("integrations.googleMapsApiKey", "")
	v.SetDefault("integrations.nrelApiKey", "")
	v.SetDefault("integrations.nasaPowerApiKey", "")
	v.SetDefault("integrations.mapboxToken", "")

	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if len(configuration.Panels) == 0 {
		configuration.Panels = DefaultPanelModels()
	}
	return &configuration, nil
}

// Default returns the configuration used when no file is provided.
func Default() *Configuration {
	conf, err := decode(newViper())
	if err != nil {
		// Defaults are static; a decode failure is a programming error.
		panic(err)
	}
	return conf
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// LoadOrDefault loads configPath, returning defaults when the file does not
// exist.
func LoadOrDefault(configPath string) (*Configuration, error) {
	if configPath == "" {
		return Default(), nil
	}
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return LoadConfiguration(configPath)
}

// PanelByName looks up a panel model, case-insensitively.
func (c *Configuration) PanelByName(name string) (PanelModel, bool) {
	for _, panel := range c.Panels {
		if strings.EqualFold(panel.Name, strings.TrimSpace(name)) {
			return panel, true
		}
	}
	return PanelModel{}, false
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if w := validation.ValidateEfficiency("panel", c.Calculation.PanelEfficiency); w != "" {
		warnings = append(warnings, w)
	}
	if w := validation.ValidateEfficiency("system", c.Calculation.SystemEfficiency/100); w != "" {
		warnings = append(warnings, w)
	}
	if w := validation.ValidateElectricityRate(c.Calculation.PricePerKWh); w != "" {
		warnings = append(warnings, w)
	}

	for _, panel := range c.Panels {
		if w := validation.ValidatePanelDimensions(panel.Name, panel.WidthMm, panel.HeightMm); w != "" {
			warnings = append(warnings, w)
		}
	}

	if token := c.Integrations.MapboxToken; token != "" {
		if err := validation.ValidateMapboxToken(token); err != nil {
			warnings = append(warnings, fmt.Sprintf("Mapbox token ignored: %v", err))
		}
	}

	return warnings
}
