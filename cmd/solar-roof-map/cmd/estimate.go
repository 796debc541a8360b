package cmd

import (
	"errors"
	"fmt"

	"github.com/bbzsolar/solar-roof-map/internal/config"
	"github.com/bbzsolar/solar-roof-map/pkg/constants"
	"github.com/bbzsolar/solar-roof-map/pkg/format"
	"github.com/bbzsolar/solar-roof-map/pkg/output"
	"github.com/bbzsolar/solar-roof-map/pkg/solar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// estimateFlags are the inputs shared by estimate, panels and roi.
type estimateFlags struct {
	latitude    float64
	longitude   float64
	area        float64
	tilt        float64
	orientation float64
	efficiency  float64
	panelModel  string
	cost        float64
	rate        float64
}

var estimateOpts estimateFlags

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate solar potential, panel count and payback for a roof",
	Long: `Estimate the daily production of a roof, how many panels fit on it and how
long the installation takes to pay for itself.

Examples:
  solar-roof-map estimate --lat -23.55 --lng -46.63 --area 32 --cost 32500
  solar-roof-map estimate --lat -10.5 --lng -55 --area 100 --tilt 10 --orientation 90
  solar-roof-map estimate --area 48 --panel-model "Jinko Solar Tiger Neo N-type 455W" --output-format json`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.Float64Var(&estimateOpts.latitude, "lat", constants.DefaultMapLatitude, "roof latitude in degrees")
	f.Float64Var(&estimateOpts.longitude, "lng", constants.DefaultMapLongitude, "roof longitude in degrees")
	f.Float64Var(&estimateOpts.area, "area", 0, "usable roof area in m²")
	f.Float64Var(&estimateOpts.tilt, "tilt", solar.DefaultTiltDegrees, "roof tilt in degrees")
	f.Float64Var(&estimateOpts.orientation, "orientation", solar.DefaultOrientationDegrees, "roof bearing in degrees, 0 is north")
	f.Float64Var(&estimateOpts.efficiency, "efficiency", 0, "panel efficiency as a fraction (default from configuration)")
	f.StringVar(&estimateOpts.panelModel, "panel-model", "", "configured panel model to size and rate the installation with")
	f.Float64Var(&estimateOpts.cost, "cost", 0, "installation cost in R$")
	f.Float64Var(&estimateOpts.rate, "rate", 0, "electricity price in R$/kWh (default from configuration)")
	_ = estimateCmd.MarkFlagRequired("area")
}

// buildRequest merges the flags over the configured calculation settings.
// An explicit --efficiency wins over the panel model's datasheet value.
func buildRequest(c *config.Configuration, opts estimateFlags, changed func(string) bool) (solar.Request, error) {
	req := solar.Request{
		Position: solar.GeoPosition{Latitude: opts.latitude, Longitude: opts.longitude},
		Roof: solar.Roof{
			AreaSqM:            opts.area,
			TiltDegrees:        opts.tilt,
			OrientationDegrees: opts.orientation,
		},
		Efficiency:       c.Calculation.PanelEfficiency,
		Panel:            solar.DefaultPanel,
		InstallationCost: opts.cost,
		ElectricityRate:  c.Calculation.PricePerKWh,
	}

	if opts.panelModel != "" {
		model, ok := c.PanelByName(opts.panelModel)
		if !ok {
			return req, fmt.Errorf("unknown panel model '%s'", opts.panelModel)
		}
		req.Panel = model.Size()
		req.Efficiency = model.EfficiencyFraction()
	}
	if changed("efficiency") {
		req.Efficiency = opts.efficiency
	}
	if changed("rate") {
		req.ElectricityRate = opts.rate
	}
	if req.Roof.AreaSqM <= 0 {
		return req, errors.New("roof area must be greater than zero")
	}
	return req, nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(conf, estimateOpts, cmd.Flags().Changed)
	if err != nil {
		return fail("cmd.runEstimate", err)
	}

	est, err := solar.EstimateInstallation(req)
	if err != nil {
		return fail("cmd.runEstimate", fmt.Errorf("failed to compute estimate: %w", err))
	}
	logger.Debug("estimate computed",
		zap.String("op", "cmd.runEstimate"),
		zap.String("region", string(est.Region)),
		zap.Float64("dailyPotentialKWh", est.DailyPotentialKWh),
	)

	return output.Write(cmd.OutOrStdout(), outputFormat, est)
}

var (
	panelArea  float64
	panelModel string
)

// panelsCmd represents the panels command
var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "Count how many panels fit on a roof",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		panel := solar.DefaultPanel
		if panelModel != "" {
			model, ok := conf.PanelByName(panelModel)
			if !ok {
				return fail("cmd.panels", fmt.Errorf("unknown panel model '%s'", panelModel))
			}
			panel = model.Size()
		}

		count := solar.EstimatePanelCount(panelArea, panel)
		if outputFormat == constants.OutputFormatPretty {
			fmt.Fprintf(cmd.OutOrStdout(), "%d panels fit on %s\n", count, format.Area(panelArea))
			return nil
		}
		return output.JSON(cmd.OutOrStdout(), map[string]interface{}{
			"areaSqM":    panelArea,
			"panelCount": count,
		})
	},
}

var (
	roiDaily float64
	roiCost  float64
	roiRate  float64
)

// roiCmd represents the roi command
var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Compute the payback period of an installation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		years, err := solar.CalculateROI(roiDaily, roiCost, roiRate)
		if err != nil && !errors.Is(err, solar.ErrUndefinedPayback) {
			return fail("cmd.roi", err)
		}

		result := map[string]interface{}{
			"dailyKWh":      roiDaily,
			"annualSavings": solar.AnnualSavings(roiDaily, roiRate),
			"paybackYears":  nil,
		}
		if err == nil {
			result["paybackYears"] = years
		}

		if outputFormat == constants.OutputFormatPretty {
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Payback: undefined (no savings)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Payback: %s\n", format.Years(years))
			return nil
		}
		return output.JSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	panelsCmd.Flags().Float64Var(&panelArea, "area", 0, "usable roof area in m²")
	panelsCmd.Flags().StringVar(&panelModel, "panel-model", "", "configured panel model (default 1000x1700 mm)")
	_ = panelsCmd.MarkFlagRequired("area")

	roiCmd.Flags().Float64Var(&roiDaily, "daily", 0, "daily production in kWh")
	roiCmd.Flags().Float64Var(&roiCost, "cost", 0, "installation cost in R$")
	roiCmd.Flags().Float64Var(&roiRate, "rate", solar.DefaultElectricityRate, "electricity price in R$/kWh")
	_ = roiCmd.MarkFlagRequired("daily")
}
