// Package output provides utilities for formatting and displaying projects,
// proposals and estimates on the command line.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/bbzsolar/solar-roof-map/internal/dashboard"
	"github.com/bbzsolar/solar-roof-map/pkg/constants"
	"github.com/bbzsolar/solar-roof-map/pkg/format"
	"github.com/bbzsolar/solar-roof-map/pkg/solar"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyProjects outputs a human-readable table of projects.
func PrettyProjects(w io.Writer, projects []dashboard.Project) {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "--- Projects (%d) ---\n", len(projects))
	_, _ = fmt.Fprintf(w, "ID | Name | Client | Created | Status | Potential | Panels | Roof\n")
	_, _ = fmt.Fprintf(w, "__ | ____ | ______ | _______ | ______ | _________ | ______ | ____\n")
	for _, project := range projects {
		_, _ = p.Fprintf(w, "%s | %s | %s | %s | %s | %s | %d | %s\n",
			project.ID,
			project.Name,
			project.Client,
			project.CreatedAt,
			dashboard.StatusLabel(string(project.Status)),
			format.Energy(project.EnergyPotential),
			project.Panels,
			format.Area(project.RoofArea),
		)
	}
}

// CsvProjects outputs projects in comma-separated value format.
func CsvProjects(w io.Writer, projects []dashboard.Project) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "name", "client", "address", "createdAt", "status", "energyPotential", "panels", "roofArea"})
	for _, project := range projects {
		_ = cw.Write([]string{
			project.ID,
			project.Name,
			project.Client,
			project.Address,
			project.CreatedAt,
			string(project.Status),
			strconv.FormatFloat(project.EnergyPotential, 'f', -1, 64),
			strconv.Itoa(project.Panels),
			strconv.FormatFloat(project.RoofArea, 'f', -1, 64),
		})
	}
	cw.Flush()
	return cw.Error()
}

// PrettyProposals outputs a human-readable table of proposals.
func PrettyProposals(w io.Writer, proposals []dashboard.Proposal) {
	_, _ = fmt.Fprintf(w, "--- Proposals (%d) ---\n", len(proposals))
	_, _ = fmt.Fprintf(w, "ID | Project | Client | Created | Expires | Status | Value | ROI | Panels\n")
	_, _ = fmt.Fprintf(w, "__ | _______ | ______ | _______ | _______ | ______ | _____ | ___ | ______\n")
	for _, proposal := range proposals {
		_, _ = fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s | %s | %d\n",
			proposal.ID,
			proposal.ProjectName,
			proposal.Client,
			proposal.CreatedAt,
			proposal.ExpiresAt,
			dashboard.StatusLabel(string(proposal.Status)),
			format.Currency(proposal.Value),
			roiText(proposal.ROI),
			proposal.Panels,
		)
	}
}

// CsvProposals outputs proposals in comma-separated value format.
func CsvProposals(w io.Writer, proposals []dashboard.Proposal) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "projectId", "projectName", "client", "createdAt", "expiresAt", "status", "value", "roi", "panels"})
	for _, proposal := range proposals {
		roi := ""
		if proposal.ROI != nil {
			roi = strconv.FormatFloat(*proposal.ROI, 'f', -1, 64)
		}
		_ = cw.Write([]string{
			proposal.ID,
			proposal.ProjectID,
			proposal.ProjectName,
			proposal.Client,
			proposal.CreatedAt,
			proposal.ExpiresAt,
			string(proposal.Status),
			proposal.Value.StringFixed(2),
			roi,
			strconv.Itoa(proposal.Panels),
		})
	}
	cw.Flush()
	return cw.Error()
}

// PrettyEstimate outputs a single estimate as labelled lines.
func PrettyEstimate(w io.Writer, est solar.Estimate) {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "--- Solar estimate ---\n")
	_, _ = p.Fprintf(w, "Region           | %s (%.1f kWh/m²/day)\n", est.Region, est.BaseIrradiance)
	_, _ = p.Fprintf(w, "Daily potential  | %s\n", format.Energy(est.DailyPotentialKWh))
	_, _ = p.Fprintf(w, "Panels           | %d\n", est.PanelCount)
	_, _ = p.Fprintf(w, "Annual savings   | %s\n", format.Currency(decimal.NewFromFloat(est.AnnualSavings).Round(2)))
	_, _ = p.Fprintf(w, "Payback          | %s\n", roiText(est.PaybackYears))
}

// CsvEstimate outputs an estimate as a header row and a value row.
func CsvEstimate(w io.Writer, est solar.Estimate) error {
	payback := ""
	if est.PaybackYears != nil {
		payback = strconv.FormatFloat(*est.PaybackYears, 'f', -1, 64)
	}
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"region", "baseIrradiance", "dailyPotentialKWh", "panelCount", "annualSavings", "paybackYears"})
	_ = cw.Write([]string{
		string(est.Region),
		strconv.FormatFloat(est.BaseIrradiance, 'f', -1, 64),
		strconv.FormatFloat(est.DailyPotentialKWh, 'f', -1, 64),
		strconv.Itoa(est.PanelCount),
		strconv.FormatFloat(est.AnnualSavings, 'f', 2, 64),
		payback,
	})
	cw.Flush()
	return cw.Error()
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Write dispatches on the output format. Pretty and CSV renderers are chosen by
// the concrete type of v; anything else is written as JSON.
func Write(w io.Writer, outputFormat string, v interface{}) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		return JSON(w, v)
	case constants.OutputFormatCSV:
		switch value := v.(type) {
		case []dashboard.Project:
			return CsvProjects(w, value)
		case []dashboard.Proposal:
			return CsvProposals(w, value)
		case solar.Estimate:
			return CsvEstimate(w, value)
		}
	case constants.OutputFormatPretty, "":
		switch value := v.(type) {
		case []dashboard.Project:
			PrettyProjects(w, value)
			return nil
		case []dashboard.Proposal:
			PrettyProposals(w, value)
			return nil
		case solar.Estimate:
			PrettyEstimate(w, value)
			return nil
		}
	default:
		return fmt.Errorf("unsupported output format '%s'", outputFormat)
	}
	return JSON(w, v)
}

func roiText(years *float64) string {
	if years == nil {
		return "undefined"
	}
	return format.Years(*years)
}
