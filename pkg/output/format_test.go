package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bbzsolar/solar-roof-map/internal/dashboard"
	"github.com/bbzsolar/solar-roof-map/pkg/solar"
	"github.com/shopspring/decimal"
)

func sampleProjects() []dashboard.Project {
	return []dashboard.Project{
		{
			ID:              "1",
			Name:            "Residência Silva",
			Client:          "João Silva",
			Address:         "Av. Paulista, 123 - São Paulo, SP",
			CreatedAt:       "12/04/2025",
			Status:          dashboard.ProjectInProgress,
			EnergyPotential: 15.7,
			Panels:          12,
			RoofArea:        32,
		},
	}
}

func sampleEstimate() solar.Estimate {
	payback := 7.2
	return solar.Estimate{
		Region:            solar.RegionNordeste,
		BaseIrradiance:    5.9,
		DailyPotentialKWh: 13.4,
		PanelCount:        10,
		AnnualSavings:     4499.72,
		PaybackYears:      &payback,
	}
}

func TestPrettyProjects(t *testing.T) {
	var buf bytes.Buffer
	PrettyProjects(&buf, sampleProjects())
	output := buf.String()

	if !strings.Contains(output, "--- Projects (1) ---") {
		t.Errorf("PrettyProjects missing header")
	}
	if !strings.Contains(output, "ID | Name | Client | Created | Status | Potential | Panels | Roof") {
		t.Errorf("PrettyProjects missing table header")
	}
	if !strings.Contains(output, "1 | Residência Silva | João Silva | 12/04/2025 | Em andamento | 15.7 kWh/dia | 12 | 32m²") {
		t.Errorf("PrettyProjects missing project row:\n%s", output)
	}
}

func TestCsvProjects(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvProjects(&buf, sampleProjects()); err != nil {
		t.Fatalf("CsvProjects() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "id,name,client,address,createdAt,status,energyPotential,panels,roofArea" {
		t.Errorf("unexpected header %q", lines[0])
	}
	expected := `1,Residência Silva,João Silva,"Av. Paulista, 123 - São Paulo, SP",12/04/2025,in_progress,15.7,12,32`
	if lines[1] != expected {
		t.Errorf("unexpected row\n got: %s\nwant: %s", lines[1], expected)
	}
}

func TestPrettyProposals(t *testing.T) {
	roi := 3.2
	proposals := []dashboard.Proposal{
		{ID: "1", ProjectName: "Residência Silva", Client: "João Silva", CreatedAt: "12/04/2025", ExpiresAt: "12/05/2025",
			Status: dashboard.ProposalSent, Value: decimal.NewFromInt(32500), ROI: &roi, Panels: 12},
		{ID: "2", ProjectName: "Sem retorno", Client: "X", Status: dashboard.ProposalDraft, Value: decimal.NewFromInt(1000)},
	}

	var buf bytes.Buffer
	PrettyProposals(&buf, proposals)
	output := buf.String()

	if !strings.Contains(output, "| Enviada | R$ 32.500,00 | 3.2 anos | 12") {
		t.Errorf("PrettyProposals missing first row:\n%s", output)
	}
	if !strings.Contains(output, "| Rascunho | R$ 1.000,00 | undefined | 0") {
		t.Errorf("PrettyProposals missing undefined ROI:\n%s", output)
	}

	buf.Reset()
	if err := CsvProposals(&buf, proposals); err != nil {
		t.Fatalf("CsvProposals() error = %v", err)
	}
	if !strings.Contains(buf.String(), "sent,32500.00,3.2,12") {
		t.Errorf("CsvProposals missing values:\n%s", buf.String())
	}
}

func TestPrettyEstimate(t *testing.T) {
	var buf bytes.Buffer
	PrettyEstimate(&buf, sampleEstimate())
	output := buf.String()

	for _, want := range []string{
		"Region           | nordeste (5.9 kWh/m²/day)",
		"Daily potential  | 13.4 kWh/dia",
		"Panels           | 10",
		"Annual savings   | R$ 4.499,72",
		"Payback          | 7.2 anos",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyEstimate missing %q:\n%s", want, output)
		}
	}

	est := sampleEstimate()
	est.PaybackYears = nil
	buf.Reset()
	PrettyEstimate(&buf, est)
	if !strings.Contains(buf.String(), "Payback          | undefined") {
		t.Errorf("PrettyEstimate should report undefined payback")
	}
}

func TestCsvEstimate(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvEstimate(&buf, sampleEstimate()); err != nil {
		t.Fatalf("CsvEstimate() error = %v", err)
	}
	expected := "region,baseIrradiance,dailyPotentialKWh,panelCount,annualSavings,paybackYears\nnordeste,5.9,13.4,10,4499.72,7.2\n"
	if buf.String() != expected {
		t.Errorf("CsvEstimate() = %q, expected %q", buf.String(), expected)
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		value     interface{}
		contains  string
		expectErr bool
	}{
		{name: "pretty projects", format: "pretty", value: sampleProjects(), contains: "--- Projects (1) ---"},
		{name: "default is pretty", format: "", value: sampleEstimate(), contains: "--- Solar estimate ---"},
		{name: "csv estimate", format: "csv", value: sampleEstimate(), contains: "nordeste,5.9"},
		{name: "json estimate", format: "json", value: sampleEstimate(), contains: `"dailyPotentialKWh": 13.4`},
		{name: "json fallback for other types", format: "pretty", value: map[string]int{"count": 3}, contains: `"count": 3`},
		{name: "unknown format", format: "xml", value: sampleEstimate(), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.format, tt.value)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Write() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("Write() output missing %q:\n%s", tt.contains, buf.String())
			}
		})
	}
}
