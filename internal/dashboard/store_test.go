package dashboard

import (
	"testing"
	"time"

	"github.com/bbzsolar/solar-roof-map/internal/config"
	"github.com/bbzsolar/solar-roof-map/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(zap.NewNop(), DefaultPricing())
	s.now = func() time.Time { return time.Date(2025, time.April, 20, 9, 0, 0, 0, time.UTC) }
	return s
}

func ids(projects []Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestListProjects(t *testing.T) {
	tests := []struct {
		name    string
		filter  ProjectFilter
		want    []string
		wantErr error
	}{
		{name: "default is recent first", filter: ProjectFilter{}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "oldest first", filter: ProjectFilter{Sort: SortOldest}, want: []string{"5", "4", "3", "2", "1"}},
		{name: "name A-Z", filter: ProjectFilter{Sort: SortName}, want: []string{"2", "5", "4", "1", "3"}},
		{name: "energy descending", filter: ProjectFilter{Sort: SortEnergy}, want: []string{"5", "4", "2", "1", "3"}},
		{name: "status filter", filter: ProjectFilter{Status: "in_progress"}, want: []string{"1", "4"}},
		{name: "all statuses", filter: ProjectFilter{Status: "all"}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "search by address", filter: ProjectFilter{Search: "CAMPINAS"}, want: []string{"3", "5"}},
		{name: "search by client", filter: ProjectFilter{Search: "silva"}, want: []string{"1"}},
		{name: "search and status", filter: ProjectFilter{Search: "campinas", Status: "draft", Sort: SortEnergy}, want: []string{"5", "3"}},
		{name: "no matches", filter: ProjectFilter{Search: "rio de janeiro"}, want: []string{}},
		{name: "unknown status", filter: ProjectFilter{Status: "archived"}, wantErr: ErrInvalidFilter},
		{name: "unknown sort", filter: ProjectFilter{Sort: "size"}, wantErr: ErrInvalidFilter},
	}

	s := newTestStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListProjects(tt.filter)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRecentProjects(t *testing.T) {
	s := newTestStore(t)

	recent, err := s.RecentProjects(TabRecent)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(recent))

	inProgress, err := s.RecentProjects(TabInProgress)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4"}, ids(inProgress))

	completed, err := s.RecentProjects(TabCompleted)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(completed))

	_, err = s.RecentProjects("arquivados")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestProjectLookup(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Project("2")
	require.NoError(t, err)
	assert.Equal(t, "Comércio Flores", p.Name)
	assert.NotEmpty(t, p.ThumbnailURL)

	_, err = s.Project("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProject(t *testing.T) {
	s := newTestStore(t)

	p, err := s.CreateProject(NewProject{
		Name:      "  Casa Nova ",
		Client:    "Ana Souza",
		Address:   "Rua Oscar Freire, 10 - São Paulo, SP",
		Latitude:  -23.55,
		Longitude: -46.63,
		RoofArea:  32,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Casa Nova", p.Name)
	assert.Equal(t, ProjectDraft, p.Status)
	assert.Equal(t, "20/04/2025", p.CreatedAt)
	assert.InDelta(t, 13.4, p.EnergyPotential, 1e-9)
	assert.Equal(t, 10, p.Panels)

	recent, err := s.RecentProjects(TabRecent)
	require.NoError(t, err)
	assert.Equal(t, p.ID, recent[0].ID)
	assert.Len(t, recent, RecentLimit)

	stored, err := s.Project(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestCreateProjectCustomRoof(t *testing.T) {
	s := newTestStore(t)
	tilt, orientation := 10.0, 90.0

	p, err := s.CreateProject(NewProject{
		Name: "Galpão", Client: "Norte Ltda", Address: "Rodovia BR-364",
		Latitude: -10.5, Longitude: -55, RoofArea: 100,
		TiltDegrees: &tilt, OrientationDegrees: &orientation,
	})
	require.NoError(t, err)
	assert.InDelta(t, 44.7, p.EnergyPotential, 1e-9)
	assert.Equal(t, 34, p.Panels)
}

func TestCreateProjectValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateProject(NewProject{Name: "Sem área", Client: "X", Address: "Y"})
	require.ErrorIs(t, err, validation.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "RoofArea")

	_, err = s.CreateProject(NewProject{Client: "X", Address: "Y", RoofArea: 10, Latitude: -95})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "Latitude")

	all, err := s.ListProjects(ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestListProposals(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		tab  string
		want []string
	}{
		{tab: "", want: []string{"1", "2", "3", "4", "5"}},
		{tab: "all", want: []string{"1", "2", "3", "4", "5"}},
		{tab: "sent", want: []string{"1", "4"}},
		{tab: "approved", want: []string{"2"}},
		{tab: "draft", want: []string{"3"}},
	}
	for _, tt := range tests {
		t.Run("tab "+tt.tab, func(t *testing.T) {
			got, err := s.ListProposals(tt.tab)
			require.NoError(t, err)
			gotIDs := make([]string, 0, len(got))
			for _, p := range got {
				gotIDs = append(gotIDs, p.ID)
			}
			assert.Equal(t, tt.want, gotIDs)
		})
	}

	_, err := s.ListProposals("expired")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestSendProposal(t *testing.T) {
	s := newTestStore(t)

	p, err := s.SendProposal("1")
	require.NoError(t, err)
	assert.Equal(t, ProposalSent, p.Status)

	_, err = s.SendProposal("2")
	assert.NoError(t, err)

	_, err = s.SendProposal("3")
	assert.ErrorIs(t, err, ErrNotSendable)

	_, err = s.SendProposal("5")
	assert.ErrorIs(t, err, ErrNotSendable)

	_, err = s.SendProposal("99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewProposalForProject(t *testing.T) {
	s := newTestStore(t)

	p, err := s.NewProposalForProject("1", decimal.NewFromInt(32500))
	require.NoError(t, err)

	assert.Equal(t, "1", p.ProjectID)
	assert.Equal(t, "Residência Silva", p.ProjectName)
	assert.Equal(t, "João Silva", p.Client)
	assert.Equal(t, ProposalDraft, p.Status)
	assert.Equal(t, "20/04/2025", p.CreatedAt)
	assert.Equal(t, "20/05/2025", p.ExpiresAt)
	assert.Equal(t, 12, p.Panels)
	require.NotNil(t, p.ROI)
	assert.InDelta(t, 6.2, *p.ROI, 1e-9)

	drafts, err := s.ListProposals("draft")
	require.NoError(t, err)
	assert.Equal(t, p.ID, drafts[0].ID)
}

func TestNewProposalUndefinedPayback(t *testing.T) {
	s := newTestStore(t)
	pricing := DefaultPricing()
	pricing.RatePerKWh = 0
	s.SetPricing(pricing)

	p, err := s.NewProposalForProject("2", decimal.NewFromInt(45800))
	require.NoError(t, err)
	assert.Nil(t, p.ROI)
}

func TestNewProposalErrors(t *testing.T) {
	s := newTestStore(t)

	_, err := s.NewProposalForProject("missing", decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.NewProposalForProject("1", decimal.Zero)
	assert.ErrorIs(t, err, validation.ErrInvalidRequest)
}

func TestStats(t *testing.T) {
	s := newTestStore(t)

	stats := s.Stats()
	require.Len(t, stats, 4)
	assert.Equal(t, Stat{Title: "Projetos ativos", Value: "16", Change: "+2 este mês"}, stats[0])
	assert.Equal(t, "21.3 kWh/dia", stats[3].Value)

	stats[0].Value = "0"
	assert.Equal(t, "16", s.Stats()[0].Value)
}

func TestStatusLabel(t *testing.T) {
	tests := map[string]string{
		"draft":       "Rascunho",
		"in_progress": "Em andamento",
		"completed":   "Concluído",
		"sent":        "Enviada",
		"approved":    "Aprovada",
		"rejected":    "Rejeitada",
		"expired":     "Expirada",
		"archived":    "archived",
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusLabel(status), status)
	}
}

func TestProgress(t *testing.T) {
	assert.InDelta(t, 78.5, Project{EnergyPotential: 15.7}.Progress(), 1e-9)
	assert.Equal(t, 100.0, Project{EnergyPotential: 22.3}.Progress())
	assert.Equal(t, 0.0, Project{}.Progress())
}

func TestPricingFrom(t *testing.T) {
	calc := config.Default().Calculation
	pricing := PricingFrom(calc)

	assert.Equal(t, DefaultPricing(), pricing)
}
