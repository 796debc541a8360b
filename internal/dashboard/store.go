package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bbzsolar/solar-roof-map/internal/config"
	"github.com/bbzsolar/solar-roof-map/pkg/datetime"
	"github.com/bbzsolar/solar-roof-map/pkg/solar"
	"github.com/bbzsolar/solar-roof-map/pkg/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by ListProjects.
const (
	SortRecent = "recent"
	SortOldest = "oldest"
	SortName   = "name"
	SortEnergy = "energy"
)

// Dashboard tabs accepted by RecentProjects.
const (
	TabRecent     = "recentes"
	TabInProgress = "andamento"
	TabCompleted  = "concluidos"
)

// RecentLimit is the number of cards shown in the dashboard project list.
const RecentLimit = 4

// Pricing carries the calculation settings used when new projects and
// proposals are estimated.
type Pricing struct {
	RatePerKWh float64
	Efficiency float64
	Panel      solar.PanelSize
}

// DefaultPricing mirrors the settings page defaults.
func DefaultPricing() Pricing {
	return Pricing{
		RatePerKWh: 0.92,
		Efficiency: solar.DefaultEfficiency,
		Panel:      solar.DefaultPanel,
	}
}

// PricingFrom builds the pricing from the settings page calculation tab.
func PricingFrom(calc config.Calculation) Pricing {
	return Pricing{
		RatePerKWh: calc.PricePerKWh,
		Efficiency: calc.PanelEfficiency,
		Panel:      solar.DefaultPanel,
	}
}

// ProjectFilter narrows the projects page list.
type ProjectFilter struct {
	Status string `json:"status"`
	Search string `json:"search"`
	Sort   string `json:"sort"`
}

// NewProject is the input of CreateProject. Tilt and orientation default to
// the roof defaults when nil.
type NewProject struct {
	Name               string   `json:"name" validate:"required"`
	Client             string   `json:"client" validate:"required"`
	Address            string   `json:"address" validate:"required"`
	Latitude           float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude          float64  `json:"longitude" validate:"gte=-180,lte=180"`
	RoofArea           float64  `json:"roofArea" validate:"gt=0"`
	TiltDegrees        *float64 `json:"tiltDegrees,omitempty" validate:"omitempty,gte=0,lte=90"`
	OrientationDegrees *float64 `json:"orientationDegrees,omitempty" validate:"omitempty,gte=0,lt=360"`
	ThumbnailURL       string   `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
}

// Store is the in-memory dashboard data set. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	logger    *zap.Logger
	pricing   Pricing
	projects  []Project
	proposals []Proposal
	stats     []Stat
	now       func() time.Time
}

// NewStore returns a store seeded with the dashboard's sample data.
func NewStore(logger *zap.Logger, pricing Pricing) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:    logger,
		pricing:   pricing,
		projects:  seedProjects(),
		proposals: seedProposals(),
		stats:     seedStats(),
		now:       time.Now,
	}
}

// SetPricing replaces the calculation settings used by later estimates.
func (s *Store) SetPricing(pricing Pricing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pricing = pricing
}

// Pricing returns the current calculation settings.
func (s *Store) Pricing() Pricing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pricing
}

// ListProjects returns the projects matching filter, sorted by filter.Sort.
func (s *Store) ListProjects(filter ProjectFilter) ([]Project, error) {
	status := strings.TrimSpace(filter.Status)
	if status == "" {
		status = "all"
	}
	switch status {
	case "all", string(ProjectDraft), string(ProjectInProgress), string(ProjectCompleted):
	default:
		return nil, fmt.Errorf("status %q: %w", filter.Status, ErrInvalidFilter)
	}

	sortKey := strings.TrimSpace(filter.Sort)
	if sortKey == "" {
		sortKey = SortRecent
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))

	s.mu.RLock()
	matched := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		if status != "all" && string(p.Status) != status {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		matched = append(matched, p)
	}
	s.mu.RUnlock()

	if err := sortProjects(matched, sortKey); err != nil {
		return nil, err
	}
	return matched, nil
}

func matchesSearch(p Project, needle string) bool {
	for _, field := range []string{p.Name, p.Client, p.Address} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortProjects(projects []Project, key string) error {
	switch key {
	case SortRecent:
		sort.SliceStable(projects, func(i, j int) bool {
			return createdBefore(projects[j], projects[i])
		})
	case SortOldest:
		sort.SliceStable(projects, func(i, j int) bool {
			return createdBefore(projects[i], projects[j])
		})
	case SortName:
		c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
		sort.SliceStable(projects, func(i, j int) bool {
			return c.CompareString(projects[i].Name, projects[j].Name) < 0
		})
	case SortEnergy:
		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].EnergyPotential > projects[j].EnergyPotential
		})
	default:
		return fmt.Errorf("sort %q: %w", key, ErrInvalidFilter)
	}
	return nil
}

// createdBefore orders by creation date. Unparseable dates never sort first.
func createdBefore(a, b Project) bool {
	before, err := datetime.DateBeforeDate(a.CreatedAt, b.CreatedAt)
	return err == nil && before
}

// RecentProjects returns up to RecentLimit cards for a dashboard tab, most
// recent first.
func (s *Store) RecentProjects(tab string) ([]Project, error) {
	filter := ProjectFilter{Sort: SortRecent}
	switch strings.TrimSpace(tab) {
	case "", TabRecent:
	case TabInProgress:
		filter.Status = string(ProjectInProgress)
	case TabCompleted:
		filter.Status = string(ProjectCompleted)
	default:
		return nil, fmt.Errorf("tab %q: %w", tab, ErrInvalidFilter)
	}

	projects, err := s.ListProjects(filter)
	if err != nil {
		return nil, err
	}
	if len(projects) > RecentLimit {
		projects = projects[:RecentLimit]
	}
	return projects, nil
}

// Project looks up a project by id.
func (s *Store) Project(id string) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
}

// CreateProject validates input, estimates its potential and panel count and
// stores it as a draft dated today.
func (s *Store) CreateProject(input NewProject) (Project, error) {
	if err := validation.Struct(input); err != nil {
		return Project{}, err
	}

	roof := solar.NewRoof(input.RoofArea)
	if input.TiltDegrees != nil {
		roof.TiltDegrees = *input.TiltDegrees
	}
	if input.OrientationDegrees != nil {
		roof.OrientationDegrees = *input.OrientationDegrees
	}
	pos := solar.GeoPosition{Latitude: input.Latitude, Longitude: input.Longitude}

	s.mu.Lock()
	defer s.mu.Unlock()

	project := Project{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(input.Name),
		Client:          strings.TrimSpace(input.Client),
		Address:         strings.TrimSpace(input.Address),
		CreatedAt:       datetime.Format(s.now()),
		Status:          ProjectDraft,
		EnergyPotential: solar.CalculateSolarPotential(pos, roof, s.pricing.Efficiency),
		Panels:          solar.EstimatePanelCount(roof.AreaSqM, s.pricing.Panel),
		RoofArea:        roof.AreaSqM,
		ThumbnailURL:    input.ThumbnailURL,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
	}
	s.projects = append([]Project{project}, s.projects...)

	s.logger.Info("project created",
		zap.String("op", "dashboard.CreateProject"),
		zap.String("id", project.ID),
		zap.String("region", string(solar.ClassifyRegion(pos))),
		zap.Float64("energyPotential", project.EnergyPotential),
		zap.Int("panels", project.Panels),
	)
	return project, nil
}

// ListProposals returns the proposals for a proposals-page tab.
func (s *Store) ListProposals(tab string) ([]Proposal, error) {
	tab = strings.TrimSpace(tab)
	switch tab {
	case "", "all", string(ProposalSent), string(ProposalApproved), string(ProposalDraft):
	default:
		return nil, fmt.Errorf("tab %q: %w", tab, ErrInvalidFilter)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		if tab != "" && tab != "all" && string(p.Status) != tab {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Proposal looks up a proposal by id.
func (s *Store) Proposal(id string) (Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.proposals {
		if p.ID == id {
			return p, nil
		}
	}
	return Proposal{}, fmt.Errorf("proposal %q: %w", id, ErrNotFound)
}

// SendProposal e-mails a proposal to its client. Drafts and expired proposals
// cannot be sent.
func (s *Store) SendProposal(id string) (Proposal, error) {
	p, err := s.Proposal(id)
	if err != nil {
		return Proposal{}, err
	}
	if !p.Sendable() {
		return Proposal{}, fmt.Errorf("proposal %q is %s: %w", id, p.Status, ErrNotSendable)
	}

	s.logger.Info("proposal sent",
		zap.String("op", "dashboard.SendProposal"),
		zap.String("id", p.ID),
		zap.String("client", p.Client),
	)
	return p, nil
}

// NewProposalForProject drafts a proposal for an existing project, valid for
// one month. The payback period uses the configured kWh price and is left
// empty when it is undefined.
func (s *Store) NewProposalForProject(projectID string, value decimal.Decimal) (Proposal, error) {
	project, err := s.Project(projectID)
	if err != nil {
		return Proposal{}, err
	}
	if !value.IsPositive() {
		return Proposal{}, fmt.Errorf("%w: proposal value must be positive, got %s", validation.ErrInvalidRequest, value.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := datetime.Format(s.now())
	expires, err := datetime.OffsetDate(created, datetime.DateLayout, 1)
	if err != nil {
		return Proposal{}, fmt.Errorf("failed to compute expiry: %w", err)
	}

	proposal := Proposal{
		ID:          uuid.NewString(),
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Client:      project.Client,
		CreatedAt:   created,
		ExpiresAt:   expires,
		Status:      ProposalDraft,
		Value:       value,
		Panels:      project.Panels,
	}

	years, err := solar.CalculateROI(project.EnergyPotential, value.InexactFloat64(), s.pricing.RatePerKWh)
	switch {
	case err == nil:
		proposal.ROI = &years
	case errors.Is(err, solar.ErrUndefinedPayback):
		s.logger.Warn("payback undefined for proposal",
			zap.String("op", "dashboard.NewProposalForProject"),
			zap.String("projectId", project.ID),
			zap.Error(err),
		)
	default:
		return Proposal{}, err
	}

	s.proposals = append([]Proposal{proposal}, s.proposals...)
	return proposal, nil
}

// Stats returns the summary cards.
func (s *Store) Stats() []Stat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Stat(nil), s.stats...)
}
