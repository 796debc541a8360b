// Package dashboard holds the in-memory projects, proposals and stat cards
// shown by the web dashboard, and the operations the pages perform on them.
package dashboard

import (
	"math"

	"github.com/bbzsolar/solar-roof-map/pkg/mathutil"
	"github.com/shopspring/decimal"
)

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrNotFound is returned when a project or proposal id is unknown.
	ErrNotFound = constError("not found")

	// ErrNotSendable is returned when sending a draft or expired proposal.
	ErrNotSendable = constError("proposal cannot be sent in its current status")

	// ErrInvalidFilter is returned for unknown status filters, tabs or sort keys.
	ErrInvalidFilter = constError("invalid filter")
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// ProposalStatus is the lifecycle state of a proposal.
type ProposalStatus string

const (
	ProposalDraft    ProposalStatus = "draft"
	ProposalSent     ProposalStatus = "sent"
	ProposalApproved ProposalStatus = "approved"
	ProposalRejected ProposalStatus = "rejected"
	ProposalExpired  ProposalStatus = "expired"
)

var statusLabels = map[string]string{
	string(ProjectDraft):      "Rascunho",
	string(ProjectInProgress): "Em andamento",
	string(ProjectCompleted):  "Concluído",
	string(ProposalSent):      "Enviada",
	string(ProposalApproved):  "Aprovada",
	string(ProposalRejected):  "Rejeitada",
	string(ProposalExpired):   "Expirada",
}

// StatusLabel returns the pt-BR badge text for a project or proposal status.
// Unknown statuses are returned unchanged.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// Project is a rooftop installation being quoted or built.
type Project struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Client          string        `json:"client"`
	Address         string        `json:"address"`
	CreatedAt       string        `json:"createdAt"`
	Status          ProjectStatus `json:"status"`
	EnergyPotential float64       `json:"energyPotential"`
	Panels          int           `json:"panels"`
	RoofArea        float64       `json:"roofArea"`
	ThumbnailURL    string        `json:"thumbnailUrl,omitempty"`
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
}

// progressFullScaleKWh is the daily potential that fills a card's energy bar.
const progressFullScaleKWh = 20

// Progress is the width, in percent, of the energy bar on a project card.
func (p Project) Progress() float64 {
	return math.Min(mathutil.CalculatePercentage(p.EnergyPotential, progressFullScaleKWh), 100)
}

// Proposal is a priced offer sent to a project's client. ROI is nil when the
// payback period is undefined.
type Proposal struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"projectId"`
	ProjectName string          `json:"projectName"`
	Client      string          `json:"client"`
	CreatedAt   string          `json:"createdAt"`
	ExpiresAt   string          `json:"expiresAt"`
	Status      ProposalStatus  `json:"status"`
	Value       decimal.Decimal `json:"value"`
	ROI         *float64        `json:"roi,omitempty"`
	Panels      int             `json:"panels"`
}

// Sendable reports whether the "Enviar" action is available.
func (p Proposal) Sendable() bool {
	return p.Status != ProposalDraft && p.Status != ProposalExpired
}

// Stat is one of the summary cards at the top of the dashboard.
type Stat struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}
