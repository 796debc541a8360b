package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/bbzsolar/solar-roof-map/internal/config"
	"github.com/bbzsolar/solar-roof-map/internal/dashboard"
	"github.com/bbzsolar/solar-roof-map/internal/heatmap"
	"github.com/bbzsolar/solar-roof-map/internal/proposal"
	"github.com/bbzsolar/solar-roof-map/pkg/constants"
	"github.com/bbzsolar/solar-roof-map/pkg/solar"
	"github.com/bbzsolar/solar-roof-map/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// Services are the stateful components the handler serves. Nil fields are
// replaced with fresh defaults.
type Services struct {
	Store    *dashboard.Store
	Settings *config.Settings
}

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	store          *dashboard.Store
	settings       *config.Settings
}

// NewHandler constructs the HTTP handler that serves the web UI and dashboard API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string, services Services) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if services.Settings == nil {
		services.Settings = config.NewSettings(nil)
	}
	if services.Store == nil {
		snapshot := services.Settings.Snapshot()
		services.Store = dashboard.NewStore(logger, dashboard.PricingFrom(snapshot.Calculation))
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		store:          services.Store,
		settings:       services.Settings,
	}

	mux := http.NewServeMux()

	// Dashboard landing data: stat cards plus the recent project tab
	mux.HandleFunc("/api/dashboard", h.handleDashboard)

	// Projects page
	mux.HandleFunc("/api/projects", h.handleProjects)
	mux.HandleFunc("/api/projects/{id}", h.handleProject)

	// Proposals page
	mux.HandleFunc("/api/proposals", h.handleProposals)
	mux.HandleFunc("/api/proposals/{id}", h.handleProposal)
	mux.HandleFunc("/api/proposals/{id}/document", h.handleProposalDocument)
	mux.HandleFunc("/api/proposals/{id}/send", h.handleProposalSend)

	// Estimation and map data
	mux.HandleFunc("/api/estimate", h.handleEstimate)
	mux.HandleFunc("/api/heatmap", h.handleHeatmap)

	// Settings page
	mux.HandleFunc("/api/settings", h.handleSettings)
	mux.HandleFunc("/api/settings/mapbox-token", h.handleMapboxToken)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.Handle("/metrics", promhttp.Handler())

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return instrument(mux)
}

type dashboardResponse struct {
	Stats    []dashboard.Stat `json:"stats"`
	Tab      string           `json:"tab"`
	Projects []projectView    `json:"projects"`
}

type projectView struct {
	dashboard.Project
	StatusLabel string  `json:"statusLabel"`
	Progress    float64 `json:"progress"`
}

type proposalView struct {
	dashboard.Proposal
	StatusLabel string `json:"statusLabel"`
	Sendable    bool   `json:"sendable"`
}

func viewProject(p dashboard.Project) projectView {
	return projectView{Project: p, StatusLabel: dashboard.StatusLabel(string(p.Status)), Progress: p.Progress()}
}

func viewProjects(projects []dashboard.Project) []projectView {
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, viewProject(p))
	}
	return views
}

func viewProposal(p dashboard.Proposal) proposalView {
	return proposalView{Proposal: p, StatusLabel: dashboard.StatusLabel(string(p.Status)), Sendable: p.Sendable()}
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = dashboard.TabRecent
	}
	projects, err := h.store.RecentProjects(tab)
	if err != nil {
		h.respondStoreError(w, err, "server.handleDashboard")
		return
	}

	h.writeJSON(w, http.StatusOK, dashboardResponse{
		Stats:    h.store.Stats(),
		Tab:      tab,
		Projects: viewProjects(projects),
	})
}

func (h *handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		projects, err := h.store.ListProjects(dashboard.ProjectFilter{
			Status: query.Get("status"),
			Search: query.Get("search"),
			Sort:   query.Get("sort"),
		})
		if err != nil {
			h.respondStoreError(w, err, "server.handleProjects")
			return
		}
		h.writeJSON(w, http.StatusOK, viewProjects(projects))

	case http.MethodPost:
		var input dashboard.NewProject
		if !h.decodeBody(w, r, &input, "server.handleProjects") {
			return
		}
		project, err := h.store.CreateProject(input)
		if err != nil {
			h.respondStoreError(w, err, "server.handleProjects")
			return
		}
		h.writeJSON(w, http.StatusCreated, viewProject(project))

	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	project, err := h.store.Project(r.PathValue("id"))
	if err != nil {
		h.respondStoreError(w, err, "server.handleProject")
		return
	}
	h.writeJSON(w, http.StatusOK, viewProject(project))
}

type newProposalRequest struct {
	ProjectID string          `json:"projectId" validate:"required"`
	Value     decimal.Decimal `json:"value"`
}

func (h *handler) handleProposals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		proposals, err := h.store.ListProposals(r.URL.Query().Get("tab"))
		if err != nil {
			h.respondStoreError(w, err, "server.handleProposals")
			return
		}
		views := make([]proposalView, 0, len(proposals))
		for _, p := range proposals {
			views = append(views, viewProposal(p))
		}
		h.writeJSON(w, http.StatusOK, views)

	case http.MethodPost:
		var req newProposalRequest
		if !h.decodeBody(w, r, &req, "server.handleProposals") {
			return
		}
		if err := validation.Struct(req); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleProposals")
			return
		}
		p, err := h.store.NewProposalForProject(req.ProjectID, req.Value)
		if err != nil {
			h.respondStoreError(w, err, "server.handleProposals")
			return
		}
		h.writeJSON(w, http.StatusCreated, viewProposal(p))

	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	p, err := h.store.Proposal(r.PathValue("id"))
	if err != nil {
		h.respondStoreError(w, err, "server.handleProposal")
		return
	}
	h.writeJSON(w, http.StatusOK, viewProposal(p))
}

func (h *handler) handleProposalDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	docFormat, err := proposal.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleProposalDocument")
		return
	}

	p, err := h.store.Proposal(r.PathValue("id"))
	if err != nil {
		h.respondStoreError(w, err, "server.handleProposalDocument")
		return
	}

	company := h.settings.Snapshot().Company
	w.Header().Set("Content-Type", docFormat.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", proposal.Filename(p.ProjectName, docFormat)))
	if err := proposal.Render(w, proposal.NewDocument(p, company), docFormat); err != nil {
		h.logger.Error("failed to write proposal document",
			zap.String("op", "server.handleProposalDocument"),
			zap.String("id", p.ID),
			zap.Error(err),
		)
	}
}

func (h *handler) handleProposalSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	p, err := h.store.SendProposal(r.PathValue("id"))
	if err != nil {
		h.respondStoreError(w, err, "server.handleProposalSend")
		return
	}
	proposalsSentTotal.Inc()
	h.writeJSON(w, http.StatusOK, viewProposal(p))
}

type estimateRequest struct {
	Latitude           float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude          float64  `json:"longitude" validate:"gte=-180,lte=180"`
	RoofArea           float64  `json:"roofArea" validate:"gt=0"`
	TiltDegrees        *float64 `json:"tiltDegrees,omitempty" validate:"omitempty,gte=0,lte=90"`
	OrientationDegrees *float64 `json:"orientationDegrees,omitempty" validate:"omitempty,gte=0,lt=360"`
	Efficiency         *float64 `json:"efficiency,omitempty" validate:"omitempty,gt=0,lte=1"`
	PanelModel         string   `json:"panelModel,omitempty"`
	InstallationCost   float64  `json:"installationCost" validate:"gte=0"`
	ElectricityRate    *float64 `json:"electricityRate,omitempty" validate:"omitempty,gt=0"`
}

func (h *handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req estimateRequest
	if !h.decodeBody(w, r, &req, "server.handleEstimate") {
		return
	}
	if err := validation.Struct(req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleEstimate")
		return
	}

	conf := h.settings.Snapshot()
	roof := solar.NewRoof(req.RoofArea)
	if req.TiltDegrees != nil {
		roof.TiltDegrees = *req.TiltDegrees
	}
	if req.OrientationDegrees != nil {
		roof.OrientationDegrees = *req.OrientationDegrees
	}

	estimateReq := solar.Request{
		Position:         solar.GeoPosition{Latitude: req.Latitude, Longitude: req.Longitude},
		Roof:             roof,
		Efficiency:       conf.Calculation.PanelEfficiency,
		Panel:            solar.DefaultPanel,
		InstallationCost: req.InstallationCost,
		ElectricityRate:  conf.Calculation.PricePerKWh,
	}
	if req.PanelModel != "" {
		model, ok := conf.PanelByName(req.PanelModel)
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("unknown panel model '%s'", req.PanelModel), "server.handleEstimate")
			return
		}
		estimateReq.Panel = model.Size()
		estimateReq.Efficiency = model.EfficiencyFraction()
	}
	if req.Efficiency != nil {
		estimateReq.Efficiency = *req.Efficiency
	}
	if req.ElectricityRate != nil {
		estimateReq.ElectricityRate = *req.ElectricityRate
	}

	est, err := solar.EstimateInstallation(estimateReq)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute estimate: %v", err), "server.handleEstimate")
		return
	}

	estimatesTotal.WithLabelValues(string(est.Region)).Inc()
	estimatedPotential.Observe(est.DailyPotentialKWh)
	h.logger.Debug("estimate computed",
		zap.String("op", "server.handleEstimate"),
		zap.String("region", string(est.Region)),
		zap.Float64("dailyPotentialKWh", est.DailyPotentialKWh),
		zap.Int("panels", est.PanelCount),
	)

	h.writeJSON(w, http.StatusOK, est)
}

type heatmapResponse struct {
	Config  heatmap.MapConfig         `json:"config"`
	Summary heatmapSummary            `json:"summary"`
	GeoJSON heatmap.FeatureCollection `json:"geojson"`
}

type heatmapSummary struct {
	RegionName       string  `json:"regionName"`
	AverageIntensity float64 `json:"averageIntensity"`
	Points           int     `json:"points"`
}

func (h *handler) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	opts := heatmap.DefaultOptions()
	query := r.URL.Query()
	var err error
	if v := query.Get("seed"); v != "" {
		if opts.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid seed %q", v), "server.handleHeatmap")
			return
		}
	}
	if v := query.Get("count"); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil || count <= 0 || count > 10*constants.DefaultHeatmapSize {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid count %q", v), "server.handleHeatmap")
			return
		}
		opts.Count = count
	}

	mapConfig, err := heatmap.NewMapConfig(h.settings.Snapshot().Integrations.MapboxToken)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusConflict, err.Error(), "server.handleHeatmap")
		return
	}

	data := heatmap.Generate(opts)
	h.writeJSON(w, http.StatusOK, heatmapResponse{
		Config: mapConfig,
		Summary: heatmapSummary{
			RegionName:       data.RegionName,
			AverageIntensity: data.AverageIntensity,
			Points:           len(data.Points),
		},
		GeoJSON: data.GeoJSON(),
	})
}

func (h *handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, http.StatusOK, h.settings.Snapshot())

	case http.MethodPut:
		current := h.settings.Snapshot()
		next := current
		// A panels list in the body replaces the stored one; omitting it keeps it.
		next.Panels = nil
		if !h.decodeBody(w, r, &next, "server.handleSettings") {
			return
		}
		if next.Panels == nil {
			next.Panels = current.Panels
		}
		if err := h.settings.Update(next); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleSettings")
			return
		}
		updated := h.settings.Snapshot()
		h.store.SetPricing(dashboard.PricingFrom(updated.Calculation))

		for _, warning := range updated.ValidateConfiguration() {
			h.logger.Warn("Configuration warning: "+warning,
				zap.String("op", "server.handleSettings"),
			)
		}
		h.writeJSON(w, http.StatusOK, updated)

	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

type mapboxTokenRequest struct {
	Token string `json:"token"`
}

func (h *handler) handleMapboxToken(w http.ResponseWriter, r *http.Request) {
	var token string
	switch r.Method {
	case http.MethodPut:
		var req mapboxTokenRequest
		if !h.decodeBody(w, r, &req, "server.handleMapboxToken") {
			return
		}
		token = strings.TrimSpace(req.Token)
		if token == "" {
			h.respondErrorWithOp(w, http.StatusBadRequest, validation.ErrMissingMapboxToken.Error(), "server.handleMapboxToken")
			return
		}
	case http.MethodDelete:
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if err := h.settings.SetMapboxToken(token); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleMapboxToken")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeBody reads a size-limited JSON body into dst, answering the request
// itself on failure.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, dashboard.ErrNotSendable):
		status = http.StatusConflict
	case errors.Is(err, dashboard.ErrInvalidFilter), errors.Is(err, validation.ErrInvalidRequest):
		status = http.StatusBadRequest
	}
	h.respondErrorWithOp(w, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
