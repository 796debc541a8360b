package dashboard

import "github.com/shopspring/decimal"

func roi(years float64) *float64 { return &years }

func seedProjects() []Project {
	return []Project{
		{
			ID:              "1",
			Name:            "Residência Silva",
			Client:          "João Silva",
			Address:         "Av. Paulista, 123 - São Paulo, SP",
			CreatedAt:       "12/04/2025",
			Status:          ProjectInProgress,
			EnergyPotential: 15.7,
			Panels:          12,
			RoofArea:        32,
			Latitude:        -23.5614,
			Longitude:       -46.6559,
		},
		{
			ID:              "2",
			Name:            "Comércio Flores",
			Client:          "Maria Flores",
			Address:         "Rua Augusta, 456 - São Paulo, SP",
			CreatedAt:       "10/04/2025",
			Status:          ProjectCompleted,
			EnergyPotential: 22.3,
			Panels:          18,
			RoofArea:        48,
			ThumbnailURL:    "https://images.unsplash.com/photo-1592833167665-ebf29dc47a84?auto=format&fit=crop&q=80&w=500",
			Latitude:        -23.5530,
			Longitude:       -46.6570,
		},
		{
			ID:              "3",
			Name:            "Sítio Esperança",
			Client:          "Pedro Almeida",
			Address:         "Estrada Rural, km 5 - Campinas, SP",
			CreatedAt:       "08/04/2025",
			Status:          ProjectDraft,
			EnergyPotential: 8.9,
			Panels:          6,
			RoofArea:        20,
			Latitude:        -22.8480,
			Longitude:       -47.1040,
		},
		{
			ID:              "4",
			Name:            "Fábrica Continental",
			Client:          "Continental Ltda",
			Address:         "Distrito Industrial - Jundiaí, SP",
			CreatedAt:       "05/04/2025",
			Status:          ProjectInProgress,
			EnergyPotential: 45.2,
			Panels:          36,
			RoofArea:        120,
			ThumbnailURL:    "https://images.unsplash.com/photo-1581092918056-0c4c3acd3789?auto=format&fit=crop&q=80&w=500",
			Latitude:        -23.1857,
			Longitude:       -46.8978,
		},
		{
			ID:              "5",
			Name:            "Condomínio Parque Verde",
			Client:          "Condomínio Parque Verde",
			Address:         "Av. das Árvores, 1000 - Campinas, SP",
			CreatedAt:       "02/04/2025",
			Status:          ProjectDraft,
			EnergyPotential: 120.5,
			Panels:          96,
			RoofArea:        240,
			Latitude:        -22.9056,
			Longitude:       -47.0608,
		},
	}
}

func seedProposals() []Proposal {
	return []Proposal{
		{
			ID: "1", ProjectID: "1", ProjectName: "Residência Silva", Client: "João Silva",
			CreatedAt: "12/04/2025", ExpiresAt: "12/05/2025", Status: ProposalSent,
			Value: decimal.NewFromInt(32500), ROI: roi(3.2), Panels: 12,
		},
		{
			ID: "2", ProjectID: "2", ProjectName: "Comércio Flores", Client: "Maria Flores",
			CreatedAt: "10/04/2025", ExpiresAt: "10/05/2025", Status: ProposalApproved,
			Value: decimal.NewFromInt(45800), ROI: roi(2.8), Panels: 18,
		},
		{
			ID: "3", ProjectID: "3", ProjectName: "Sítio Esperança", Client: "Pedro Almeida",
			CreatedAt: "08/04/2025", ExpiresAt: "08/05/2025", Status: ProposalDraft,
			Value: decimal.NewFromInt(18200), ROI: roi(3.5), Panels: 6,
		},
		{
			ID: "4", ProjectID: "4", ProjectName: "Fábrica Continental", Client: "Continental Ltda",
			CreatedAt: "05/04/2025", ExpiresAt: "05/05/2025", Status: ProposalSent,
			Value: decimal.NewFromInt(96400), ROI: roi(2.4), Panels: 36,
		},
		{
			ID: "5", ProjectID: "5", ProjectName: "Condomínio Parque Verde", Client: "Condomínio Parque Verde",
			CreatedAt: "02/04/2025", ExpiresAt: "02/05/2025", Status: ProposalExpired,
			Value: decimal.NewFromInt(240800), ROI: roi(3.1), Panels: 96,
		},
	}
}

func seedStats() []Stat {
	return []Stat{
		{Title: "Projetos ativos", Value: "16", Change: "+2 este mês"},
		{Title: "Propostas enviadas", Value: "24", Change: "+5 este mês"},
		{Title: "Taxa de conversão", Value: "42%", Change: "+7% este mês"},
		{Title: "Potencial médio", Value: "21.3 kWh/dia", Change: "por projeto"},
	}
}
