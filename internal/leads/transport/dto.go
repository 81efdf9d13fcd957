package transport

import (
	"time"

	"estate_crm_backend/internal/leads/recommend"
	"estate_crm_backend/internal/leads/repository"
	"estate_crm_backend/internal/leads/service"
)

type RankedLeadResponse struct {
	ClientID     string     `json:"clientId"`
	ClientCode   string     `json:"clientCode"`
	Name         string     `json:"name"`
	ListingType  string     `json:"listingType"`
	Status       string     `json:"status"`
	LogCount     int        `json:"logCount"`
	Score        int        `json:"score"`
	Rating       string     `json:"rating"`
	LastScoredAt *time.Time `json:"lastScoredAt,omitempty"`
}

func ToRankedLeadResponse(lead service.RankedLead) RankedLeadResponse {
	return RankedLeadResponse{
		ClientID:     lead.Profile.ID.String(),
		ClientCode:   lead.Profile.ClientCode,
		Name:         lead.Profile.Name,
		ListingType:  lead.Profile.ListingType,
		Status:       lead.Profile.Status,
		LogCount:     lead.Profile.LogCount,
		Score:        lead.Score,
		Rating:       string(lead.Rating),
		LastScoredAt: lead.Profile.ScoredAt,
	}
}

type MatchedPropertyResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	ListingType string `json:"listingType"`
	Bedrooms    string `json:"bedrooms"`
	Locality    string `json:"locality"`
	AskingPrice *int64 `json:"askingPrice,omitempty"`
	MonthlyRent *int64 `json:"monthlyRent,omitempty"`
}

type RecommendationResponse struct {
	Message         string                    `json:"message"`
	Client          ClientSummary             `json:"client"`
	Recommendations []MatchedPropertyResponse `json:"recommendations"`
}

type ClientSummary struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	ListingType string `json:"listingType"`
	Budget      int64  `json:"budget"`
	Locality    string `json:"locality"`
	Rooms       int    `json:"rooms"`
}

func ToRecommendationResponse(rec *service.Recommendation) RecommendationResponse {
	props := make([]MatchedPropertyResponse, 0, len(rec.Properties))
	for _, p := range rec.Properties {
		props = append(props, toMatchedProperty(p))
	}
	return RecommendationResponse{
		Message:         rec.Message,
		Client:          toClientSummary(rec.Client),
		Recommendations: props,
	}
}

func toMatchedProperty(p recommend.Property) MatchedPropertyResponse {
	return MatchedPropertyResponse{
		ID:          p.ID,
		Code:        p.Code,
		Title:       p.Title,
		ListingType: p.ListingType,
		Bedrooms:    p.Bedrooms,
		Locality:    p.Locality,
		AskingPrice: p.AskingPrice,
		MonthlyRent: p.MonthlyRent,
	}
}

func toClientSummary(p repository.ClientProfile) ClientSummary {
	return ClientSummary{
		ID:          p.ID.String(),
		Code:        p.ClientCode,
		Name:        p.Name,
		ListingType: p.ListingType,
		Budget:      p.Budget,
		Locality:    p.Locality,
		Rooms:       p.Rooms,
	}
}
