// Package service computes lead scores and property recommendations.
package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"estate_crm_backend/internal/events"
	"estate_crm_backend/internal/leads/recommend"
	"estate_crm_backend/internal/leads/repository"
	"estate_crm_backend/internal/leads/reqparse"
	"estate_crm_backend/internal/leads/scoring"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/logger"
)

// RankedLead is a client with its freshly computed score.
type RankedLead struct {
	Profile repository.ClientProfile
	Score   int
	Rating  scoring.Rating
}

// Recommendation is the match outcome for one client.
type Recommendation struct {
	Client     repository.ClientProfile
	Message    string
	Properties []recommend.Property
}

type Service struct {
	repo *repository.Repository
	opts recommend.Options
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg *config.Config, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		opts: recommend.Options{
			BudgetTolerance: cfg.Recommend.BudgetTolerance,
			MaxResults:      cfg.Recommend.MaxResults,
		},
		bus: bus,
		log: log,
	}
}

// RankedLeads scores every client and returns them hottest first. Scores are
// computed fresh from current data, and snapshots on the client rows are not
// touched.
func (s *Service) RankedLeads(ctx context.Context) ([]RankedLead, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return rankProfiles(profiles), nil
}

// rankProfiles scores the profiles and orders them highest score first. The
// sort is stable, so equal-score clients keep their incoming order.
func rankProfiles(profiles []repository.ClientProfile) []RankedLead {
	leads := make([]RankedLead, 0, len(profiles))
	for _, p := range profiles {
		score := scoring.Score(scoringInput(p))
		leads = append(leads, RankedLead{
			Profile: p,
			Score:   score,
			Rating:  scoring.Rate(score),
		})
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].Score > leads[j].Score
	})
	return leads
}

// RescoreClient recomputes one client's score and stores the snapshot on the
// client row.
func (s *Service) RescoreClient(ctx context.Context, clientID uuid.UUID) error {
	profile, err := s.repo.GetProfile(ctx, clientID)
	if err != nil {
		return err
	}

	score := scoring.Score(scoringInput(*profile))
	rating := scoring.Rate(score)
	if err := s.repo.SaveScore(ctx, clientID, score, string(rating)); err != nil {
		return err
	}

	if rating == scoring.RatingHot && profile.LeadRating != string(scoring.RatingHot) {
		s.bus.Publish(ctx, events.LeadBecameHot{
			BaseEvent:  events.NewBaseEvent(),
			ClientID:   clientID,
			ClientCode: profile.ClientCode,
			Name:       profile.Name,
			Score:      score,
		})
	}

	s.log.Debug("rescored client",
		"client", profile.ClientCode,
		"score", score,
		"rating", string(rating),
	)
	return nil
}

// RescoreAll recomputes and stores snapshots for every client. Used by the
// backfill command and the periodic scheduler job. Returns the number of
// clients rescored.
func (s *Service) RescoreAll(ctx context.Context) (int, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, p := range profiles {
		g.Go(func() error {
			score := scoring.Score(scoringInput(p))
			return s.repo.SaveScore(gctx, p.ID, score, string(scoring.Rate(score)))
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(profiles), nil
}

// Recommendations matches properties against one client's requirements.
func (s *Service) Recommendations(ctx context.Context, clientID uuid.UUID) (*Recommendation, error) {
	profile, err := s.repo.GetProfile(ctx, clientID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	result := recommend.Recommend(
		recommend.Profile{
			ListingType: profile.ListingType,
			Requirement: reqparse.Requirement{
				Budget:   profile.Budget,
				Locality: profile.Locality,
				Rooms:    profile.Rooms,
			},
		},
		toEngineProperties(candidates),
		s.opts,
	)

	return &Recommendation{
		Client:     *profile,
		Message:    result.Message,
		Properties: result.Properties,
	}, nil
}

func scoringInput(p repository.ClientProfile) scoring.Input {
	return scoring.Input{
		ListingType:  p.ListingType,
		Budget:       p.Budget,
		Requirements: p.Requirements,
		LogCount:     p.LogCount,
		Status:       p.Status,
	}
}

func toEngineProperties(candidates []repository.Candidate) []recommend.Property {
	out := make([]recommend.Property, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, recommend.Property{
			ID:          c.ID.String(),
			Code:        c.Code,
			Title:       c.Title,
			ListingType: c.ListingType,
			Bedrooms:    c.Bedrooms,
			Locality:    c.Locality,
			AskingPrice: c.AskingPrice,
			MonthlyRent: c.MonthlyRent,
		})
	}
	return out
}
