// Package reports renders client summary PDFs through Gotenberg and
// archives them to object storage.
package reports

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"

	"estate_crm_backend/internal/adapters/storage"
	leadssvc "estate_crm_backend/internal/leads/service"
	"estate_crm_backend/platform/apperr"
	"estate_crm_backend/platform/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

type reportProperty struct {
	Code           string
	Title          string
	Bedrooms       string
	Locality       string
	PriceFormatted string
}

type reportData struct {
	ClientCode      string
	Name            string
	ListingType     string
	Requirements    string
	BudgetFormatted string
	Locality        string
	Rooms           int
	Status          string
	Score           int
	Rating          string
	RatingClass     string
	GeneratedAt     string
	Message         string
	Properties      []reportProperty
}

// Report is a rendered PDF plus the archive key it was stored under.
type Report struct {
	ClientCode string
	FileName   string
	ObjectKey  string
	PDF        []byte
}

type Service struct {
	leads     *leadssvc.Service
	gotenberg *GotenbergClient
	storage   storage.Service
	log       *logger.Logger
}

func New(leads *leadssvc.Service, gotenberg *GotenbergClient, store storage.Service, log *logger.Logger) *Service {
	return &Service{
		leads:     leads,
		gotenberg: gotenberg,
		storage:   store,
		log:       log,
	}
}

// GenerateClientReport renders the client's profile and current property
// matches to PDF. The PDF is archived to object storage; archival failure is
// logged but does not fail the request.
func (s *Service) GenerateClientReport(ctx context.Context, clientID uuid.UUID) (*Report, error) {
	rec, err := s.leads.Recommendations(ctx, clientID)
	if err != nil {
		return nil, err
	}

	html, err := renderReport(rec)
	if err != nil {
		return nil, apperr.Internal("failed to render report")
	}

	pdf, err := s.gotenberg.ConvertHTML(ctx, html)
	if err != nil {
		return nil, apperr.Unavailable("pdf conversion failed", err)
	}

	fileName := fmt.Sprintf("%s-%s.pdf", rec.Client.ClientCode, time.Now().Format("20060102"))

	objectKey, err := s.storage.Upload(ctx, "reports", fileName, "application/pdf",
		bytes.NewReader(pdf), int64(len(pdf)))
	if err != nil {
		s.log.Error("failed to archive report", "client", rec.Client.ClientCode, "error", err)
		objectKey = ""
	}

	return &Report{
		ClientCode: rec.Client.ClientCode,
		FileName:   fileName,
		ObjectKey:  objectKey,
		PDF:        pdf,
	}, nil
}

func renderReport(rec *leadssvc.Recommendation) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/client_report.html")
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}

	data := reportData{
		ClientCode:      rec.Client.ClientCode,
		Name:            rec.Client.Name,
		ListingType:     rec.Client.ListingType,
		Requirements:    rec.Client.Requirements,
		BudgetFormatted: formatINR(rec.Client.Budget),
		Locality:        rec.Client.Locality,
		Rooms:           rec.Client.Rooms,
		Status:          rec.Client.Status,
		Score:           rec.Client.LeadScore,
		Rating:          rec.Client.LeadRating,
		RatingClass:     strings.ToLower(rec.Client.LeadRating),
		GeneratedAt:     time.Now().Format("02 Jan 2006 15:04"),
		Message:         rec.Message,
	}

	for _, p := range rec.Properties {
		price := "On request"
		if p.AskingPrice != nil {
			price = formatINR(*p.AskingPrice)
		} else if p.MonthlyRent != nil {
			price = formatINR(*p.MonthlyRent) + "/month"
		}

		data.Properties = append(data.Properties, reportProperty{
			Code:           p.Code,
			Title:          p.Title,
			Bedrooms:       p.Bedrooms,
			Locality:       p.Locality,
			PriceFormatted: price,
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute report template: %w", err)
	}
	return buf.Bytes(), nil
}
