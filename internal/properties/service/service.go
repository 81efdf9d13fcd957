// Package service implements property portfolio operations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"estate_crm_backend/internal/adapters/storage"
	"estate_crm_backend/internal/properties/repository"
	"estate_crm_backend/platform/apperr"
	"estate_crm_backend/platform/logger"
	"estate_crm_backend/platform/phone"
)

type Service struct {
	repo    *repository.Repository
	storage storage.Service
	log     *logger.Logger
}

func New(repo *repository.Repository, store storage.Service, log *logger.Logger) *Service {
	return &Service{repo: repo, storage: store, log: log}
}

// CreateInput carries the fields for a new listing.
type CreateInput struct {
	Title           string
	ListingType     string
	PropertyType    string
	Bedrooms        string
	Bathrooms       int
	AreaSqft        int
	Furnishing      string
	Amenities       string
	Locality        string
	AskingPrice     *int64
	MonthlyRent     *int64
	SecurityDeposit *int64
	OwnerName       string
	OwnerPhone      string
}

// Create validates the price-column invariant and inserts the listing. Sale
// listings carry an asking price and no rent; Rent listings the opposite,
// plus an optional security deposit.
func (s *Service) Create(ctx context.Context, in CreateInput) (*repository.Property, error) {
	switch in.ListingType {
	case "Sale":
		if in.AskingPrice == nil || in.MonthlyRent != nil {
			return nil, apperr.Validation("Sale listings need an asking price and no monthly rent")
		}
		if in.SecurityDeposit != nil {
			return nil, apperr.Validation("Sale listings cannot have a security deposit")
		}
	case "Rent":
		if in.MonthlyRent == nil || in.AskingPrice != nil {
			return nil, apperr.Validation("Rent listings need a monthly rent and no asking price")
		}
	default:
		return nil, apperr.Validation("listing type must be Sale or Rent")
	}

	ownerPhone := strings.TrimSpace(in.OwnerPhone)
	if ownerPhone != "" {
		normalized, err := phone.Normalize(ownerPhone)
		if err != nil {
			return nil, apperr.Validation("invalid owner phone number")
		}
		ownerPhone = normalized
	}

	property, err := s.repo.Create(ctx, repository.CreateParams{
		Title:           strings.TrimSpace(in.Title),
		ListingType:     in.ListingType,
		PropertyType:    strings.TrimSpace(in.PropertyType),
		Bedrooms:        strings.TrimSpace(in.Bedrooms),
		Bathrooms:       in.Bathrooms,
		AreaSqft:        in.AreaSqft,
		Furnishing:      strings.TrimSpace(in.Furnishing),
		Amenities:       strings.TrimSpace(in.Amenities),
		Locality:        strings.TrimSpace(in.Locality),
		AskingPrice:     in.AskingPrice,
		MonthlyRent:     in.MonthlyRent,
		SecurityDeposit: in.SecurityDeposit,
		OwnerName:       strings.TrimSpace(in.OwnerName),
		OwnerPhone:      ownerPhone,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("property created", "property", property.PropertyCode, "listing_type", property.ListingType)
	return property, nil
}

// Get returns one property.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*repository.Property, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of properties.
func (s *Service) List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return s.repo.List(ctx, params)
}

// UpdateInput carries the mutable listing fields.
type UpdateInput struct {
	Title           *string
	PropertyType    *string
	Bedrooms        *string
	Bathrooms       *int
	AreaSqft        *int
	Furnishing      *string
	Amenities       *string
	Locality        *string
	AskingPrice     *int64
	MonthlyRent     *int64
	SecurityDeposit *int64
	OwnerName       *string
	OwnerPhone      *string
	Status          *string
}

// Update applies the given changes. The price matching the listing type is
// the only one that may be set, and only Rent listings carry a deposit.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*repository.Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if property.ListingType == "Sale" && in.MonthlyRent != nil {
		return nil, apperr.Validation("Sale listings cannot have a monthly rent")
	}
	if property.ListingType == "Sale" && in.SecurityDeposit != nil {
		return nil, apperr.Validation("Sale listings cannot have a security deposit")
	}
	if property.ListingType == "Rent" && in.AskingPrice != nil {
		return nil, apperr.Validation("Rent listings cannot have an asking price")
	}
	if in.Status != nil && !validStatus(*in.Status) {
		return nil, apperr.Validation("invalid property status")
	}

	if in.OwnerPhone != nil && strings.TrimSpace(*in.OwnerPhone) != "" {
		normalized, err := phone.Normalize(*in.OwnerPhone)
		if err != nil {
			return nil, apperr.Validation("invalid owner phone number")
		}
		in.OwnerPhone = &normalized
	}

	return s.repo.Update(ctx, id, repository.UpdateParams{
		Title:           in.Title,
		PropertyType:    in.PropertyType,
		Bedrooms:        in.Bedrooms,
		Bathrooms:       in.Bathrooms,
		AreaSqft:        in.AreaSqft,
		Furnishing:      in.Furnishing,
		Amenities:       in.Amenities,
		Locality:        in.Locality,
		AskingPrice:     in.AskingPrice,
		MonthlyRent:     in.MonthlyRent,
		SecurityDeposit: in.SecurityDeposit,
		OwnerName:       in.OwnerName,
		OwnerPhone:      in.OwnerPhone,
		Status:          in.Status,
	})
}

func validStatus(status string) bool {
	switch status {
	case "Available", "Under Offer", "Sold", "Rented", "Withdrawn":
		return true
	}
	return false
}

// Delete removes a listing and its stored media objects.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	media, err := s.repo.ListMedia(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Object removal happens after the row delete. A failed removal leaves
	// an orphaned object, never a dangling database record.
	for _, m := range media {
		if err := s.storage.Delete(ctx, m.ObjectKey); err != nil {
			s.log.Warn("failed to delete media object", "object_key", m.ObjectKey, "error", err.Error())
		}
	}
	return nil
}

// GetStats returns portfolio summary counts.
func (s *Service) GetStats(ctx context.Context) (*repository.Stats, error) {
	return s.repo.GetStats(ctx)
}

// MediaUploadURL returns a presigned URL the caller PUTs the file to, plus
// the recorded media row referencing the object key.
func (s *Service) MediaUploadURL(ctx context.Context, propertyID uuid.UUID, fileName, contentType string, sizeBytes int64) (*storage.PresignedURL, *repository.Media, error) {
	property, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.checkMediaLimit(ctx, propertyID, contentType); err != nil {
		return nil, nil, err
	}

	folder := fmt.Sprintf("properties/%s", property.PropertyCode)
	presigned, err := s.storage.GenerateUploadURL(ctx, folder, fileName, contentType, sizeBytes)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindBadRequest, err.Error(), err)
	}

	media, err := s.repo.AddMedia(ctx, propertyID, presigned.ObjectKey, contentType)
	if err != nil {
		return nil, nil, err
	}
	return presigned, media, nil
}

// A listing carries at most 10 images and 1 video.
const (
	maxImagesPerProperty = 10
	maxVideosPerProperty = 1
)

func (s *Service) checkMediaLimit(ctx context.Context, propertyID uuid.UUID, contentType string) error {
	media, err := s.repo.ListMedia(ctx, propertyID)
	if err != nil {
		return err
	}

	var images, videos int
	for _, m := range media {
		switch {
		case strings.HasPrefix(m.ContentType, "image/"):
			images++
		case strings.HasPrefix(m.ContentType, "video/"):
			videos++
		}
	}

	switch {
	case strings.HasPrefix(contentType, "image/") && images >= maxImagesPerProperty:
		return apperr.Validation(fmt.Sprintf("a property can have at most %d images", maxImagesPerProperty))
	case strings.HasPrefix(contentType, "video/") && videos >= maxVideosPerProperty:
		return apperr.Validation(fmt.Sprintf("a property can have at most %d video", maxVideosPerProperty))
	}
	return nil
}

// MediaWithURL pairs a media record with a presigned download URL.
type MediaWithURL struct {
	Media       repository.Media
	DownloadURL string
}

// ListMedia returns a property's media with fresh download URLs.
func (s *Service) ListMedia(ctx context.Context, propertyID uuid.UUID) ([]MediaWithURL, error) {
	if _, err := s.repo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}

	media, err := s.repo.ListMedia(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	out := make([]MediaWithURL, 0, len(media))
	for _, m := range media {
		presigned, err := s.storage.GenerateDownloadURL(ctx, m.ObjectKey)
		if err != nil {
			return nil, fmt.Errorf("failed to presign media download: %w", err)
		}
		out = append(out, MediaWithURL{Media: m, DownloadURL: presigned.URL})
	}
	return out, nil
}

// DeleteMedia removes a media record and its stored object.
func (s *Service) DeleteMedia(ctx context.Context, propertyID, mediaID uuid.UUID) error {
	media, err := s.repo.GetMedia(ctx, propertyID, mediaID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteMedia(ctx, propertyID, mediaID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, media.ObjectKey); err != nil {
		s.log.Warn("failed to delete media object", "object_key", media.ObjectKey, "error", err.Error())
	}
	return nil
}
