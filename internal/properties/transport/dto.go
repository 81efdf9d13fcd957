package transport

import (
	"time"

	"estate_crm_backend/internal/adapters/storage"
	"estate_crm_backend/internal/properties/repository"
	"estate_crm_backend/internal/properties/service"
)

type CreatePropertyRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=200"`
	ListingType     string `json:"listingType" validate:"required,oneof=Sale Rent"`
	PropertyType    string `json:"propertyType" validate:"max=50"`
	Bedrooms        string `json:"bedrooms" validate:"max=20"`
	Bathrooms       int    `json:"bathrooms" validate:"gte=0,lte=20"`
	AreaSqft        int    `json:"areaSqft" validate:"gte=0"`
	Furnishing      string `json:"furnishing" validate:"max=50"`
	Amenities       string `json:"amenities" validate:"max=500"`
	Locality        string `json:"locality" validate:"required,max=100"`
	AskingPrice     *int64 `json:"askingPrice" validate:"omitempty,gt=0"`
	MonthlyRent     *int64 `json:"monthlyRent" validate:"omitempty,gt=0"`
	SecurityDeposit *int64 `json:"securityDeposit" validate:"omitempty,gt=0"`
	OwnerName       string `json:"ownerName" validate:"max=100"`
	OwnerPhone      string `json:"ownerPhone" validate:"max=20"`
}

type UpdatePropertyRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=3,max=200"`
	PropertyType    *string `json:"propertyType" validate:"omitempty,max=50"`
	Bedrooms        *string `json:"bedrooms" validate:"omitempty,max=20"`
	Bathrooms       *int    `json:"bathrooms" validate:"omitempty,gte=0,lte=20"`
	AreaSqft        *int    `json:"areaSqft" validate:"omitempty,gte=0"`
	Furnishing      *string `json:"furnishing" validate:"omitempty,max=50"`
	Amenities       *string `json:"amenities" validate:"omitempty,max=500"`
	Locality        *string `json:"locality" validate:"omitempty,max=100"`
	AskingPrice     *int64  `json:"askingPrice" validate:"omitempty,gt=0"`
	MonthlyRent     *int64  `json:"monthlyRent" validate:"omitempty,gt=0"`
	SecurityDeposit *int64  `json:"securityDeposit" validate:"omitempty,gt=0"`
	OwnerName       *string `json:"ownerName" validate:"omitempty,max=100"`
	OwnerPhone      *string `json:"ownerPhone" validate:"omitempty,max=20"`
	Status          *string `json:"status"`
}

type MediaUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=200"`
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,gt=0"`
}

type PropertyResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Title           string    `json:"title"`
	ListingType     string    `json:"listingType"`
	PropertyType    string    `json:"propertyType,omitempty"`
	Bedrooms        string    `json:"bedrooms"`
	Bathrooms       int       `json:"bathrooms,omitempty"`
	AreaSqft        int       `json:"areaSqft,omitempty"`
	Furnishing      string    `json:"furnishing,omitempty"`
	Amenities       string    `json:"amenities,omitempty"`
	Locality        string    `json:"locality"`
	AskingPrice     *int64    `json:"askingPrice,omitempty"`
	MonthlyRent     *int64    `json:"monthlyRent,omitempty"`
	SecurityDeposit *int64    `json:"securityDeposit,omitempty"`
	OwnerName       string    `json:"ownerName,omitempty"`
	OwnerPhone      string    `json:"ownerPhone,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToPropertyResponse(p *repository.Property) PropertyResponse {
	return PropertyResponse{
		ID:              p.ID.String(),
		Code:            p.PropertyCode,
		Title:           p.Title,
		ListingType:     p.ListingType,
		PropertyType:    p.PropertyType,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		AreaSqft:        p.AreaSqft,
		Furnishing:      p.Furnishing,
		Amenities:       p.Amenities,
		Locality:        p.Locality,
		AskingPrice:     p.AskingPrice,
		MonthlyRent:     p.MonthlyRent,
		SecurityDeposit: p.SecurityDeposit,
		OwnerName:       p.OwnerName,
		OwnerPhone:      p.OwnerPhone,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type ListPropertiesResponse struct {
	Items      []PropertyResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

type StatsResponse struct {
	Total          int   `json:"total"`
	ForSale        int   `json:"forSale"`
	ForRent        int   `json:"forRent"`
	Available      int   `json:"available"`
	AvgAskingPrice int64 `json:"avgAskingPrice"`
	AvgMonthlyRent int64 `json:"avgMonthlyRent"`
}

func ToStatsResponse(s *repository.Stats) StatsResponse {
	return StatsResponse{
		Total:          s.Total,
		ForSale:        s.ForSale,
		ForRent:        s.ForRent,
		Available:      s.Available,
		AvgAskingPrice: s.AvgAskingPrice,
		AvgMonthlyRent: s.AvgMonthlyRent,
	}
}

type MediaUploadResponse struct {
	MediaID   string    `json:"mediaId"`
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func ToMediaUploadResponse(presigned *storage.PresignedURL, media *repository.Media) MediaUploadResponse {
	return MediaUploadResponse{
		MediaID:   media.ID.String(),
		UploadURL: presigned.URL,
		ObjectKey: presigned.ObjectKey,
		ExpiresAt: presigned.ExpiresAt,
	}
}

type MediaResponse struct {
	ID          string    `json:"id"`
	ContentType string    `json:"contentType"`
	DownloadURL string    `json:"downloadUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToMediaResponse(m service.MediaWithURL) MediaResponse {
	return MediaResponse{
		ID:          m.Media.ID.String(),
		ContentType: m.Media.ContentType,
		DownloadURL: m.DownloadURL,
		CreatedAt:   m.Media.CreatedAt,
	}
}
