package service

import (
	"context"
	"testing"

	"estate_crm_backend/platform/apperr"
	"estate_crm_backend/platform/logger"
)

func int64Ptr(v int64) *int64 { return &v }

func TestCreateRejectsInvalidListings(t *testing.T) {
	svc := New(nil, nil, logger.New("test"))

	tests := []struct {
		name string
		in   CreateInput
	}{
		{
			name: "sale without asking price",
			in:   CreateInput{Title: "2BHK in Indiranagar", ListingType: "Sale", Locality: "Indiranagar"},
		},
		{
			name: "sale with monthly rent",
			in: CreateInput{
				Title: "2BHK in Indiranagar", ListingType: "Sale", Locality: "Indiranagar",
				AskingPrice: int64Ptr(8_500_000), MonthlyRent: int64Ptr(35_000),
			},
		},
		{
			name: "sale with security deposit",
			in: CreateInput{
				Title: "2BHK in Indiranagar", ListingType: "Sale", Locality: "Indiranagar",
				AskingPrice: int64Ptr(8_500_000), SecurityDeposit: int64Ptr(100_000),
			},
		},
		{
			name: "rent without monthly rent",
			in:   CreateInput{Title: "3BHK in HSR Layout", ListingType: "Rent", Locality: "HSR Layout"},
		},
		{
			name: "rent with asking price",
			in: CreateInput{
				Title: "3BHK in HSR Layout", ListingType: "Rent", Locality: "HSR Layout",
				MonthlyRent: int64Ptr(45_000), AskingPrice: int64Ptr(9_000_000),
			},
		},
		{
			name: "unknown listing type",
			in:   CreateInput{Title: "Plot in Whitefield", ListingType: "Lease", Locality: "Whitefield"},
		},
		{
			name: "unparseable owner phone",
			in: CreateInput{
				Title: "2BHK in Indiranagar", ListingType: "Sale", Locality: "Indiranagar",
				AskingPrice: int64Ptr(8_500_000), OwnerPhone: "not-a-number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			if err == nil {
				t.Fatal("Create() error = nil, want validation error")
			}
			if kind := apperr.GetKind(err); kind != apperr.KindValidation {
				t.Errorf("GetKind(err) = %v, want %v", kind, apperr.KindValidation)
			}
		})
	}
}
