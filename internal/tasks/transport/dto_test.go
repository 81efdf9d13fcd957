package transport

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"estate_crm_backend/internal/tasks/repository"
)

func TestToTaskResponseCarriesPropertyLink(t *testing.T) {
	propertyID := uuid.New()
	task := repository.Task{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		PropertyID: &propertyID,
		TaskType:   "Site Visit",
		Notes:      "confirm timing with owner",
		Details:    "gate code 4412",
		DueDate:    time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Status:     repository.StatusPending,
	}

	resp := ToTaskResponse(&task)

	if resp.PropertyID == nil || *resp.PropertyID != propertyID.String() {
		t.Errorf("PropertyID = %v, want %s", resp.PropertyID, propertyID)
	}
	if resp.Details != "gate code 4412" {
		t.Errorf("Details = %q, want %q", resp.Details, "gate code 4412")
	}
	if resp.DueDate != "2026-09-12" {
		t.Errorf("DueDate = %q, want %q", resp.DueDate, "2026-09-12")
	}
}

func TestToTaskResponseWithoutProperty(t *testing.T) {
	task := repository.Task{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		TaskType: "Follow-up Call",
		DueDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:   repository.StatusPending,
	}

	resp := ToTaskResponse(&task)
	if resp.PropertyID != nil {
		t.Errorf("PropertyID = %v, want nil", resp.PropertyID)
	}
}

func TestToBoardTaskResponseCarriesPropertyColumns(t *testing.T) {
	code := "RENT-PROP-1001"
	locality := "Koramangala"
	board := repository.BoardTask{
		Task: repository.Task{
			ID:       uuid.New(),
			ClientID: uuid.New(),
			TaskType: "Negotiation",
			DueDate:  time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
			Status:   repository.StatusPending,
		},
		ClientName:       "Asha Rao",
		ClientCode:       "RENT-1001",
		PropertyCode:     &code,
		PropertyLocality: &locality,
	}

	resp := ToBoardTaskResponse(&board)

	if resp.PropertyCode == nil || *resp.PropertyCode != code {
		t.Errorf("PropertyCode = %v, want %s", resp.PropertyCode, code)
	}
	if resp.PropertyLocality == nil || *resp.PropertyLocality != locality {
		t.Errorf("PropertyLocality = %v, want %s", resp.PropertyLocality, locality)
	}
	if resp.ClientCode != "RENT-1001" {
		t.Errorf("ClientCode = %q, want %q", resp.ClientCode, "RENT-1001")
	}
}
