package service

import (
	"testing"

	"github.com/google/uuid"

	"estate_crm_backend/internal/leads/repository"
)

// rentProfile scores 15 from its budget bracket plus 10 per logged
// interaction, so logCount alone sets the ordering.
func rentProfile(code string, logCount int) repository.ClientProfile {
	return repository.ClientProfile{
		ID:          uuid.New(),
		ClientCode:  code,
		Name:        code,
		ListingType: "Rent",
		Budget:      30_000,
		Status:      "New Inquiry",
		LogCount:    logCount,
	}
}

func TestRankProfilesOrdersByScore(t *testing.T) {
	profiles := []repository.ClientProfile{
		rentProfile("RENT-1001", 0),
		rentProfile("RENT-1002", 5),
		rentProfile("RENT-1003", 2),
	}

	ranked := rankProfiles(profiles)

	got := make([]string, 0, len(ranked))
	for _, r := range ranked {
		got = append(got, r.Profile.ClientCode)
	}
	want := []string{"RENT-1002", "RENT-1003", "RENT-1001"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRankProfilesKeepsOrderForEqualScores(t *testing.T) {
	// All four score identically; the winner placed last confirms the sort
	// moved it without disturbing the tied group's relative order.
	profiles := []repository.ClientProfile{
		rentProfile("RENT-1001", 1),
		rentProfile("RENT-1002", 1),
		rentProfile("RENT-1003", 1),
		rentProfile("RENT-1004", 1),
		rentProfile("RENT-1005", 9),
	}

	ranked := rankProfiles(profiles)

	if len(ranked) != 5 {
		t.Fatalf("len(ranked) = %d, want 5", len(ranked))
	}
	if ranked[0].Profile.ClientCode != "RENT-1005" {
		t.Fatalf("ranked[0] = %s, want RENT-1005", ranked[0].Profile.ClientCode)
	}

	want := []string{"RENT-1001", "RENT-1002", "RENT-1003", "RENT-1004"}
	for i, code := range want {
		if ranked[i+1].Profile.ClientCode != code {
			t.Errorf("ranked[%d] = %s, want %s", i+1, ranked[i+1].Profile.ClientCode, code)
		}
		if ranked[i+1].Score != ranked[1].Score {
			t.Errorf("ranked[%d].Score = %d, want %d", i+1, ranked[i+1].Score, ranked[1].Score)
		}
	}
}
