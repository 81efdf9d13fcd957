package recommend

import (
	"fmt"
	"reflect"
	"testing"

	"estate_crm_backend/internal/leads/reqparse"
)

func ptr(v int64) *int64 { return &v }

func saleProp(id, bedrooms, locality string, price int64) Property {
	return Property{
		ID:          id,
		ListingType: "Sale",
		Bedrooms:    bedrooms,
		Locality:    locality,
		AskingPrice: ptr(price),
	}
}

func saleProfile(budget int64, locality string, rooms int) Profile {
	return Profile{
		ListingType: "Sale",
		Requirement: reqparse.Requirement{Budget: budget, Locality: locality, Rooms: rooms},
	}
}

func ids(props []Property) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func TestRecommendTiers(t *testing.T) {
	candidates := []Property{
		saleProp("p1", "3 BHK", "Andheri West", 7_500_000),  // in budget, in locality
		saleProp("p2", "3 BHK", "Powai", 7_000_000),         // in budget, wrong locality
		saleProp("p3", "4 BHK", "Andheri East", 20_000_000), // over budget
		saleProp("p4", "2 BHK", "Andheri West", 6_000_000),  // too few rooms
		{ID: "p5", ListingType: "Rent", Bedrooms: "3 BHK", Locality: "Andheri West", MonthlyRent: ptr(40_000)}, // wrong type
	}

	profile := saleProfile(8_000_000, "Andheri", 3)
	got := Recommend(profile, candidates, DefaultOptions())

	// Tier order: locality match first, then budget matches, then the rest.
	want := []string{"p1", "p2", "p3"}
	if !reflect.DeepEqual(ids(got.Properties), want) {
		t.Fatalf("recommendations = %v, want %v", ids(got.Properties), want)
	}
	if got.Message != "Found 3 great matches!" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestRecommendBudgetTolerance(t *testing.T) {
	// The ceiling for an 8,000,000 budget at the default tolerance sits a
	// hair under 9,200,000, so slightly-over-budget listings still qualify
	// while clearly-over ones do not.
	candidates := []Property{
		saleProp("stretch", "3 BHK", "Andheri", 9_000_000),
		saleProp("over", "3 BHK", "Andheri", 9_500_000),
	}

	got := Recommend(saleProfile(8_000_000, "Andheri", 3), candidates, DefaultOptions())
	if !reflect.DeepEqual(ids(got.Properties), []string{"stretch", "over"}) {
		t.Fatalf("recommendations = %v", ids(got.Properties))
	}
	// Only "stretch" made the budget tier, so it leads.
	if got.Properties[0].ID != "stretch" {
		t.Errorf("expected in-tolerance property first, got %q", got.Properties[0].ID)
	}
}

func TestRecommendNoLocalityPreference(t *testing.T) {
	candidates := []Property{
		saleProp("p1", "2 BHK", "Powai", 5_000_000),
	}

	got := Recommend(saleProfile(6_000_000, reqparse.AnyLocality, 2), candidates, DefaultOptions())
	if len(got.Properties) != 1 {
		t.Fatalf("got %d properties, want 1", len(got.Properties))
	}
	if got.Message != "Found 1 great matches!" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestRecommendMessages(t *testing.T) {
	profile := saleProfile(8_000_000, "Andheri", 3)

	t.Run("no location matches", func(t *testing.T) {
		got := Recommend(profile, []Property{saleProp("p", "3 BHK", "Powai", 7_000_000)}, DefaultOptions())
		if got.Message != msgNoLocationMatches {
			t.Errorf("message = %q", got.Message)
		}
	})

	t.Run("no budget matches", func(t *testing.T) {
		got := Recommend(profile, []Property{saleProp("p", "3 BHK", "Andheri", 50_000_000)}, DefaultOptions())
		if got.Message != msgNoBudgetMatches {
			t.Errorf("message = %q", got.Message)
		}
	})

	t.Run("nothing suitable", func(t *testing.T) {
		got := Recommend(profile, []Property{saleProp("p", "1 BHK", "Andheri", 5_000_000)}, DefaultOptions())
		if got.Message != msgNoMatches {
			t.Errorf("message = %q", got.Message)
		}
		if len(got.Properties) != 0 {
			t.Errorf("got %d properties, want 0", len(got.Properties))
		}
	})
}

func TestRecommendCapsResults(t *testing.T) {
	var candidates []Property
	for i := 0; i < 15; i++ {
		candidates = append(candidates, saleProp(fmt.Sprintf("p%d", i), "3 BHK", "Andheri", 7_000_000))
	}

	got := Recommend(saleProfile(8_000_000, "Andheri", 3), candidates, DefaultOptions())
	if len(got.Properties) != 10 {
		t.Fatalf("got %d properties, want 10", len(got.Properties))
	}
}

func TestRecommendDeduplicates(t *testing.T) {
	// A property qualifying for every tier appears once.
	candidates := []Property{saleProp("p1", "3 BHK", "Andheri", 7_000_000)}
	got := Recommend(saleProfile(8_000_000, "Andheri", 3), candidates, DefaultOptions())
	if len(got.Properties) != 1 {
		t.Fatalf("got %d properties, want 1", len(got.Properties))
	}
}

func TestRecommendMissingPriceSkipsBudgetTiers(t *testing.T) {
	noPrice := Property{ID: "p1", ListingType: "Sale", Bedrooms: "3 BHK", Locality: "Andheri"}
	got := Recommend(saleProfile(8_000_000, "Andheri", 3), []Property{noPrice}, DefaultOptions())
	if len(got.Properties) != 1 {
		t.Fatalf("got %d properties, want 1", len(got.Properties))
	}
	if got.Message != msgNoBudgetMatches {
		t.Errorf("message = %q", got.Message)
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	candidates := []Property{
		saleProp("a", "3 BHK", "Andheri", 7_000_000),
		saleProp("b", "3 BHK", "Powai", 7_000_000),
		saleProp("c", "3 BHK", "Andheri", 20_000_000),
	}
	profile := saleProfile(8_000_000, "Andheri", 3)

	first := Recommend(profile, candidates, DefaultOptions())
	for i := 0; i < 5; i++ {
		again := Recommend(profile, candidates, DefaultOptions())
		if !reflect.DeepEqual(ids(first.Properties), ids(again.Properties)) {
			t.Fatalf("run %d differs: %v vs %v", i, ids(first.Properties), ids(again.Properties))
		}
	}
}
