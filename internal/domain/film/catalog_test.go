package film

import "testing"

func TestCatalogEntryByTMDBID(t *testing.T) {
	entry, ok := CatalogEntryByTMDBID(27205)
	if !ok {
		t.Fatal("expected Inception in the catalog")
	}
	if entry.Title != "Inception" {
		t.Fatalf("expected Inception, got %q", entry.Title)
	}

	if _, ok := CatalogEntryByTMDBID(-1); ok {
		t.Fatal("expected miss for unknown tmdb id")
	}
}

func TestSearchCatalogCaseInsensitive(t *testing.T) {
	results := SearchCatalog("dark knight")
	if len(results) == 0 {
		t.Fatal("expected a match for lowercase query")
	}
	for _, e := range results {
		if e.TMDBID == 155 {
			return
		}
	}
	t.Fatal("expected The Dark Knight among results")
}

func TestSearchCatalogEmptyQuery(t *testing.T) {
	if results := SearchCatalog("   "); results != nil {
		t.Fatalf("expected no results for blank query, got %d", len(results))
	}
}

func TestCatalogEntriesWellFormed(t *testing.T) {
	seen := map[int64]bool{}
	for _, e := range Catalog() {
		if e.TMDBID <= 0 || e.Title == "" {
			t.Fatalf("malformed catalog entry: %+v", e)
		}
		if seen[e.TMDBID] {
			t.Fatalf("duplicate tmdb id %d", e.TMDBID)
		}
		seen[e.TMDBID] = true
	}
}
