package icons

import (
	"testing"
)

func TestSearchExactBeatsPrefix(t *testing.T) {
	matches := Search("server", 0)
	if len(matches) == 0 {
		t.Fatal("no matches for server")
	}
	if matches[0].ID != "server" {
		t.Errorf("top match = %q, want server", matches[0].ID)
	}
	if matches[0].Score != scoreExact {
		t.Errorf("top score = %d, want %d", matches[0].Score, scoreExact)
	}
}

func TestSearchPrefix(t *testing.T) {
	matches := Search("data", 0)
	if len(matches) == 0 {
		t.Fatal("no matches for data")
	}
	if matches[0].ID != "database" {
		t.Errorf("top match = %q, want database", matches[0].ID)
	}
	if matches[0].Score != scorePrefix {
		t.Errorf("top score = %d, want %d", matches[0].Score, scorePrefix)
	}
}

func TestSearchKeyword(t *testing.T) {
	matches := Search("kafka", 0)
	if len(matches) != 1 || matches[0].ID != "broker" {
		t.Fatalf("matches = %+v, want only broker", matches)
	}
	if matches[0].Score != scoreKeywordExact {
		t.Errorf("score = %d, want %d", matches[0].Score, scoreKeywordExact)
	}
}

func TestSearchCategory(t *testing.T) {
	matches := Search("messaging", 0)
	if len(matches) != 5 {
		t.Fatalf("matches = %d, want the 5 messaging icons", len(matches))
	}
	for _, m := range matches {
		if m.Category != "messaging" {
			t.Errorf("unexpected match %q in category %q", m.ID, m.Category)
		}
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	a := Search("SERVER", 0)
	b := Search("server", 0)
	if len(a) != len(b) || len(a) == 0 || a[0].ID != b[0].ID {
		t.Errorf("case changed results: %v vs %v", a, b)
	}
}

func TestSearchLimit(t *testing.T) {
	all := Search("network", 0)
	if len(all) < 3 {
		t.Fatalf("expected several network matches, got %d", len(all))
	}
	limited := Search("network", 2)
	if len(limited) != 2 {
		t.Errorf("limited = %d, want 2", len(limited))
	}
	if limited[0].ID != all[0].ID || limited[1].ID != all[1].ID {
		t.Error("limit changed ordering")
	}
}

func TestSearchNoMatch(t *testing.T) {
	if got := Search("zzzzz", 0); len(got) != 0 {
		t.Errorf("matches = %+v, want none", got)
	}
	if got := Search("  ", 0); got != nil {
		t.Errorf("blank query matched %+v", got)
	}
}

func TestSearchDeterministicTieBreak(t *testing.T) {
	a := Search("storage", 0)
	b := Search("storage", 0)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("position %d differs: %q vs %q", i, a[i].ID, b[i].ID)
		}
	}
	for i := 1; i < len(a); i++ {
		if a[i].Score == a[i-1].Score && a[i].ID < a[i-1].ID {
			t.Errorf("tie not broken by id at %d: %q before %q", i, a[i-1].ID, a[i].ID)
		}
	}
}

func TestGet(t *testing.T) {
	if icon := Get("queue"); icon == nil || icon.Name != "Queue" {
		t.Errorf("Get(queue) = %+v", icon)
	}
	if Get("nope") != nil {
		t.Error("Get(nope) should be nil")
	}
}

func TestCategories(t *testing.T) {
	want := []string{"core", "networking", "storage", "cloud", "clients", "messaging"}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
