package storage

import (
	"encoding/json"
	"errors"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := testStore(t)

	data := json.RawMessage(`{"title":"Arch","items":[],"views":[]}`)
	saved, err := s.Save("arch", "Arch", data)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected generated id")
	}
	if saved.Name != "arch" || saved.Title != "Arch" {
		t.Errorf("saved = %+v", saved)
	}
	if saved.CreatedAt == "" || saved.UpdatedAt == "" {
		t.Errorf("missing timestamps: %+v", saved)
	}

	loaded, err := s.Load("arch")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(loaded.Data) != string(data) {
		t.Errorf("Data = %s, want %s", loaded.Data, data)
	}
}

func TestSaveUpsertsByName(t *testing.T) {
	s := testStore(t)

	first, err := s.Save("arch", "v1", json.RawMessage(`{"title":"v1"}`))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := s.Save("arch", "v2", json.RawMessage(`{"title":"v2"}`))
	if err != nil {
		t.Fatalf("Save again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert changed id: %q -> %q", first.ID, second.ID)
	}
	if second.Title != "v2" {
		t.Errorf("Title = %q, want v2", second.Title)
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List = %d rows, want 1", len(all))
	}
}

func TestLoadMissing(t *testing.T) {
	s := testStore(t)
	if _, err := s.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListOrdersByName(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := s.Save(name, name, json.RawMessage(`{}`)); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List = %d rows, want 3", len(all))
	}
	want := []string{"alpha", "mid", "zeta"}
	for i, d := range all {
		if d.Name != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, d.Name, want[i])
		}
		if d.Data != nil {
			t.Errorf("List row %q carries payload", d.Name)
		}
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	if _, err := s.Save("arch", "Arch", json.RawMessage(`{}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete("arch"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("arch"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, err = %v, want ErrNotFound", err)
	}
	if err := s.Delete("arch"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete, err = %v, want ErrNotFound", err)
	}
}
