// Tests for JSONL persistence and sync strategies.
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mesh-intelligence/carta/pkg/types"
)

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func TestJSONLFilesCreatedOnAttach(t *testing.T) {
	_, tmpDir := attachBackend(t, nil)

	for _, name := range jsonlFiles {
		info, err := os.Stat(filepath.Join(tmpDir, name))
		if err != nil {
			t.Errorf("expected %s to be created: %v", name, err)
			continue
		}
		if info.Size() != 0 {
			t.Errorf("expected %s empty, got %d bytes", name, info.Size())
		}
	}
}

func TestDishPersistedToJSONL(t *testing.T) {
	ctx := context.Background()
	b, tmpDir := attachBackend(t, nil)
	tbl := mustTable(t, b, types.DishesTable)

	dish := newDish("Ceviche")
	if _, err := tbl.Set(ctx, "", dish); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, dishesJSONL))
	if err != nil {
		t.Fatalf("reading dishes.jsonl: %v", err)
	}
	if !strings.Contains(string(data), `"dish_id":"`+dish.DishID+`"`) {
		t.Errorf("dishes.jsonl missing dish %s: %s", dish.DishID, data)
	}
	if !strings.Contains(string(data), `"name":"Ceviche"`) {
		t.Errorf("dishes.jsonl missing name: %s", data)
	}
}

func TestMembershipPersistedToJSONL(t *testing.T) {
	ctx := context.Background()
	b, tmpDir := attachBackend(t, nil)
	dishes := mustTable(t, b, types.DishesTable)
	restaurants := mustTable(t, b, types.RestaurantsTable)

	soup := newDish("Soup")
	dishes.Set(ctx, "", soup)
	r := newRestaurant("Bistro")
	r.Dishes = []*types.Dish{soup, soup}
	restaurants.Set(ctx, "", r)

	if n := countLines(t, filepath.Join(tmpDir, restaurantDishesJSONL)); n != 2 {
		t.Errorf("expected 2 membership lines, got %d", n)
	}

	dishes.Delete(ctx, soup.DishID)
	if n := countLines(t, filepath.Join(tmpDir, restaurantDishesJSONL)); n != 0 {
		t.Errorf("expected membership lines removed with the dish, got %d", n)
	}
}

func TestReattachReloadsFromJSONL(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	dishes := mustTable(t, b, types.DishesTable)
	restaurants := mustTable(t, b, types.RestaurantsTable)

	soup := newDish("Soup")
	pasta := newDish("Pasta")
	dishes.Set(ctx, "", soup)
	dishes.Set(ctx, "", pasta)
	r := newRestaurant("Bistro")
	r.Dishes = []*types.Dish{pasta, soup}
	rid, _ := restaurants.Set(ctx, "", r)
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	b2 := NewBackend()
	if err := b2.Attach(config); err != nil {
		t.Fatalf("re-Attach failed: %v", err)
	}
	defer b2.Detach()

	got, err := mustTable(t, b2, types.RestaurantsTable).Get(ctx, rid, true)
	if err != nil {
		t.Fatalf("Get after reload failed: %v", err)
	}
	ids := got.(*types.Restaurant).DishIDs()
	if len(ids) != 2 || ids[0] != pasta.DishID || ids[1] != soup.DishID {
		t.Errorf("expected order [pasta soup] after reload, got %v", ids)
	}
}

func TestSyncStrategies(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *types.SQLiteConfig
		linesBefore int // dishes.jsonl lines before Detach
		linesAfter  int // dishes.jsonl lines after Detach
		writes      int
	}{
		{"immediate", &types.SQLiteConfig{SyncStrategy: types.SyncImmediate}, 3, 3, 3},
		{"on_close", &types.SQLiteConfig{SyncStrategy: types.SyncOnClose}, 0, 3, 3},
		{"batch below size", &types.SQLiteConfig{SyncStrategy: types.SyncBatch, BatchSize: 5, BatchInterval: 3600}, 0, 3, 3},
		{"batch reaching size", &types.SQLiteConfig{SyncStrategy: types.SyncBatch, BatchSize: 2, BatchInterval: 3600}, 2, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			tmpDir := t.TempDir()
			b := NewBackend()
			err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: tmpDir, SQLiteConfig: tt.cfg})
			if err != nil {
				t.Fatalf("Attach failed: %v", err)
			}
			tbl := mustTable(t, b, types.DishesTable)
			for i := 0; i < tt.writes; i++ {
				if _, err := tbl.Set(ctx, "", newDish("Dish")); err != nil {
					t.Fatalf("Set failed: %v", err)
				}
			}

			path := filepath.Join(tmpDir, dishesJSONL)
			if n := countLines(t, path); n != tt.linesBefore {
				t.Errorf("before Detach: got %d lines, want %d", n, tt.linesBefore)
			}
			if err := b.Detach(); err != nil {
				t.Fatalf("Detach failed: %v", err)
			}
			if n := countLines(t, path); n != tt.linesAfter {
				t.Errorf("after Detach: got %d lines, want %d", n, tt.linesAfter)
			}
		})
	}
}

func TestWriteJSONLAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.jsonl")

	recs, err := marshalRecords([]dishJSON{{DishID: "a", Name: "A", Description: "A", Cost: 1, Category: "main"}})
	if err != nil {
		t.Fatalf("marshalRecords failed: %v", err)
	}
	if err := writeJSONL(path, recs); err != nil {
		t.Fatalf("writeJSONL failed: %v", err)
	}

	entries, _ := os.ReadDir(tmpDir)
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
	got, err := readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 record, got %d", len(got))
	}
}
