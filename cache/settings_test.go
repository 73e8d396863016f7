package cache

import (
	"context"
	"errors"
	"testing"

	"backend/models"
	"backend/storage"
)

func TestCatalogAddAndRollback(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	item, err := store.AddCatalogItem(ctx, models.CategoryTowers, "Torre B")
	if err != nil {
		t.Fatalf("AddCatalogItem: %v", err)
	}
	if item.ID == "" || item.Name != "Torre B" {
		t.Fatalf("item: %+v", item)
	}
	if got := store.Catalog(models.CategoryTowers); len(got) != 1 {
		t.Fatalf("catalog: %+v", got)
	}

	gw.failInsert["towers"] = errors.New("constraint violation")
	if _, err := store.AddCatalogItem(ctx, models.CategoryTowers, "Torre C"); err == nil {
		t.Fatal("AddCatalogItem: want error")
	}
	if got := store.Catalog(models.CategoryTowers); len(got) != 1 {
		t.Fatalf("catalog after rollback: %+v", got)
	}
}

func TestCatalogDeleteFailureReloadsAndSurfaces(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	item, err := store.AddCatalogItem(ctx, models.CategorySectors, "Portaria")
	if err != nil {
		t.Fatalf("AddCatalogItem: %v", err)
	}

	gw.failDelete["sectors"] = errors.New("gateway down")
	if err := store.DeleteCatalogItem(ctx, models.CategorySectors, item.ID); err == nil {
		t.Fatal("DeleteCatalogItem: want error")
	}
	if got := store.Catalog(models.CategorySectors); len(got) != 1 {
		t.Fatalf("catalog after reload: %+v", got)
	}
}

func TestCatalogRename(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	item, err := store.AddCatalogItem(ctx, models.CategoryServices, "Elétrica")
	if err != nil {
		t.Fatalf("AddCatalogItem: %v", err)
	}
	if err := store.RenameCatalogItem(ctx, models.CategoryServices, item.ID, "Elétrica predial"); err != nil {
		t.Fatalf("RenameCatalogItem: %v", err)
	}
	if got := store.Catalog(models.CategoryServices)[0].Name; got != "Elétrica predial" {
		t.Fatalf("name: got %q", got)
	}
	if gw.rows["services"][0]["name"] != "Elétrica predial" {
		t.Fatalf("remote row: %v", gw.rows["services"][0])
	}
}

func TestResolveNameFallsBackToRawID(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	gw.seed("materials", storage.Row{"id": "mat-1", "name": "Cimento"})
	store := NewStore(gw)
	store.RefreshAll(context.Background())

	if got := store.ResolveName(models.CategoryMaterials, "mat-1"); got != "Cimento" {
		t.Fatalf("ResolveName: got %q, want Cimento", got)
	}
	if got := store.ResolveName(models.CategoryMaterials, "mat-ghost"); got != "mat-ghost" {
		t.Fatalf("ResolveName fallback: got %q, want mat-ghost", got)
	}
	if got := store.ResolveMaterialNames([]string{"mat-1", "mat-ghost"}); got != "Cimento;mat-ghost" {
		t.Fatalf("ResolveMaterialNames: got %q", got)
	}
}
