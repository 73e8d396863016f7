package cache

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"backend/models"
	"backend/repository"
	"backend/storage"
)

// Catalog returns a snapshot copy of one settings catalog.
func (s *Store) Catalog(category models.CatalogCategory) []models.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.catalogs[category])
}

// AddCatalogItem creates a named entry in a catalog, optimistically.
func (s *Store) AddCatalogItem(ctx context.Context, category models.CatalogCategory, name string) (models.CatalogItem, error) {
	item := models.CatalogItem{
		ID:   repository.NewID(category.IDPrefix()),
		Name: name,
	}
	m := repository.CatalogMapper(category)
	row, err := m.ToWire(item)
	if err != nil {
		return models.CatalogItem{}, err
	}

	s.mu.Lock()
	s.catalogs[category] = append([]models.CatalogItem{item}, s.catalogs[category]...)
	s.mu.Unlock()

	if err := s.gw.Insert(ctx, m.Table(), []storage.Row{row}); err != nil {
		s.mu.Lock()
		s.catalogs[category] = removeCatalogItem(s.catalogs[category], item.ID)
		s.mu.Unlock()
		return models.CatalogItem{}, fmt.Errorf("add to %s: %w", m.Table(), err)
	}
	return item, nil
}

// RenameCatalogItem updates an entry's name, optimistically; a remote
// failure reloads the catalog.
func (s *Store) RenameCatalogItem(ctx context.Context, category models.CatalogCategory, id, name string) error {
	m := repository.CatalogMapper(category)

	s.mu.Lock()
	for i, item := range s.catalogs[category] {
		if item.ID == id {
			s.catalogs[category][i].Name = name
			break
		}
	}
	s.mu.Unlock()

	if err := s.gw.Update(ctx, m.Table(), id, storage.Row{"name": name}); err != nil {
		s.reloadCatalog(ctx, category)
		return fmt.Errorf("update %s: %w", m.Table(), err)
	}
	return nil
}

// DeleteCatalogItem removes an entry, optimistically. A remote failure
// reloads the catalog and surfaces the error rather than staying silent.
func (s *Store) DeleteCatalogItem(ctx context.Context, category models.CatalogCategory, id string) error {
	m := repository.CatalogMapper(category)

	s.mu.Lock()
	s.catalogs[category] = removeCatalogItem(s.catalogs[category], id)
	s.mu.Unlock()

	if err := s.gw.Delete(ctx, m.Table(), id); err != nil {
		s.reloadCatalog(ctx, category)
		return fmt.Errorf("delete from %s: %w", m.Table(), err)
	}
	return nil
}

func (s *Store) reloadCatalog(ctx context.Context, category models.CatalogCategory) {
	m := repository.CatalogMapper(category)
	fresh, err := fetchAll[models.CatalogItem](ctx, s.gw, m)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.catalogs[category] = fresh
	s.mu.Unlock()
}

func removeCatalogItem(list []models.CatalogItem, id string) []models.CatalogItem {
	for i, item := range list {
		if item.ID == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// ResolveName maps a lookup id to its display name, falling back to the raw
// id when the catalog does not know it. Dangling references never fail.
func (s *Store) ResolveName(category models.CatalogCategory, id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.catalogs[category] {
		if item.ID == id {
			return item.Name
		}
	}
	return id
}

// ResolveMaterialNames resolves each material id and joins the names with
// semicolons, the form the task CSV export uses.
func (s *Store) ResolveMaterialNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, s.ResolveName(models.CategoryMaterials, id))
	}
	return strings.Join(names, ";")
}
