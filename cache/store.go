package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"backend/models"
	"backend/repository"
	"backend/storage"
)

// Store is the in-memory mirror of the remote tables. It owns the
// authoritative local copy of the seven transactional collections and the
// six settings catalogs; the gateway owns the durable copy.
//
// Mutations are optimistic: the local change lands first, then the remote
// call is issued. A failed insert is rolled back exactly (the synthesized
// row is dropped); a failed update or delete triggers a full reload of the
// affected collection, since no pre-image is kept.
type Store struct {
	gw storage.Gateway

	mu              sync.RWMutex
	tasks           []models.Task
	visits          []models.Visit
	schedule        []models.ScheduleItem
	monthlySchedule []models.MonthlyScheduleItem
	thirdParty      []models.ThirdPartyScheduleItem
	painting        []models.PaintingProject
	purchases       []models.PurchaseRequest
	catalogs        map[models.CatalogCategory][]models.CatalogItem
	lastSync        string
}

// NewStore builds an empty store around a gateway. Call RefreshAll to
// populate it.
func NewStore(gw storage.Gateway) *Store {
	catalogs := make(map[models.CatalogCategory][]models.CatalogItem, len(models.AllCategories))
	for _, cat := range models.AllCategories {
		catalogs[cat] = []models.CatalogItem{}
	}
	return &Store{
		gw:              gw,
		tasks:           []models.Task{},
		visits:          []models.Visit{},
		schedule:        []models.ScheduleItem{},
		monthlySchedule: []models.MonthlyScheduleItem{},
		thirdParty:      []models.ThirdPartyScheduleItem{},
		painting:        []models.PaintingProject{},
		purchases:       []models.PurchaseRequest{},
		catalogs:        catalogs,
	}
}

// LastSync returns the timestamp recorded by the most recent RefreshAll,
// empty before the first refresh.
func (s *Store) LastSync() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}

// fetchAll loads one collection from the gateway and decodes every row.
func fetchAll[T any](ctx context.Context, gw storage.Gateway, m *repository.Mapper) ([]T, error) {
	rows, err := gw.Select(ctx, m.Table())
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := m.FromWire(row, &v); err != nil {
			return nil, fmt.Errorf("%s: %w", m.Table(), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// loader fetches one table and applies the result to local state.
type loader struct {
	table string
	load  func(ctx context.Context) error
}

func replaceLoader[T any](s *Store, m *repository.Mapper, apply func(*Store, []T)) loader {
	return loader{
		table: m.Table(),
		load: func(ctx context.Context) error {
			fresh, err := fetchAll[T](ctx, s.gw, m)
			if err != nil {
				return err
			}
			s.mu.Lock()
			apply(s, fresh)
			s.mu.Unlock()
			return nil
		},
	}
}

// entityLoaders covers the seven transactional collections.
func (s *Store) entityLoaders() []loader {
	return []loader{
		replaceLoader(s, repository.TaskMapper, func(s *Store, v []models.Task) { s.tasks = v }),
		replaceLoader(s, repository.VisitMapper, func(s *Store, v []models.Visit) { s.visits = v }),
		replaceLoader(s, repository.ScheduleMapper, func(s *Store, v []models.ScheduleItem) { s.schedule = v }),
		replaceLoader(s, repository.MonthlyScheduleMapper, func(s *Store, v []models.MonthlyScheduleItem) { s.monthlySchedule = v }),
		replaceLoader(s, repository.ThirdPartyMapper, func(s *Store, v []models.ThirdPartyScheduleItem) { s.thirdParty = v }),
		replaceLoader(s, repository.PaintingMapper, func(s *Store, v []models.PaintingProject) { s.painting = v }),
		replaceLoader(s, repository.PurchaseMapper, func(s *Store, v []models.PurchaseRequest) { s.purchases = v }),
	}
}

func (s *Store) catalogLoaders() []loader {
	loaders := make([]loader, 0, len(models.AllCategories))
	for _, cat := range models.AllCategories {
		cat := cat
		m := repository.CatalogMapper(cat)
		loaders = append(loaders, loader{
			table: m.Table(),
			load: func(ctx context.Context) error {
				fresh, err := fetchAll[models.CatalogItem](ctx, s.gw, m)
				if err != nil {
					return err
				}
				s.mu.Lock()
				s.catalogs[cat] = fresh
				s.mu.Unlock()
				return nil
			},
		})
	}
	return loaders
}

// RefreshAll fetches all thirteen tables concurrently and replaces local
// state wholesale, one table at a time as each fetch lands. A failing fetch
// leaves that collection at its last-known value and never blocks the
// others.
func (s *Store) RefreshAll(ctx context.Context) models.RefreshReport {
	loaders := append(s.entityLoaders(), s.catalogLoaders()...)

	var wg sync.WaitGroup
	var mu sync.Mutex
	loaded := make([]string, 0, len(loaders))
	failed := make(map[string]string)

	for _, l := range loaders {
		l := l
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.load(ctx); err != nil {
				log.Printf("[cache] refresh %s failed: %v", l.table, err)
				mu.Lock()
				failed[l.table] = err.Error()
				mu.Unlock()
				return
			}
			mu.Lock()
			loaded = append(loaded, l.table)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Strings(loaded)
	now := time.Now().Format(time.RFC3339)
	s.mu.Lock()
	s.lastSync = now
	s.mu.Unlock()

	report := models.RefreshReport{LastSync: now, Loaded: loaded}
	if len(failed) > 0 {
		report.Failed = failed
	}
	return report
}

// ClearAll wipes the seven transactional collections locally and remotely.
// Catalogs are preserved. A failed remote clear reloads that collection so
// local state converges back to the store, and the error is surfaced.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	s.tasks = []models.Task{}
	s.visits = []models.Visit{}
	s.schedule = []models.ScheduleItem{}
	s.monthlySchedule = []models.MonthlyScheduleItem{}
	s.thirdParty = []models.ThirdPartyScheduleItem{}
	s.painting = []models.PaintingProject{}
	s.purchases = []models.PurchaseRequest{}
	s.mu.Unlock()

	var errs []error
	for _, l := range s.entityLoaders() {
		if err := s.gw.DeleteAll(ctx, l.table); err != nil {
			errs = append(errs, err)
			if lerr := l.load(ctx); lerr != nil {
				log.Printf("[cache] reload %s after failed clear: %v", l.table, lerr)
			}
		}
	}
	return errors.Join(errs...)
}

// mergePatch shallow-merges a partial entity (JSON keys) into an entity.
// Fields absent from the patch are untouched.
func mergePatch[T any](entity T, patch map[string]any) (T, error) {
	var zero T
	flat, err := repository.Flatten(entity)
	if err != nil {
		return zero, err
	}
	for k, v := range patch {
		flat[k] = v
	}
	return repository.Unflatten[T](flat)
}

func addOptimistic[T any](s *Store, ctx context.Context, m *repository.Mapper, list *[]T, item T, idOf func(T) string) error {
	row, err := m.ToWire(item)
	if err != nil {
		return err
	}
	s.mu.Lock()
	*list = append([]T{item}, *list...)
	s.mu.Unlock()

	if err := s.gw.Insert(ctx, m.Table(), []storage.Row{row}); err != nil {
		id := idOf(item)
		s.mu.Lock()
		for i := range *list {
			if idOf((*list)[i]) == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		return fmt.Errorf("add to %s: %w", m.Table(), err)
	}
	return nil
}

func updateOptimistic[T any](s *Store, ctx context.Context, m *repository.Mapper, list *[]T, id string, patch map[string]any, idOf func(T) string) error {
	wirePatch, err := m.PatchToWire(patch)
	if err != nil {
		return err
	}
	s.mu.Lock()
	for i := range *list {
		if idOf((*list)[i]) == id {
			merged, merr := mergePatch((*list)[i], patch)
			if merr != nil {
				s.mu.Unlock()
				return merr
			}
			(*list)[i] = merged
			break
		}
	}
	s.mu.Unlock()

	if err := s.gw.Update(ctx, m.Table(), id, wirePatch); err != nil {
		reloadInto(s, ctx, m, list)
		return fmt.Errorf("update %s: %w", m.Table(), err)
	}
	return nil
}

func deleteOptimistic[T any](s *Store, ctx context.Context, m *repository.Mapper, list *[]T, id string, idOf func(T) string) error {
	s.mu.Lock()
	for i := range *list {
		if idOf((*list)[i]) == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	// The remote delete fires even when the id was not cached locally; an
	// unknown id is a remote no-op.
	if err := s.gw.Delete(ctx, m.Table(), id); err != nil {
		reloadInto(s, ctx, m, list)
		return fmt.Errorf("delete from %s: %w", m.Table(), err)
	}
	return nil
}

func reloadInto[T any](s *Store, ctx context.Context, m *repository.Mapper, list *[]T) {
	fresh, err := fetchAll[T](ctx, s.gw, m)
	if err != nil {
		log.Printf("[cache] reload %s failed: %v", m.Table(), err)
		return
	}
	s.mu.Lock()
	*list = fresh
	s.mu.Unlock()
}
