package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"backend/models"
	"backend/storage"
)

// fakeGateway is an in-memory Gateway with per-table forced failures.
type fakeGateway struct {
	mu         sync.Mutex
	rows       map[string][]storage.Row
	failSelect map[string]error
	failInsert map[string]error
	failUpdate map[string]error
	failDelete map[string]error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		rows:       make(map[string][]storage.Row),
		failSelect: make(map[string]error),
		failInsert: make(map[string]error),
		failUpdate: make(map[string]error),
		failDelete: make(map[string]error),
	}
}

func (g *fakeGateway) seed(table string, rows ...storage.Row) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rows[table] = append(g.rows[table], rows...)
}

func (g *fakeGateway) Select(_ context.Context, table string) ([]storage.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failSelect[table]; err != nil {
		return nil, err
	}
	out := make([]storage.Row, len(g.rows[table]))
	for i, row := range g.rows[table] {
		cp := make(storage.Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out[i] = cp
	}
	return out, nil
}

func (g *fakeGateway) Insert(_ context.Context, table string, rows []storage.Row) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failInsert[table]; err != nil {
		return err
	}
	g.rows[table] = append(g.rows[table], rows...)
	return nil
}

func (g *fakeGateway) Update(_ context.Context, table string, id string, patch storage.Row) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failUpdate[table]; err != nil {
		return err
	}
	for _, row := range g.rows[table] {
		if row["id"] == id {
			for k, v := range patch {
				row[k] = v
			}
		}
	}
	return nil
}

func (g *fakeGateway) Delete(_ context.Context, table string, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failDelete[table]; err != nil {
		return err
	}
	kept := g.rows[table][:0]
	for _, row := range g.rows[table] {
		if row["id"] != id {
			kept = append(kept, row)
		}
	}
	g.rows[table] = kept
	return nil
}

func (g *fakeGateway) DeleteAll(_ context.Context, table string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failDelete[table]; err != nil {
		return err
	}
	g.rows[table] = nil
	return nil
}

func TestAddTaskOptimistic(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	added, err := store.AddTask(ctx, models.Task{Title: "Trocar fechadura"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if added.ID == "" {
		t.Fatal("AddTask left id empty")
	}
	if added.Type != models.TaskTypeCorrective {
		t.Fatalf("AddTask type default: got %q", added.Type)
	}
	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].ID != added.ID {
		t.Fatalf("local collection: got %+v", tasks)
	}
	if len(gw.rows["tasks"]) != 1 {
		t.Fatalf("remote rows: got %d, want 1", len(gw.rows["tasks"]))
	}
}

func TestAddTaskRollbackOnInsertFailure(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	gw.failInsert["tasks"] = errors.New("constraint violation")
	store := NewStore(gw)
	ctx := context.Background()

	if _, err := store.AddTask(ctx, models.Task{Title: "x"}); err == nil {
		t.Fatal("AddTask: want error")
	}
	if got := len(store.Tasks()); got != 0 {
		t.Fatalf("collection length after failed add: got %d, want 0", got)
	}
}

func TestUpdateTaskMergesPartialFields(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	added, err := store.AddTask(ctx, models.Task{Title: "Pintura hall", Situation: "Aberto", Criticality: models.CriticalityLow})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := store.UpdateTask(ctx, added.ID, map[string]any{"situation": "Concluído"}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	got := store.Tasks()[0]
	if got.Situation != "Concluído" {
		t.Fatalf("situation: got %q", got.Situation)
	}
	if got.Title != "Pintura hall" || got.Criticality != models.CriticalityLow {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if gw.rows["tasks"][0]["situation"] != "Concluído" {
		t.Fatalf("remote row not patched: %v", gw.rows["tasks"][0])
	}
}

func TestUpdateFailureReloadsPreImage(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	added, err := store.AddVisit(ctx, models.Visit{Tower: "T2", Unit: "101", Status: models.VisitStatusPending})
	if err != nil {
		t.Fatalf("AddVisit: %v", err)
	}

	gw.failUpdate["visits"] = errors.New("gateway down")
	if err := store.UpdateVisit(ctx, added.ID, map[string]any{"status": models.VisitStatusDone}); err == nil {
		t.Fatal("UpdateVisit: want error")
	}

	// The reload fetched the remote rows, which still hold the pre-image.
	got := store.Visits()
	if len(got) != 1 {
		t.Fatalf("visits after reload: got %d, want 1", len(got))
	}
	if got[0].Status != models.VisitStatusPending {
		t.Fatalf("status after reload: got %q, want %q", got[0].Status, models.VisitStatusPending)
	}
}

func TestDeleteUnknownVisitIsLocalNoOp(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	if _, err := store.AddVisit(ctx, models.Visit{Tower: "T1", Unit: "202"}); err != nil {
		t.Fatalf("AddVisit: %v", err)
	}
	before := store.Visits()

	if err := store.DeleteVisit(ctx, "visit-nope"); err != nil {
		t.Fatalf("DeleteVisit unknown id: %v", err)
	}
	after := store.Visits()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Fatalf("collection changed: before %+v, after %+v", before, after)
	}
}

func TestDeleteFailureReloads(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	added, err := store.AddPurchase(ctx, models.PurchaseRequest{Description: "Cimento", Quantity: 3})
	if err != nil {
		t.Fatalf("AddPurchase: %v", err)
	}

	gw.failDelete["purchases"] = errors.New("gateway down")
	if err := store.DeletePurchase(ctx, added.ID); err == nil {
		t.Fatal("DeletePurchase: want error")
	}
	if got := len(store.Purchases()); got != 1 {
		t.Fatalf("purchases after reload: got %d, want 1", got)
	}
}

func TestRefreshAllToleratesPartialFailure(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	gw.seed("tasks", storage.Row{"id": "task-1", "title": "A", "materials": "[]"})
	gw.seed("visits", storage.Row{"id": "visit-1", "tower": "T1"})
	gw.failSelect["visits"] = errors.New("timeout")

	store := NewStore(gw)
	report := store.RefreshAll(context.Background())

	if report.LastSync == "" {
		t.Fatal("RefreshAll did not record last sync")
	}
	if _, ok := report.Failed["visits"]; !ok {
		t.Fatalf("failed map: got %v, want visits entry", report.Failed)
	}
	if len(store.Tasks()) != 1 {
		t.Fatalf("tasks loaded: got %d, want 1", len(store.Tasks()))
	}
	// The failing table keeps its last-known (empty) value.
	if len(store.Visits()) != 0 {
		t.Fatalf("visits: got %d, want 0", len(store.Visits()))
	}
	if store.LastSync() != report.LastSync {
		t.Fatalf("LastSync accessor: got %q, want %q", store.LastSync(), report.LastSync)
	}
}

func TestRefreshAllKeepsLastKnownValueOnFailure(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	gw.seed("tasks", storage.Row{"id": "task-1", "title": "A", "materials": "[]"})
	store := NewStore(gw)
	store.RefreshAll(context.Background())

	gw.failSelect["tasks"] = errors.New("timeout")
	store.RefreshAll(context.Background())

	if len(store.Tasks()) != 1 {
		t.Fatalf("tasks after failed refresh: got %d, want 1", len(store.Tasks()))
	}
}

func TestClearAllPreservesCatalogs(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	gw.seed("towers", storage.Row{"id": "twr-1", "name": "Torre A"})
	store := NewStore(gw)
	ctx := context.Background()
	store.RefreshAll(ctx)

	if _, err := store.AddTask(ctx, models.Task{Title: "x"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, err := store.AddVisit(ctx, models.Visit{Tower: "T1"}); err != nil {
		t.Fatalf("AddVisit: %v", err)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if len(store.Tasks()) != 0 || len(store.Visits()) != 0 {
		t.Fatal("transactional collections not cleared")
	}
	if len(gw.rows["tasks"]) != 0 || len(gw.rows["visits"]) != 0 {
		t.Fatal("remote tables not cleared")
	}
	if got := store.Catalog(models.CategoryTowers); len(got) != 1 {
		t.Fatalf("catalog not preserved: got %+v", got)
	}
}

func TestClearAllSurfacesFailure(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	if _, err := store.AddTask(ctx, models.Task{Title: "x"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	gw.failDelete["tasks"] = errors.New("gateway down")

	if err := store.ClearAll(ctx); err == nil {
		t.Fatal("ClearAll: want error")
	}
	// The failed table reloaded from the still-populated remote copy.
	if got := len(store.Tasks()); got != 1 {
		t.Fatalf("tasks after failed clear: got %d, want 1", got)
	}
}

func TestToggleTaskMaterial(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	added, err := store.AddTask(ctx, models.Task{Title: "x", Materials: []string{"mat-1"}})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if err := store.ToggleTaskMaterial(ctx, added.ID, "mat-2"); err != nil {
		t.Fatalf("ToggleTaskMaterial append: %v", err)
	}
	got := store.Tasks()[0].Materials
	if len(got) != 2 || got[1] != "mat-2" {
		t.Fatalf("materials after append: %v", got)
	}

	if err := store.ToggleTaskMaterial(ctx, added.ID, "mat-1"); err != nil {
		t.Fatalf("ToggleTaskMaterial remove: %v", err)
	}
	got = store.Tasks()[0].Materials
	if len(got) != 1 || got[0] != "mat-2" {
		t.Fatalf("materials after remove: %v", got)
	}

	if err := store.ToggleTaskMaterial(ctx, "task-nope", "mat-1"); err == nil {
		t.Fatal("ToggleTaskMaterial unknown task: want error")
	}
}

func TestSummaryPendingHighCritical(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	added, err := store.AddTask(ctx, models.Task{Title: "Vazamento", Criticality: models.CriticalityHigh, Situation: "Aberto"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if got := store.Summary().PendingHighCritical; got != 1 {
		t.Fatalf("pending high-critical: got %d, want 1", got)
	}

	if err := store.UpdateTask(ctx, added.ID, map[string]any{"situation": "CONCLUIDA"}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if got := store.Summary().PendingHighCritical; got != 0 {
		t.Fatalf("pending high-critical after conclusion: got %d, want 0", got)
	}
}

func TestSummaryCounters(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	store := NewStore(gw)
	ctx := context.Background()

	mustAdd := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	_, err := store.AddVisit(ctx, models.Visit{Status: models.VisitStatusPending})
	mustAdd(err)
	_, err = store.AddVisit(ctx, models.Visit{Status: models.VisitStatusDone})
	mustAdd(err)
	_, err = store.AddPurchase(ctx, models.PurchaseRequest{Description: "a"})
	mustAdd(err)
	_, err = store.AddPurchase(ctx, models.PurchaseRequest{Description: "b", ApprovalDate: "2025-01-02"})
	mustAdd(err)
	_, err = store.AddThirdPartyItem(ctx, models.ThirdPartyScheduleItem{Company: "X", WorkStartDate: "2025-01-01"})
	mustAdd(err)
	_, err = store.AddThirdPartyItem(ctx, models.ThirdPartyScheduleItem{Company: "Y"})
	mustAdd(err)

	sum := store.Summary()
	if sum.Visits != 2 || sum.PendingVisits != 1 {
		t.Fatalf("visit counters: %+v", sum)
	}
	if sum.Purchases != 2 || sum.PendingPurchases != 1 {
		t.Fatalf("purchase counters: %+v", sum)
	}
	if sum.ThirdPartyContracts != 2 || sum.ActiveWorks != 1 {
		t.Fatalf("third-party counters: %+v", sum)
	}
}
