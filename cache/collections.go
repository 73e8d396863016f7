package cache

import (
	"context"
	"fmt"
	"slices"
	"time"

	"backend/models"
	"backend/repository"
	"backend/storage"
)

func taskID(t models.Task) string { return t.ID }

func visitID(v models.Visit) string { return v.ID }

func scheduleID(s models.ScheduleItem) string { return s.ID }

func monthlyID(m models.MonthlyScheduleItem) string { return m.ID }

func thirdPartyID(t models.ThirdPartyScheduleItem) string { return t.ID }

func paintingID(p models.PaintingProject) string { return p.ID }

func purchaseID(p models.PurchaseRequest) string { return p.ID }

// Tasks returns a snapshot copy of the task collection, newest first.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// TaskByID looks a task up in the local collection.
func (s *Store) TaskByID(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			t.Materials = slices.Clone(t.Materials)
			return t, true
		}
	}
	return models.Task{}, false
}

// AddTask assigns an id and creation date when missing, prepends the task
// locally and inserts it remotely. On remote failure the task is rolled
// back and the error returned.
func (s *Store) AddTask(ctx context.Context, t models.Task) (models.Task, error) {
	if t.ID == "" {
		t.ID = repository.NewID("task")
	}
	if t.CreatedAt == "" {
		t.CreatedAt = repository.FormatDate(time.Now())
	}
	if t.Type == "" {
		t.Type = models.TaskTypeCorrective
	}
	if t.Materials == nil {
		t.Materials = []string{}
	}
	err := addOptimistic(s, ctx, repository.TaskMapper, &s.tasks, t, taskID)
	return t, err
}

func (s *Store) UpdateTask(ctx context.Context, id string, patch map[string]any) error {
	return updateOptimistic(s, ctx, repository.TaskMapper, &s.tasks, id, patch, taskID)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return deleteOptimistic(s, ctx, repository.TaskMapper, &s.tasks, id, taskID)
}

// ToggleTaskMaterial flips one material id on a task: removed when present,
// appended when absent. The full materials list is sent as the patch.
func (s *Store) ToggleTaskMaterial(ctx context.Context, id, materialID string) error {
	s.mu.RLock()
	var found *models.Task
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t := s.tasks[i]
			t.Materials = slices.Clone(t.Materials)
			found = &t
			break
		}
	}
	s.mu.RUnlock()
	if found == nil {
		return fmt.Errorf("task %s not found", id)
	}
	found.ToggleMaterial(materialID)
	return s.UpdateTask(ctx, id, map[string]any{"materials": found.Materials})
}

// BulkAddTasks inserts many tasks in one remote call, for CSV imports.
// No optimistic local mutation happens; callers refresh after success.
func (s *Store) BulkAddTasks(ctx context.Context, tasks []models.Task) error {
	rows := make([]storage.Row, 0, len(tasks))
	for _, t := range tasks {
		row, err := repository.TaskMapper.ToWire(t)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return s.gw.Insert(ctx, repository.TaskMapper.Table(), rows)
}

// Visits returns a snapshot copy of the visit collection.
func (s *Store) Visits() []models.Visit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.visits)
}

func (s *Store) AddVisit(ctx context.Context, v models.Visit) (models.Visit, error) {
	if v.ID == "" {
		v.ID = repository.NewID("visit")
	}
	if v.ReturnDate == "" {
		v.ReturnDate = models.NoReturnDate
	}
	err := addOptimistic(s, ctx, repository.VisitMapper, &s.visits, v, visitID)
	return v, err
}

func (s *Store) UpdateVisit(ctx context.Context, id string, patch map[string]any) error {
	return updateOptimistic(s, ctx, repository.VisitMapper, &s.visits, id, patch, visitID)
}

func (s *Store) DeleteVisit(ctx context.Context, id string) error {
	return deleteOptimistic(s, ctx, repository.VisitMapper, &s.visits, id, visitID)
}

// BulkAddVisits inserts many visits in one remote call, for CSV imports.
func (s *Store) BulkAddVisits(ctx context.Context, visits []models.Visit) error {
	rows := make([]storage.Row, 0, len(visits))
	for _, v := range visits {
		row, err := repository.VisitMapper.ToWire(v)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return s.gw.Insert(ctx, repository.VisitMapper.Table(), rows)
}

// Schedule returns a snapshot copy of the weekly schedule.
func (s *Store) Schedule() []models.ScheduleItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.schedule)
}

func (s *Store) AddScheduleItem(ctx context.Context, item models.ScheduleItem) (models.ScheduleItem, error) {
	if item.ID == "" {
		item.ID = repository.NewID("sched")
	}
	err := addOptimistic(s, ctx, repository.ScheduleMapper, &s.schedule, item, scheduleID)
	return item, err
}

func (s *Store) UpdateScheduleItem(ctx context.Context, id string, patch map[string]any) error {
	return updateOptimistic(s, ctx, repository.ScheduleMapper, &s.schedule, id, patch, scheduleID)
}

func (s *Store) DeleteScheduleItem(ctx context.Context, id string) error {
	return deleteOptimistic(s, ctx, repository.ScheduleMapper, &s.schedule, id, scheduleID)
}

// MonthlySchedule returns a snapshot copy of the monthly schedule.
func (s *Store) MonthlySchedule() []models.MonthlyScheduleItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.monthlySchedule)
}

func (s *Store) AddMonthlyScheduleItem(ctx context.Context, item models.MonthlyScheduleItem) (models.MonthlyScheduleItem, error) {
	if item.ID == "" {
		item.ID = repository.NewID("msched")
	}
	err := addOptimistic(s, ctx, repository.MonthlyScheduleMapper, &s.monthlySchedule, item, monthlyID)
	return item, err
}

func (s *Store) UpdateMonthlyScheduleItem(ctx context.Context, id string, patch map[string]any) error {
	return updateOptimistic(s, ctx, repository.MonthlyScheduleMapper, &s.monthlySchedule, id, patch, monthlyID)
}

func (s *Store) DeleteMonthlyScheduleItem(ctx context.Context, id string) error {
	return deleteOptimistic(s, ctx, repository.MonthlyScheduleMapper, &s.monthlySchedule, id, monthlyID)
}

// ThirdPartySchedule returns a snapshot copy of the third-party contracts.
func (s *Store) ThirdPartySchedule() []models.ThirdPartyScheduleItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.thirdParty)
}

func (s *Store) AddThirdPartyItem(ctx context.Context, item models.ThirdPartyScheduleItem) (models.ThirdPartyScheduleItem, error) {
	if item.ID == "" {
		item.ID = repository.NewID("tps")
	}
	err := addOptimistic(s, ctx, repository.ThirdPartyMapper, &s.thirdParty, item, thirdPartyID)
	return item, err
}

func (s *Store) UpdateThirdPartyItem(ctx context.Context, id string, patch map[string]any) error {
	return updateOptimistic(s, ctx, repository.ThirdPartyMapper, &s.thirdParty, id, patch, thirdPartyID)
}

func (s *Store) DeleteThirdPartyItem(ctx context.Context, id string) error {
	return deleteOptimistic(s, ctx, repository.ThirdPartyMapper, &s.thirdParty, id, thirdPartyID)
}

// PaintingProjects returns a snapshot copy of the painting projects.
func (s *Store) PaintingProjects() []models.PaintingProject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.painting)
}

func (s *Store) AddPaintingProject(ctx context.Context, p models.PaintingProject) (models.PaintingProject, error) {
	if p.ID == "" {
		p.ID = repository.NewID("paint")
	}
	err := addOptimistic(s, ctx, repository.PaintingMapper, &s.painting, p, paintingID)
	return p, err
}

func (s *Store) UpdatePaintingProject(ctx context.Context, id string, patch map[string]any) error {
	return updateOptimistic(s, ctx, repository.PaintingMapper, &s.painting, id, patch, paintingID)
}

func (s *Store) DeletePaintingProject(ctx context.Context, id string) error {
	return deleteOptimistic(s, ctx, repository.PaintingMapper, &s.painting, id, paintingID)
}

// Purchases returns a snapshot copy of the purchase requests.
func (s *Store) Purchases() []models.PurchaseRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.purchases)
}

func (s *Store) AddPurchase(ctx context.Context, p models.PurchaseRequest) (models.PurchaseRequest, error) {
	if p.ID == "" {
		p.ID = repository.NewID("buy")
	}
	err := addOptimistic(s, ctx, repository.PurchaseMapper, &s.purchases, p, purchaseID)
	return p, err
}

func (s *Store) UpdatePurchase(ctx context.Context, id string, patch map[string]any) error {
	return updateOptimistic(s, ctx, repository.PurchaseMapper, &s.purchases, id, patch, purchaseID)
}

func (s *Store) DeletePurchase(ctx context.Context, id string) error {
	return deleteOptimistic(s, ctx, repository.PurchaseMapper, &s.purchases, id, purchaseID)
}

// Summary aggregates the dashboard card counters from the current snapshot.
func (s *Store) Summary() models.DashboardSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := models.DashboardSummary{
		Tasks:               len(s.tasks),
		Visits:              len(s.visits),
		PaintingProjects:    len(s.painting),
		Purchases:           len(s.purchases),
		ThirdPartyContracts: len(s.thirdParty),
	}
	for _, t := range s.tasks {
		if t.IsConcluded() {
			continue
		}
		sum.PendingTasks++
		if t.Criticality == models.CriticalityHigh {
			sum.PendingHighCritical++
		}
	}
	for _, v := range s.visits {
		if v.Status != models.VisitStatusDone {
			sum.PendingVisits++
		}
	}
	for _, p := range s.purchases {
		if p.IsPending() {
			sum.PendingPurchases++
		}
	}
	for _, t := range s.thirdParty {
		if t.HasActiveWork() {
			sum.ActiveWorks++
		}
	}
	return sum
}
