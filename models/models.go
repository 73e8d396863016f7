package models

import "strings"

// Criticality tiers used by tasks and painting projects.
const (
	CriticalityLow    = "Baixa"
	CriticalityMedium = "Média"
	CriticalityHigh   = "Alta"
)

// Task types.
const (
	TaskTypeCorrective = "Corretiva"
	TaskTypePreventive = "Preventiva"
	TaskTypeProgrammed = "Programada"
)

// Visit statuses.
const (
	VisitStatusPending    = "Pendente"
	VisitStatusInProgress = "Em Andamento"
	VisitStatusDone       = "Concluído"
)

// Third-party contract frequencies.
const (
	FrequencyWeekly     = "Semanal"
	FrequencyMonthly    = "Mensal"
	FrequencyQuarterly  = "Trimestral"
	FrequencySemiannual = "Semestral"
	FrequencyAnnual     = "Anual"
)

// NoReturnDate is the sentinel a visit carries when no return is scheduled.
const NoReturnDate = "-"

// Task is a maintenance task. Lookup references (sectorId, serviceId,
// towerId, responsibleId, materials) are not validated against the catalogs;
// a dangling id is rendered with a fallback placeholder downstream.
type Task struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	SectorID      string   `json:"sectorId"`
	ServiceID     string   `json:"serviceId"`
	TowerID       string   `json:"towerId"`
	Location      string   `json:"location"`
	ResponsibleID string   `json:"responsibleId"`
	Situation     string   `json:"situation"`
	Criticality   string   `json:"criticality"`
	Type          string   `json:"type"`
	Materials     []string `json:"materials"`
	CallDate      string   `json:"callDate"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Description   string   `json:"description"`
	CreatedAt     string   `json:"createdAt"`
}

// ToggleMaterial adds the id when absent and removes it when present.
// Materials are a set semantically even though stored as a sequence.
func (t *Task) ToggleMaterial(id string) {
	for i, m := range t.Materials {
		if m == id {
			t.Materials = append(t.Materials[:i], t.Materials[i+1:]...)
			return
		}
	}
	t.Materials = append(t.Materials, id)
}

// IsConcluded reports whether the free-text situation marks the task as
// concluded ("Concluído", "concluida", ...). Matching is by substring,
// case-insensitively, on "conclu".
func (t Task) IsConcluded() bool {
	return containsFold(t.Situation, "conclu")
}

// Visit is a technical visit to a unit.
type Visit struct {
	ID           string `json:"id"`
	Tower        string `json:"tower"`
	Unit         string `json:"unit"`
	Situation    string `json:"situation"`
	Time         string `json:"time"`
	Collaborator string `json:"collaborator"`
	Status       string `json:"status"`
	ReturnDate   string `json:"returnDate"`
}

// ScheduleItem is one row of the weekly collaborator schedule.
type ScheduleItem struct {
	ID             string `json:"id"`
	Shift          string `json:"shift"`
	Monday         string `json:"monday"`
	Tuesday        string `json:"tuesday"`
	Wednesday      string `json:"wednesday"`
	Thursday       string `json:"thursday"`
	Friday         string `json:"friday"`
	Saturday       string `json:"saturday"`
	WorkStartDate  string `json:"workStartDate"`
	WorkEndDate    string `json:"workEndDate"`
	WorkNoticeDate string `json:"workNoticeDate"`
}

// MonthlyScheduleItem mirrors ScheduleItem at month granularity.
type MonthlyScheduleItem struct {
	ID             string `json:"id"`
	Shift          string `json:"shift"`
	Week1          string `json:"week1"`
	Week2          string `json:"week2"`
	Week3          string `json:"week3"`
	Week4          string `json:"week4"`
	WorkStartDate  string `json:"workStartDate"`
	WorkEndDate    string `json:"workEndDate"`
	WorkNoticeDate string `json:"workNoticeDate"`
}

// ThirdPartyScheduleItem is a recurring third-party service contract that may
// additionally carry a one-off construction-work date range.
type ThirdPartyScheduleItem struct {
	ID             string `json:"id"`
	Company        string `json:"company"`
	Service        string `json:"service"`
	Frequency      string `json:"frequency"`
	Contact        string `json:"contact"`
	WorkStartDate  string `json:"workStartDate"`
	WorkEndDate    string `json:"workEndDate"`
	WorkNoticeDate string `json:"workNoticeDate"`
}

// HasActiveWork is derived, not stored: a contract has an active work when
// either work date is set.
func (t ThirdPartyScheduleItem) HasActiveWork() bool {
	return t.WorkStartDate != "" || t.WorkEndDate != ""
}

// PaintingProject tracks a painting job on a tower.
type PaintingProject struct {
	ID              string `json:"id"`
	Tower           string `json:"tower"`
	Local           string `json:"local"`
	Criticality     string `json:"criticality"`
	StartDate       string `json:"startDate"`
	EndDateForecast string `json:"endDateForecast"`
	Status          string `json:"status"`
	PaintDetails    string `json:"paintDetails"`
	Quantity        string `json:"quantity"`
}

// PurchaseRequest is a material purchase request.
type PurchaseRequest struct {
	ID           string `json:"id"`
	Quantity     int    `json:"quantity"`
	Description  string `json:"description"`
	Local        string `json:"local"`
	RequestDate  string `json:"requestDate"`
	ApprovalDate string `json:"approvalDate"`
	EntryDate    string `json:"entryDate"`
}

// IsPending reports whether the request still awaits approval.
func (p PurchaseRequest) IsPending() bool {
	return p.ApprovalDate == ""
}

// CatalogItem is a flat named lookup entry (tower, sector, ...).
type CatalogItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
