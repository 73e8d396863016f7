package services

import (
	"strings"

	"backend/cache"
	"backend/models"
)

// taskExportHeader is the fixed column set of the task CSV export.
var taskExportHeader = []string{
	"ID", "Servico", "Tipo", "Torre", "Localizacao",
	"Situacao", "Criticidade", "Data Chamado", "Materiais",
}

// ExportTasksCSV serializes the current task collection to comma-delimited
// text. Lookup ids resolve to catalog names, falling back to the raw id.
// Embedded commas in free-text fields are not escaped; consumers of this
// export accept that limitation.
func ExportTasksCSV(store *cache.Store) string {
	var b strings.Builder
	b.WriteString(strings.Join(taskExportHeader, ","))
	b.WriteString("\n")
	for _, t := range store.Tasks() {
		fields := []string{
			t.ID,
			store.ResolveName(models.CategoryServices, t.ServiceID),
			t.Type,
			store.ResolveName(models.CategoryTowers, t.TowerID),
			t.Location,
			t.Situation,
			t.Criticality,
			t.CallDate,
			store.ResolveMaterialNames(t.Materials),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}
	return b.String()
}
