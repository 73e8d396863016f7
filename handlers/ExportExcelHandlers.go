package handlers

import (
	"log"
	"net/http"

	"backend/cache"
	"backend/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var taskSheetHeader = []string{
	"ID", "Titulo", "Setor", "Servico", "Torre", "Localizacao", "Responsavel",
	"Situacao", "Criticidade", "Tipo", "Materiais", "Data Chamado",
	"Data Inicio", "Data Fim", "Descricao",
}

// ExportTasksExcel godoc
// @Summary      Download the task collection as an Excel workbook
// @Tags         export
// @Success      200  "XLSX file"
// @Router       /api/export_excel_tasks [get]
func ExportTasksExcel(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := excelize.NewFile()
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("[export] failed to close workbook: %v", err)
			}
		}()

		sheet := "Tarefas"
		f.SetSheetName("Sheet1", sheet)

		for i, h := range taskSheetHeader {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for rowIdx, t := range store.Tasks() {
			values := []any{
				t.ID,
				t.Title,
				store.ResolveName(models.CategorySectors, t.SectorID),
				store.ResolveName(models.CategoryServices, t.ServiceID),
				store.ResolveName(models.CategoryTowers, t.TowerID),
				t.Location,
				store.ResolveName(models.CategoryResponsibles, t.ResponsibleID),
				t.Situation,
				t.Criticality,
				t.Type,
				store.ResolveMaterialNames(t.Materials),
				t.CallDate,
				t.StartDate,
				t.EndDate,
				t.Description,
			}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment;filename=tasks_export.xlsx")
		c.Status(http.StatusOK)
		if _, err := f.WriteTo(c.Writer); err != nil {
			log.Printf("[export] failed to write workbook: %v", err)
		}
	}
}
