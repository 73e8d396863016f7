package handlers

import (
	"fmt"
	"net/http"
	"time"

	"backend/cache"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// GenerateSummaryPDF godoc
// @Summary      Generate a maintenance summary PDF
// @Tags         export
// @Success      200  "PDF file"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/export_pdf_summary [get]
func GenerateSummaryPDF(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum := store.Summary()

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, "Relatorio de Manutencao")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 8, fmt.Sprintf("Gerado em %s", time.Now().Format("02/01/2006 15:04")))
		if last := store.LastSync(); last != "" {
			pdf.Ln(5)
			pdf.Cell(0, 8, fmt.Sprintf("Ultima sincronizacao: %s", last))
		}
		pdf.Ln(12)

		rows := []struct {
			label string
			value int
		}{
			{"Tarefas", sum.Tasks},
			{"Tarefas pendentes", sum.PendingTasks},
			{"Tarefas pendentes de criticidade alta", sum.PendingHighCritical},
			{"Visitas", sum.Visits},
			{"Visitas pendentes", sum.PendingVisits},
			{"Projetos de pintura", sum.PaintingProjects},
			{"Compras", sum.Purchases},
			{"Compras aguardando aprovacao", sum.PendingPurchases},
			{"Contratos de terceiros", sum.ThirdPartyContracts},
			{"Obras ativas", sum.ActiveWorks},
		}

		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(130, 8, "Indicador", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, "Total", "1", 1, "R", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, row := range rows {
			pdf.CellFormat(130, 8, row.label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 8, fmt.Sprintf("%d", row.value), "1", 1, "R", false, 0, "")
		}

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", "attachment;filename=maintenance_summary.pdf")
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF", "details": err.Error()})
		}
	}
}
