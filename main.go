// @title           Maintenance Dashboard API
// @version         1.0
// @description     Backend for the building-maintenance administration dashboard.

// @BasePath  /
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend/cache"
	"backend/handlers"
	"backend/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func main() {
	db := storage.InitDB()
	defer db.Close()
	if err := storage.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}
	gormDB := storage.InitGormDB()

	store := cache.NewStore(storage.NewPostgresGateway(db))

	// Initial population runs in the background so startup never blocks on a
	// slow table; until it lands, collections serve as empty.
	go func() {
		report := store.RefreshAll(context.Background())
		log.Printf("[startup] initial sync: %d tables loaded, %d failed", len(report.Loaded), len(report.Failed))
	}()

	refreshSpec := os.Getenv("REFRESH_CRON")
	if refreshSpec == "" {
		refreshSpec = "@every 5m"
	}
	cronRunner := cron.New()
	if _, err := cronRunner.AddFunc(refreshSpec, func() {
		report := store.RefreshAll(context.Background())
		if len(report.Failed) > 0 {
			log.Printf("[refresh-cron] sync finished with failures: %v", report.Failed)
			return
		}
		log.Printf("[refresh-cron] sync ok, %d tables", len(report.Loaded))
	}); err != nil {
		log.Fatalf("Invalid REFRESH_CRON %q: %v", refreshSpec, err)
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "lastSync": store.LastSync()})
	})

	api := r.Group("/api")

	api.GET("/tasks", handlers.GetTasks(store))
	api.POST("/tasks", handlers.CreateTask(store))
	api.PUT("/tasks/:id", handlers.UpdateTask(store))
	api.DELETE("/tasks/:id", handlers.DeleteTask(store))
	api.POST("/tasks/:id/materials/:material_id", handlers.ToggleTaskMaterial(store))
	api.GET("/tasks/:id/qrcode", handlers.GetTaskQRCode(store))

	api.GET("/visits", handlers.GetVisits(store))
	api.POST("/visits", handlers.CreateVisit(store))
	api.PUT("/visits/:id", handlers.UpdateVisit(store))
	api.DELETE("/visits/:id", handlers.DeleteVisit(store))

	api.GET("/schedule", handlers.GetSchedule(store))
	api.POST("/schedule", handlers.CreateScheduleItem(store))
	api.PUT("/schedule/:id", handlers.UpdateScheduleItem(store))
	api.DELETE("/schedule/:id", handlers.DeleteScheduleItem(store))

	api.GET("/monthly_schedule", handlers.GetMonthlySchedule(store))
	api.POST("/monthly_schedule", handlers.CreateMonthlyScheduleItem(store))
	api.PUT("/monthly_schedule/:id", handlers.UpdateMonthlyScheduleItem(store))
	api.DELETE("/monthly_schedule/:id", handlers.DeleteMonthlyScheduleItem(store))

	api.GET("/third_party_schedule", handlers.GetThirdPartySchedule(store))
	api.POST("/third_party_schedule", handlers.CreateThirdPartyItem(store))
	api.PUT("/third_party_schedule/:id", handlers.UpdateThirdPartyItem(store))
	api.DELETE("/third_party_schedule/:id", handlers.DeleteThirdPartyItem(store))

	api.GET("/painting_projects", handlers.GetPaintingProjects(store))
	api.POST("/painting_projects", handlers.CreatePaintingProject(store))
	api.PUT("/painting_projects/:id", handlers.UpdatePaintingProject(store))
	api.DELETE("/painting_projects/:id", handlers.DeletePaintingProject(store))

	api.GET("/purchases", handlers.GetPurchases(store))
	api.POST("/purchases", handlers.CreatePurchase(store))
	api.PUT("/purchases/:id", handlers.UpdatePurchase(store))
	api.DELETE("/purchases/:id", handlers.DeletePurchase(store))

	api.GET("/settings/:category", handlers.GetCatalog(store))
	api.POST("/settings/:category", handlers.CreateCatalogItem(store))
	api.PUT("/settings/:category/:id", handlers.RenameCatalogItem(store))
	api.DELETE("/settings/:category/:id", handlers.DeleteCatalogItem(store))

	api.POST("/sync/refresh", handlers.ForceRefresh(store))
	api.POST("/clear_all", handlers.ClearAll(store))

	api.POST("/import_csv", handlers.ImportCSV(store, gormDB))
	api.GET("/import_csv/task_template", handlers.DownloadTaskTemplate())
	api.GET("/import_csv/visit_template", handlers.DownloadVisitTemplate())
	api.GET("/import_jobs", handlers.GetImportJobs(gormDB))
	api.GET("/import_jobs/:id", handlers.GetImportJob(gormDB))

	api.GET("/export_csv_tasks", handlers.ExportTasksCSV(store))
	api.GET("/export_excel_tasks", handlers.ExportTasksExcel(store))
	api.GET("/export_pdf_summary", handlers.GenerateSummaryPDF(store))

	api.GET("/dashboard/summary", handlers.GetDashboardSummary(store))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
