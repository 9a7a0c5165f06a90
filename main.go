package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/collections"
	"costestimator/commands"
	"costestimator/handlers"
)

func main() {
	app := pocketbase.New()

	var opts handlers.Options
	app.RootCmd.PersistentFlags().BoolVar(
		&opts.StrictInputs,
		"strictInputs",
		false,
		"reject negative quantities and costs, and percentages outside 0-1000",
	)

	app.RootCmd.AddCommand(
		commands.NewExportCommand(app),
		commands.NewSeedCommand(app),
	)

	// Create collections and migrate data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.MigrateBlankRevisions(app); err != nil {
			log.Printf("Warning: revision migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		api := se.Router.Group("/api/estimator")
		api.Bind(apis.RequireAuth("users"))

		// ── Projects ─────────────────────────────────────────────
		api.GET("/projects", handlers.HandleProjectList(app))
		api.POST("/projects", handlers.HandleProjectCreate(app))
		api.GET("/projects/{id}", handlers.HandleProjectView(app))
		api.PATCH("/projects/{id}", handlers.HandleProjectUpdate(app))
		api.DELETE("/projects/{id}", handlers.HandleProjectDelete(app))
		api.POST("/projects/{id}/logo", handlers.HandleProjectLogo(app))

		// ── Categories & subcategories ──────────────────────────
		api.POST("/projects/{id}/categories", handlers.HandleCategoryCreate(app))
		api.PATCH("/categories/{id}", handlers.HandleCategoryRename(app))
		api.DELETE("/categories/{id}", handlers.HandleCategoryDelete(app))
		api.POST("/categories/{id}/subcategories", handlers.HandleSubcategoryCreate(app))
		api.PATCH("/subcategories/{id}", handlers.HandleSubcategoryRename(app))
		api.DELETE("/subcategories/{id}", handlers.HandleSubcategoryDelete(app))

		// ── Items ───────────────────────────────────────────────
		api.POST("/projects/{id}/items", handlers.HandleItemCreate(app, opts))
		api.PATCH("/items/{id}", handlers.HandleItemUpdate(app, opts))
		api.DELETE("/items/{id}", handlers.HandleItemDelete(app))
		api.POST("/calculate", handlers.HandleCalculate(opts))

		// ── Bulk item import ────────────────────────────────────
		api.GET("/items/import-template", handlers.HandleItemImportTemplate())
		api.POST("/categories/{id}/items/import", handlers.HandleItemImport(app, opts))

		// ── Estimate & exports ──────────────────────────────────
		api.GET("/projects/{id}/estimate", handlers.HandleEstimateJSON(app))
		api.POST("/projects/{id}/export/excel", handlers.HandleExportExcel(app))
		api.POST("/projects/{id}/export/pdf", handlers.HandleExportPDF(app))

		// Printable HTML estimate
		se.Router.GET("/projects/{id}/estimate", handlers.HandleEstimatePage(app)).
			Bind(apis.RequireAuth("users"))

		// Redirect home to the admin dashboard
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/_/")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
