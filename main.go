package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/collections"
	"orcamentos/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed the starter catalog and run schema
	// migrations on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateCatalogColumns(app); err != nil {
			log.Printf("Warning: catalog column migration failed: %v", err)
		}
		if err := collections.MigrateDefaultCommercialTerms(app); err != nil {
			log.Printf("Warning: commercial terms migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Track the draft being edited across requests
		se.Router.BindFunc(handlers.ActiveQuoteMiddleware(app))

		// ── Home / quote list ────────────────────────────────────
		se.Router.GET("/", handlers.HandleQuoteList(app))

		// ── Quote CRUD ───────────────────────────────────────────
		se.Router.POST("/quotes", handlers.HandleQuoteCreate(app))
		se.Router.GET("/quotes/{id}", handlers.HandleQuoteView(app))
		se.Router.PATCH("/quotes/{id}", handlers.HandleQuoteUpdate(app))
		se.Router.DELETE("/quotes/{id}", handlers.HandleQuoteDelete(app))

		// ── Proposal generation ──────────────────────────────────
		se.Router.POST("/quotes/{id}/generate", handlers.HandleProposalGenerate(app))

		// ── Service blocks ───────────────────────────────────────
		se.Router.POST("/quotes/{id}/blocks", handlers.HandleBlockCreate(app))
		se.Router.PATCH("/blocks/{id}", handlers.HandleBlockUpdate(app))
		se.Router.DELETE("/blocks/{id}", handlers.HandleBlockDelete(app))
		se.Router.POST("/blocks/{id}/photos", handlers.HandleBlockPhotoUpload(app))
		se.Router.DELETE("/blocks/{id}/photos/{name}", handlers.HandleBlockPhotoDelete(app))

		// ── Material lines ───────────────────────────────────────
		se.Router.POST("/blocks/{id}/lines", handlers.HandleLineCreate(app))
		se.Router.PATCH("/lines/{id}", handlers.HandleLineUpdate(app))
		se.Router.DELETE("/lines/{id}", handlers.HandleLineDelete(app))

		// ── Materials catalog ────────────────────────────────────
		// Export and import routes must be before /materials/{id}
		se.Router.GET("/materials/export", handlers.HandleCatalogExport(app))
		se.Router.GET("/materials/import", handlers.HandleCatalogImportPage(app))
		se.Router.POST("/materials/import/validate", handlers.HandleCatalogImportValidate(app))
		se.Router.POST("/materials/import/commit", handlers.HandleCatalogImportCommit(app))
		se.Router.GET("/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/materials", handlers.HandleMaterialCreate(app))
		se.Router.PATCH("/materials/{id}", handlers.HandleMaterialUpdate(app))
		se.Router.DELETE("/materials/{id}", handlers.HandleMaterialDelete(app))

		// ── History ──────────────────────────────────────────────
		se.Router.GET("/history", handlers.HandleHistoryList(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
