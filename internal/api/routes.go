package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
)

// Register wires the middleware stack and every route onto the app.
// Mutating routes sit behind the admin token.
func Register(app *fiber.App, h *Handlers, allowOrigins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(etag.New())

	app.Get("/health", h.Health)

	v1 := app.Group("/api/v1")
	v1.Post("/admin/login", h.Login)

	v1.Get("/dashboard", h.GetDashboard)
	v1.Get("/agents", h.GetAgents)
	v1.Get("/agents/:id/report", h.GetAgentReport)
	v1.Get("/agents/:id/insights", h.GetAgentInsights)
	v1.Get("/agents/:id/insights/:category", h.GetAgentCategoryInsight)
	v1.Get("/qc-agents", h.GetQCAgents)
	v1.Get("/sessions", h.GetSessions)
	v1.Get("/sessions/:id", h.GetSession)
	v1.Get("/archive", h.GetArchivedSessions)
	v1.Get("/objections", h.GetObjections)
	v1.Get("/skills", h.GetSkills)
	v1.Get("/training-examples", h.GetTrainingExamples)
	v1.Get("/export/scorecard", h.ExportScorecard)

	admin := v1.Group("", h.RequireAdmin)
	admin.Post("/agents", h.CreateAgent)
	admin.Post("/qc-agents", h.CreateQCAgent)
	admin.Post("/sessions", h.CreateSession)
	admin.Put("/sessions/:id", h.UpdateSession)
	admin.Delete("/sessions/:id", h.DeleteSession)
	admin.Post("/sessions/:id/archive", h.ArchiveSession)
	admin.Post("/archive/:id/restore", h.RestoreSession)
	admin.Post("/objections", h.CreateObjection)
	admin.Post("/skills", h.CreateSkill)
	admin.Post("/training-examples", h.CreateTrainingExample)
}
