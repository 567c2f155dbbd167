package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhortiz/bodega-scan-api/internal/application/auth"
	"github.com/jhortiz/bodega-scan-api/internal/application/labels"
	"github.com/jhortiz/bodega-scan-api/internal/application/scan"
	"github.com/jhortiz/bodega-scan-api/internal/application/slots"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ScanUC    *scan.UseCase
	SlotUC    *slots.UseCase
	LabelsUC  *labels.UseCase
	AuthUC    *auth.UseCase
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; alta solo admin)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin),
		authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Punto de escaneo (protegido)
	scanGroup := protected.Group("/scan")
	scanHandler := NewScanHandler(deps.ScanUC, deps.Log)
	scanGroup.Post("/validate-location", scanHandler.ValidateLocation)
	scanGroup.Post("/validate-box", scanHandler.ValidateBox)
	scanGroup.Post("/first-binding", scanHandler.FirstBinding)
	scanGroup.Post("/process-shipping", scanHandler.ProcessShipping)
	scanGroup.Post("/return-to-stock", scanHandler.ReturnToStock)

	// Cajas: generación, etiquetas, historial (protegido)
	containers := protected.Group("/containers")
	containerHandler := NewContainerHandler(deps.LabelsUC, deps.ScanUC, deps.Log)
	containers.Post("/generate", containerHandler.Generate)
	containers.Post("/labels/pdf", containerHandler.PrintLabels)
	containers.Get("/:code/history", containerHandler.History)

	// Ubicaciones (protegido; mutaciones solo admin)
	slotGroup := protected.Group("/slots")
	slotHandler := NewSlotHandler(deps.SlotUC, deps.Log)
	slotGroup.Post("/", RequireRole(entity.RoleAdmin), slotHandler.Create)
	slotGroup.Get("/", slotHandler.List)
	slotGroup.Get("/:code", slotHandler.GetByCode)
	slotGroup.Delete("/:code", RequireRole(entity.RoleAdmin), slotHandler.Delete)
}
