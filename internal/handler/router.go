package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-backoffice-api/internal/middleware"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

// Handlers bundles every HTTP handler mounted under the API prefix.
type Handlers struct {
	Auth         *AuthHandler
	Directory    *DirectoryHandler
	Templates    *TemplateHandler
	Schedule     *ScheduleHandler
	PrivateClass *PrivateClassHandler
	Payroll      *PayrollHandler
	Payments     *PaymentHandler
	Memberships  *MembershipHandler
	Inventory    *InventoryHandler
	System       *MetricsHandler
}

// RegisterRoutes mounts the API on group. Everything except login and export downloads requires a token.
func RegisterRoutes(group *gin.RouterGroup, tokens middleware.TokenValidator, h Handlers) {
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)
	anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleCoach)
	staffOrSelf := middleware.RBAC(string(models.RoleAdmin), string(models.RoleManager), middleware.SelfCoach)

	group.POST("/auth/login", h.Auth.Login)
	group.GET("/exports/:token", h.Payroll.Download)

	secured := group.Group("")
	secured.Use(middleware.JWT(tokens))

	secured.GET("/auth/me", h.Auth.Me)
	if h.System != nil {
		secured.GET("/system/metrics", staff, h.System.Summary)
	}
	secured.GET("/locations", anyRole, h.Directory.Locations)
	secured.GET("/coaches", anyRole, h.Directory.Coaches)

	secured.GET("/templates", anyRole, h.Templates.List)
	secured.GET("/templates/:id", anyRole, h.Templates.Get)
	secured.POST("/templates", staff, h.Templates.Create)
	secured.POST("/templates/bulk", staff, h.Templates.BulkSave)
	secured.PUT("/templates/:id", staff, h.Templates.Update)
	secured.DELETE("/templates/:id", staff, h.Templates.Delete)

	secured.GET("/schedule/week", anyRole, h.Schedule.Week)
	secured.POST("/schedule/clone", staff, h.Schedule.CloneWeek)
	secured.POST("/assignments", staff, h.Schedule.CreateAssignment)
	secured.POST("/assignments/bulk", staff, h.Schedule.BulkAssign)
	secured.PUT("/assignments/:id", staff, h.Schedule.MoveAssignment)
	secured.DELETE("/assignments/:id", staff, h.Schedule.DeleteAssignment)

	secured.GET("/private-classes", staff, h.PrivateClass.List)
	secured.GET("/private-classes/suggest", staff, h.PrivateClass.Suggest)
	secured.POST("/private-classes", staff, h.PrivateClass.Create)
	secured.PUT("/private-classes/:id", staff, h.PrivateClass.Update)
	secured.DELETE("/private-classes/:id", staff, h.PrivateClass.Delete)

	secured.GET("/rates/coaches/:id", staffOrSelf, h.PrivateClass.CoachRate)
	secured.PUT("/rates/coaches/:id", staff, h.PrivateClass.SetCoachRate)
	secured.GET("/rates/private", staff, h.PrivateClass.PrivateRates)
	secured.PUT("/rates/private", staff, h.PrivateClass.SetPrivateRate)

	secured.GET("/payroll/summary", staff, h.Payroll.Summary)
	secured.GET("/payroll/detailed", staff, h.Payroll.Detailed)
	secured.GET("/payroll/coaches/:id/calendar", staffOrSelf, h.Payroll.Calendar)
	secured.POST("/payroll/exports", staff, h.Payroll.CreateExport)
	secured.GET("/payroll/reconciliation", staff, h.Payments.Reconciliation)

	secured.POST("/payments", staff, h.Payments.Record)
	secured.GET("/payments/status", staff, h.Payments.Status)
	secured.DELETE("/payments/:id", staff, h.Payments.Undo)

	secured.POST("/memberships/imports", staff, h.Memberships.Import)
	secured.GET("/memberships/dashboard", staff, h.Memberships.Dashboard)

	secured.GET("/inventory/items", anyRole, h.Inventory.Items)
	secured.POST("/inventory/items", staff, h.Inventory.CreateItem)
	secured.PUT("/inventory/items/:id", staff, h.Inventory.UpdateItem)
	secured.DELETE("/inventory/items/:id", staff, h.Inventory.DeleteItem)
	secured.POST("/inventory/counts", anyRole, h.Inventory.RecordCounts)
	secured.GET("/inventory/status", anyRole, h.Inventory.Status)
}
