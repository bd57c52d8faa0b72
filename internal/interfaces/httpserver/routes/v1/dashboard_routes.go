package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/companion-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/responses"
)

func registerDashboardRoutes(router gin.IRouter, handler *handlers.DashboardHandler, guard pageGuard) {
	router.GET("/dashboard", getDashboard(handler, guard))
}

// getDashboard godoc
// @Summary      Dashboard
// @Description  Up to three of the caller's companions topped up with starters, plus recent sessions.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboard.Dashboard
// @Router       /v1/dashboard [get]
func getDashboard(handler *handlers.DashboardHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		payload, err := handler.Get(c.Request.Context(), caller)
		if err != nil {
			guard.fail(c, err, "failed to build dashboard")
			return
		}
		responses.RawJSON(c, http.StatusOK, payload)
	}
}
