package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/companion-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/requests"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/responses"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

func registerSessionRoutes(router gin.IRouter, handler *handlers.SessionHandler, guard pageGuard) {
	router.GET("/sessions/recent", recentSessions(handler, guard))
}

// recentSessions godoc
// @Summary      Recent sessions
// @Description  Companions of the most recent sessions across all users, newest first.
// @Tags         sessions
// @Produce      json
// @Param        limit  query  int  false  "Max entries"  default(10)
// @Success      200  {object}  companionListResponse
// @Router       /v1/sessions/recent [get]
func recentSessions(handler *handlers.SessionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		var query requests.LimitQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "")
			return
		}
		result, err := handler.Recent(c.Request.Context(), caller, query.Limit)
		if err != nil {
			guard.fail(c, err, "failed to fetch recent sessions")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
