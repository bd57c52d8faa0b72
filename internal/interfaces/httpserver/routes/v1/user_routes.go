package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/companion-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/requests"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/responses"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

func registerUserRoutes(router gin.IRouter, companions *handlers.CompanionHandler, sessions *handlers.SessionHandler, guard pageGuard) {
	me := router.Group("/users/me")
	me.GET("/companions", myCompanions(companions, guard))
	me.GET("/bookmarks", myBookmarks(companions, guard))
	me.GET("/sessions", mySessions(sessions, guard))
}

// myCompanions godoc
// @Summary      Companions authored by the caller
// @Tags         users
// @Produce      json
// @Success      200  {object}  companionListResponse
// @Router       /v1/users/me/companions [get]
func myCompanions(handler *handlers.CompanionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		result, err := handler.ListByAuthor(c.Request.Context(), caller)
		if err != nil {
			guard.fail(c, err, "failed to fetch user companions")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// myBookmarks godoc
// @Summary      Companions bookmarked by the caller
// @Description  Read from bookmark rows, not the companion flag.
// @Tags         users
// @Produce      json
// @Success      200  {object}  companionListResponse
// @Router       /v1/users/me/bookmarks [get]
func myBookmarks(handler *handlers.CompanionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		result, err := handler.Bookmarked(c.Request.Context(), caller)
		if err != nil {
			guard.fail(c, err, "failed to fetch bookmarked companions")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// mySessions godoc
// @Summary      Caller's recent sessions
// @Tags         users
// @Produce      json
// @Param        limit  query  int  false  "Max entries"  default(10)
// @Success      200  {object}  companionListResponse
// @Router       /v1/users/me/sessions [get]
func mySessions(handler *handlers.SessionHandler, guard pageGuard) gin.HandlerFunc {
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
		result, err := handler.ForUser(c.Request.Context(), caller, query.Limit)
		if err != nil {
			guard.fail(c, err, "failed to fetch user sessions")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
