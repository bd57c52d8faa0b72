package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/identity"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/requests"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/responses"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

type companionListResponse = responses.ListResponse[*companion.Companion]

func registerCompanionRoutes(router gin.IRouter, handler *handlers.CompanionHandler, bookmarks *handlers.BookmarkHandler, sessions *handlers.SessionHandler, guard pageGuard) {
	companions := router.Group("/companions")
	companions.GET("", listCompanions(handler, guard))
	companions.POST("", createCompanion(handler, guard))
	companions.GET("/library", libraryCompanions(handler, guard))
	companions.GET("/permissions", companionPermissions(handler, guard))
	companions.POST("/templates", createFromTemplate(handler, guard))
	companions.GET("/:id", getCompanion(handler, guard))
	companions.POST("/:id/sessions", recordSession(sessions, guard))
	companions.POST("/:id/bookmark", addBookmark(bookmarks))
	companions.DELETE("/:id/bookmark", removeBookmark(bookmarks))
}

// listCompanions godoc
// @Summary      List companions
// @Description  Lists the caller's companions, newest first, filtered by subject and topic substrings.
// @Tags         companions
// @Produce      json
// @Param        subject  query  string  false  "Subject substring"
// @Param        topic    query  string  false  "Topic or name substring"
// @Param        page     query  int     false  "1-indexed page"  default(1)
// @Param        limit    query  int     false  "Page size"       default(10) maximum(100)
// @Success      200  {object}  companionListResponse
// @Failure      302  "Redirect to sign-in"
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/companions [get]
func listCompanions(handler *handlers.CompanionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		var query requests.ListCompanionsQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "")
			return
		}
		result, err := handler.List(c.Request.Context(), caller, query.ToParams())
		if err != nil {
			guard.fail(c, err, "failed to fetch companions")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// libraryCompanions godoc
// @Summary      Companion library
// @Description  Same listing as /v1/companions with bookmarked companions first.
// @Tags         companions
// @Produce      json
// @Param        subject  query  string  false  "Subject substring"
// @Param        topic    query  string  false  "Topic or name substring"
// @Success      200  {object}  companionListResponse
// @Router       /v1/companions/library [get]
func libraryCompanions(handler *handlers.CompanionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		var query requests.ListCompanionsQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "")
			return
		}
		payload, err := handler.Library(c.Request.Context(), caller, query.ToParams(), c.Request.URL.Query())
		if err != nil {
			guard.fail(c, err, "failed to fetch companions")
			return
		}
		responses.RawJSON(c, http.StatusOK, payload)
	}
}

// companionPermissions godoc
// @Summary      Creation permission
// @Description  Reports whether the caller may create another companion under their plan.
// @Tags         companions
// @Produce      json
// @Success      200  {object}  entitlement.Decision
// @Router       /v1/companions/permissions [get]
func companionPermissions(handler *handlers.CompanionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		decision, err := handler.Permissions(c.Request.Context(), caller)
		if err != nil {
			guard.fail(c, err, "failed to evaluate permissions")
			return
		}
		c.JSON(http.StatusOK, decision)
	}
}

// createCompanion godoc
// @Summary      Create companion
// @Tags         companions
// @Accept       json
// @Produce      json
// @Param        body  body  requests.CreateCompanionRequest  true  "Companion"
// @Success      201  {object}  companion.Companion
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse  "Companion limit reached"
// @Router       /v1/companions [post]
func createCompanion(handler *handlers.CompanionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		var req requests.CreateCompanionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "")
			return
		}
		created, err := handler.Create(c.Request.Context(), caller, req.ToInput())
		if err != nil {
			guard.fail(c, err, "failed to create a companion")
			return
		}
		c.Header("Location", companion.DetailPath(created.ID))
		c.JSON(http.StatusCreated, created)
	}
}

// createFromTemplate godoc
// @Summary      Create companion from template
// @Description  Voice and style are derived from the subject. Redirects to the new companion.
// @Tags         companions
// @Accept       json
// @Param        body  body  requests.TemplateCompanionRequest  true  "Template"
// @Success      303  "See Other, Location: /v1/companions/{id}"
// @Failure      400  {object}  errorResponse
// @Router       /v1/companions/templates [post]
func createFromTemplate(handler *handlers.CompanionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		var req requests.TemplateCompanionRequest
		if err := c.ShouldBind(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "")
			return
		}
		created, err := handler.CreateFromTemplate(c.Request.Context(), caller, req.ToInput())
		if err != nil {
			guard.fail(c, err, "failed to create a companion")
			return
		}
		c.Redirect(http.StatusSeeOther, companion.DetailPath(created.ID))
	}
}

// getCompanion godoc
// @Summary      Get companion
// @Tags         companions
// @Produce      json
// @Param        id  path  string  true  "Companion ID"
// @Success      200  {object}  companion.Companion
// @Failure      404  {object}  errorResponse
// @Router       /v1/companions/{id} [get]
func getCompanion(handler *handlers.CompanionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := guard.caller(c); !ok {
			return
		}
		result, err := handler.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			guard.fail(c, err, "failed to fetch companion")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// recordSession godoc
// @Summary      Record session
// @Description  Appends a session history entry for the caller.
// @Tags         sessions
// @Produce      json
// @Param        id  path  string  true  "Companion ID"
// @Success      201  {object}  sessionhistory.Entry
// @Failure      404  {object}  errorResponse
// @Router       /v1/companions/{id}/sessions [post]
func recordSession(handler *handlers.SessionHandler, guard pageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := guard.caller(c)
		if !ok {
			return
		}
		entry, err := handler.Record(c.Request.Context(), caller, c.Param("id"))
		if err != nil {
			guard.fail(c, err, "failed to add to session history")
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// addBookmark godoc
// @Summary      Bookmark companion
// @Description  Anonymous callers get 204 without any write.
// @Tags         bookmarks
// @Param        id    path   string  true   "Companion ID"
// @Param        path  query  string  false  "View path to refresh"  default(/companions)
// @Success      204
// @Failure      500  {object}  errorResponse
// @Router       /v1/companions/{id}/bookmark [post]
func addBookmark(handler *handlers.BookmarkHandler) gin.HandlerFunc {
	return bookmarkWrite(handler.Add, "failed to add bookmark")
}

// removeBookmark godoc
// @Summary      Remove bookmark
// @Tags         bookmarks
// @Param        id    path   string  true   "Companion ID"
// @Param        path  query  string  false  "View path to refresh"  default(/companions)
// @Success      204
// @Failure      500  {object}  errorResponse
// @Router       /v1/companions/{id}/bookmark [delete]
func removeBookmark(handler *handlers.BookmarkHandler) gin.HandlerFunc {
	return bookmarkWrite(handler.Remove, "failed to remove bookmark")
}

type bookmarkFn func(ctx context.Context, caller *identity.Identity, companionID, path string) error

func bookmarkWrite(write bookmarkFn, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query requests.BookmarkQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "")
			return
		}
		caller := identity.FromContext(c.Request.Context())
		if err := write(c.Request.Context(), caller, c.Param("id"), query.Path); err != nil {
			responses.HandleError(c, err, message)
			return
		}
		responses.NoContent(c)
	}
}
