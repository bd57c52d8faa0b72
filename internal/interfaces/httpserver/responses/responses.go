package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

// ErrorResponse is the error envelope returned to clients.
type ErrorResponse = platformerrors.HTTPErrorResponse

// HandleError logs err and aborts with its mapped status. Errors that are not
// PlatformErrors become internal errors carrying message.
func HandleError(reqCtx *gin.Context, err error, message string) {
	ctx := reqCtx.Request.Context()
	log := zerolog.Ctx(ctx)

	platformErr := platformerrors.GetPlatformError(err)
	if platformErr == nil {
		platformErr = platformerrors.NewError(ctx, platformerrors.LayerRoute, platformerrors.ErrorTypeInternal, message, err, "")
	}
	platformerrors.LogError(*log, platformErr)

	if platformErr.Type == platformerrors.ErrorTypeInternal {
		// Internal details stay in the logs.
		abort(reqCtx, platformErr, message)
		return
	}
	abort(reqCtx, platformErr, platformErr.Message)
}

// HandleNewError creates a new typed error at the route layer and handles it.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	err := platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, uuid)
	abort(reqCtx, err, message)
}

func abort(reqCtx *gin.Context, err *platformerrors.PlatformError, message string) {
	requestID := err.RequestID
	if requestID == "" {
		requestID = reqCtx.GetString("request_id")
	}
	reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(err.Type), ErrorResponse{
		Error: &platformerrors.HTTPErrorDetail{
			Message:   message,
			Type:      platformerrors.ErrorTypeToString(err.Type),
			Code:      err.UUID,
			RequestID: requestID,
		},
	})
}

// ListResponse wraps collection payloads.
type ListResponse[T any] struct {
	Object string `json:"object"`
	Data   []T    `json:"data"`
}

// NewList builds a list payload; a nil slice is rendered as [].
func NewList[T any](data []T) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return ListResponse[T]{Object: "list", Data: data}
}

// RawJSON writes a pre-rendered JSON payload.
func RawJSON(reqCtx *gin.Context, status int, payload []byte) {
	reqCtx.Data(status, "application/json; charset=utf-8", payload)
}

// NoContent answers 204.
func NoContent(reqCtx *gin.Context) {
	reqCtx.Status(http.StatusNoContent)
}
