package middleware

import (
	stderrors "errors"
	"net/http"

	"github.com/devfolio/portfolio-backend/errors"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error into
// the {success:false,...} envelope. Field validation failures carry an
// "errors" map, every other failure a single "message".
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appError *errors.AppError
		if stderrors.As(err, &appError) {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, string(appError.Type)+" error")

			response := types.ErrorResponse{Success: false}
			switch {
			case len(appError.Fields) > 0:
				response.Errors = appError.Fields
			case statusCode >= http.StatusInternalServerError:
				// internal detail stays in the logs
				response.Message = "Internal Server Error"
			default:
				response.Message = appError.Message
			}
			c.JSON(statusCode, response)
			return
		}

		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request binding error")
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Success: false,
				Message: errors.MessageAllFieldsRequired,
			})
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Success: false,
			Message: "Internal Server Error",
		})
	}
}

// Recovery turns a panic into a logged 500 with the standard envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.GetLogger().Errorw("Recovered from panic",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(RequestIDKey))
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
			Success: false,
			Message: "Internal Server Error",
		})
	})
}
