package server

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribe/errors"
)

// RespondWithError writes err as an ErrorResponse with the AppError's HTTP
// status. Errors of any other type become a 500 INTERNAL_ERROR.
func RespondWithError(c *gin.Context, err error) {
	appErr := errors.FromError(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
