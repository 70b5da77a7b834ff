package controllers

import (
	"log"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/gin-gonic/gin"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// respondError writes err as {message} with the status of its kind. Internal
// errors are logged and replaced with a generic message.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(apperrors.Status(kind), MessageResponse{Message: apperrors.PublicMessage(err)})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, apperrors.Validation(message))
}
