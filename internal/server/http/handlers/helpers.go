package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/server/http/dto"
	"github.com/polkiloo/interviewprep/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// fail writes {"error": "<action>: <cause>"} and aborts the chain.
func fail(c *gin.Context, status int, action, cause string) {
	_ = c.Error(errors.New(action + ": " + cause))
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: action + ": " + cause})
}

// failField reports an invalid input field.
func failField(c *gin.Context, status int, field, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message, Field: field})
}

// validationField returns the offending field of a validation or file error.
func validationField(err error) (string, string, bool) {
	var validation *domainErrors.ValidationError
	if errors.As(err, &validation) {
		return validation.Field, validation.Error(), true
	}
	var file *domainErrors.InvalidFileError
	if errors.As(err, &file) {
		return "resume", file.Error(), true
	}
	return "", "", false
}
