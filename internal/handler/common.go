package handler

import (
	"net/http"

	"parking-lot-service/pkg/validator"

	"github.com/gin-gonic/gin"
	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs playground.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             "Invalid input",
				"validation_errors": formatValidationErrors(verrs),
			})
			return err
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// BindUUIDParam parses a path parameter as a UUID, answering 400 when it
// is malformed.
func BindUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return uuid.Nil, false
	}
	return id, true
}

func formatValidationErrors(errs playground.ValidationErrors) []ValidationError {
	details := make([]ValidationError, 0, len(errs))
	for _, fe := range errs {
		details = append(details, ValidationError{
			Field:   fe.Field(),
			Message: validator.MessageForTag(fe.Tag(), fe.Param()),
		})
	}
	return details
}

func handleSuccess(c *gin.Context, data interface{}, statusCode int) {
	c.JSON(statusCode, gin.H{
		"data": data,
	})
}
