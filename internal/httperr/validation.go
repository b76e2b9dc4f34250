package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Code    string       `json:"error_code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// Validation maps a gin binding error to a 400 with per-field detail.
func Validation(c *gin.Context, err error) {
	resp := ValidationErrorResponse{
		Code:    "validation_error",
		Message: "Invalid request body.",
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
	} else {
		resp.Message = err.Error()
	}

	c.JSON(http.StatusBadRequest, resp)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}
