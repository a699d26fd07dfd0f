package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondFieldErrors -> per-field validation messages for the submitter
func RespondFieldErrors(c *gin.Context, code int, fields FieldErrors) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: "Dados inválidos, verifique os campos informados.",
		Errors:  fields,
	})
}
