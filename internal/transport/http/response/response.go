// ABOUTME: JSON envelope shared by every HTTP handler
// ABOUTME: Application error codes sit alongside the HTTP status
package response

import "github.com/gin-gonic/gin"

const (
	CodeOK              = 0
	CodeBadRequest      = 40000
	CodeUnknownPageType = 40001
	CodeInvalidOutput   = 42201
	CodeInternalServer  = 50000
	CodeEmbedding       = 50201
	CodeModel           = 50202
	CodeModelMissing    = 50301
)

// APIResponse is the body of every API reply
type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK writes a 200 with data
func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

// Error writes an error envelope
func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

// ErrorWithData writes an error envelope that still carries a payload
func ErrorWithData(c *gin.Context, httpStatus, code int, message string, data interface{}) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}
