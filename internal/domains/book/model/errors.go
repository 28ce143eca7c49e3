package model

import (
	"errors"
	"net/http"

	"books-api/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrInvalidBookID  = errors.New("invalid book id")
	ErrInvalidPayload = errors.New("invalid book payload")
)

var bookErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Message: "The specified book does not exist",
	},
	ErrInvalidBookID: {
		Status:  http.StatusBadRequest,
		Message: "Book id must be a 32-bit integer",
	},
	ErrInvalidPayload: {
		Status:  http.StatusBadRequest,
		Message: "Request body must be JSON with non-empty name and author",
	},
}

// HandleBookError log lỗi (kèm operation, book_id, request_id) và ghi
// error response tương ứng. Trả về false nếu err == nil.
func HandleBookError(c *gin.Context, op string, err error) bool {
	if err == nil {
		return false
	}

	event := log.Error()
	status := http.StatusInternalServerError
	message := "Internal server error"

	for target, config := range bookErrorMap {
		if errors.Is(err, target) {
			status = config.Status
			message = config.Message
			event = log.Warn()
			break
		}
	}

	event = event.
		Str("operation", op).
		Str("request_id", c.GetString("request_id")).
		Int("status", status).
		Err(err)
	if id := c.Param("id"); id != "" {
		event = event.Str("book_id", id)
	}
	event.Msg("Book request failed")

	response.ErrorResponse(c, status, response.CodeForStatus(status), message)
	return true
}
