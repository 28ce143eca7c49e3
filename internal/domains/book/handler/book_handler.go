package handler

import (
	"fmt"

	"books-api/internal/domains/book/model"
	service "books-api/internal/domains/book/service"
	"books-api/internal/shared/response"
	"books-api/internal/shared/utils"
	"books-api/internal/shared/validator"

	"github.com/gin-gonic/gin"
)

// Handler - HTTP Handler cho /api/book(s)
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// ListBooks - GET /api/books
// Tối đa 100 books, không phân trang
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if model.HandleBookError(c, "list", err) {
		return
	}
	if books == nil {
		books = []model.Book{}
	}

	response.OK(c, books)
}

// GetBook - GET /api/book/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := parseBookID(c)
	if model.HandleBookError(c, "get", err) {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if model.HandleBookError(c, "get", err) {
		return
	}

	response.OK(c, book)
}

// CreateBook - POST /api/book (legacy: POST /api/newbook)
func (h *Handler) CreateBook(c *gin.Context) {
	req, err := bindBookRequest(c)
	if model.HandleBookError(c, "create", err) {
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if model.HandleBookError(c, "create", err) {
		return
	}

	response.OK(c, book)
}

// UpdateBook - PUT /api/book/:id (legacy: PUT /api/update/:id)
func (h *Handler) UpdateBook(c *gin.Context) {
	// 1. Validate path id trước body
	id, err := parseBookID(c)
	if model.HandleBookError(c, "update", err) {
		return
	}

	// 2. Bind và validate body
	req, err := bindBookRequest(c)
	if model.HandleBookError(c, "update", err) {
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if model.HandleBookError(c, "update", err) {
		return
	}

	response.OK(c, book)
}

// DeleteBook - DELETE /api/book/:id (legacy: DELETE /api/delete/:id)
// Body là số row bị xóa (JSON number)
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := parseBookID(c)
	if model.HandleBookError(c, "delete", err) {
		return
	}

	affected, err := h.service.DeleteBook(c.Request.Context(), id)
	if model.HandleBookError(c, "delete", err) {
		return
	}

	response.OK(c, affected)
}

func parseBookID(c *gin.Context) (int32, error) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidBookID, c.Param("id"))
	}
	return id, nil
}

func bindBookRequest(c *gin.Context) (model.BookRequest, error) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, fmt.Errorf("%w: %v", model.ErrInvalidPayload, err)
	}
	if err := validator.ValidateStruct(req); err != nil {
		return req, fmt.Errorf("%w: %v", model.ErrInvalidPayload, err)
	}
	return req, nil
}
