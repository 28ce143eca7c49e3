package repository

import (
	"context"

	"books-api/internal/domains/book/model"
)

// ListLimit là số row tối đa GET /api/books trả về
const ListLimit = 100

// RepositoryInterface - Định nghĩa data access methods.
// Mỗi method là đúng một SQL statement trên một pooled connection.
type RepositoryInterface interface {
	ListBooks(ctx context.Context, limit uint) ([]model.Book, error)
	GetBookByID(ctx context.Context, id int32) (*model.Book, error)
	CreateBook(ctx context.Context, req model.BookRequest) (*model.Book, error)
	UpdateBook(ctx context.Context, id int32, req model.BookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id int32) (int64, error)
}
