package service

import (
	"context"

	"books-api/internal/domains/book/model"
)

// ServiceInterface - Định nghĩa business logic methods
type ServiceInterface interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int32) (*model.Book, error)
	CreateBook(ctx context.Context, req model.BookRequest) (*model.Book, error)
	UpdateBook(ctx context.Context, id int32, req model.BookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id int32) (int64, error)
}
