package service

import (
	"context"

	"books-api/internal/domains/book/model"
	"books-api/internal/domains/book/repository"
	"books-api/internal/infrastructure/worker"
)

// Submitter chạy blocking task ngoài request goroutine (worker.Pool)
type Submitter interface {
	Submit(ctx context.Context, task worker.Task) error
}

// BookService - mỗi method submit đúng một repository call lên worker pool
type BookService struct {
	repo    repository.RepositoryInterface
	workers Submitter
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, workers Submitter) ServiceInterface {
	return &BookService{
		repo:    repo,
		workers: workers,
	}
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	err := s.workers.Submit(ctx, func(ctx context.Context) error {
		var err error
		books, err = s.repo.ListBooks(ctx, repository.ListLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, id int32) (*model.Book, error) {
	var book *model.Book
	err := s.workers.Submit(ctx, func(ctx context.Context) error {
		var err error
		book, err = s.repo.GetBookByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) CreateBook(ctx context.Context, req model.BookRequest) (*model.Book, error) {
	var book *model.Book
	err := s.workers.Submit(ctx, func(ctx context.Context) error {
		var err error
		book, err = s.repo.CreateBook(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) UpdateBook(ctx context.Context, id int32, req model.BookRequest) (*model.Book, error) {
	var book *model.Book
	err := s.workers.Submit(ctx, func(ctx context.Context) error {
		var err error
		book, err = s.repo.UpdateBook(ctx, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook trả về số row bị xóa (luôn >= 1 khi không lỗi)
func (s *BookService) DeleteBook(ctx context.Context, id int32) (int64, error) {
	var affected int64
	err := s.workers.Submit(ctx, func(ctx context.Context) error {
		var err error
		affected, err = s.repo.DeleteBook(ctx, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
