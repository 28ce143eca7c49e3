package repository

import (
	"context"
	"errors"
	"fmt"

	"books-api/internal/domains/book/model"
	"books-api/internal/infrastructure/database"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	DefaultTable = "books"

	colID     = "id"
	colName   = "name"
	colAuthor = "author"
)

var bookColumns = []interface{}{colID, colName, colAuthor}

// postgresRepository - goqu build SQL, pgxpool thực thi
type postgresRepository struct {
	db      database.ConnLeaser
	table   string
	dialect goqu.DialectWrapper
}

// NewPostgresRepository - Constructor. table rỗng thì dùng "books".
func NewPostgresRepository(db database.ConnLeaser, table string) RepositoryInterface {
	if table == "" {
		table = DefaultTable
	}
	return &postgresRepository{
		db:      db,
		table:   table,
		dialect: goqu.Dialect("postgres"),
	}
}

// ============================================
// LIST BOOKS
// ============================================

func (r *postgresRepository) buildListQuery(limit uint) (string, []interface{}, error) {
	return r.dialect.From(r.table).
		Prepared(true).
		Select(bookColumns...).
		Limit(limit).
		ToSQL()
}

// ListBooks trả về tối đa limit books theo thứ tự của storage; không có row thì trả slice rỗng
func (r *postgresRepository) ListBooks(ctx context.Context, limit uint) ([]model.Book, error) {
	if limit == 0 || limit > ListLimit {
		limit = ListLimit
	}

	query, args, err := r.buildListQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	books := make([]model.Book, 0)
	err = r.db.WithConn(ctx, func(q database.Querier) error {
		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var b model.Book
			if err := rows.Scan(&b.ID, &b.Name, &b.Author); err != nil {
				return fmt.Errorf("scan error: %w", err)
			}
			books = append(books, b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

// ============================================
// GET BOOK BY ID
// ============================================

func (r *postgresRepository) buildGetQuery(id int32) (string, []interface{}, error) {
	return r.dialect.From(r.table).
		Prepared(true).
		Select(bookColumns...).
		Where(goqu.Ex{colID: id}).
		ToSQL()
}

func (r *postgresRepository) GetBookByID(ctx context.Context, id int32) (*model.Book, error) {
	query, args, err := r.buildGetQuery(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build get query: %w", err)
	}

	return r.queryOne(ctx, "get", id, query, args)
}

// ============================================
// CREATE BOOK
// ============================================

func (r *postgresRepository) buildInsertQuery(req model.BookRequest) (string, []interface{}, error) {
	return r.dialect.Insert(r.table).
		Prepared(true).
		Rows(goqu.Record{colName: req.Name, colAuthor: req.Author}).
		Returning(bookColumns...).
		ToSQL()
}

func (r *postgresRepository) CreateBook(ctx context.Context, req model.BookRequest) (*model.Book, error) {
	query, args, err := r.buildInsertQuery(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var b model.Book
	err = r.db.WithConn(ctx, func(q database.Querier) error {
		return q.QueryRow(ctx, query, args...).Scan(&b.ID, &b.Name, &b.Author)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &b, nil
}

// ============================================
// UPDATE BOOK
// ============================================

func (r *postgresRepository) buildUpdateQuery(id int32, req model.BookRequest) (string, []interface{}, error) {
	return r.dialect.Update(r.table).
		Prepared(true).
		Set(goqu.Record{colName: req.Name, colAuthor: req.Author}).
		Where(goqu.Ex{colID: id}).
		Returning(bookColumns...).
		ToSQL()
}

// UpdateBook chỉ đổi name/author. Không có row nào khớp id -> ErrBookNotFound.
func (r *postgresRepository) UpdateBook(ctx context.Context, id int32, req model.BookRequest) (*model.Book, error) {
	query, args, err := r.buildUpdateQuery(id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return r.queryOne(ctx, "update", id, query, args)
}

// ============================================
// DELETE BOOK
// ============================================

func (r *postgresRepository) buildDeleteQuery(id int32) (string, []interface{}, error) {
	return r.dialect.Delete(r.table).
		Prepared(true).
		Where(goqu.Ex{colID: id}).
		ToSQL()
}

// DeleteBook trả về số row bị xóa; 0 row -> ErrBookNotFound
func (r *postgresRepository) DeleteBook(ctx context.Context, id int32) (int64, error) {
	query, args, err := r.buildDeleteQuery(id)
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	var affected int64
	err = r.db.WithConn(ctx, func(q database.Querier) error {
		tag, err := q.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete book %d: %w", id, err)
	}

	if affected == 0 {
		return 0, model.ErrBookNotFound
	}

	return affected, nil
}

// queryOne chạy statement trả về đúng một book (SELECT hoặc ... RETURNING)
func (r *postgresRepository) queryOne(ctx context.Context, op string, id int32, query string, args []interface{}) (*model.Book, error) {
	var b model.Book
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		return q.QueryRow(ctx, query, args...).Scan(&b.ID, &b.Name, &b.Author)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to %s book %d: %w", op, id, err)
	}

	return &b, nil
}
