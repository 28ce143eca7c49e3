package repository

import (
	"context"
	"errors"
	"testing"

	"books-api/internal/domains/book/model"
	"books-api/internal/infrastructure/database"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLeaser đưa thẳng pgxmock pool vào fn thay cho *pgxpool.Conn
type mockLeaser struct {
	mock pgxmock.PgxPoolIface
	err  error
}

func (m *mockLeaser) WithConn(ctx context.Context, fn func(q database.Querier) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(m.mock)
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, RepositoryInterface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewPostgresRepository(&mockLeaser{mock: mock}, "")
}

var columns = []string{"id", "name", "author"}

func TestListBooks(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT "id", "name", "author" FROM "books" LIMIT`).
		WithArgs(uint(100)).
		WillReturnRows(mock.NewRows(columns).
			AddRow(int32(1), "Dune", "Herbert").
			AddRow(int32(2), "Emma", "Austen"))

	books, err := repo.ListBooks(context.Background(), ListLimit)
	require.NoError(t, err)
	assert.Equal(t, []model.Book{
		{ID: 1, Name: "Dune", Author: "Herbert"},
		{ID: 2, Name: "Emma", Author: "Austen"},
	}, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBooks_LimitClampedTo100(t *testing.T) {
	tests := []struct {
		name  string
		limit uint
		want  uint
	}{
		{name: "zero uses default", limit: 0, want: 100},
		{name: "above max clamped", limit: 500, want: 100},
		{name: "below max kept", limit: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockRepo(t)

			mock.ExpectQuery(`SELECT .+ FROM "books" LIMIT \$1`).
				WithArgs(tt.want).
				WillReturnRows(mock.NewRows(columns))

			_, err := repo.ListBooks(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListBooks_EmptyTable(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM "books"`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows(columns))

	books, err := repo.ListBooks(context.Background(), ListLimit)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBooks_QueryError(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM "books"`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ListBooks(context.Background(), ListLimit)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookByID(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM "books" WHERE \("id" = \$1\)`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows(columns).AddRow(int32(7), "Dune", "Herbert"))

	book, err := repo.GetBookByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &model.Book{ID: 7, Name: "Dune", Author: "Herbert"}, book)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookByID_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM "books" WHERE`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetBookByID(context.Background(), 404)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBook(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO "books" .+ RETURNING "id", "name", "author"`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows(columns).AddRow(int32(11), "Dune", "Herbert"))

	book, err := repo.CreateBook(context.Background(), model.BookRequest{Name: "Dune", Author: "Herbert"})
	require.NoError(t, err)
	assert.Equal(t, int32(11), book.ID)
	assert.Equal(t, "Dune", book.Name)
	assert.Equal(t, "Herbert", book.Author)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBook(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`UPDATE "books" SET .+ WHERE .+ RETURNING`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows(columns).AddRow(int32(3), "Dune Messiah", "Herbert"))

	book, err := repo.UpdateBook(context.Background(), 3, model.BookRequest{Name: "Dune Messiah", Author: "Herbert"})
	require.NoError(t, err)
	assert.Equal(t, &model.Book{ID: 3, Name: "Dune Messiah", Author: "Herbert"}, book)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBook_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`UPDATE "books"`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateBook(context.Background(), 99, model.BookRequest{Name: "x", Author: "y"})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBook(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM "books" WHERE \("id" = \$1\)`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	n, err := repo.DeleteBook(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBook_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM "books"`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	_, err := repo.DeleteBook(context.Background(), 5)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquireFailureIsNotNotFound(t *testing.T) {
	repo := NewPostgresRepository(&mockLeaser{err: database.ErrAcquireConn}, "")

	_, err := repo.GetBookByID(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrAcquireConn)
	assert.NotErrorIs(t, err, model.ErrBookNotFound)

	_, err = repo.DeleteBook(context.Background(), 1)
	assert.ErrorIs(t, err, database.ErrAcquireConn)
}

func TestCustomTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(&mockLeaser{mock: mock}, "bookss")

	mock.ExpectExec(`DELETE FROM "bookss"`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	_, err = repo.DeleteBook(context.Background(), 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildQueries(t *testing.T) {
	r := NewPostgresRepository(nil, "").(*postgresRepository)

	query, args, err := r.buildListQuery(ListLimit)
	require.NoError(t, err)
	assert.Contains(t, query, `FROM "books"`)
	assert.Contains(t, query, "LIMIT $1")
	assert.Equal(t, []interface{}{uint(100)}, args)

	query, args, err = r.buildInsertQuery(model.BookRequest{Name: "Dune", Author: "Herbert"})
	require.NoError(t, err)
	assert.Contains(t, query, `INSERT INTO "books"`)
	assert.Contains(t, query, `RETURNING "id", "name", "author"`)
	assert.ElementsMatch(t, []interface{}{"Dune", "Herbert"}, args)

	query, args, err = r.buildUpdateQuery(3, model.BookRequest{Name: "Dune", Author: "Herbert"})
	require.NoError(t, err)
	assert.Contains(t, query, `UPDATE "books" SET`)
	assert.NotContains(t, query, `"id"=`)
	assert.Len(t, args, 3)

	query, args, err = r.buildDeleteQuery(3)
	require.NoError(t, err)
	assert.Contains(t, query, `DELETE FROM "books"`)
	assert.Len(t, args, 1)
}
