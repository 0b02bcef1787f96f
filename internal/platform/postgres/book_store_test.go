package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockBookStore(t *testing.T) (*PostgresBookStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresBookStore(db, nil), mock
}

func bookRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "publication_year", "created_at", "updated_at"})
}

func TestNewPostgresBookStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresBookStore(nil, nil) })
}

func TestPostgresBookStore_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2020, 6, 3, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnRows(bookRows().AddRow(1, "Build an API", "A book", "2019", now, now))

		book, err := s.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Build an API", book.Title)
		assert.Equal(t, "2019", book.PublicationYear)
		assert.Equal(t, now, book.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE id = $1")).
			WithArgs(int64(42)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(ctx, 42)
		assert.ErrorIs(t, err, store.ErrBookNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})
}

func TestPostgresBookStore_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("sorted page", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY books.title DESC, books.id ASC LIMIT $1 OFFSET $2")).
			WithArgs(2, 2).
			WillReturnRows(bookRows().AddRow(1, "Alpha", "d", "2001", now, now))

		page, err := s.List(ctx, store.ListParams{
			Sort:       []store.SortField{{Field: "title", Desc: true}},
			PageNumber: 2,
			PageSize:   2,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Alpha", page.Items[0].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unsupported sort field", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		_, err := s.List(ctx, store.ListParams{Sort: []store.SortField{{Field: "name"}}})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresBookStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		book, err := domain.NewBook("Build an API", "A book", "2019")
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books")).
			WithArgs(book.Title, book.Description, book.PublicationYear, book.CreatedAt, book.UpdatedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

		require.NoError(t, s.Create(ctx, book))
		assert.Equal(t, int64(12), book.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid book never reaches the database", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		err := s.Create(ctx, &domain.Book{Title: "", Description: "d", PublicationYear: "2019"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresBookStore_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	book := &domain.Book{ID: 5, Title: "t", Description: "d", PublicationYear: "2000", UpdatedAt: time.Now().UTC()}

	t.Run("update missing", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE books")).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, s.Update(ctx, book), store.ErrBookNotFound)
	})

	t.Run("update ok", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE books")).
			WithArgs("t", "d", "2000", book.UpdatedAt, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, s.Update(ctx, book))
	})

	t.Run("delete missing", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books WHERE id = $1")).
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, s.Delete(ctx, 9), store.ErrBookNotFound)
	})
}

func TestPostgresBookStore_AuthorIDs(t *testing.T) {
	s, mock := newMockBookStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT author_id FROM author_book WHERE book_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"author_id"}).AddRow(2).AddRow(4))

	ids, err := s.AuthorIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, ids)
}

func TestPostgresBookStore_SyncAuthors(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces set", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM author_book WHERE book_id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO author_book (author_id, book_id) VALUES ($1, $2), ($3, $4)")).
			WithArgs(int64(2), int64(1), int64(3), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, s.SyncAuthors(ctx, 1, []int64{2, 3, 2}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty clears", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM author_book")).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.SyncAuthors(ctx, 1, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("large set is inserted in batches", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		ids := make([]int64, 2500)
		for i := range ids {
			ids[i] = int64(i + 1)
		}

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM author_book WHERE book_id = $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO author_book \(author_id, book_id\) VALUES \(\$1, \$2\).*\(\$1999, \$2000\)$`).
			WillReturnResult(sqlmock.NewResult(0, 1000))
		mock.ExpectExec(`INSERT INTO author_book \(author_id, book_id\) VALUES \(\$1, \$2\).*\(\$1999, \$2000\)$`).
			WillReturnResult(sqlmock.NewResult(0, 1000))
		mock.ExpectExec(`INSERT INTO author_book \(author_id, book_id\) VALUES \(\$1, \$2\).*\(\$999, \$1000\)$`).
			WillReturnResult(sqlmock.NewResult(0, 500))

		require.NoError(t, s.SyncAuthors(ctx, 1, ids))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown author", func(t *testing.T) {
		s, mock := newMockBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM author_book")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO author_book")).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "author_book_author_id_fkey"})

		err := s.SyncAuthors(ctx, 1, []int64{99})
		assert.ErrorIs(t, err, store.ErrAuthorNotFound)
	})
}

func TestPostgresBookStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewPostgresBookStore(db, nil)
	err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Delete(ctx, 1)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
