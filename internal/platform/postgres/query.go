package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/phrazzld/bookstore-api/internal/store"
)

// orderBy builds an ORDER BY clause from sort fields. Only fields present
// in columns are accepted; the column names come from the map and never
// from user input. The primary key is always appended as a tiebreaker so
// pagination is stable.
func orderBy(sort []store.SortField, columns map[string]string, table string) (string, error) {
	parts := make([]string, 0, len(sort)+1)
	for _, f := range sort {
		col, ok := columns[f.Field]
		if !ok {
			return "", fmt.Errorf("%w: unsupported sort field %q for %s", store.ErrInvalidEntity, f.Field, table)
		}
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	parts = append(parts, table+".id ASC")
	return "ORDER BY " + strings.Join(parts, ", "), nil
}

// scanIDs collects a single BIGINT column.
func scanIDs(rows *sql.Rows) ([]int64, error) {
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// bulkInsertPairs returns a multi-row VALUES clause with two placeholders
// per row, starting at $1, plus the flattened argument list.
func bulkInsertPairs(fixed int64, ids []int64, fixedFirst bool) (string, []any) {
	values := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids)*2)
	for i, id := range ids {
		values = append(values, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		if fixedFirst {
			args = append(args, fixed, id)
		} else {
			args = append(args, id, fixed)
		}
	}
	return strings.Join(values, ", "), args
}

// maxLinkRowsPerInsert keeps each INSERT well below the 65535 bind
// parameter limit of the Postgres protocol.
const maxLinkRowsPerInsert = 1000

// insertLinks inserts author_book rows pairing fixed with every id, in
// batches of at most maxLinkRowsPerInsert rows. fixedFirst selects whether
// fixed is the author_id (true) or the book_id (false). Driver errors are
// returned unmapped.
func insertLinks(ctx context.Context, db store.DBTX, fixed int64, ids []int64, fixedFirst bool) error {
	for batch := range slices.Chunk(ids, maxLinkRowsPerInsert) {
		values, args := bulkInsertPairs(fixed, batch, fixedFirst)
		if _, err := db.ExecContext(ctx, "INSERT INTO author_book (author_id, book_id) VALUES "+values, args...); err != nil {
			return err
		}
	}
	return nil
}

// dedupe returns ids without duplicates, preserving first occurrence order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
