package records

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avaldes/carechart/internal/carechart/ident"
	"github.com/avaldes/carechart/internal/carechart/store"
)

// fakeSession records every statement the access layer issues so tests
// can assert on the fan-out and projection selection without a cluster.

type call struct {
	stmt string
	args []any
}

type fakeIter struct {
	rows     [][]any
	pos      int
	closeErr error
}

func (f *fakeIter) Scan(dest ...any) bool {
	if f.pos >= len(f.rows) {
		return false
	}
	row := f.rows[f.pos]
	f.pos++
	for i := range dest {
		switch p := dest[i].(type) {
		case *string:
			*p = row[i].(string)
		case *float64:
			*p = row[i].(float64)
		case *time.Time:
			*p = row[i].(time.Time)
		case *ident.ID:
			*p = row[i].(ident.ID)
		default:
			panic(fmt.Sprintf("fakeIter: unsupported scan target %T", dest[i]))
		}
	}
	return true
}

func (f *fakeIter) Close() error { return f.closeErr }

type fakeSession struct {
	execs   []call
	queries []call
	batches []*store.Batch

	// failOn makes Exec/ExecBatch fail for statements mentioning the
	// given table name.
	failOn string

	// iter is handed out for the next Query call.
	iter *fakeIter
}

func (f *fakeSession) Exec(stmt string, args ...any) error {
	if f.failOn != "" && strings.Contains(stmt, f.failOn) {
		return errors.New("store unavailable")
	}
	f.execs = append(f.execs, call{stmt: stmt, args: args})
	return nil
}

func (f *fakeSession) Query(stmt string, args ...any) store.Iter {
	f.queries = append(f.queries, call{stmt: stmt, args: args})
	if f.iter == nil {
		return &fakeIter{}
	}
	return f.iter
}

func (f *fakeSession) ExecBatch(b *store.Batch) error {
	if f.failOn != "" {
		for _, e := range b.Entries() {
			if strings.Contains(e.Stmt, f.failOn) {
				return errors.New("store unavailable")
			}
		}
	}
	f.batches = append(f.batches, b)
	return nil
}

// execsTo returns the recorded writes whose statement touches a table.
func (f *fakeSession) execsTo(table string) []call {
	var out []call
	for _, c := range f.execs {
		if strings.Contains(c.stmt, table) {
			out = append(out, c)
		}
	}
	return out
}
