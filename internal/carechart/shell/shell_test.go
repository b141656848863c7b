package shell

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaldes/carechart/internal/carechart/ident"
	"github.com/avaldes/carechart/internal/carechart/store"
)

type scriptIter struct {
	rows [][]any
	pos  int
}

func (it *scriptIter) Scan(dest ...any) bool {
	if it.pos >= len(it.rows) {
		return false
	}
	row := it.rows[it.pos]
	it.pos++
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *float64:
			*p = row[i].(float64)
		case *time.Time:
			*p = row[i].(time.Time)
		case *ident.ID:
			*p = row[i].(ident.ID)
		}
	}
	return true
}

func (it *scriptIter) Close() error { return nil }

type call struct {
	stmt string
	args []any
}

// scriptSession hands out queued iterators, one per Query call, and
// records every mutation.
type scriptSession struct {
	iters   []*scriptIter
	execs   []call
	queries []call
}

func (s *scriptSession) Exec(stmt string, args ...any) error {
	s.execs = append(s.execs, call{stmt, args})
	return nil
}

func (s *scriptSession) Query(stmt string, args ...any) store.Iter {
	s.queries = append(s.queries, call{stmt, args})
	if len(s.iters) == 0 {
		return &scriptIter{}
	}
	it := s.iters[0]
	s.iters = s.iters[1:]
	return it
}

func (s *scriptSession) ExecBatch(b *store.Batch) error {
	for _, e := range b.Entries() {
		s.execs = append(s.execs, call{e.Stmt, e.Args})
	}
	return nil
}

func accountRow(id, username, role string) *scriptIter {
	return &scriptIter{rows: [][]any{
		{id, username, "Ana", "Valdes", ident.New(time.Now()), role},
	}}
}

func run(t *testing.T, s *scriptSession, input string) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(s, strings.NewReader(input), &out)
	require.NoError(t, sh.Run())
	return out.String()
}

func TestUnknownAccountReprompts(t *testing.T) {
	s := &scriptSession{iters: []*scriptIter{{}}}

	out := run(t, s, "ghost\n\n")

	assert.Contains(t, out, "Account not found.")
	assert.Len(t, s.queries, 1)
	assert.Empty(t, s.execs)
}

func TestPatientViewsAlerts(t *testing.T) {
	alertDate := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s := &scriptSession{iters: []*scriptIter{
		accountRow("P0001", "jdoe", "patient"),
		{rows: [][]any{
			{ident.New(alertDate), "P0001", alertDate, "Vital Signs",
				"Your vital signs are out of bounds, take a moment"},
		}},
	}}

	// log in, option 3 (alerts), log out, quit
	out := run(t, s, "P0001\n3\n0\n\n")

	assert.Contains(t, out, "Welcome back patient, jdoe!")
	assert.Contains(t, out, "Your vital signs are out of bounds")
	require.Len(t, s.queries, 2)
	assert.Contains(t, s.queries[1].stmt, "alerts_by_account_date")
}

func TestPatientEmptyAppointmentsPrintsNothingFound(t *testing.T) {
	s := &scriptSession{iters: []*scriptIter{
		accountRow("P0001", "jdoe", "patient"),
		{},
	}}

	// option 1, no doctor filter, no date range
	out := run(t, s, "P0001\n1\n\n\n\n0\n\n")

	assert.Contains(t, out, "Nothing found.")
	require.Len(t, s.queries, 2)
	assert.Contains(t, s.queries[1].stmt, "appointments_by_patient")
}

func TestMalformedDateIsRepromptedWithoutQuerying(t *testing.T) {
	s := &scriptSession{iters: []*scriptIter{
		accountRow("P0001", "jdoe", "patient"),
		{},
	}}

	// the garbage start date is rejected and asked again before any
	// projection read happens
	out := run(t, s, "P0001\n1\n\nnot-a-date\n2024-03-01\n2024-03-05\n0\n\n")

	assert.Contains(t, out, `Could not parse "not-a-date" as a date`)
	require.Len(t, s.queries, 2)
	require.Len(t, s.queries[1].args, 3, "patient id plus two range bounds")
}

func TestDoctorCreatesAppointment(t *testing.T) {
	s := &scriptSession{iters: []*scriptIter{
		accountRow("D0001", "drwho", "doctor"),
	}}

	out := run(t, s, "D0001\n3\nP0001\n2024-03-01 10:00\nbring previous results\n0\n\n")

	assert.Contains(t, out, "scheduled.")
	// three appointment projections plus the companion alert
	require.Len(t, s.execs, 4)
	assert.Contains(t, s.execs[0].stmt, "appointments_by_patient")
	assert.Contains(t, s.execs[3].stmt, "alerts_by_account_date")
	assert.Equal(t, "P0001", s.execs[0].args[2])
	assert.Equal(t, "D0001", s.execs[0].args[3])
	assert.Equal(t, "Scheduled", s.execs[0].args[4])
}

func TestDoctorDeleteVitalSignsBatchesPerType(t *testing.T) {
	s := &scriptSession{iters: []*scriptIter{
		accountRow("D0001", "drwho", "doctor"),
	}}

	out := run(t, s, "D0001\n6\nP0001\n\n\n0\n\n")

	assert.Contains(t, out, "Vital signs deleted.")
	// one by-account range delete plus one pinned delete per known type
	require.Greater(t, len(s.execs), 1)
	assert.Contains(t, s.execs[0].stmt, "vital_signs_by_account_date")
	for _, c := range s.execs[1:] {
		assert.Contains(t, c.stmt, "vital_signs_by_account_type_date")
	}
}
