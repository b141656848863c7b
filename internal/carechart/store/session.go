// Package store wraps the Cassandra driver behind a narrow session
// interface so the access layer can be exercised against a fake in
// tests. It also provides the batch-grouping primitive used by the
// fan-out writer and the bulk loader.
package store

import (
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"github.com/avaldes/carechart/internal/carechart/logger"
)

// Iter is a lazy, non-restartable row sequence. Scan fills dest from
// the next row and reports whether one was available; Close releases
// the iterator and surfaces any query error.
type Iter interface {
	Scan(dest ...any) bool
	Close() error
}

// Session is the storage driver surface the access layer depends on.
// Timeouts and retries are the driver's concern, not the caller's.
type Session interface {
	Exec(stmt string, args ...any) error
	Query(stmt string, args ...any) Iter
	ExecBatch(b *Batch) error
}

// batchChunkSize caps how many mutations travel in one network round
// trip.
const batchChunkSize = 10

// BatchEntry is one pending mutation.
type BatchEntry struct {
	Stmt string
	Args []any
}

// Batch accumulates mutations to be executed in chunked round trips.
type Batch struct {
	entries []BatchEntry
}

// Add appends one mutation to the batch.
func (b *Batch) Add(stmt string, args ...any) {
	b.entries = append(b.entries, BatchEntry{Stmt: stmt, Args: args})
}

// Len returns the number of pending mutations.
func (b *Batch) Len() int { return len(b.entries) }

// Entries returns the pending mutations in insertion order.
func (b *Batch) Entries() []BatchEntry { return b.entries }

// CQLSession is the gocql-backed Session implementation.
type CQLSession struct {
	s *gocql.Session
}

// Connect opens a session against the cluster. An empty keyspace
// connects at cluster level, which schema bootstrap needs before the
// keyspace exists.
func Connect(hosts []string, keyspace string, timeout time.Duration) (*CQLSession, error) {
	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	if timeout > 0 {
		cluster.Timeout = timeout
	}

	s, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("connect to cluster %v: %w", hosts, err)
	}
	logger.L().Infow("Connected to cluster", "hosts", hosts, "keyspace", keyspace)
	return &CQLSession{s: s}, nil
}

func (c *CQLSession) Exec(stmt string, args ...any) error {
	return c.s.Query(stmt, args...).Exec()
}

func (c *CQLSession) Query(stmt string, args ...any) Iter {
	return c.s.Query(stmt, args...).Iter()
}

// ExecBatch executes the accumulated mutations, at most batchChunkSize
// statements per round trip.
func (c *CQLSession) ExecBatch(b *Batch) error {
	for start := 0; start < len(b.entries); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(b.entries) {
			end = len(b.entries)
		}
		nb := c.s.NewBatch(gocql.LoggedBatch)
		for _, e := range b.entries[start:end] {
			nb.Query(e.Stmt, e.Args...)
		}
		if err := c.s.ExecuteBatch(nb); err != nil {
			return fmt.Errorf("execute batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

func (c *CQLSession) Close() {
	c.s.Close()
}
