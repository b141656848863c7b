package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchAccumulatesInOrder(t *testing.T) {
	b := &Batch{}
	assert.Equal(t, 0, b.Len())

	b.Add("INSERT INTO a (x) VALUES (?)", 1)
	b.Add("INSERT INTO b (x, y) VALUES (?, ?)", 2, 3)

	require.Equal(t, 2, b.Len())
	entries := b.Entries()
	assert.Equal(t, "INSERT INTO a (x) VALUES (?)", entries[0].Stmt)
	assert.Equal(t, []any{1}, entries[0].Args)
	assert.Equal(t, []any{2, 3}, entries[1].Args)
}
