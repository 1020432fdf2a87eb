package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	require.NoError(t, err)
	return d
}

// newTestLedger opens a throwaway SQLite store under t.TempDir().
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	dm, err := New(t.TempDir(), "", 1)
	require.NoError(t, err)
	t.Cleanup(func() { dm.Close() })

	ledger := NewLedger(dm)
	require.NoError(t, ledger.EnsureSchema(t.Context()))
	return ledger
}
