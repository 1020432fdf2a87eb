package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

func TestInsertManualPairRejectsInvertedTimes(t *testing.T) {
	ledger := newTestLedger(t)
	svc := NewBackfillService(ledger)
	ctx := t.Context()
	day := mustDate(t, "2024-03-04")

	entry, _ := utils.ParseClock("17:00")
	exit, _ := utils.ParseClock("09:00")

	_, _, err := svc.InsertManualPair(ctx, "maria", day, entry, exit, "")
	assert.ErrorIs(t, err, ErrValidation)

	// Equal times are rejected too.
	_, _, err = svc.InsertManualPair(ctx, "maria", day, entry, entry, "")
	assert.ErrorIs(t, err, ErrValidation)

	// Nothing was written.
	events, err := ledger.Query(ctx, "maria", day, day)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestInsertManualPairSuccess(t *testing.T) {
	ledger := newTestLedger(t)
	svc := NewBackfillService(ledger)
	ctx := t.Context()
	day := mustDate(t, "2024-03-04")

	entry, _ := utils.ParseClock("09:00")
	exit, _ := utils.ParseClock("17:00")

	entryEv, exitEv, err := svc.InsertManualPair(ctx, "maria", day, entry, exit, "")
	require.NoError(t, err)

	assert.Equal(t, model.KindEntry, entryEv.Kind)
	assert.Equal(t, model.KindExit, exitEv.Kind)
	assert.Equal(t, model.OriginManualAdjustment, entryEv.Origin)
	assert.Equal(t, model.OriginManualAdjustment, exitEv.Origin)
	assert.Equal(t, DefaultAdjustmentNote, entryEv.Note)
	assert.Equal(t, DefaultAdjustmentNote, exitEv.Note)
	assert.Equal(t, "2024-03-04 09:00:00", entryEv.LocalTimestamp)
	assert.Equal(t, "2024-03-04 17:00:00", exitEv.LocalTimestamp)

	events, err := ledger.Query(ctx, "maria", day, day)
	require.NoError(t, err)
	require.Len(t, events, 2)

	marks, hours := Reconcile(events)
	assert.Equal(t, []string{"09:00 - 17:00"}, marks)
	assert.Equal(t, 8.0, hours)
}

func TestInsertManualPairKeepsCustomNote(t *testing.T) {
	ledger := newTestLedger(t)
	svc := NewBackfillService(ledger)
	day := mustDate(t, "2024-03-04")

	entry, _ := utils.ParseClock("09:00")
	exit, _ := utils.ParseClock("13:30")

	entryEv, exitEv, err := svc.InsertManualPair(t.Context(), "maria", day, entry, exit, "forgot badge")
	require.NoError(t, err)
	assert.Equal(t, "forgot badge", entryEv.Note)
	assert.Equal(t, "forgot badge", exitEv.Note)
}
