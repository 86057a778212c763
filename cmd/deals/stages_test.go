package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/Veraticus/dealflow/internal/storage"
	"github.com/Veraticus/dealflow/internal/testutil"
	tuitest "github.com/Veraticus/dealflow/internal/tui/testing"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func openStore(t *testing.T, dbPath string) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStagesCommand_List(t *testing.T) {
	seedDatabase(t, nil)

	out, err := execute(t, stagesCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Pipeline stages")
	assert.True(t, tuitest.ContainsInOrder(out, "Lead", "Qualified", "Proposal", "Negotiation"), out)
}

func TestStagesCommand_Add(t *testing.T) {
	dbPath := seedDatabase(t, nil)

	out, err := execute(t, stagesCmd(), "add", "Closing")
	require.NoError(t, err)
	assert.Contains(t, out, "Added stage Closing")

	stage, err := openStore(t, dbPath).GetStageByName(context.Background(), "closing")
	require.NoError(t, err)
	assert.Equal(t, 5, stage.Position, "appended after the seeded stages")

	_, err = execute(t, stagesCmd(), "add", "LEAD")
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestStagesCommand_AddWithPosition(t *testing.T) {
	dbPath := seedDatabase(t, nil)

	_, err := execute(t, stagesCmd(), "add", "Discovery", "--position", "0")
	require.NoError(t, err)

	stages, err := openStore(t, dbPath).ListStages(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, stages)
	assert.Equal(t, "Discovery", stages[0].Name)
}

func TestStagesCommand_Rename(t *testing.T) {
	dbPath := seedDatabase(t, nil)

	out, err := execute(t, stagesCmd(), "rename", "proposal", "Quote")
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed stage Proposal to Quote")

	store := openStore(t, dbPath)
	stage, err := store.GetStageByName(context.Background(), "Quote")
	require.NoError(t, err)
	assert.Equal(t, 3, stage.ID)

	_, err = execute(t, stagesCmd(), "rename", "Nowhere", "Somewhere")
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestWriteStages_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStages(&buf, []model.Stage{}))
	assert.Contains(t, buf.String(), "No stages yet")
}

func TestDeleteCommand(t *testing.T) {
	dbPath := seedDatabase(t, testutil.NewDealBuilder().WithPipeline().Build())

	out, err := execute(t, deleteCmd(), "deal-1", "deal-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Acme Renewal (deal-1)")
	assert.Contains(t, out, "Deleted Globex Pilot (deal-2)")
	assert.Contains(t, out, "5 deals remaining")

	count, err := openStore(t, dbPath).CountDeals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestDeleteCommand_UnknownID(t *testing.T) {
	seedDatabase(t, testutil.NewDealBuilder().WithPipeline().Build())

	_, err := execute(t, deleteCmd(), "deal-99")
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, `No deal with id "deal-99"`)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
