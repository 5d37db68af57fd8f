package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-dashboard-backend/internal/model"
)

func sampleCollection() []model.AssetRecord {
	return []model.AssetRecord{
		{ID: "PM-2568-001", DeviceType: model.DeviceComputer, Department: "IT / ไอที", MaintenanceStatus: model.StatusCompleted},
		{ID: "TC-0001", DeviceType: model.DevicePrinter, Department: "QA/QC", MaintenanceStatus: model.StatusPending},
		{ID: "TC-0002", DeviceType: model.DeviceComputer, Department: "HR admin", MaintenanceStatus: model.StatusInProgress},
	}
}

func TestMergeOnSave_ReplacesExistingInPlace(t *testing.T) {
	c := sampleCollection()

	draft := model.AssetRecord{
		ID:                  " tc-0001 ", // normalizes to an existing entry
		DeviceType:          model.DevicePrinter,
		Department:          "QA/QC",
		LastMaintenanceDate: "2025-01-15",
		MaintenanceStatus:   model.StatusCompleted,
		Technician:          "Staff IT 02",
	}

	merged, err := MergeOnSave(c, draft)
	require.NoError(t, err)

	assert.Len(t, merged, len(c), "replacing must not change the collection size")
	assert.Equal(t, "PM-2568-001", merged[0].ID, "order preserved")
	assert.Equal(t, "TC-0002", merged[2].ID, "order preserved")

	got := merged[1]
	assert.Equal(t, "tc-0001", got.ID, "draft id kept, trimmed")
	assert.Equal(t, "Staff IT 02", got.Technician)
	assert.Equal(t, "2025-03-15", got.NextMaintenanceDate, "printer cadence applied on completion")
}

func TestMergeOnSave_AppendsNewRecord(t *testing.T) {
	c := sampleCollection()

	draft := model.AssetRecord{ID: "TC-0100", DeviceType: model.DeviceComputer, MaintenanceStatus: model.StatusPending}
	merged, err := MergeOnSave(c, draft)
	require.NoError(t, err)

	assert.Len(t, merged, len(c)+1)
	assert.Equal(t, "TC-0100", merged[len(merged)-1].ID)
}

func TestMergeOnSave_ClearsNextDueUnlessCompleted(t *testing.T) {
	c := []model.AssetRecord{{
		ID:                  "TC-0001",
		DeviceType:          model.DevicePrinter,
		LastMaintenanceDate: "2025-01-15",
		NextMaintenanceDate: "2025-03-15",
		MaintenanceStatus:   model.StatusCompleted,
	}}

	draft := c[0]
	draft.MaintenanceStatus = model.StatusInProgress

	merged, err := MergeOnSave(c, draft)
	require.NoError(t, err)
	assert.Empty(t, merged[0].NextMaintenanceDate, "next due is cleared while work is open")

	draft.MaintenanceStatus = model.StatusCompleted
	merged, err = MergeOnSave(merged, draft)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", merged[0].NextMaintenanceDate, "recomputed on completion")
}

func TestMergeOnSave_RejectsEmptyID(t *testing.T) {
	_, err := MergeOnSave(sampleCollection(), model.AssetRecord{ID: "   "})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestMergeOnSave_DoesNotMutateInput(t *testing.T) {
	c := sampleCollection()
	draft := model.AssetRecord{ID: "TC-0001", MaintenanceStatus: model.StatusPending, Technician: "changed"}

	_, err := MergeOnSave(c, draft)
	require.NoError(t, err)
	assert.Empty(t, c[1].Technician, "input collection untouched")
}

func TestReplaceFromRemote_RemoteIsAuthoritative(t *testing.T) {
	local := sampleCollection()
	remote := []model.AssetRecord{
		{ID: "R-1", DeviceType: model.DevicePrinter},
		{ID: "R-2", DeviceType: model.DeviceComputer},
	}

	replaced := ReplaceFromRemote(local, remote)
	assert.Equal(t, remote, replaced, "result is exactly the remote dataset, same order")

	replaced[0].ID = "mutated"
	assert.Equal(t, "R-1", remote[0].ID, "result is a copy, not an alias")

	assert.Empty(t, ReplaceFromRemote(local, nil), "empty remote wipes local state")
}

func TestFindByPublicID(t *testing.T) {
	c := sampleCollection()

	got := FindByPublicID(c, " tc-0001 ")
	require.NotNil(t, got)
	assert.Equal(t, "TC-0001", got.ID)

	assert.Nil(t, FindByPublicID(c, "missing"))
	assert.Nil(t, FindByPublicID(c, "   "))
}

func TestDelete(t *testing.T) {
	c := sampleCollection()

	out, removed := Delete(c, "tc-0001")
	assert.True(t, removed)
	assert.Len(t, out, len(c)-1)
	assert.Equal(t, "PM-2568-001", out[0].ID)
	assert.Equal(t, "TC-0002", out[1].ID)

	out, removed = Delete(c, "nope")
	assert.False(t, removed)
	assert.Len(t, out, len(c))
}
