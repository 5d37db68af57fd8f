// Package reconcile holds the pure record-merging rules that keep the local
// collection, user edits, and the remote dataset consistent.
package reconcile

import (
	"errors"
	"strings"

	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/pmdate"
)

// ErrMissingID is returned when a draft's identifier is empty after
// normalization. Saves are aborted before any state is touched.
var ErrMissingID = errors.New("asset record requires a non-empty id")

// MergeOnSave folds an edited or newly created draft into the collection.
// Matching is by normalized id: an existing record is replaced in place,
// preserving collection order; otherwise the draft is appended. The returned
// slice is a new allocation, the input is not mutated.
//
// The draft's next-due date is derived here: recomputed from the last
// maintenance date when the status is Completed, cleared otherwise. A stale
// next-due value therefore cannot survive a status change.
func MergeOnSave(collection []model.AssetRecord, draft model.AssetRecord) ([]model.AssetRecord, error) {
	draft.ID = strings.TrimSpace(draft.ID)
	key := pmdate.NormalizeID(draft.ID)
	if key == "" {
		return nil, ErrMissingID
	}

	if draft.MaintenanceStatus == model.StatusCompleted {
		draft.NextMaintenanceDate = pmdate.NextDue(draft.LastMaintenanceDate, draft.DeviceType)
	} else {
		draft.NextMaintenanceDate = ""
	}

	out := make([]model.AssetRecord, len(collection))
	copy(out, collection)
	for i := range out {
		if pmdate.NormalizeID(out[i].ID) == key {
			out[i] = draft
			return out, nil
		}
	}
	return append(out, draft), nil
}

// ReplaceFromRemote implements the remote-authoritative read policy: a
// successfully fetched remote dataset becomes the local collection wholesale.
// No field-level merging and no conflict detection; local edits made since
// the last push are dropped.
func ReplaceFromRemote(_ []model.AssetRecord, remote []model.AssetRecord) []model.AssetRecord {
	out := make([]model.AssetRecord, len(remote))
	copy(out, remote)
	return out
}

// FindByPublicID resolves the id from a scanned public link against the
// collection. Both sides are normalized, so case, padding, and zero-width
// artifacts from QR scanning do not matter. Returns nil when absent.
func FindByPublicID(collection []model.AssetRecord, rawID string) *model.AssetRecord {
	key := pmdate.NormalizeID(rawID)
	if key == "" {
		return nil
	}
	for i := range collection {
		if pmdate.NormalizeID(collection[i].ID) == key {
			rec := collection[i]
			return &rec
		}
	}
	return nil
}

// Delete removes the record matching rawID, if any, preserving order.
// Reports whether a record was removed.
func Delete(collection []model.AssetRecord, rawID string) ([]model.AssetRecord, bool) {
	key := pmdate.NormalizeID(rawID)
	if key == "" {
		return collection, false
	}
	out := make([]model.AssetRecord, 0, len(collection))
	removed := false
	for _, rec := range collection {
		if !removed && pmdate.NormalizeID(rec.ID) == key {
			removed = true
			continue
		}
		out = append(out, rec)
	}
	return out, removed
}
