package audit

import (
	"bytes"
	"log/slog"
	"testing"

	"agentbench/internal/minting"
	"agentbench/internal/simclock"
	"agentbench/internal/store"
)

func newWriter(opts ...Option) *Writer {
	return New(simclock.New(), minting.New(), opts...)
}

func TestAppend_ShouldStampAndMintSequentially(t *testing.T) {
	w := newWriter()
	snap := store.Snapshot{}

	first := w.Append(snap, Entry{
		ReferenceID:   "9001",
		ReferenceType: RefDocument,
		Action:        ActionCreate,
		UserID:        "7",
	})
	second := w.Append(snap, Entry{
		ReferenceID:   "9001",
		ReferenceType: RefDocument,
		Action:        ActionUpdate,
		UserID:        "7",
		FieldName:     "document_status",
		OldValue:      "active",
		NewValue:      "archived",
	})

	if first != "1" || second != "2" {
		t.Fatalf("expected sequential audit IDs 1,2 got %s,%s", first, second)
	}
	rec, ok := snap.Lookup(TableName, "1")
	if !ok {
		t.Fatal("expected audit row 1")
	}
	if rec["reference_type"] != "document" || rec["action"] != "create" {
		t.Errorf("unexpected audit row %v", rec)
	}
	if rec["created_at"] != "2025-10-01T12:00:00" {
		t.Errorf("expected fixture timestamp, got %v", rec["created_at"])
	}
	if _, present := rec["field_name"]; present {
		t.Error("create entry must not carry a field delta")
	}
}

func TestAppend_UpdateEntry_ShouldCarryDelta(t *testing.T) {
	w := newWriter()
	snap := store.Snapshot{}

	w.Append(snap, Entry{
		ReferenceID:   "55",
		ReferenceType: RefRequisition,
		Action:        ActionApprove,
		UserID:        "3",
		FieldName:     "status",
		OldValue:      "pending_approval",
		NewValue:      "approved",
	})

	rec, _ := snap.Lookup(TableName, "1")
	if rec["field_name"] != "status" || rec["old_value"] != "pending_approval" || rec["new_value"] != "approved" {
		t.Errorf("expected delta fields, got %v", rec)
	}
}

func TestAppend_UnknownReferenceType_ShouldLogAndStillWrite(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	w := newWriter(WithLogger(logger))
	snap := store.Snapshot{}

	id := w.Append(snap, Entry{ReferenceID: "1", ReferenceType: "meteor", Action: ActionCreate, UserID: "1"})

	if _, ok := snap.Lookup(TableName, id); !ok {
		t.Fatal("unknown reference type must not drop the audit row")
	}
	if !bytes.Contains(buf.Bytes(), []byte("unknown reference type")) {
		t.Error("expected a warning log for the unknown reference type")
	}
}
