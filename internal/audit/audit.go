package audit

import (
	"log/slog"

	"agentbench/internal/minting"
	"agentbench/internal/simclock"
	"agentbench/internal/store"
)

// TableName is the audit table in every domain snapshot.
const TableName = "audit_trails"

// Action is the audited verb.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
	ActionRelease Action = "release"
	ActionProcess Action = "process"
	ActionGrant   Action = "grant"
	ActionRevoke  Action = "revoke"
	ActionExecute Action = "execute"
)

// ReferenceType identifies the mutated entity kind. The enum covers every
// mutable entity across the three domains; audit is written for every
// mutation, never skipped because a kind is missing here.
type ReferenceType string

const (
	RefRequisition      ReferenceType = "requisition"
	RefApplication      ReferenceType = "application"
	RefEmployee         ReferenceType = "employee"
	RefOffer            ReferenceType = "offer"
	RefInterview        ReferenceType = "interview"
	RefPayrollInput     ReferenceType = "payroll_input"
	RefPayrollEarning   ReferenceType = "payroll_earning"
	RefPayslip          ReferenceType = "payslip"
	RefPayment          ReferenceType = "payment"
	RefBenefitPlan      ReferenceType = "benefit_plan"
	RefEnrollment       ReferenceType = "benefit_enrollment"
	RefExit             ReferenceType = "exit"
	RefDocument         ReferenceType = "document"
	RefNotification     ReferenceType = "notification"
	RefSpace            ReferenceType = "space"
	RefPage             ReferenceType = "page"
	RefPagePermission   ReferenceType = "page_permission"
	RefComment          ReferenceType = "comment"
	RefDevice           ReferenceType = "device"
	RefRoutine          ReferenceType = "routine"
	RefRoutineAction    ReferenceType = "routine_action"
	RefDevicePermission ReferenceType = "device_permission"
	RefSceneExecution   ReferenceType = "scene_execution"
	RefAnnouncement     ReferenceType = "announcement"
)

var knownRefs = map[ReferenceType]bool{
	RefRequisition: true, RefApplication: true, RefEmployee: true, RefOffer: true,
	RefInterview: true, RefPayrollInput: true, RefPayrollEarning: true, RefPayslip: true,
	RefPayment: true, RefBenefitPlan: true, RefEnrollment: true, RefExit: true,
	RefDocument: true, RefNotification: true, RefSpace: true, RefPage: true,
	RefPagePermission: true, RefComment: true, RefDevice: true, RefRoutine: true,
	RefRoutineAction: true, RefDevicePermission: true, RefSceneExecution: true,
	RefAnnouncement: true,
}

// Entry is one audit record before stamping. FieldName/OldValue/NewValue
// carry the delta for single-field updates; NewValue may carry a JSON-encoded
// summary for creates and approvals.
type Entry struct {
	ReferenceID   string
	ReferenceType ReferenceType
	Action        Action
	UserID        string
	FieldName     string
	OldValue      any
	NewValue      any
}

// Writer appends audit rows. Appending is best-effort: a malformed entry is
// logged and still written so no mutation ever goes unrecorded, and no audit
// problem ever fails the surrounding operation.
type Writer struct {
	clock  *simclock.Clock
	minter *minting.Minter
	logger *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the structured logger. Nil is ignored and the default slog
// logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// New returns a Writer stamping entries with the given clock and minting
// audit IDs with the given minter.
func New(clock *simclock.Clock, minter *minting.Minter, opts ...Option) *Writer {
	w := &Writer{clock: clock, minter: minter}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) log() *slog.Logger {
	if w.logger != nil {
		return w.logger
	}
	return slog.Default()
}

// Append stamps and writes one audit row, returning its ID.
func (w *Writer) Append(snap store.Snapshot, e Entry) string {
	if !knownRefs[e.ReferenceType] {
		w.log().Warn("audit entry carries unknown reference type",
			"reference_type", string(e.ReferenceType),
			"reference_id", e.ReferenceID)
	}
	id := w.minter.Mint(snap, TableName)
	rec := store.Record{
		"audit_id":       id,
		"reference_id":   e.ReferenceID,
		"reference_type": string(e.ReferenceType),
		"action":         string(e.Action),
		"user_id":        e.UserID,
		"created_at":     w.clock.Stamp(),
	}
	if e.FieldName != "" {
		rec["field_name"] = e.FieldName
		rec["old_value"] = e.OldValue
		rec["new_value"] = e.NewValue
	} else if e.NewValue != nil {
		rec["new_value"] = e.NewValue
	}
	snap.Put(TableName, id, rec)
	return id
}
