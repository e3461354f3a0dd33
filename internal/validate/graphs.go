package validate

// Transition graphs for every mutable entity family in the fixture. A state
// with no outgoing edges is terminal.

// HR document lifecycle; archival states can be reactivated.
var DocumentStatus = Graph{
	"active":   {"archived", "expired"},
	"archived": {"active"},
	"expired":  {"active"},
}

// Orthogonal verification machine for documents; no return edges.
var VerificationStatus = Graph{
	"pending": {"verified", "failed"},
}

// Requisition approval flow. Leaving pending_approval additionally requires
// all three approver slots to be filled; that gate lives in the handler.
var RequisitionStatus = Graph{
	"draft":            {"pending_approval"},
	"pending_approval": {"approved"},
	"approved":         {"posted", "cancelled"},
	"posted":           {"closed"},
}

// Linear application progression with a post-selection offer fan-out.
var ApplicationStage = Graph{
	"applied":             {"pending_review"},
	"pending_review":      {"screening_passed"},
	"screening_passed":    {"shortlisted"},
	"shortlisted":         {"interview_scheduled"},
	"interview_scheduled": {"interview_completed"},
	"interview_completed": {"selected", "rejected"},
	"selected":            {"offer_issued"},
	"offer_issued":        {"offer_accepted"},
	"offer_accepted":      {"onboarding"},
}

var OfferStatus = Graph{
	"draft":               {"compliance_verified"},
	"compliance_verified": {"approved_for_issue"},
	"approved_for_issue":  {"issued"},
	"issued":              {"accepted", "declined"},
}

var PayrollInputStatus = Graph{
	"draft": {"submitted", "rejected"},
}

var PayrollEarningStatus = Graph{
	"pending": {"approved", "rejected"},
}

var PaymentStatus = Graph{
	"pending": {"processed", "failed", "reversed"},
}

var NotificationStatus = Graph{
	"pending": {"sent", "failed", "bounced"},
}

// Employee-exit clearance; the composite cleared/rejected value is computed
// from manager clearance and equipment return in the handler.
var ClearanceStatus = Graph{
	"pending": {"cleared", "rejected"},
}

var FinanceSettlementStatus = Graph{
	"draft":      {"calculated"},
	"calculated": {"approved"},
	"approved":   {"paid", "failed"},
}

var EnrollmentStatus = Graph{
	"pending":  {"approved"},
	"approved": {"active"},
}

// Wiki lifecycles.
var SpaceStatus = Graph{
	"active": {"archived"},
}

var PageStatus = Graph{
	"draft":     {"published"},
	"published": {"archived"},
	"archived":  {"published"},
}

var CommentStatus = Graph{
	"open": {"resolved"},
}

// Smart-home lifecycles.
var DeviceState = Graph{
	"offline":  {"online"},
	"online":   {"offline", "degraded"},
	"degraded": {"online", "offline"},
}

var RoutineState = Graph{
	"disabled": {"enabled"},
	"enabled":  {"disabled"},
}

var AnnouncementStatus = Graph{
	"pending": {"sent", "failed"},
}
