// Package hrtools holds the HR talent-management tool descriptors: documents,
// requisitions, applications, offers, payroll, benefits, exits and
// notifications, plus the read-side discovery tools. All enums live here so
// the validators and the advertised get_info schemas use the same names.
package hrtools

// Roles appearing in HR snapshots.
const (
	roleHRManager     = "hr_manager"
	roleHRDirector    = "hr_director"
	roleRecruiter     = "recruiter"
	roleFinance       = "finance_manager"
	roleDeptManager   = "department_manager"
	rolePayrollAdmin  = "payroll_administrator"
	roleCompliance    = "compliance_officer"
	roleITAdmin       = "it_administrator"
	roleBenefitsAdmin = "benefits_administrator"
)

var documentCategories = []string{
	"offer_letter", "contract", "id_proof", "certification",
	"background_check", "tax_form", "policy_document",
}

// Categories whose documents enter the verification machine at pending.
// Everything else stores verification_status as null.
var verificationCategories = map[string]bool{
	"id_proof":         true,
	"certification":    true,
	"background_check": true,
	"tax_form":         true,
}

var relatedEntityTypes = []string{"candidate", "employee", "requisition", "offer"}

var documentStatuses = []string{"active", "archived", "expired"}

var verificationResults = []string{"verified", "failed"}

var fileFormats = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "txt": true,
	"png": true, "jpg": true, "jpeg": true, "xlsx": true, "csv": true,
}

var employmentTypes = []string{"full_time", "part_time", "contract", "intern"}

var applicationStages = []string{
	"pending_review", "screening_passed", "shortlisted", "interview_scheduled",
	"interview_completed", "selected", "rejected", "offer_issued",
	"offer_accepted", "onboarding",
}

var offerDecisions = []string{"accepted", "declined"}

var paymentMethods = []string{"bank_transfer", "check", "wire"}

var paymentStatuses = []string{"processed", "failed", "reversed"}

var payrollDecisions = []string{"submitted", "rejected"}

var earningDecisions = []string{"approved", "rejected"}

var notificationTypes = []string{"email", "sms", "push"}

var notificationStatuses = []string{"sent", "failed", "bounced"}

var clearanceDecisions = []string{"approved", "rejected"}

var equipmentReturnStates = []string{"returned", "not_applicable"}

var settlementDecisions = []string{"paid", "failed"}
