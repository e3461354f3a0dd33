package hrtools

import "agentbench/internal/discover"

// NewHRDiscovery builds fetch_hr_entities over the talent-management tables.
func NewHRDiscovery() *discover.Tool {
	return discover.New("fetch_hr_entities",
		"Fetches HR entities (users, employees, requisitions, applications, offers, documents, exits, enrollments) with optional filters").
		Add("users", discover.Entity{Table: "users", Filters: []string{
			"user_id", "role", "account_status", "email", "department_id",
		}}).
		Add("employees", discover.Entity{Table: "employees", Filters: []string{
			"employee_id", "user_id", "department_id", "employment_status",
			"hire_date_from", "hire_date_to",
		}}).
		Add("departments", discover.Entity{Table: "departments", Filters: []string{
			"department_id", "department_name", "manager_id",
		}}).
		Add("job_requisitions", discover.Entity{Table: "job_requisitions", Filters: []string{
			"requisition_id", "department_id", "hiring_manager_id", "status",
			"employment_type", "budget_min", "budget_max",
		}}).
		Add("candidates", discover.Entity{Table: "candidates", Filters: []string{
			"candidate_id", "email", "source",
		}}).
		Add("applications", discover.Entity{Table: "applications", Filters: []string{
			"application_id", "candidate_id", "requisition_id", "status",
			"applied_date_from", "applied_date_to",
		}}).
		Add("offers", discover.Entity{Table: "offers", Filters: []string{
			"offer_id", "application_id", "candidate_id", "status",
			"base_salary_min", "base_salary_max",
		}}).
		Add("documents", discover.Entity{Table: "documents", Filters: []string{
			"document_id", "document_category", "related_entity_type",
			"related_entity_id", "document_status", "verification_status", "uploaded_by",
		}}).
		Add("employee_exits", discover.Entity{Table: "employee_exits", Filters: []string{
			"exit_id", "employee_id", "clearance_status", "finance_settlement_status",
			"exit_date_from", "exit_date_to",
		}}).
		Add("benefit_plans", discover.Entity{Table: "benefit_plans", Filters: []string{
			"plan_id", "plan_type", "status",
		}}).
		Add("benefit_enrollments", discover.Entity{Table: "benefit_enrollments", Filters: []string{
			"enrollment_id", "employee_id", "plan_id", "status",
			"selection_date_from", "selection_date_to",
		}}).
		Add("notifications", discover.Entity{Table: "notifications", Filters: []string{
			"notification_id", "recipient_id", "notification_type", "status",
		}}).
		Add("audit_trails", discover.Entity{Table: "audit_trails", Filters: []string{
			"audit_id", "reference_id", "reference_type", "action", "user_id",
		}})
}

// NewPayrollDiscovery builds fetch_payroll_entities over the payroll tables.
func NewPayrollDiscovery() *discover.Tool {
	return discover.New("fetch_payroll_entities",
		"Fetches payroll entities (cycles, inputs, earnings, payslips, payments) with optional filters").
		Add("payroll_cycles", discover.Entity{Table: "payroll_cycles", Filters: []string{
			"cycle_id", "status", "start_date_from", "start_date_to",
			"end_date_from", "end_date_to",
		}}).
		Add("payroll_inputs", discover.Entity{Table: "payroll_inputs", Filters: []string{
			"input_id", "employee_id", "payroll_cycle_id", "status",
			"hours_worked_min", "hours_worked_max",
		}}).
		Add("payroll_earnings", discover.Entity{Table: "payroll_earnings", Filters: []string{
			"earning_id", "employee_id", "payroll_cycle_id", "status",
			"amount_min", "amount_max",
		}}).
		Add("payslips", discover.Entity{Table: "payslips", Filters: []string{
			"payslip_id", "employee_id", "payroll_cycle_id", "payslip_status",
			"net_pay_min", "net_pay_max",
		}}).
		Add("payments", discover.Entity{Table: "payments", Filters: []string{
			"payment_id", "payslip_id", "payment_status", "payment_method",
			"amount_min", "amount_max",
		}})
}
