package hrtools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewPayrollTool builds administer_payroll: inputs, earnings review and
// payments against released payslips.
func NewPayrollTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "administer_payroll",
		Description:    "Records payroll inputs, reviews earnings and creates payments against released payslips",
		PrimaryIDField: "record_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_payroll_input",
				Description: "Record a draft payroll input for an employee in a cycle",
				Required:    []string{"employee_id", "payroll_cycle_id", "hours_worked", "user_id"},
				Fields: []toolkit.Field{
					{Name: "employee_id", Kind: toolkit.KindString},
					{Name: "payroll_cycle_id", Kind: toolkit.KindString},
					{Name: "hours_worked", Kind: toolkit.KindNumber, NonNegative: true, Description: "Hours worked in the cycle"},
				},
				Refs: []toolkit.Reference{
					{Field: "employee_id", Table: "employees", Label: "Employee"},
					{Field: "payroll_cycle_id", Table: "payroll_cycles", Label: "Payroll cycle"},
				},
				Auth: authz.Rule{
					Roles: []string{rolePayrollAdmin, roleFinance, roleDeptManager},
				},
				Action: createPayrollInput,
			},
			{
				Tag:         "review_payroll_input",
				Description: "Submit or reject a draft payroll input",
				Required:    []string{"input_id", "decision", "user_id"},
				Fields: []toolkit.Field{
					{Name: "input_id", Kind: toolkit.KindString},
					{Name: "decision", Kind: toolkit.KindEnum, Enum: payrollDecisions, Description: "Manager decision"},
				},
				Refs: []toolkit.Reference{
					{Field: "input_id", Table: "payroll_inputs", Label: "Payroll input"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleDeptManager, roleFinance},
					OwnerFields: []string{"manager_id"},
				},
				AuthTargetField: "input_id",
				Transition: &toolkit.TransitionRule{
					RefField: "input_id", StatusField: "status",
					Graph: validate.PayrollInputStatus, NextField: "decision",
				},
				Action: statusUpdateAction("input_id", "payroll_inputs", audit.RefPayrollInput, "Payroll input reviewed"),
			},
			{
				Tag:         "review_payroll_earning",
				Description: "Approve or reject a pending payroll earning",
				Required:    []string{"earning_id", "decision", "user_id"},
				Fields: []toolkit.Field{
					{Name: "earning_id", Kind: toolkit.KindString},
					{Name: "decision", Kind: toolkit.KindEnum, Enum: earningDecisions, Description: "Review decision"},
				},
				Refs: []toolkit.Reference{
					{Field: "earning_id", Table: "payroll_earnings", Label: "Payroll earning"},
				},
				Auth: authz.Rule{
					Roles: []string{roleFinance, rolePayrollAdmin},
				},
				AuthTargetField: "earning_id",
				Transition: &toolkit.TransitionRule{
					RefField: "earning_id", StatusField: "status",
					Graph: validate.PayrollEarningStatus, NextField: "decision",
				},
				Action: statusUpdateAction("earning_id", "payroll_earnings", audit.RefPayrollEarning, "Payroll earning reviewed"),
			},
			{
				Tag:         "create_payment",
				Description: "Create a pending payment for a released payslip; the amount must match the payslip's net pay",
				Required:    []string{"payslip_id", "amount", "payment_method", "user_id"},
				Fields: []toolkit.Field{
					{Name: "payslip_id", Kind: toolkit.KindString},
					{Name: "amount", Kind: toolkit.KindNumber, Positive: true, Description: "Payment amount; must equal the payslip net pay"},
					{Name: "payment_method", Kind: toolkit.KindEnum, Enum: paymentMethods},
				},
				Refs: []toolkit.Reference{
					{Field: "payslip_id", Table: "payslips", Label: "Payslip"},
				},
				Auth: authz.Rule{
					Roles: []string{roleFinance, rolePayrollAdmin},
				},
				AuthTargetField: "payslip_id",
				Action:          createPayment,
			},
			{
				Tag:         "update_payment_status",
				Description: "Mark a pending payment processed, failed or reversed",
				Required:    []string{"payment_id", "new_status", "user_id"},
				Fields: []toolkit.Field{
					{Name: "payment_id", Kind: toolkit.KindString},
					{Name: "new_status", Kind: toolkit.KindEnum, Enum: paymentStatuses, Description: "Settlement outcome"},
				},
				Refs: []toolkit.Reference{
					{Field: "payment_id", Table: "payments", Label: "Payment"},
				},
				Auth: authz.Rule{
					Roles: []string{roleFinance, rolePayrollAdmin},
				},
				AuthTargetField: "payment_id",
				Transition: &toolkit.TransitionRule{
					RefField: "payment_id", StatusField: "payment_status",
					Graph: validate.PaymentStatus, NextField: "new_status",
				},
				Action: paymentStatusUpdate,
			},
		},
	}
}

// statusUpdateAction covers the decision-driven single-field updates shared
// by payroll inputs and earnings.
func statusUpdateAction(idField, table string, ref audit.ReferenceType, message string) func(*toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	return func(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
		id := ctx.Str(idField)
		target := ctx.Ref(idField)
		old, _ := target["status"].(string)
		changes := map[string]any{"status": ctx.Next()}
		changes["reviewed_by"] = ctx.CallerID
		rec := ctx.Modified(target, changes)

		action := audit.ActionApprove
		if ctx.Next() == "rejected" {
			action = audit.ActionReject
		}
		return &toolkit.Outcome{
			PrimaryID: id,
			Message:   message,
			Writes:    []toolkit.Write{{Table: table, ID: id, Record: rec}},
			Audit: []audit.Entry{{
				ReferenceID: id, ReferenceType: ref,
				Action: action, FieldName: "status",
				OldValue: old, NewValue: ctx.Next(),
			}},
		}, nil
	}
}

func createPayrollInput(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Mint("payroll_inputs")
	rec := store.Record{
		"input_id":         id,
		"employee_id":      ctx.Str("employee_id"),
		"payroll_cycle_id": ctx.Str("payroll_cycle_id"),
		"hours_worked":     ctx.Num("hours_worked"),
		"status":           "draft",
		"created_by":       ctx.CallerID,
		"created_at":       ctx.Stamp(),
		"updated_at":       ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Payroll input created successfully",
		Writes:    []toolkit.Write{{Table: "payroll_inputs", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefPayrollInput,
			Action: audit.ActionCreate, NewValue: ctx.Str("employee_id"),
		}},
	}, nil
}

func createPayment(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	payslip := ctx.Ref("payslip_id")
	if status, _ := payslip["payslip_status"].(string); status != "released" {
		return nil, domain.Haltf("Payslip is not released for payment")
	}
	netPay, fail := validate.Number(payslip["net_pay"], "net_pay")
	if fail != nil {
		return nil, domain.Haltf("Payslip has no valid net_pay")
	}
	if ctx.Num("amount") != netPay {
		return nil, domain.Haltf("Amount mismatch with payslip net_pay")
	}

	id := ctx.Mint("payments")
	rec := store.Record{
		"payment_id":     id,
		"payslip_id":     ctx.Str("payslip_id"),
		"amount":         ctx.Num("amount"),
		"payment_method": ctx.Str("payment_method"),
		"payment_status": "pending",
		"created_by":     ctx.CallerID,
		"created_at":     ctx.Stamp(),
		"updated_at":     ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Payment created successfully",
		Writes:    []toolkit.Write{{Table: "payments", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefPayment,
			Action: audit.ActionCreate, NewValue: ctx.Str("payslip_id"),
		}},
	}, nil
}

func paymentStatusUpdate(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("payment_id")
	payment := ctx.Ref("payment_id")
	old, _ := payment["payment_status"].(string)
	rec := ctx.Modified(payment, map[string]any{"payment_status": ctx.Next()})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Payment status updated",
		Writes:    []toolkit.Write{{Table: "payments", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefPayment,
			Action: audit.ActionProcess, FieldName: "payment_status",
			OldValue: old, NewValue: ctx.Next(),
		}},
	}, nil
}
