package hrtools

import "agentbench/internal/toolkit"

// Register binds every HR tool to the runtime and adds it to the registry.
func Register(reg *toolkit.Registry, rt *toolkit.Runtime) error {
	tools := []*toolkit.Tool{
		NewDocumentTool(),
		NewRequisitionTool(),
		NewApplicationTool(),
		NewOfferTool(),
		NewPayrollTool(),
		NewBenefitsTool(),
		NewExitTool(),
		NewNotificationTool(),
	}
	for _, t := range tools {
		if err := reg.Register(toolkit.Bind(t, rt)); err != nil {
			return err
		}
	}
	if err := reg.Register(NewHRDiscovery()); err != nil {
		return err
	}
	return reg.Register(NewPayrollDiscovery())
}
