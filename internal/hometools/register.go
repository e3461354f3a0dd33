package hometools

import "agentbench/internal/toolkit"

// Register binds every smart-home tool to the runtime and adds it to the
// registry.
func Register(reg *toolkit.Registry, rt *toolkit.Runtime) error {
	tools := []*toolkit.Tool{
		NewDeviceTool(),
		NewRoutineTool(),
		NewHomePermissionTool(),
		NewSceneTool(),
		NewAnnouncementTool(),
	}
	for _, t := range tools {
		if err := reg.Register(toolkit.Bind(t, rt)); err != nil {
			return err
		}
	}
	return reg.Register(NewHomeDiscovery())
}
