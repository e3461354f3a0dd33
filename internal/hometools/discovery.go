package hometools

import "agentbench/internal/discover"

// NewHomeDiscovery builds fetch_home_entities over the smart-home tables.
func NewHomeDiscovery() *discover.Tool {
	return discover.New("fetch_home_entities",
		"Fetches smart-home entities (devices, groups, routines, scenes, permissions, logs) with optional filters").
		Add("devices", discover.Entity{Table: "devices", Filters: []string{
			"device_id", "device_name", "device_type", "state", "group_id", "mac_address",
		}}).
		Add("groups", discover.Entity{Table: "groups", Filters: []string{
			"group_id", "group_name",
		}}).
		Add("routines", discover.Entity{Table: "routines", Filters: []string{
			"routine_id", "routine_name", "status", "created_by",
		}}).
		Add("routine_device_actions", discover.Entity{Table: "routine_device_actions", Filters: []string{
			"action_id", "routine_id", "device_id",
		}}).
		Add("scenes", discover.Entity{Table: "scenes", Filters: []string{
			"scene_id", "scene_name", "created_by",
		}}).
		Add("scene_devices", discover.Entity{Table: "scene_devices", Filters: []string{
			"scene_id", "device_id",
		}}).
		Add("user_device_permissions", discover.Entity{Table: "user_device_permissions", Filters: []string{
			"permission_id", "device_id", "user_id", "permission_level", "granted_by",
		}}).
		Add("access_logs", discover.Entity{Table: "access_logs", Filters: []string{
			"log_id", "scene_id", "user_id", "executed_at_from", "executed_at_to",
		}}).
		Add("announcements", discover.Entity{Table: "announcements", Filters: []string{
			"announcement_id", "announcement_type", "status", "created_by",
		}})
}
