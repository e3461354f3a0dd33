package hometools

import (
	"sort"

	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
)

// NewSceneTool builds run_scene. Executing a scene requires access to every
// member device, either directly or through the device's group; the scene
// itself never changes, the mutation is the access_logs row.
func NewSceneTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "run_scene",
		Description:    "Executes a scene the caller has access to, logging the execution",
		PrimaryIDField: "execution_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "execute_scene",
				Description: "Run a scene across its member devices",
				Required:    []string{"scene_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "scene_id", Table: "scenes", Label: "Scene"},
				},
				Action: executeScene,
			},
		},
	}
}

func executeScene(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	sceneID := ctx.Str("scene_id")

	var deviceIDs []string
	for _, member := range ctx.Snapshot.Table("scene_devices") {
		if member["scene_id"] != sceneID {
			continue
		}
		deviceID, _ := member["device_id"].(string)
		if deviceID == "" {
			continue
		}
		if _, ok := ctx.Snapshot.Lookup("devices", deviceID); !ok {
			return nil, domain.Haltf("Device %s not found", deviceID)
		}
		deviceIDs = append(deviceIDs, deviceID)
	}
	if len(deviceIDs) == 0 {
		return nil, domain.Haltf("Scene has no member devices")
	}
	sort.Strings(deviceIDs)

	role := authz.Role(ctx.Caller)
	if role != roleHomeOwner {
		for _, deviceID := range deviceIDs {
			if !callerMayAccess(ctx, deviceID) {
				return nil, domain.Escalatef("Unauthorized: user %s does not have access to device %s",
					ctx.CallerID, deviceID)
			}
		}
	}

	id := ctx.Mint("access_logs")
	rec := store.Record{
		"log_id":      id,
		"scene_id":    sceneID,
		"user_id":     ctx.CallerID,
		"device_ids":  toAny(deviceIDs),
		"executed_at": ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Scene executed successfully",
		Extra:     map[string]any{"device_count": len(deviceIDs)},
		Writes:    []toolkit.Write{{Table: "access_logs", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: sceneID, ReferenceType: audit.RefSceneExecution,
			Action: audit.ActionExecute, NewValue: id,
		}},
	}, nil
}

// callerMayAccess checks direct then group-inherited device permission.
func callerMayAccess(ctx *toolkit.Context, deviceID string) bool {
	for _, authorized := range authz.StringList(ctx.Caller, fieldAuthorizedDevices) {
		if authorized == deviceID {
			return true
		}
	}
	device, ok := ctx.Snapshot.Lookup("devices", deviceID)
	if !ok {
		return false
	}
	groupID, _ := device["group_id"].(string)
	if groupID == "" {
		return false
	}
	for _, authorized := range authz.StringList(ctx.Caller, fieldAuthorizedGroups) {
		if authorized == groupID {
			return true
		}
	}
	return false
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
