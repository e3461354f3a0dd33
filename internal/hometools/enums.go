// Package hometools holds the smart-home hub tool descriptors: devices,
// routines, device permissions, scene execution and announcements, plus the
// read-side discovery tool.
package hometools

// Roles appearing in smart-home snapshots.
const (
	roleHomeOwner = "owner"
	roleHomeAdmin = "admin"
	roleMember    = "member"
)

// Caller-record list fields consulted for object-level permissions.
const (
	fieldAuthorizedDevices = "authorized_device_ids"
	fieldAuthorizedGroups  = "authorized_group_ids"
)

var deviceTypes = []string{
	"light", "thermostat", "camera", "lock", "speaker", "sensor", "plug",
}

var deviceStates = []string{"online", "offline", "degraded"}

var devicePermissionLevels = []string{"view", "control", "manage"}

var announcementTypes = []string{"broadcast", "targeted"}

var announcementOutcomes = []string{"sent", "failed"}
