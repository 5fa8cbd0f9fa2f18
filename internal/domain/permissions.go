package domain

import "strings"

// Permission keys known to the system. Roles may carry any subset; the
// "all" key short-circuits every check.
const (
	PermAll              = "all"
	PermView             = "view"
	PermDashboard        = "dashboard"
	PermLeads            = "leads"
	PermLeadStatusUpdate = "lead_status_update"
	PermLeadComments     = "lead_comments"
	PermLeadAssignment   = "lead_assignment"
	PermSubmissions      = "submissions"
	PermConvertLead      = "convert_to_lead"
	PermDeleteSubmission = "delete_submission"
	PermReports          = "reports"
	PermUsers            = "users"
	PermRoles            = "roles"
	PermReminders        = "reminders"
	PermCallLogs         = "call_logs"
	PermActivities       = "activities"
	PermNewsletter       = "newsletter"
	PermTags             = "tags"
)

// Canonical names of the seeded roles. Custom roles may use any name;
// these are the ones the hierarchy rules key off.
const (
	RoleNameAdmin          = "Admin"
	RoleNameSalesManager   = "Sales Manager"
	RoleNameSalesExecutive = "Sales Executive"
	RoleNameMarketing      = "Marketing"
)

// Permissions is a capability map attached to a role. Absent keys deny.
type Permissions map[string]bool

// All reports whether the map carries the "all" short-circuit.
func (p Permissions) All() bool { return p[PermAll] }

// subPermissionParent maps fine-grained lead capabilities to the broad
// "leads" capability that implies them.
var subPermissionParent = map[string]string{
	PermLeadStatusUpdate: PermLeads,
	PermLeadComments:     PermLeads,
	PermLeadAssignment:   PermLeads,
}

// viewFallback lists the keys a bare "view" grant satisfies for reads.
var viewFallback = map[string]bool{
	PermLeads:       true,
	PermSubmissions: true,
	PermReports:     true,
}

// CanRead reports whether the permission set allows reading the resource
// behind key. "all" grants everything; an explicit key grants itself;
// "view" covers leads, submissions and reports; holding "leads" implies
// its sub-permissions.
func (p Permissions) CanRead(key string) bool {
	if p.All() || p[key] {
		return true
	}
	if viewFallback[key] && p[PermView] {
		return true
	}
	if parent, ok := subPermissionParent[key]; ok && p[parent] {
		return true
	}
	return false
}

// CanWrite reports whether the permission set allows mutating the
// resource behind key. Writes demand "all" or the explicit key: a bare
// "view" never grants write access, and unlike reads the "leads"
// implication does not extend to its sub-permissions here.
func (p Permissions) CanWrite(key string) bool {
	return p.All() || p[key]
}

// RoleClass is the closed set of behavioral roles the system dispatches
// on. Every role maps to exactly one class; unknown roles degrade to
// read-only rather than gaining access.
type RoleClass string

const (
	RoleAdmin          RoleClass = "admin"
	RoleSalesManager   RoleClass = "sales_manager"
	RoleSalesExecutive RoleClass = "sales_executive"
	RoleMarketing      RoleClass = "marketing"
	RoleReadOnly       RoleClass = "read_only"
)

func (c RoleClass) String() string { return string(c) }

func (c RoleClass) IsValid() bool {
	switch c {
	case RoleAdmin, RoleSalesManager, RoleSalesExecutive, RoleMarketing, RoleReadOnly:
		return true
	}
	return false
}

// SeesAllLeads reports whether the class is exempt from ownership
// scoping on leads, call logs and reminders.
func (c RoleClass) SeesAllLeads() bool { return c == RoleAdmin }

// SeesAllActivity reports whether the class may read the full activity
// feed rather than only its own rows.
func (c RoleClass) SeesAllActivity() bool {
	return c == RoleAdmin || c == RoleSalesManager
}

// ClassifyRole derives the RoleClass from a role's name, hierarchy level
// and permission set. The name is authoritative when recognized; the
// hierarchy level breaks ties for custom role names.
func ClassifyRole(name string, hierarchyLevel int, perms Permissions) RoleClass {
	if perms.All() || hierarchyLevel == 0 {
		return RoleAdmin
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "admin", "administrator":
		return RoleAdmin
	case "sales manager":
		return RoleSalesManager
	case "sales executive":
		return RoleSalesExecutive
	case "marketing":
		return RoleMarketing
	}
	switch hierarchyLevel {
	case 1:
		return RoleSalesManager
	case 2:
		return RoleSalesExecutive
	case 3:
		return RoleMarketing
	}
	return RoleReadOnly
}
