package domain

import "testing"

func TestPermissionsCanRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		perms Permissions
		key   string
		want  bool
	}{
		{name: "all grants everything", perms: Permissions{"all": true}, key: PermRoles, want: true},
		{name: "explicit key", perms: Permissions{"leads": true}, key: PermLeads, want: true},
		{name: "absent key denies", perms: Permissions{"leads": true}, key: PermUsers, want: false},
		{name: "false key denies", perms: Permissions{"leads": false}, key: PermLeads, want: false},
		{name: "view covers leads", perms: Permissions{"view": true}, key: PermLeads, want: true},
		{name: "view covers submissions", perms: Permissions{"view": true}, key: PermSubmissions, want: true},
		{name: "view covers reports", perms: Permissions{"view": true}, key: PermReports, want: true},
		{name: "view does not cover users", perms: Permissions{"view": true}, key: PermUsers, want: false},
		{name: "view does not cover roles", perms: Permissions{"view": true}, key: PermRoles, want: false},
		{name: "leads implies status update", perms: Permissions{"leads": true}, key: PermLeadStatusUpdate, want: true},
		{name: "leads implies comments", perms: Permissions{"leads": true}, key: PermLeadComments, want: true},
		{name: "leads implies assignment", perms: Permissions{"leads": true}, key: PermLeadAssignment, want: true},
		{name: "empty denies", perms: Permissions{}, key: PermLeads, want: false},
		{name: "nil denies", perms: nil, key: PermLeads, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.perms.CanRead(tt.key); got != tt.want {
				t.Errorf("CanRead(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestPermissionsCanWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		perms Permissions
		key   string
		want  bool
	}{
		{name: "all grants write", perms: Permissions{"all": true}, key: PermLeads, want: true},
		{name: "explicit key grants write", perms: Permissions{"leads": true}, key: PermLeads, want: true},
		{name: "view never grants write", perms: Permissions{"view": true}, key: PermLeads, want: false},
		{name: "view never grants report write", perms: Permissions{"view": true}, key: PermReports, want: false},
		{name: "leads does not imply sub-permission write", perms: Permissions{"leads": true}, key: PermLeadStatusUpdate, want: false},
		{name: "sub-permission alone", perms: Permissions{"lead_comments": true}, key: PermLeadComments, want: true},
		{name: "absent denies", perms: Permissions{}, key: PermCallLogs, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.perms.CanWrite(tt.key); got != tt.want {
				t.Errorf("CanWrite(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

// Holding any write grant always implies the matching read.
func TestWriteImpliesRead(t *testing.T) {
	t.Parallel()

	keys := []string{
		PermLeads, PermSubmissions, PermReports, PermUsers, PermRoles,
		PermReminders, PermCallLogs, PermActivities, PermNewsletter, PermTags,
		PermLeadStatusUpdate, PermLeadComments, PermLeadAssignment,
	}
	grants := []Permissions{
		{"all": true},
		{"leads": true},
		{"view": true, "reminders": true},
		{"lead_comments": true, "call_logs": true},
	}
	for _, perms := range grants {
		for _, key := range keys {
			if perms.CanWrite(key) && !perms.CanRead(key) {
				t.Errorf("perms %v: CanWrite(%q) without CanRead", perms, key)
			}
		}
	}
}

func TestClassifyRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		role  string
		level int
		perms Permissions
		want  RoleClass
	}{
		{name: "all permission is admin", role: "Superuser", level: 5, perms: Permissions{"all": true}, want: RoleAdmin},
		{name: "level zero is admin", role: "Owner", level: 0, perms: Permissions{}, want: RoleAdmin},
		{name: "admin by name", role: "Admin", level: 2, perms: Permissions{}, want: RoleAdmin},
		{name: "sales manager by name", role: "Sales Manager", level: 1, perms: Permissions{"leads": true}, want: RoleSalesManager},
		{name: "sales executive by name", role: "sales executive", level: 2, perms: Permissions{}, want: RoleSalesExecutive},
		{name: "marketing by name", role: "Marketing", level: 3, perms: Permissions{}, want: RoleMarketing},
		{name: "custom level one", role: "Team Lead", level: 1, perms: Permissions{}, want: RoleSalesManager},
		{name: "custom level two", role: "Account Rep", level: 2, perms: Permissions{}, want: RoleSalesExecutive},
		{name: "custom level three", role: "Growth", level: 3, perms: Permissions{}, want: RoleMarketing},
		{name: "unknown degrades to read only", role: "Auditor", level: 7, perms: Permissions{"view": true}, want: RoleReadOnly},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyRole(tt.role, tt.level, tt.perms); got != tt.want {
				t.Errorf("ClassifyRole(%q, %d) = %v, want %v", tt.role, tt.level, got, tt.want)
			}
		})
	}
}

func TestRoleCanManage(t *testing.T) {
	t.Parallel()

	role := func(level int) Role { return Role{HierarchyLevel: level} }
	tests := []struct {
		name    string
		manager Role
		target  Role
		want    bool
	}{
		{name: "admin manages admin", manager: role(0), target: role(0), want: true},
		{name: "admin manages manager", manager: role(0), target: role(1), want: true},
		{name: "admin manages executive", manager: role(0), target: role(2), want: true},
		{name: "manager manages executive", manager: role(1), target: role(2), want: true},
		{name: "manager manages marketing", manager: role(1), target: role(3), want: true},
		{name: "manager cannot manage admin", manager: role(1), target: role(0), want: false},
		{name: "manager cannot manage manager", manager: role(1), target: role(1), want: false},
		{name: "executive manages nobody", manager: role(2), target: role(3), want: false},
		{name: "marketing manages nobody", manager: role(3), target: role(3), want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.manager.CanManage(tt.target); got != tt.want {
				t.Errorf("CanManage = %v, want %v", got, tt.want)
			}
		})
	}
}
