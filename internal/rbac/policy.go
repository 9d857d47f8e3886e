package rbac

// Package rbac is the static permission policy: which capabilities each
// role carries, where each role lands after login, and which navigation
// entries its menu shows. Everything here is a pure function over the
// static table; session state never leaks in.

import (
	"github.com/hmaulana/maintenance-management/internal/core/identity"
)

// Well-known paths resolved by the policy.
const (
	LoginPath           = "/login"
	DashboardPath       = "/dashboard"
	TechnicianQueuePath = "/my-work-orders"
)

// Capability names checked by consumers of the policy. CapabilityAll is
// the administrator wildcard covering every capability.
const (
	CapabilityAll             = "all"
	CapabilityViewDashboard   = "view_dashboard"
	CapabilityManageAssets    = "manage_assets"
	CapabilityViewAssets      = "view_assets"
	CapabilityEditWorkOrders  = "edit_work_orders"
	CapabilityUpdateOwnOrders = "update_own_work_orders"
	CapabilityManageAlerts    = "manage_alerts"
	CapabilityViewAlerts      = "view_alerts"
	CapabilityViewReports     = "view_reports"
	CapabilityManageUsers     = "manage_users"
)

// NavItem is one entry of a role's navigation menu.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

type rolePolicy struct {
	capabilities map[string]struct{}
	defaultRoute string
	navItems     []NavItem
}

// policies maps every member of the closed role set. The table is the
// single source of truth for routes, menus, and capabilities.
var policies = map[identity.Role]rolePolicy{
	identity.RoleAdmin: {
		capabilities: capabilitySet(CapabilityAll),
		defaultRoute: DashboardPath,
		navItems: []NavItem{
			{Label: "Dashboard", Path: DashboardPath, Icon: "dashboard"},
			{Label: "Work Orders", Path: "/work-orders", Icon: "clipboard"},
			{Label: "Assets", Path: "/assets", Icon: "wrench"},
			{Label: "Alerts", Path: "/alerts", Icon: "bell"},
			{Label: "Settings", Path: "/settings", Icon: "gear"},
		},
	},
	identity.RoleEngineer: {
		capabilities: capabilitySet(
			CapabilityViewDashboard,
			CapabilityManageAssets,
			CapabilityViewAssets,
			CapabilityEditWorkOrders,
			CapabilityManageAlerts,
			CapabilityViewAlerts,
			CapabilityViewReports,
		),
		defaultRoute: DashboardPath,
		navItems: []NavItem{
			{Label: "Dashboard", Path: DashboardPath, Icon: "dashboard"},
			{Label: "Work Orders", Path: "/work-orders", Icon: "clipboard"},
			{Label: "Assets", Path: "/assets", Icon: "wrench"},
			{Label: "Alerts", Path: "/alerts", Icon: "bell"},
		},
	},
	identity.RoleTechnician: {
		capabilities: capabilitySet(
			CapabilityViewAssets,
			CapabilityUpdateOwnOrders,
			CapabilityViewAlerts,
		),
		defaultRoute: TechnicianQueuePath,
		navItems: []NavItem{
			{Label: "My Work Orders", Path: TechnicianQueuePath, Icon: "clipboard"},
			{Label: "Assets", Path: "/assets", Icon: "wrench"},
			{Label: "Alerts", Path: "/alerts", Icon: "bell"},
		},
	},
}

func capabilitySet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// DefaultRoute resolves the canonical landing path for a user. It is total:
// an absent user or a user whose role fell outside the closed set maps to
// the login path, never an error.
func DefaultRoute(u *identity.User) string {
	if u == nil {
		return LoginPath
	}
	p, ok := policies[u.Role]
	if !ok {
		return LoginPath
	}
	return p.defaultRoute
}

// NavItems returns the ordered navigation entries for the user's role, or
// an empty slice for an absent or roleless user.
func NavItems(u *identity.User) []NavItem {
	if u == nil {
		return nil
	}
	p, ok := policies[u.Role]
	if !ok {
		return nil
	}
	items := make([]NavItem, len(p.navItems))
	copy(items, p.navItems)
	return items
}

// HasCapability reports whether the user's role grants the named
// capability. Admin carries the "all" wildcard and passes every check.
func HasCapability(u *identity.User, capability string) bool {
	if u == nil {
		return false
	}
	p, ok := policies[u.Role]
	if !ok {
		return false
	}
	if _, wildcard := p.capabilities[CapabilityAll]; wildcard {
		return true
	}
	_, has := p.capabilities[capability]
	return has
}
