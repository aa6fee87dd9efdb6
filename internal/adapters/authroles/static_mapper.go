package authroles

import (
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
)

// StaticRoleMapper maps directory groups to roles by string membership.
// Admin membership wins over support when a staff member is in both.
type StaticRoleMapper struct {
	AdminGroup   string
	SupportGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.SupportGroup != "" && g == m.SupportGroup {
			return domainauth.RoleSupport
		}
	}
	return domainauth.RoleGuest
}
