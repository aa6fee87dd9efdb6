package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
)

func TestStaticRoleMapper(t *testing.T) {
	m := StaticRoleMapper{AdminGroup: "bank-admins", SupportGroup: "bank-support"}

	assert.Equal(t, domainauth.RoleAdmin, m.Map([]string{"bank-admins"}))
	assert.Equal(t, domainauth.RoleSupport, m.Map([]string{"bank-support"}))
	assert.Equal(t, domainauth.RoleGuest, m.Map([]string{"unrelated"}))
	assert.Equal(t, domainauth.RoleGuest, m.Map(nil))

	// Admin wins when a staff member is in both groups.
	assert.Equal(t, domainauth.RoleAdmin, m.Map([]string{"bank-support", "bank-admins"}))
}

func TestStaticRoleMapper_EmptyGroupsConfigured(t *testing.T) {
	m := StaticRoleMapper{}
	assert.Equal(t, domainauth.RoleGuest, m.Map([]string{"", "bank-admins"}))
}
