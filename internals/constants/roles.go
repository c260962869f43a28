package constants

import "fmt"

// Global roles carried in the access token "role" claim.
const (
	RoleSuperadmin = "superadmin"
	RoleUser       = "user"
)

// Church roles (member_role), mirrored in the "church_role" claim.
const (
	ChurchRolePastor    = "pastor"
	ChurchRoleAdmin     = "admin"
	ChurchRoleLeader    = "leader"
	ChurchRoleTreasurer = "treasurer"
	ChurchRoleTeacher   = "teacher"
	ChurchRoleMember    = "member"
)

const (
	ErrOnlyStaffCanAccess     = "❌ Only pastor, admin, leader or teacher can access %s."
	ErrOnlyAdminsCanAccess    = "❌ Only pastor or admin can access %s."
	ErrOnlyFinanceCanAccess   = "❌ Only pastor, admin or treasurer can access %s."
	ErrOnlyPastorCanAccess    = "❌ Only the pastor can access %s."
	ErrOnlySuperadminCanAcces = "❌ Only the platform owner can access %s."
)

func RoleErrorStaff(feature string) string      { return fmt.Sprintf(ErrOnlyStaffCanAccess, feature) }
func RoleErrorAdmin(feature string) string      { return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature) }
func RoleErrorFinance(feature string) string    { return fmt.Sprintf(ErrOnlyFinanceCanAccess, feature) }
func RoleErrorPastor(feature string) string     { return fmt.Sprintf(ErrOnlyPastorCanAccess, feature) }
func RoleErrorSuperadmin(feature string) string { return fmt.Sprintf(ErrOnlySuperadminCanAcces, feature) }

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllChurchRoles = []string{
		ChurchRolePastor,
		ChurchRoleAdmin,
		ChurchRoleLeader,
		ChurchRoleTreasurer,
		ChurchRoleTeacher,
		ChurchRoleMember,
	}

	// StaffRoles may manage content, ministries and kids.
	StaffRoles = []string{
		ChurchRolePastor,
		ChurchRoleAdmin,
		ChurchRoleLeader,
		ChurchRoleTeacher,
	}

	AdminRoles = []string{
		ChurchRolePastor,
		ChurchRoleAdmin,
	}

	FinanceRoles = []string{
		ChurchRolePastor,
		ChurchRoleAdmin,
		ChurchRoleTreasurer,
	}

	PastorOnly = []string{
		ChurchRolePastor,
	}
)

func IsValidChurchRole(role string) bool {
	for _, r := range AllChurchRoles {
		if r == role {
			return true
		}
	}
	return false
}

func HasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
