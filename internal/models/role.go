package models

// Role is an ordered access tier. Guards express "at least tier X".
type Role string

const (
	RoleStaff      Role = "STAFF"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

var roleLevels = map[Role]int{
	RoleStaff:      1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// Level returns the ordering position of the role, 0 for unknown roles.
func (r Role) Level() int {
	return roleLevels[r]
}

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// AtLeast reports whether the role meets the given minimum tier.
// Unknown roles never satisfy any minimum.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && r.Level() >= min.Level()
}

func (r Role) String() string {
	return string(r)
}
