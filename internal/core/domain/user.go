package domain

// UserRole controls which surfaces a user may call. Core services perform no
// role checks themselves; enforcement happens at the transport layer.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleCashier UserRole = "CASHIER"
	RoleDriver  UserRole = "DRIVER"
)

// User is a master-data employee record, identified by NIK. The core reads
// users for identity resolution and display joins only.
type User struct {
	Nik          string   `json:"nik"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	AuditFields
}
