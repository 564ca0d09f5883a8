package entity

// Role is the tag of one of the three user tables a login resolved to.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleEventManager Role = "event_manager"
	RoleParticipant  Role = "participant"
)

// Identity is the session value established at login and passed explicitly
// to handlers and services. It replaces ambient session lookups.
type Identity struct {
	UserID uint   `json:"user_id"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (i Identity) IsZero() bool {
	return i.Role == ""
}
