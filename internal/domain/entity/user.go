package entity

import "time"

type Role string

const (
	Participant Role = "participant"
	Organizer   Role = "organizer"
	Admin       Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case Participant, Organizer, Admin:
		return true
	}
	return false
}

type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Password    string     `json:"password"`
	Role        Role       `json:"role"`
	Institution string     `json:"institution"`
	CreatedAt   time.Time  `json:"createdAt"`
	IsActive    bool       `json:"isActive"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Session is the reduced projection of a logged-in user stored under currentUser.
// It is a snapshot taken at login and is not refreshed by later profile edits.
type Session struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	Institution string `json:"institution"`
}

func (u *User) Session() *Session {
	return &Session{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Institution: u.Institution,
	}
}

// Public returns a copy of the user without the stored password.
func (u User) Public() User {
	u.Password = ""
	return u
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == Admin
}

// CanManage reports whether the session owns the resource or is an admin.
func (s *Session) CanManage(ownerID string) bool {
	return s != nil && (s.ID == ownerID || s.Role == Admin)
}
