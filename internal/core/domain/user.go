package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleAgent = "vendedor"
)

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"nome" bson:"nome"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"senha_hash"`
	Role         string    `json:"tipo_usuario" bson:"tipo_usuario"`
	CreatedAt    time.Time `json:"criado_em" bson:"criado_em"`
	UpdatedAt    time.Time `json:"atualizado_em" bson:"atualizado_em"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleAgent
}

// Session is the identity of the caller. It is passed explicitly into every
// workflow operation; nothing in the core reads identity from ambient state.
type Session struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
func (s Session) IsAgent() bool { return s.Role == RoleAgent }

// Owns reports whether the session belongs to the agent that created p.
func (s Session) Owns(p *Proposal) bool {
	return s.IsAgent() && s.UserID != "" && p != nil && p.AgentID == s.UserID
}
