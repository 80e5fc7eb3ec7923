package users

import (
	"fmt"
	"time"
)

// Role is the host representation of the Role enum.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleGuest  Role = "GUEST"
)

// User is the domain model exposed by the User object type.
type User struct {
	ID        string
	Name      string
	Email     string
	Age       int32
	IsActive  bool
	Role      Role
	CreatedAt time.Time
	APIKeys   []string
}

// Server is the in-memory store the resolvers read and write.
type Server struct {
	users []*User
}

// NewServer seeds a store with a couple of users.
func NewServer() *Server {
	created := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	return &Server{
		users: []*User{
			{
				ID:        "usr_1",
				Name:      "Ada",
				Email:     "ada@example.com",
				Age:       36,
				IsActive:  true,
				Role:      RoleAdmin,
				CreatedAt: created,
			},
			{
				ID:        "usr_2",
				Name:      "Grace",
				Email:     "grace@example.com",
				Age:       41,
				IsActive:  false,
				Role:      RoleMember,
				CreatedAt: created.Add(24 * time.Hour),
			},
		},
	}
}

func (s *Server) user(id string) (*User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", id)
}
