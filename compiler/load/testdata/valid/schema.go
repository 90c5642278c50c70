package valid

import (
	"time"

	"github.com/twpayne/go-geom"

	"github.com/syssam/typedq"
)

// Status is an account lifecycle enumeration.
type Status string

// Account states.
const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// Handle is an alias kept for readability in model structs.
type Handle = string

// User is a registered account.
type User struct {
	typedq.Entity

	Name      string
	Email     string `json:"email"`
	Password  string `typedq:"-"`
	Status    Status
	CreatedAt time.Time
	Home      address
	Area      *geom.Polygon
	Groups    []*Group
	Contact   Handle

	internal int
}

// DisplayName is a getter-style accessor and becomes a member.
func (u User) DisplayName() string { return u.Name }

// PrimaryGroup is a getter-style accessor with a reference result.
func (u User) PrimaryGroup() *Group { return nil }

// Validate returns an error and is not collected.
func (u User) Validate() error { return nil }

// Rename takes a parameter and is not collected.
func (u *User) Rename(name string) { u.Name = name }

// address is unexported and folds into the User companion.
type address struct {
	typedq.Entity

	Street string
	City   string
}

// scratch is never referenced by an exported entity and is dropped.
type scratch struct {
	typedq.Entity

	Note string
}

// Group is a named collection of users.
type Group struct {
	typedq.Entity

	Name    string
	Members []*User
}

// Box carries a homogeneous payload.
type Box[T int | string] struct {
	typedq.Entity

	Payload T
}
