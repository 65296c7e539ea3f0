// README: Identity: roles and user profiles.
package identity

import (
	"errors"
	"time"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

var (
	ErrNotFound   = errors.New("user profile not found")
	ErrValidation = errors.New("invalid identity request")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleCollector Role = "collector"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID        types.ID  `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	PhotoURL  string    `json:"photoUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Address is a saved pickup address in a user's address book. At most one
// address per user carries the default flag.
type Address struct {
	ID          types.ID  `json:"id"`
	UserID      types.ID  `json:"-"`
	Label       string    `json:"label"`
	FullAddress string    `json:"fullAddress"`
	Lat         *float64  `json:"lat"`
	Lng         *float64  `json:"lng"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Account is the admin listing view: one row per user or collector.
type Account struct {
	ID        types.ID  `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
