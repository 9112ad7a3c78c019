package model

import "time"

// Customer represents a row in the `customers` table together with its
// eager-loaded role set and subscribed movies. The password hash is kept
// internal to the repository/service layers; handlers expose a projection
// without it.
//
// Fields:
//
//	ID           – primary key identifier.
//	Name         – display name.
//	Email        – unique email address, used as the login identifier.
//	PasswordHash – bcrypt hashed password, never the plaintext.
//	PhoneNumber  – unique phone number stored as its numeric value.
//	Roles        – roles granted to this customer (customers_roles join).
//	Movies       – movies the customer is subscribed to (customer_movies join).
//	CreatedAt    – timestamp of creation.
type Customer struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  int64
	Roles        []Role
	Movies       []Movie
	CreatedAt    time.Time
}

// RoleNames returns the names of the customer's roles in assignment order.
// These double as the granted authorities embedded in bearer tokens.
func (c Customer) RoleNames() []string {
	names := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		names = append(names, r.Name)
	}
	return names
}
