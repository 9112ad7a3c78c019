package service

import "github.com/nd199/movie-booking/internal/model"

// CustomerView is the outward projection of a customer. It deliberately
// carries no password material. Username mirrors the email, which is the
// login identifier and the bearer-token subject.
type CustomerView struct {
	ID          uint64        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	PhoneNumber int64         `json:"phoneNumber"`
	Username    string        `json:"username"`
	Roles       []string      `json:"roles"`
	Movies      []model.Movie `json:"movies"`
}

// NewCustomerView projects a customer row onto its view.
func NewCustomerView(c model.Customer) CustomerView {
	movies := c.Movies
	if movies == nil {
		movies = []model.Movie{}
	}
	return CustomerView{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Username:    c.Email,
		Roles:       c.RoleNames(),
		Movies:      movies,
	}
}
