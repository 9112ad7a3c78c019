// Package service implements the business rules between the HTTP handlers
// and the repositories: registration, credential checks, partial updates
// with no-op rejection, role administration and movie entitlements.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/nd199/movie-booking/internal/model"
	"github.com/nd199/movie-booking/internal/repository"
	"github.com/nd199/movie-booking/internal/utils"
)

// Failures raised by the service layer itself. Repository sentinels pass
// through unchanged so handlers see one flat taxonomy.
var (
	ErrNoChanges        = errors.New("no data changes found")
	ErrUnknownRole      = errors.New("unknown role")
	ErrRoleNameRequired = errors.New("role name required")
	ErrInvalidLogin     = errors.New("invalid email or password")
)

// CustomerStore is the persistence contract the customer service needs.
// *repository.CustomerRepo satisfies it; tests substitute an in-memory fake.
type CustomerStore interface {
	Create(ctx context.Context, c *model.Customer, roleIDs []uint64) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Customer, error)
	GetByEmail(ctx context.Context, email string) (model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id uint64) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone int64) (bool, error)
	Subscribe(ctx context.Context, customerID, movieID uint64) error
	Unsubscribe(ctx context.Context, customerID, movieID uint64) error
}

// RoleStore is the persistence contract for roles.
type RoleStore interface {
	Create(ctx context.Context, name string) (model.Role, error)
	GetByName(ctx context.Context, name string) (model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
	Delete(ctx context.Context, id uint64) error
}

// CustomerService orchestrates credential policy, persistence and token
// issuance for customer accounts.
type CustomerService struct {
	Customers  CustomerStore
	Roles      RoleStore
	Tokens     *utils.TokenIssuer
	BcryptCost int
}

func NewCustomerService(customers CustomerStore, roles RoleStore, tokens *utils.TokenIssuer, bcryptCost int) *CustomerService {
	return &CustomerService{Customers: customers, Roles: roles, Tokens: tokens, BcryptCost: bcryptCost}
}

// Registration carries the fields of a registration request.
type Registration struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber int64
}

// Register creates a customer account. The password is validated against
// the credential policy, email and phone uniqueness are checked, requested
// role names are resolved, and the password is bcrypt-hashed before the row
// is persisted. On success the created view is returned together with a
// bearer token whose subject is the email and whose claims embed the roles.
func (s *CustomerService) Register(ctx context.Context, reg Registration, roleNames []string) (CustomerView, string, error) {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))

	if err := utils.ValidatePassword(reg.Password, reg.Name, reg.Email, reg.PhoneNumber); err != nil {
		return CustomerView{}, "", err
	}
	if taken, err := s.Customers.ExistsByEmail(ctx, reg.Email); err != nil {
		return CustomerView{}, "", err
	} else if taken {
		return CustomerView{}, "", repository.ErrEmailExists
	}
	if taken, err := s.Customers.ExistsByPhone(ctx, reg.PhoneNumber); err != nil {
		return CustomerView{}, "", err
	} else if taken {
		return CustomerView{}, "", repository.ErrPhoneExists
	}

	roles := make([]model.Role, 0, len(roleNames))
	roleIDs := make([]uint64, 0, len(roleNames))
	for _, name := range roleNames {
		role, err := s.Roles.GetByName(ctx, name)
		if errors.Is(err, repository.ErrRoleNotFound) {
			return CustomerView{}, "", ErrUnknownRole
		}
		if err != nil {
			return CustomerView{}, "", err
		}
		roles = append(roles, role)
		roleIDs = append(roleIDs, role.ID)
	}

	hash, err := utils.HashPassword(reg.Password, s.BcryptCost)
	if err != nil {
		return CustomerView{}, "", err
	}
	customer := model.Customer{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		PhoneNumber:  reg.PhoneNumber,
		Roles:        roles,
	}
	id, err := s.Customers.Create(ctx, &customer, roleIDs)
	if err != nil {
		return CustomerView{}, "", err
	}
	customer.ID = id

	token, err := s.Tokens.Issue(customer.Email, customer.RoleNames())
	if err != nil {
		return CustomerView{}, "", err
	}
	return NewCustomerView(customer), token, nil
}

// Login verifies email and password and issues a fresh bearer token. An
// unknown email and a wrong password are indistinguishable to the caller.
func (s *CustomerService) Login(ctx context.Context, email, password string) (CustomerView, string, error) {
	c, err := s.Customers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return CustomerView{}, "", ErrInvalidLogin
	}
	if err != nil {
		return CustomerView{}, "", err
	}
	if !utils.VerifyPassword(c.PasswordHash, password) {
		return CustomerView{}, "", ErrInvalidLogin
	}
	token, err := s.Tokens.Issue(c.Email, c.RoleNames())
	if err != nil {
		return CustomerView{}, "", err
	}
	return NewCustomerView(c), token, nil
}

// GetByID projects one customer.
func (s *CustomerService) GetByID(ctx context.Context, id uint64) (CustomerView, error) {
	c, err := s.Customers.GetByID(ctx, id)
	if err != nil {
		return CustomerView{}, err
	}
	return NewCustomerView(c), nil
}

// List projects all customers.
func (s *CustomerService) List(ctx context.Context) ([]CustomerView, error) {
	customers, err := s.Customers.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]CustomerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, NewCustomerView(c))
	}
	return views, nil
}

// UpdateRequest is a partial update: nil fields are left untouched.
type UpdateRequest struct {
	Name        *string
	Email       *string
	PhoneNumber *int64
}

// Update applies the supplied fields that differ from the current values.
// An email change re-checks uniqueness first. When nothing actually changes
// the request is rejected with ErrNoChanges and no write is performed.
func (s *CustomerService) Update(ctx context.Context, id uint64, req UpdateRequest) error {
	c, err := s.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	if req.Name != nil && *req.Name != c.Name {
		c.Name = *req.Name
		changed = true
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != c.Email {
			if taken, err := s.Customers.ExistsByEmail(ctx, email); err != nil {
				return err
			} else if taken {
				return repository.ErrEmailExists
			}
			c.Email = email
			changed = true
		}
	}
	if req.PhoneNumber != nil && *req.PhoneNumber != c.PhoneNumber {
		c.PhoneNumber = *req.PhoneNumber
		changed = true
	}
	if !changed {
		return ErrNoChanges
	}
	return s.Customers.Update(ctx, &c)
}

// Delete removes a customer by id.
func (s *CustomerService) Delete(ctx context.Context, id uint64) error {
	return s.Customers.Delete(ctx, id)
}

// Subscribe adds a movie to the customer's subscription set. Repeating a
// successful subscribe is an error, not a no-op.
func (s *CustomerService) Subscribe(ctx context.Context, customerID, movieID uint64) error {
	return s.Customers.Subscribe(ctx, customerID, movieID)
}

// Unsubscribe removes a movie from the customer's subscription set,
// rejecting pairs that are not present.
func (s *CustomerService) Unsubscribe(ctx context.Context, customerID, movieID uint64) error {
	return s.Customers.Unsubscribe(ctx, customerID, movieID)
}

// AddRole creates a new role.
func (s *CustomerService) AddRole(ctx context.Context, name string) (model.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Role{}, ErrRoleNameRequired
	}
	return s.Roles.Create(ctx, name)
}

// RemoveRole deletes a role by id. Deletion is blocked while the role is
// assigned to any customer.
func (s *CustomerService) RemoveRole(ctx context.Context, id uint64) error {
	return s.Roles.Delete(ctx, id)
}

// ListRoles returns all roles.
func (s *CustomerService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.Roles.List(ctx)
}
