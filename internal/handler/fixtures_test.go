package handler_test

// In-memory stores and a fully wired Echo app for end-to-end handler tests.
// The stores honor the same sentinel-error contracts as the SQL
// repositories, so every route is exercised through the real router,
// middleware chain, services and handlers.

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nd199/movie-booking/internal/handler"
	"github.com/nd199/movie-booking/internal/model"
	"github.com/nd199/movie-booking/internal/repository"
	"github.com/nd199/movie-booking/internal/router"
	"github.com/nd199/movie-booking/internal/service"
	"github.com/nd199/movie-booking/internal/utils"
)

type memMovies struct {
	nextID uint64
	byID   map[uint64]model.Movie
}

func (s *memMovies) Create(_ context.Context, m *model.Movie) (uint64, error) {
	if taken, _ := s.ExistsByName(context.Background(), m.Name); taken {
		return 0, repository.ErrMovieNameExists
	}
	s.nextID++
	m.ID = s.nextID
	s.byID[m.ID] = *m
	return m.ID, nil
}

func (s *memMovies) GetByID(_ context.Context, id uint64) (model.Movie, error) {
	m, ok := s.byID[id]
	if !ok {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	return m, nil
}

func (s *memMovies) List(context.Context) ([]model.Movie, error) {
	out := make([]model.Movie, 0, len(s.byID))
	for id := uint64(1); id <= s.nextID; id++ {
		if m, ok := s.byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMovies) Update(_ context.Context, m *model.Movie) error {
	if _, ok := s.byID[m.ID]; !ok {
		return repository.ErrMovieNotFound
	}
	s.byID[m.ID] = *m
	return nil
}

func (s *memMovies) Delete(_ context.Context, id uint64) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrMovieNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *memMovies) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, m := range s.byID {
		if m.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type memRoles struct {
	nextID   uint64
	byID     map[uint64]model.Role
	assigned map[uint64]int
}

func (s *memRoles) Create(_ context.Context, name string) (model.Role, error) {
	for _, r := range s.byID {
		if r.Name == name {
			return model.Role{}, repository.ErrRoleExists
		}
	}
	s.nextID++
	role := model.Role{ID: s.nextID, Name: name}
	s.byID[role.ID] = role
	return role, nil
}

func (s *memRoles) GetByName(_ context.Context, name string) (model.Role, error) {
	for _, r := range s.byID {
		if r.Name == name {
			return r, nil
		}
	}
	return model.Role{}, repository.ErrRoleNotFound
}

func (s *memRoles) List(context.Context) ([]model.Role, error) {
	out := make([]model.Role, 0, len(s.byID))
	for id := uint64(1); id <= s.nextID; id++ {
		if r, ok := s.byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memRoles) Delete(_ context.Context, id uint64) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrRoleNotFound
	}
	if s.assigned[id] > 0 {
		return repository.ErrRoleAssigned
	}
	delete(s.byID, id)
	return nil
}

type memCustomers struct {
	nextID uint64
	byID   map[uint64]model.Customer
	movies *memMovies
	roles  *memRoles
}

func (s *memCustomers) Create(_ context.Context, c *model.Customer, roleIDs []uint64) (uint64, error) {
	if taken, _ := s.ExistsByEmail(context.Background(), c.Email); taken {
		return 0, repository.ErrEmailExists
	}
	if taken, _ := s.ExistsByPhone(context.Background(), c.PhoneNumber); taken {
		return 0, repository.ErrPhoneExists
	}
	s.nextID++
	c.ID = s.nextID
	s.byID[c.ID] = *c
	for _, id := range roleIDs {
		s.roles.assigned[id]++
	}
	return c.ID, nil
}

func (s *memCustomers) GetByID(_ context.Context, id uint64) (model.Customer, error) {
	c, ok := s.byID[id]
	if !ok {
		return model.Customer{}, repository.ErrCustomerNotFound
	}
	return c, nil
}

func (s *memCustomers) GetByEmail(_ context.Context, email string) (model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range s.byID {
		if c.Email == email {
			return c, nil
		}
	}
	return model.Customer{}, repository.ErrCustomerNotFound
}

func (s *memCustomers) List(context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(s.byID))
	for id := uint64(1); id <= s.nextID; id++ {
		if c, ok := s.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memCustomers) Update(_ context.Context, c *model.Customer) error {
	if _, ok := s.byID[c.ID]; !ok {
		return repository.ErrCustomerNotFound
	}
	s.byID[c.ID] = *c
	return nil
}

func (s *memCustomers) Delete(_ context.Context, id uint64) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrCustomerNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *memCustomers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (s *memCustomers) ExistsByPhone(_ context.Context, phone int64) (bool, error) {
	for _, c := range s.byID {
		if c.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (s *memCustomers) Subscribe(_ context.Context, customerID, movieID uint64) error {
	c, ok := s.byID[customerID]
	if !ok {
		return repository.ErrCustomerNotFound
	}
	movie, ok := s.movies.byID[movieID]
	if !ok {
		return repository.ErrMovieNotFound
	}
	for _, m := range c.Movies {
		if m.ID == movieID {
			return repository.ErrAlreadySubscribed
		}
	}
	c.Movies = append(c.Movies, movie)
	s.byID[customerID] = c
	return nil
}

func (s *memCustomers) Unsubscribe(_ context.Context, customerID, movieID uint64) error {
	c, ok := s.byID[customerID]
	if !ok {
		return repository.ErrCustomerNotFound
	}
	if _, ok := s.movies.byID[movieID]; !ok {
		return repository.ErrMovieNotFound
	}
	for i, m := range c.Movies {
		if m.ID == movieID {
			c.Movies = append(c.Movies[:i], c.Movies[i+1:]...)
			s.byID[customerID] = c
			return nil
		}
	}
	return repository.ErrNotSubscribed
}

// app is the wired application under test.
type app struct {
	e *echo.Echo
}

func newApp(t *testing.T) *app {
	t.Helper()

	movies := &memMovies{byID: map[uint64]model.Movie{}}
	roles := &memRoles{byID: map[uint64]model.Role{}, assigned: map[uint64]int{}}
	for _, name := range []string{model.RoleUser, model.RoleAdmin} {
		_, err := roles.Create(context.Background(), name)
		require.NoError(t, err)
	}
	customers := &memCustomers{byID: map[uint64]model.Customer{}, movies: movies, roles: roles}

	tokens := utils.NewTokenIssuer("test-secret", "movie-booking-test", 15)
	customerSvc := service.NewCustomerService(customers, roles, tokens, 4)
	movieSvc := service.NewMovieService(movies)

	e := echo.New()
	router.Register(e, router.Deps{
		Customers: handler.NewCustomerHandler(customerSvc, movieSvc),
		Movies:    handler.NewMovieHandler(movieSvc),
		Roles:     handler.NewRoleHandler(customerSvc),
		Auth:      handler.NewAuthHandler(customerSvc),
		Tokens:    tokens,
		Accounts:  customers,
	})
	return &app{e: e}
}

// do performs one request against the app. A non-empty token is sent as a
// bearer Authorization header; a non-nil body is sent as JSON.
func (a *app) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func registerBody() map[string]any {
	return map[string]any{
		"name":        "Jane Doe",
		"email":       "jane@x.com",
		"password":    "longpassword1",
		"phoneNumber": 5551234567,
	}
}

// registerCustomer registers a regular account and returns its view and
// bearer token.
func (a *app) registerCustomer(t *testing.T) (service.CustomerView, string) {
	t.Helper()
	return a.register(t, "/api/v1/customers", registerBody())
}

// registerAdmin registers an account that also holds ROLE_ADMIN.
func (a *app) registerAdmin(t *testing.T) (service.CustomerView, string) {
	t.Helper()
	body := map[string]any{
		"name":        "Ada Admin",
		"email":       "ada@x.com",
		"password":    "adminpassword1",
		"phoneNumber": 5550000099,
	}
	return a.register(t, "/api/v1/admins", body)
}

func (a *app) register(t *testing.T, path string, body map[string]any) (service.CustomerView, string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, path, "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	auth := rec.Header().Get(echo.HeaderAuthorization)
	require.True(t, strings.HasPrefix(auth, "Bearer "))
	return decode[service.CustomerView](t, rec), strings.TrimPrefix(auth, "Bearer ")
}
