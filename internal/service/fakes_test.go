package service_test

// In-memory store fakes mirroring the repository contracts, including the
// sentinel errors the real repositories return. Write-path calls are
// counted so tests can assert that rejected requests perform no writes.

import (
	"context"
	"strings"

	"github.com/nd199/movie-booking/internal/model"
	"github.com/nd199/movie-booking/internal/repository"
)

type fakeMovieStore struct {
	nextID      uint64
	movies      map[uint64]model.Movie
	writeCalls  int
	deleteCalls int
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{movies: map[uint64]model.Movie{}}
}

func (f *fakeMovieStore) Create(_ context.Context, m *model.Movie) (uint64, error) {
	if taken, _ := f.ExistsByName(context.Background(), m.Name); taken {
		return 0, repository.ErrMovieNameExists
	}
	f.writeCalls++
	f.nextID++
	m.ID = f.nextID
	f.movies[m.ID] = *m
	return m.ID, nil
}

func (f *fakeMovieStore) GetByID(_ context.Context, id uint64) (model.Movie, error) {
	m, ok := f.movies[id]
	if !ok {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	return m, nil
}

func (f *fakeMovieStore) List(context.Context) ([]model.Movie, error) {
	out := make([]model.Movie, 0, len(f.movies))
	for id := uint64(1); id <= f.nextID; id++ {
		if m, ok := f.movies[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovieStore) Update(_ context.Context, m *model.Movie) error {
	if _, ok := f.movies[m.ID]; !ok {
		return repository.ErrMovieNotFound
	}
	f.writeCalls++
	f.movies[m.ID] = *m
	return nil
}

func (f *fakeMovieStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.movies[id]; !ok {
		return repository.ErrMovieNotFound
	}
	f.deleteCalls++
	delete(f.movies, id)
	return nil
}

func (f *fakeMovieStore) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, m := range f.movies {
		if m.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeRoleStore struct {
	nextID   uint64
	roles    map[uint64]model.Role
	assigned map[uint64]int // role id -> customers holding it
}

func newFakeRoleStore(seed ...string) *fakeRoleStore {
	f := &fakeRoleStore{roles: map[uint64]model.Role{}, assigned: map[uint64]int{}}
	for _, name := range seed {
		_, _ = f.Create(context.Background(), name)
	}
	return f
}

func (f *fakeRoleStore) Create(_ context.Context, name string) (model.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return model.Role{}, repository.ErrRoleExists
		}
	}
	f.nextID++
	role := model.Role{ID: f.nextID, Name: name}
	f.roles[role.ID] = role
	return role, nil
}

func (f *fakeRoleStore) GetByName(_ context.Context, name string) (model.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return model.Role{}, repository.ErrRoleNotFound
}

func (f *fakeRoleStore) List(context.Context) ([]model.Role, error) {
	out := make([]model.Role, 0, len(f.roles))
	for id := uint64(1); id <= f.nextID; id++ {
		if r, ok := f.roles[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoleStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.roles[id]; !ok {
		return repository.ErrRoleNotFound
	}
	if f.assigned[id] > 0 {
		return repository.ErrRoleAssigned
	}
	delete(f.roles, id)
	return nil
}

type fakeCustomerStore struct {
	nextID      uint64
	customers   map[uint64]model.Customer
	movies      *fakeMovieStore
	roles       *fakeRoleStore
	writeCalls  int // Create + Update + Subscribe/Unsubscribe
	deleteCalls int
}

func newFakeCustomerStore(movies *fakeMovieStore, roles *fakeRoleStore) *fakeCustomerStore {
	return &fakeCustomerStore{customers: map[uint64]model.Customer{}, movies: movies, roles: roles}
}

func (f *fakeCustomerStore) Create(_ context.Context, c *model.Customer, roleIDs []uint64) (uint64, error) {
	if taken, _ := f.ExistsByEmail(context.Background(), c.Email); taken {
		return 0, repository.ErrEmailExists
	}
	if taken, _ := f.ExistsByPhone(context.Background(), c.PhoneNumber); taken {
		return 0, repository.ErrPhoneExists
	}
	f.writeCalls++
	f.nextID++
	c.ID = f.nextID
	f.customers[c.ID] = *c
	if f.roles != nil {
		for _, id := range roleIDs {
			f.roles.assigned[id]++
		}
	}
	return c.ID, nil
}

func (f *fakeCustomerStore) GetByID(_ context.Context, id uint64) (model.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return model.Customer{}, repository.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeCustomerStore) GetByEmail(_ context.Context, email string) (model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range f.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return model.Customer{}, repository.ErrCustomerNotFound
}

func (f *fakeCustomerStore) List(context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(f.customers))
	for id := uint64(1); id <= f.nextID; id++ {
		if c, ok := f.customers[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerStore) Update(_ context.Context, c *model.Customer) error {
	if _, ok := f.customers[c.ID]; !ok {
		return repository.ErrCustomerNotFound
	}
	f.writeCalls++
	f.customers[c.ID] = *c
	return nil
}

func (f *fakeCustomerStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.customers[id]; !ok {
		return repository.ErrCustomerNotFound
	}
	f.deleteCalls++
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (f *fakeCustomerStore) ExistsByPhone(_ context.Context, phone int64) (bool, error) {
	for _, c := range f.customers {
		if c.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomerStore) Subscribe(_ context.Context, customerID, movieID uint64) error {
	c, ok := f.customers[customerID]
	if !ok {
		return repository.ErrCustomerNotFound
	}
	movie, ok := f.movies.movies[movieID]
	if !ok {
		return repository.ErrMovieNotFound
	}
	for _, m := range c.Movies {
		if m.ID == movieID {
			return repository.ErrAlreadySubscribed
		}
	}
	f.writeCalls++
	c.Movies = append(c.Movies, movie)
	f.customers[customerID] = c
	return nil
}

func (f *fakeCustomerStore) Unsubscribe(_ context.Context, customerID, movieID uint64) error {
	c, ok := f.customers[customerID]
	if !ok {
		return repository.ErrCustomerNotFound
	}
	if _, ok := f.movies.movies[movieID]; !ok {
		return repository.ErrMovieNotFound
	}
	for i, m := range c.Movies {
		if m.ID == movieID {
			f.writeCalls++
			c.Movies = append(c.Movies[:i], c.Movies[i+1:]...)
			f.customers[customerID] = c
			return nil
		}
	}
	return repository.ErrNotSubscribed
}
