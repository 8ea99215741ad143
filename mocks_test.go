package auth_test

import (
	"context"
	"database/sql"
	"time"

	auth "github.com/circleGiven/jwt-study"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockUserStore implements auth.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

// MockUsers implements auth.Users for the methods the controller touches.
// The embedded repository interface covers the rest of the method set;
// calling an unmocked repository method panics, which is what we want.
type MockUsers struct {
	mock.Mock
	repository.Repository[*auth.User]
}

func (m *MockUsers) FindByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) Register(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*auth.User)
	return created, args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, tx, user)
	created, _ := args.Get(0).(*auth.User)
	return created, args.Error(1)
}

func (m *MockUsers) All(ctx context.Context) ([]*auth.User, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]*auth.User)
	return records, args.Error(1)
}

// stubRepoManager wires a MockUsers behind the RepositoryManager contract
type stubRepoManager struct {
	users *MockUsers
}

func (s stubRepoManager) Validate() error { return nil }
func (s stubRepoManager) MustValidate()   {}

func (s stubRepoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (s stubRepoManager) Users() auth.Users { return s.users }

// testConfig implements auth.Config
type testConfig struct {
	signingKey    string
	signingMethod string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func (c testConfig) GetSigningKey() string             { return c.signingKey }
func (c testConfig) GetSigningMethod() string          { return c.signingMethod }
func (c testConfig) GetAccessTokenTTL() time.Duration  { return c.accessTTL }
func (c testConfig) GetRefreshTokenTTL() time.Duration { return c.refreshTTL }
func (c testConfig) GetContextKey() string             { return "principal" }
func (c testConfig) GetAuthScheme() string             { return "Bearer" }
func (c testConfig) GetIssuer() string                 { return c.issuer }

// testIdentity implements auth.Identity
type testIdentity struct {
	id    string
	name  string
	email string
	admin bool
}

func (t testIdentity) ID() string    { return t.id }
func (t testIdentity) Name() string  { return t.name }
func (t testIdentity) Email() string { return t.email }
func (t testIdentity) IsAdmin() bool { return t.admin }
