package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Fixtures provides factory functions for creating test data.
// All factory methods use testify/require to fail fast on errors.
type Fixtures struct {
	t      *testing.T
	testDB *TestDB
	ctx    context.Context
}

// NewFixtures creates a new Fixtures instance for test data generation.
func NewFixtures(t *testing.T, testDB *TestDB) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:      t,
		testDB: testDB,
		ctx:    context.Background(),
	}
}

// --- Company Fixtures ---

// CreateCompany creates a company with a unique name.
func (f *Fixtures) CreateCompany() Company {
	f.t.Helper()
	company, err := f.testDB.Store.CreateCompany(f.ctx, CreateCompanyParams{
		Name: "Company " + uuid.NewString(),
	})
	require.NoError(f.t, err, "failed to create test company")
	return company
}

// --- User Fixtures ---

// UserOpts customizes profile creation.
type UserOpts struct {
	Email     string
	Name      string
	Role      UserRole
	CompanyID *uuid.UUID
}

// CreateUser creates an identity and profile with a fixed role.
func (f *Fixtures) CreateUser(opts ...func(*UserOpts)) User {
	f.t.Helper()
	o := UserOpts{
		Email: uuid.NewString() + "@example.com",
		Name:  "Test User",
		Role:  UserRoleUser,
	}
	for _, fn := range opts {
		fn(&o)
	}

	user, err := f.testDB.Store.CreateIdentityWithProfile(f.ctx, CreateProfileParams{
		Email:     o.Email,
		Name:      o.Name,
		CompanyID: o.CompanyID,
		AssignRole: func(int) UserRole {
			return o.Role
		},
	})
	require.NoError(f.t, err, "failed to create test user")
	return user
}

// WithCompany assigns the user to the company.
func WithCompany(companyID uuid.UUID) func(*UserOpts) {
	return func(o *UserOpts) {
		o.CompanyID = &companyID
	}
}

// WithRole sets the profile role.
func WithRole(role UserRole) func(*UserOpts) {
	return func(o *UserOpts) {
		o.Role = role
	}
}

// --- Campaign Fixtures ---

// CreateCampaign creates a draft campaign owned by clientID.
func (f *Fixtures) CreateCampaign(clientID uuid.UUID) Campaign {
	f.t.Helper()
	campaign, err := f.testDB.Store.CreateCampaign(f.ctx, CreateCampaignParams{
		ClientID:  clientID,
		Name:      "Campaign " + uuid.NewString()[:8],
		Audiences: []string{"parents", "gamers"},
		Platforms: []string{"meta"},
		Budget:    1500,
		CreatedBy: clientID,
	})
	require.NoError(f.t, err, "failed to create test campaign")
	return campaign
}
