package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"

	"campaign-server/internal/authz"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// CompanyStore defines the database operations required by CompanyProcessor
type CompanyStore interface {
	CreateCompany(ctx context.Context, params store.CreateCompanyParams) (store.Company, error)
	GetCompanyByID(ctx context.Context, companyID uuid.UUID) (store.Company, error)
	ListCompanies(ctx context.Context) ([]store.Company, error)
	UpdateCompany(ctx context.Context, companyID uuid.UUID, params store.UpdateCompanyParams) (store.Company, error)
	DeleteCompany(ctx context.Context, companyID uuid.UUID) error
	CreateCompanyAccountID(ctx context.Context, params store.CreateCompanyAccountIDParams) (store.CompanyAccountID, error)
	GetCompanyAccountIDByID(ctx context.Context, id uuid.UUID) (store.CompanyAccountID, error)
	ListCompanyAccountIDs(ctx context.Context, companyID uuid.UUID) ([]store.CompanyAccountID, error)
	UpdateCompanyAccountID(ctx context.Context, id uuid.UUID, params store.UpdateCompanyAccountIDParams) (store.CompanyAccountID, error)
	DeleteCompanyAccountID(ctx context.Context, id uuid.UUID) error
	ListUnassignedUsers(ctx context.Context) ([]store.User, error)
}

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrAccountIDNotFound = errors.New("account id not found")
)

type CompanyProcessor struct {
	store  CompanyStore
	engine *authz.Engine
	logger *observability.Logger
}

func New(store CompanyStore, engine *authz.Engine, logger *observability.Logger) CompanyProcessor {
	return CompanyProcessor{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// ListCompanies returns every company to super admins and the caller's own
// company to everyone else.
func (p *CompanyProcessor) ListCompanies(ctx context.Context, actor authz.Actor) ([]store.Company, error) {
	if actor.SuperAdmin {
		companies, err := p.store.ListCompanies(ctx)
		if err != nil {
			p.logger.Error(ctx, "failed to list companies", err)
			return nil, err
		}
		return companies, nil
	}
	if actor.CompanyID == nil {
		return []store.Company{}, nil
	}

	company, err := p.store.GetCompanyByID(ctx, *actor.CompanyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []store.Company{}, nil
		}
		p.logger.Error(ctx, "failed to get company", err)
		return nil, err
	}
	return authz.Filter(p.engine, actor, []store.Company{company}, func(c store.Company) authz.Resource {
		return authz.CompanyResource(c.ID)
	}), nil
}

func (p *CompanyProcessor) GetCompany(ctx context.Context, actor authz.Actor, companyID uuid.UUID) (store.Company, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "company_id", Value: companyID})

	if err := p.engine.Authorize(ctx, actor, authz.OperationRead, authz.CompanyResource(companyID)); err != nil {
		return store.Company{}, err
	}
	return p.getCompany(ctx, companyID)
}

// CreateCompanyParams represents a new company
type CreateCompanyParams struct {
	Name      string
	AccountID *string
}

func (p *CompanyProcessor) CreateCompany(ctx context.Context, actor authz.Actor, params CreateCompanyParams) (store.Company, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "company_name", Value: params.Name})

	if err := p.engine.Authorize(ctx, actor, authz.OperationInsert, authz.CompanyResource(uuid.Nil)); err != nil {
		return store.Company{}, err
	}

	company, err := p.store.CreateCompany(ctx, store.CreateCompanyParams{
		Name:      params.Name,
		AccountID: params.AccountID,
	})
	if err != nil {
		if !errors.Is(err, store.ErrConflict) {
			p.logger.Error(ctx, "failed to create company", err)
		}
		return store.Company{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "company_id", Value: company.ID})
	p.logger.Info(ctx, "company created")
	return company, nil
}

// UpdateCompanyParams represents a company update. Nil fields are unchanged.
type UpdateCompanyParams struct {
	Name      *string
	AccountID *string
}

// UpdateCompany renames a company or changes its account id. Only super
// admins may change the account id; company admins may rename.
func (p *CompanyProcessor) UpdateCompany(ctx context.Context, actor authz.Actor, companyID uuid.UUID, params UpdateCompanyParams) (store.Company, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "company_id", Value: companyID})

	if err := p.engine.Authorize(ctx, actor, authz.OperationRead, authz.CompanyResource(companyID)); err != nil {
		return store.Company{}, err
	}
	current, err := p.getCompany(ctx, companyID)
	if err != nil {
		return store.Company{}, err
	}

	changed := params.AccountID != nil && !sameAccountID(current.AccountID, params.AccountID)
	if err := p.engine.Authorize(ctx, actor, authz.OperationUpdate, authz.CompanyUpdate(companyID, changed)); err != nil {
		return store.Company{}, err
	}

	updated, err := p.store.UpdateCompany(ctx, companyID, store.UpdateCompanyParams{
		Name:      params.Name,
		AccountID: params.AccountID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Company{}, ErrCompanyNotFound
		}
		if !errors.Is(err, store.ErrConflict) {
			p.logger.Error(ctx, "failed to update company", err)
		}
		return store.Company{}, err
	}
	return updated, nil
}

func (p *CompanyProcessor) DeleteCompany(ctx context.Context, actor authz.Actor, companyID uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "company_id", Value: companyID})

	if err := p.engine.Authorize(ctx, actor, authz.OperationDelete, authz.CompanyResource(companyID)); err != nil {
		return err
	}

	if err := p.store.DeleteCompany(ctx, companyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCompanyNotFound
		}
		p.logger.Error(ctx, "failed to delete company", err)
		return err
	}

	p.logger.Info(ctx, "company deleted")
	return nil
}

func (p *CompanyProcessor) ListAccountIDs(ctx context.Context, actor authz.Actor, companyID uuid.UUID) ([]store.CompanyAccountID, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "company_id", Value: companyID})

	if err := p.engine.Authorize(ctx, actor, authz.OperationRead, authz.CompanyAccountIDResource(companyID, uuid.Nil)); err != nil {
		return nil, err
	}

	accountIDs, err := p.store.ListCompanyAccountIDs(ctx, companyID)
	if err != nil {
		p.logger.Error(ctx, "failed to list account ids", err)
		return nil, err
	}
	return accountIDs, nil
}

// CreateAccountIDParams maps an ad-platform account to a company
type CreateAccountIDParams struct {
	Platform    string
	AccountID   string
	AccountName string
	IsActive    bool
}

func (p *CompanyProcessor) CreateAccountID(ctx context.Context, actor authz.Actor, companyID uuid.UUID, params CreateAccountIDParams) (store.CompanyAccountID, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "company_id", Value: companyID},
		observability.Field{Key: "platform", Value: params.Platform},
	)

	if err := p.engine.Authorize(ctx, actor, authz.OperationInsert, authz.CompanyAccountIDResource(companyID, uuid.Nil)); err != nil {
		return store.CompanyAccountID{}, err
	}
	if _, err := p.getCompany(ctx, companyID); err != nil {
		return store.CompanyAccountID{}, err
	}

	accountID, err := p.store.CreateCompanyAccountID(ctx, store.CreateCompanyAccountIDParams{
		CompanyID:   companyID,
		Platform:    params.Platform,
		AccountID:   params.AccountID,
		AccountName: params.AccountName,
		IsActive:    params.IsActive,
	})
	if err != nil {
		if !errors.Is(err, store.ErrConflict) {
			p.logger.Error(ctx, "failed to create account id", err)
		}
		return store.CompanyAccountID{}, err
	}
	return accountID, nil
}

// UpdateAccountIDParams represents an account id update. Nil fields are
// unchanged.
type UpdateAccountIDParams struct {
	AccountName *string
	IsActive    *bool
}

func (p *CompanyProcessor) UpdateAccountID(ctx context.Context, actor authz.Actor, companyID, id uuid.UUID, params UpdateAccountIDParams) (store.CompanyAccountID, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "company_id", Value: companyID},
		observability.Field{Key: "account_id_id", Value: id},
	)

	if _, err := p.getAccountID(ctx, actor, companyID, id, authz.OperationUpdate); err != nil {
		return store.CompanyAccountID{}, err
	}

	updated, err := p.store.UpdateCompanyAccountID(ctx, id, store.UpdateCompanyAccountIDParams{
		AccountName: params.AccountName,
		IsActive:    params.IsActive,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.CompanyAccountID{}, ErrAccountIDNotFound
		}
		p.logger.Error(ctx, "failed to update account id", err)
		return store.CompanyAccountID{}, err
	}
	return updated, nil
}

func (p *CompanyProcessor) DeleteAccountID(ctx context.Context, actor authz.Actor, companyID, id uuid.UUID) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "company_id", Value: companyID},
		observability.Field{Key: "account_id_id", Value: id},
	)

	if _, err := p.getAccountID(ctx, actor, companyID, id, authz.OperationDelete); err != nil {
		return err
	}

	if err := p.store.DeleteCompanyAccountID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountIDNotFound
		}
		p.logger.Error(ctx, "failed to delete account id", err)
		return err
	}
	return nil
}

// ListUnassignedUsers returns the profiles without a company that the caller
// may read. Only super admins see other people's unassigned profiles.
func (p *CompanyProcessor) ListUnassignedUsers(ctx context.Context, actor authz.Actor) ([]store.User, error) {
	users, err := p.store.ListUnassignedUsers(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list unassigned users", err)
		return nil, err
	}
	return authz.Filter(p.engine, actor, users, authz.ProfileResource), nil
}

func (p *CompanyProcessor) getCompany(ctx context.Context, companyID uuid.UUID) (store.Company, error) {
	company, err := p.store.GetCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Company{}, ErrCompanyNotFound
		}
		p.logger.Error(ctx, "failed to get company", err)
		return store.Company{}, err
	}
	return company, nil
}

// getAccountID loads an account id row of companyID and authorizes op on it.
// Rows of other companies are reported as missing.
func (p *CompanyProcessor) getAccountID(ctx context.Context, actor authz.Actor, companyID, id uuid.UUID, op authz.Operation) (store.CompanyAccountID, error) {
	row, err := p.store.GetCompanyAccountIDByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.CompanyAccountID{}, ErrAccountIDNotFound
		}
		p.logger.Error(ctx, "failed to get account id", err)
		return store.CompanyAccountID{}, err
	}
	if row.CompanyID != companyID {
		return store.CompanyAccountID{}, ErrAccountIDNotFound
	}
	if err := p.engine.Authorize(ctx, actor, op, authz.CompanyAccountIDResource(row.CompanyID, row.ID)); err != nil {
		return store.CompanyAccountID{}, err
	}
	return row, nil
}

func sameAccountID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
