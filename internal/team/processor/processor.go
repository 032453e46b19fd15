package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"campaign-server/internal/authz"
	"campaign-server/internal/clients/mail"
	"campaign-server/internal/invitation"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/google/uuid"
)

// TeamStore defines the database operations required by TeamProcessor
type TeamStore interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (store.User, error)
	ListUsersByCompany(ctx context.Context, companyID uuid.UUID) ([]store.User, error)
	IdentityEmailExists(ctx context.Context, email string) (bool, error)
	CreateIdentityWithProfile(ctx context.Context, params store.CreateProfileParams) (store.User, error)
	UpdateUserName(ctx context.Context, userID uuid.UUID, name string) (store.User, error)
	UpdateUserMembership(ctx context.Context, params store.UpdateMembershipParams) (store.User, error)
	GetCompanyByID(ctx context.Context, companyID uuid.UUID) (store.Company, error)
}

// InvitationSender sends team invitation emails
type InvitationSender interface {
	Configured() error
	SendInvitation(ctx context.Context, inv mail.Invitation) (string, error)
}

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNoCompany          = errors.New("caller is not assigned to a company")
	ErrInvalidRole        = errors.New("role must be user or admin")
	ErrMembershipChanged  = errors.New("member changed company while the request was processed")
	ErrAlreadyAssigned    = errors.New("member already belongs to a company")
	ErrCompanyNotFound    = errors.New("company not found")
)

type TeamProcessor struct {
	store    TeamStore
	engine   *authz.Engine
	resolver *authz.Resolver
	mailer   InvitationSender
	webApp   string
	logger   *observability.Logger
	now      func() time.Time
}

func New(store TeamStore, engine *authz.Engine, resolver *authz.Resolver, mailer InvitationSender, webAppURI string, logger *observability.Logger) TeamProcessor {
	return TeamProcessor{
		store:    store,
		engine:   engine,
		resolver: resolver,
		mailer:   mailer,
		webApp:   webAppURI,
		logger:   logger,
		now:      time.Now,
	}
}

// InviteParams represents an invitation of a new member
type InviteParams struct {
	Email string
	Name  string
	Role  store.UserRole
	// CompanyID lets a super admin invite into any company; others always
	// invite into their own.
	CompanyID *uuid.UUID
}

// InviteResult is the created member and whether the email went out
type InviteResult struct {
	Member         store.User `json:"member"`
	InvitationSent bool       `json:"invitation_sent"`
}

func validRole(role store.UserRole) bool {
	return role == store.UserRoleUser || role == store.UserRoleAdmin
}

// ListMembers returns the members of the caller's company. Super admins may
// name any company. A caller without a company gets an empty list.
func (p *TeamProcessor) ListMembers(ctx context.Context, actor authz.Actor, companyID *uuid.UUID) ([]store.User, error) {
	target := actor.CompanyID
	if actor.SuperAdmin && companyID != nil {
		target = companyID
	}
	if target == nil {
		return []store.User{}, nil
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "company_id", Value: *target})
	users, err := p.store.ListUsersByCompany(ctx, *target)
	if err != nil {
		p.logger.Error(ctx, "failed to list company members", err)
		return nil, err
	}
	return authz.Filter(p.engine, actor, users, authz.ProfileResource), nil
}

// Invite creates a password-less identity and profile in the target company
// and emails an invitation link.
func (p *TeamProcessor) Invite(ctx context.Context, actor authz.Actor, params InviteParams) (InviteResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "invitee_email", Value: params.Email},
		observability.Field{Key: "requested_role", Value: params.Role},
	)

	if !validRole(params.Role) {
		return InviteResult{}, ErrInvalidRole
	}
	companyID := actor.CompanyID
	if actor.SuperAdmin && params.CompanyID != nil {
		companyID = params.CompanyID
	}
	if companyID == nil {
		return InviteResult{}, ErrNoCompany
	}

	// Denied callers never reach the email existence check.
	if err := p.engine.Authorize(ctx, actor, authz.OperationInsert,
		authz.ProfileInsert(uuid.Nil, params.Role, companyID)); err != nil {
		return InviteResult{}, err
	}
	if err := p.mailer.Configured(); err != nil {
		return InviteResult{}, err
	}

	exists, err := p.store.IdentityEmailExists(ctx, params.Email)
	if err != nil {
		p.logger.Error(ctx, "failed to check if email exists", err)
		return InviteResult{}, err
	}
	if exists {
		return InviteResult{}, ErrEmailAlreadyExists
	}

	company, err := p.store.GetCompanyByID(ctx, *companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InviteResult{}, ErrNoCompany
		}
		p.logger.Error(ctx, "failed to get company", err)
		return InviteResult{}, err
	}

	token, err := invitation.NewToken()
	if err != nil {
		p.logger.Error(ctx, "failed to issue invitation token", err)
		return InviteResult{}, err
	}
	expiresAt := p.now().Add(invitation.TTL)

	member, err := p.store.CreateIdentityWithProfile(ctx, store.CreateProfileParams{
		Email:           params.Email,
		Name:            params.Name,
		CompanyID:       companyID,
		InviteTokenHash: &token.Hash,
		InviteExpiresAt: &expiresAt,
		AssignRole:      p.resolver.RoleAssigner(params.Email, params.Role, companyID),
		Check: func(profile store.User) error {
			return p.engine.Authorize(ctx, actor, authz.OperationInsert,
				authz.ProfileInsert(profile.ID, profile.Role, profile.CompanyID))
		},
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return InviteResult{}, ErrEmailAlreadyExists
		}
		if !errors.Is(err, authz.ErrPermissionDenied) {
			p.logger.Error(ctx, "failed to create invited member", err)
		}
		return InviteResult{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "member_id", Value: member.ID})
	_, err = p.mailer.SendInvitation(ctx, mail.Invitation{
		To:          member.Email,
		Name:        member.Name,
		CompanyName: company.Name,
		InvitedBy:   actor.Email,
		AcceptURL:   p.acceptURL(member.Email, token.Raw),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to send invitation email", err)
		return InviteResult{Member: member, InvitationSent: false}, nil
	}

	p.logger.Info(ctx, "member invited")
	return InviteResult{Member: member, InvitationSent: true}, nil
}

func (p *TeamProcessor) acceptURL(email, token string) string {
	query := url.Values{}
	query.Set("email", email)
	query.Set("token", token)
	return fmt.Sprintf("%s/accept-invite?%s", strings.TrimRight(p.webApp, "/"), query.Encode())
}

// UpdateRole changes a member's role within their current company
func (p *TeamProcessor) UpdateRole(ctx context.Context, actor authz.Actor, userID uuid.UUID, role store.UserRole) (store.User, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "member_id", Value: userID},
		observability.Field{Key: "new_role", Value: role},
	)
	if !validRole(role) {
		return store.User{}, ErrInvalidRole
	}

	member, err := p.getMember(ctx, actor, userID)
	if err != nil {
		return store.User{}, err
	}

	updated, err := p.store.UpdateUserMembership(ctx, store.UpdateMembershipParams{
		UserID:    userID,
		Role:      role,
		CompanyID: member.CompanyID,
		Check: func(current store.User) error {
			if !sameCompany(current.CompanyID, member.CompanyID) {
				return ErrMembershipChanged
			}
			return p.engine.Authorize(ctx, actor, authz.OperationUpdate,
				authz.ProfileUpdate(current, role, current.CompanyID))
		},
	})
	if err != nil {
		return store.User{}, p.membershipError(ctx, "failed to update member role", err)
	}
	return updated, nil
}

// AssignParams represents the assignment of an unassigned profile
type AssignParams struct {
	Role store.UserRole
	// CompanyID defaults to the caller's company. Company admins may only
	// assign into their own company.
	CompanyID *uuid.UUID
}

// Assign moves an unassigned profile into a company.
func (p *TeamProcessor) Assign(ctx context.Context, actor authz.Actor, userID uuid.UUID, params AssignParams) (store.User, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "member_id", Value: userID},
		observability.Field{Key: "new_role", Value: params.Role},
	)
	if !validRole(params.Role) {
		return store.User{}, ErrInvalidRole
	}
	target := params.CompanyID
	if target == nil {
		target = actor.CompanyID
	}
	if target == nil {
		return store.User{}, ErrNoCompany
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "company_id", Value: *target})

	member, err := p.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrMemberNotFound
		}
		p.logger.Error(ctx, "failed to get member", err)
		return store.User{}, err
	}
	if member.CompanyID != nil {
		if !p.engine.Allowed(actor, authz.OperationRead, authz.ProfileResource(member)) {
			return store.User{}, ErrMemberNotFound
		}
		return store.User{}, ErrAlreadyAssigned
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationUpdate,
		authz.ProfileUpdate(member, params.Role, target)); err != nil {
		return store.User{}, err
	}

	if _, err := p.store.GetCompanyByID(ctx, *target); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrCompanyNotFound
		}
		p.logger.Error(ctx, "failed to get company", err)
		return store.User{}, err
	}

	assigned, err := p.store.UpdateUserMembership(ctx, store.UpdateMembershipParams{
		UserID:    userID,
		Role:      params.Role,
		CompanyID: target,
		Check: func(current store.User) error {
			if current.CompanyID != nil {
				return ErrAlreadyAssigned
			}
			return p.engine.Authorize(ctx, actor, authz.OperationUpdate,
				authz.ProfileUpdate(current, params.Role, target))
		},
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyAssigned) {
			return store.User{}, err
		}
		return store.User{}, p.membershipError(ctx, "failed to assign member", err)
	}

	p.logger.Info(ctx, "member assigned to company")
	return assigned, nil
}

// UpdateName renames a member
func (p *TeamProcessor) UpdateName(ctx context.Context, actor authz.Actor, userID uuid.UUID, name string) (store.User, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "member_id", Value: userID})

	member, err := p.getMember(ctx, actor, userID)
	if err != nil {
		return store.User{}, err
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationUpdate,
		authz.ProfileUpdate(member, member.Role, member.CompanyID)); err != nil {
		return store.User{}, err
	}

	updated, err := p.store.UpdateUserName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrMemberNotFound
		}
		p.logger.Error(ctx, "failed to update member name", err)
		return store.User{}, err
	}
	return updated, nil
}

// Remove detaches a member from their company. The profile and identity
// survive with role user and no company.
func (p *TeamProcessor) Remove(ctx context.Context, actor authz.Actor, userID uuid.UUID) (store.User, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "member_id", Value: userID})

	member, err := p.getMember(ctx, actor, userID)
	if err != nil {
		return store.User{}, err
	}

	removed, err := p.store.UpdateUserMembership(ctx, store.UpdateMembershipParams{
		UserID:    userID,
		Role:      store.UserRoleUser,
		CompanyID: nil,
		Check: func(current store.User) error {
			if !sameCompany(current.CompanyID, member.CompanyID) {
				return ErrMembershipChanged
			}
			return p.engine.Authorize(ctx, actor, authz.OperationDelete, authz.ProfileResource(current))
		},
	})
	if err != nil {
		return store.User{}, p.membershipError(ctx, "failed to remove member", err)
	}

	p.logger.Info(ctx, "member removed from company")
	return removed, nil
}

// getMember loads a profile the caller is allowed to see. Profiles the
// caller cannot read are reported as missing.
func (p *TeamProcessor) getMember(ctx context.Context, actor authz.Actor, userID uuid.UUID) (store.User, error) {
	member, err := p.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrMemberNotFound
		}
		p.logger.Error(ctx, "failed to get member", err)
		return store.User{}, err
	}
	if !p.engine.Allowed(actor, authz.OperationRead, authz.ProfileResource(member)) {
		return store.User{}, ErrMemberNotFound
	}
	return member, nil
}

func (p *TeamProcessor) membershipError(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrMemberNotFound
	case errors.Is(err, authz.ErrPermissionDenied),
		errors.Is(err, store.ErrLastAdmin),
		errors.Is(err, ErrMembershipChanged):
		return err
	}
	p.logger.Error(ctx, msg, err)
	return err
}

func sameCompany(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
