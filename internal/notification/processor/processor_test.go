package processor

import (
	"context"
	"errors"
	"testing"

	"campaign-server/internal/authz"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	store     *MockNotificationStore
	processor NotificationProcessor
	company   uuid.UUID
	member    authz.Actor
	admin     authz.Actor
	outsider  authz.Actor
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	logger := observability.NewNopLogger()
	s := NewMockNotificationStore(ctrl)

	company := uuid.New()
	other := uuid.New()
	return fixture{
		store:     s,
		processor: New(s, authz.NewEngine(logger, nil), logger),
		company:   company,
		member:    authz.Actor{ID: uuid.New(), Role: store.UserRoleUser, CompanyID: &company, ProfileFound: true},
		admin:     authz.Actor{ID: uuid.New(), Role: store.UserRoleAdmin, CompanyID: &company, ProfileFound: true},
		outsider:  authz.Actor{ID: uuid.New(), Role: store.UserRoleAdmin, CompanyID: &other, ProfileFound: true},
	}
}

func (f fixture) memberProfile() store.User {
	return store.User{ID: f.member.ID, Role: store.UserRoleUser, CompanyID: &f.company}
}

func TestCreateNotification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		actor      func(f fixture) authz.Actor
		wantReason authz.ReasonCode
	}{
		{name: "recipient notifies self", actor: func(f fixture) authz.Actor { return f.member }},
		{name: "company admin notifies member", actor: func(f fixture) authz.Actor { return f.admin }},
		{name: "other company admin", actor: func(f fixture) authz.Actor { return f.outsider }, wantReason: authz.ReasonDenyOtherCompany},
		{
			name: "super admin",
			actor: func(f fixture) authz.Actor {
				return authz.Actor{ID: uuid.New(), Email: "ops@boostdata.io", Role: store.UserRoleUser, SuperAdmin: true}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			ctx := context.Background()

			f.store.EXPECT().GetUserByID(gomock.Any(), f.member.ID).Return(f.memberProfile(), nil)
			if tt.wantReason == "" {
				f.store.EXPECT().
					CreateNotification(gomock.Any(), store.CreateNotificationParams{
						UserID: f.member.ID, Title: "Heads up", Message: "Budget approved", Kind: store.NotificationKindInfo,
					}).
					Return(store.Notification{ID: uuid.New(), UserID: f.member.ID, Title: "Heads up"}, nil)
			}

			n, err := f.processor.CreateNotification(ctx, tt.actor(f), CreateNotificationParams{
				RecipientID: f.member.ID,
				Title:       "Heads up",
				Message:     "Budget approved",
				Kind:        store.NotificationKindInfo,
			})
			if tt.wantReason != "" {
				var denied *authz.PermissionDeniedError
				require.True(t, errors.As(err, &denied))
				assert.Equal(t, tt.wantReason, denied.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, f.member.ID, n.UserID)
		})
	}
}

func TestCreateNotification_UnknownRecipient(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.store.EXPECT().GetUserByID(gomock.Any(), gomock.Any()).Return(store.User{}, store.ErrNotFound)

	_, err := f.processor.CreateNotification(context.Background(), f.admin, CreateNotificationParams{RecipientID: uuid.New(), Title: "x"})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestListNotifications(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	own := store.Notification{ID: uuid.New(), UserID: f.member.ID, OwnerCompanyID: &f.company}
	f.store.EXPECT().ListNotificationsByUser(gomock.Any(), f.member.ID, true).Return([]store.Notification{own}, nil)

	notifications, err := f.processor.ListNotifications(context.Background(), f.member, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, own.ID, notifications[0].ID)
}

func TestMarkRead(t *testing.T) {
	t.Parallel()

	t.Run("recipient", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		n := store.Notification{ID: uuid.New(), UserID: f.member.ID, OwnerCompanyID: &f.company}

		f.store.EXPECT().GetNotificationByID(gomock.Any(), n.ID).Return(n, nil)
		read := n
		read.Read = true
		f.store.EXPECT().MarkNotificationRead(gomock.Any(), n.ID).Return(read, nil)

		got, err := f.processor.MarkRead(context.Background(), f.member, n.ID)
		require.NoError(t, err)
		assert.True(t, got.Read)
	})

	t.Run("peer cannot read another member's notification", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		peer := authz.Actor{ID: uuid.New(), Role: store.UserRoleUser, CompanyID: &f.company, ProfileFound: true}
		n := store.Notification{ID: uuid.New(), UserID: f.member.ID, OwnerCompanyID: &f.company}

		f.store.EXPECT().GetNotificationByID(gomock.Any(), n.ID).Return(n, nil)

		_, err := f.processor.MarkRead(context.Background(), peer, n.ID)
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		f.store.EXPECT().GetNotificationByID(gomock.Any(), gomock.Any()).Return(store.Notification{}, store.ErrNotFound)

		_, err := f.processor.MarkRead(context.Background(), f.member, uuid.New())
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})
}

func TestMarkAllRead(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.store.EXPECT().MarkAllNotificationsRead(gomock.Any(), f.member.ID).Return(int64(3), nil)

	count, err := f.processor.MarkAllRead(context.Background(), f.member)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDeleteNotification(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	n := store.Notification{ID: uuid.New(), UserID: f.member.ID, OwnerCompanyID: &f.company}

	f.store.EXPECT().GetNotificationByID(gomock.Any(), n.ID).Return(n, nil)
	f.store.EXPECT().DeleteNotification(gomock.Any(), n.ID).Return(nil)

	assert.NoError(t, f.processor.DeleteNotification(context.Background(), f.admin, n.ID))
}
