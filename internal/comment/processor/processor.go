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

// CommentStore defines the database operations required by CommentProcessor
type CommentStore interface {
	GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error)
	CreateComment(ctx context.Context, params store.CreateCommentParams) (store.CampaignComment, error)
	GetCommentByID(ctx context.Context, commentID uuid.UUID) (store.CampaignComment, error)
	ListCommentsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]store.CampaignComment, error)
	UpdateCommentBody(ctx context.Context, commentID uuid.UUID, body string) (store.CampaignComment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
}

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrParentNotFound   = errors.New("parent comment does not belong to this campaign")
)

type CommentProcessor struct {
	store  CommentStore
	engine *authz.Engine
	logger *observability.Logger
}

func New(store CommentStore, engine *authz.Engine, logger *observability.Logger) CommentProcessor {
	return CommentProcessor{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// Thread is a comment with its replies, oldest first
type Thread struct {
	store.CampaignComment
	Replies []Thread `json:"replies"`
}

// ListComments returns the visible comments of a campaign as threads. A reply
// whose parent is not visible is listed at the top level. Callers who could
// neither read the campaign nor comment on it are denied.
func (p *CommentProcessor) ListComments(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) ([]Thread, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	if _, err := p.getCampaign(ctx, actor, campaignID); err != nil {
		return nil, err
	}

	comments, err := p.store.ListCommentsByCampaign(ctx, campaignID)
	if err != nil {
		p.logger.Error(ctx, "failed to list comments", err)
		return nil, err
	}
	return buildThreads(authz.Filter(p.engine, actor, comments, authz.CommentResource)), nil
}

// CreateComment posts a comment as the actor. parentID, when set, must be a
// comment on the same campaign.
func (p *CommentProcessor) CreateComment(ctx context.Context, actor authz.Actor, campaignID uuid.UUID, parentID *uuid.UUID, body string) (store.CampaignComment, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID})

	campaign, err := p.getCampaign(ctx, actor, campaignID)
	if err != nil {
		return store.CampaignComment{}, err
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationInsert, authz.CommentInsert(actor.ID, campaign)); err != nil {
		return store.CampaignComment{}, err
	}

	if parentID != nil {
		parent, err := p.store.GetCommentByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.CampaignComment{}, ErrParentNotFound
			}
			p.logger.Error(ctx, "failed to get parent comment", err)
			return store.CampaignComment{}, err
		}
		if parent.CampaignID != campaignID {
			return store.CampaignComment{}, ErrParentNotFound
		}
	}

	comment, err := p.store.CreateComment(ctx, store.CreateCommentParams{
		CampaignID:      campaignID,
		UserID:          actor.ID,
		ParentCommentID: parentID,
		Body:            body,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create comment", err)
		return store.CampaignComment{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "comment_id", Value: comment.ID})
	p.logger.Info(ctx, "comment created")
	return comment, nil
}

func (p *CommentProcessor) UpdateComment(ctx context.Context, actor authz.Actor, campaignID, commentID uuid.UUID, body string) (store.CampaignComment, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "comment_id", Value: commentID})

	if _, err := p.getComment(ctx, actor, campaignID, commentID, authz.OperationUpdate); err != nil {
		return store.CampaignComment{}, err
	}

	comment, err := p.store.UpdateCommentBody(ctx, commentID, body)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.CampaignComment{}, ErrCommentNotFound
		}
		p.logger.Error(ctx, "failed to update comment", err)
		return store.CampaignComment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment and its replies
func (p *CommentProcessor) DeleteComment(ctx context.Context, actor authz.Actor, campaignID, commentID uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "comment_id", Value: commentID})

	if _, err := p.getComment(ctx, actor, campaignID, commentID, authz.OperationDelete); err != nil {
		return err
	}

	if err := p.store.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCommentNotFound
		}
		p.logger.Error(ctx, "failed to delete comment", err)
		return err
	}
	return nil
}

// getCampaign loads a campaign the actor takes part in: one they can read or
// one whose company they may comment in.
func (p *CommentProcessor) getCampaign(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) (store.Campaign, error) {
	campaign, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to get campaign", err)
		return store.Campaign{}, err
	}
	if p.engine.Allowed(actor, authz.OperationRead, authz.CampaignResource(campaign)) {
		return campaign, nil
	}
	if err := p.engine.Authorize(ctx, actor, authz.OperationInsert, authz.CommentInsert(actor.ID, campaign)); err != nil {
		return store.Campaign{}, err
	}
	return campaign, nil
}

// getComment loads a comment of campaignID and authorizes op on it
func (p *CommentProcessor) getComment(ctx context.Context, actor authz.Actor, campaignID, commentID uuid.UUID, op authz.Operation) (store.CampaignComment, error) {
	comment, err := p.store.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.CampaignComment{}, ErrCommentNotFound
		}
		p.logger.Error(ctx, "failed to get comment", err)
		return store.CampaignComment{}, err
	}
	if comment.CampaignID != campaignID {
		return store.CampaignComment{}, ErrCommentNotFound
	}
	if err := p.engine.Authorize(ctx, actor, op, authz.CommentResource(comment)); err != nil {
		return store.CampaignComment{}, err
	}
	return comment, nil
}

// buildThreads nests comments under their parents. Input order is kept
// within each level.
func buildThreads(comments []store.CampaignComment) []Thread {
	visible := make(map[uuid.UUID]bool, len(comments))
	for _, c := range comments {
		visible[c.ID] = true
	}

	children := make(map[uuid.UUID][]store.CampaignComment)
	var roots []store.CampaignComment
	for _, c := range comments {
		if c.ParentCommentID != nil && visible[*c.ParentCommentID] {
			children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var nest func(cs []store.CampaignComment) []Thread
	nest = func(cs []store.CampaignComment) []Thread {
		threads := make([]Thread, 0, len(cs))
		for _, c := range cs {
			threads = append(threads, Thread{CampaignComment: c, Replies: nest(children[c.ID])})
		}
		return threads
	}
	return nest(roots)
}
