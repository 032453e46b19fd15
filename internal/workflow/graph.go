package workflow

import (
	"errors"
	"fmt"

	"campaign-server/internal/store"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownStatus     = errors.New("unknown campaign status")
)

// transitions is the campaign lifecycle. failed is reachable from every
// non-terminal status after draft; paused and in_progress are the only
// reversible pair.
var transitions = map[string][]string{
	store.CampaignStatusDraft:           {store.CampaignStatusSubmitted},
	store.CampaignStatusSubmitted:       {store.CampaignStatusPendingReview, store.CampaignStatusFailed},
	store.CampaignStatusPendingReview:   {store.CampaignStatusApproved, store.CampaignStatusFailed},
	store.CampaignStatusApproved:        {store.CampaignStatusInProgress, store.CampaignStatusFailed},
	store.CampaignStatusInProgress:      {store.CampaignStatusWaitingOnClient, store.CampaignStatusPaused, store.CampaignStatusFailed},
	store.CampaignStatusWaitingOnClient: {store.CampaignStatusDelivered, store.CampaignStatusFailed},
	store.CampaignStatusDelivered:       {store.CampaignStatusLive, store.CampaignStatusFailed},
	store.CampaignStatusLive:            {store.CampaignStatusPaused, store.CampaignStatusCompleted, store.CampaignStatusFailed},
	store.CampaignStatusPaused:          {store.CampaignStatusInProgress, store.CampaignStatusCompleted, store.CampaignStatusFailed},
	store.CampaignStatusCompleted:       nil,
	store.CampaignStatusFailed:          nil,
}

// Statuses lists every campaign status in lifecycle order.
var Statuses = []string{
	store.CampaignStatusDraft,
	store.CampaignStatusSubmitted,
	store.CampaignStatusPendingReview,
	store.CampaignStatusApproved,
	store.CampaignStatusInProgress,
	store.CampaignStatusWaitingOnClient,
	store.CampaignStatusDelivered,
	store.CampaignStatusLive,
	store.CampaignStatusPaused,
	store.CampaignStatusCompleted,
	store.CampaignStatusFailed,
}

// IsValidStatus reports whether s is a campaign status.
func IsValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s string) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// NextStatuses returns the statuses reachable from s in one step.
func NextStatuses(s string) []string {
	return append([]string(nil), transitions[s]...)
}

// CanTransition reports whether the graph has an edge from -> to.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrUnknownStatus or ErrInvalidTransition when
// from -> to is not an edge.
func ValidateTransition(from, to string) error {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return ErrUnknownStatus
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
