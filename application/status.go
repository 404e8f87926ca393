package application

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the review state of an application.
type Status string

const (
	// StatusPending is the initial state of every submission
	StatusPending Status = "PENDING"
	// StatusInReview marks an application a reviewer has picked up
	StatusInReview Status = "IN_REVIEW"
	// StatusApproved is terminal
	StatusApproved Status = "APPROVED"
	// StatusRejected is terminal
	StatusRejected Status = "REJECTED"
)

var (
	// ErrUnknownStatus indicates a status value outside the workflow
	ErrUnknownStatus = errors.New("unknown application status")
	// ErrInvalidTransition indicates a transition the workflow does not allow
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTerminalStatus indicates the application already reached a final decision
	ErrTerminalStatus = errors.New("application status is final")
)

// ParseStatus maps a raw string onto a workflow status.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(raw)) {
	case StatusPending:
		return StatusPending, nil
	case StatusInReview:
		return StatusInReview, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownStatus, raw)
	}
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition checks the workflow rules for moving to target.
// PENDING only moves to IN_REVIEW, IN_REVIEW moves to APPROVED or
// REJECTED (or stays put), APPROVED and REJECTED never move again.
func (s Status) CanTransition(target Status) error {
	if s.Terminal() {
		return fmt.Errorf("%w: already %s", ErrTerminalStatus, s)
	}
	switch s {
	case StatusPending:
		if target != StatusInReview {
			return fmt.Errorf(
				"%w: %s can only move to %s",
				ErrInvalidTransition,
				StatusPending,
				StatusInReview,
			)
		}
	case StatusInReview:
		if target != StatusInReview && target != StatusApproved && target != StatusRejected {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, s, target)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStatus, s)
	}
	return nil
}
