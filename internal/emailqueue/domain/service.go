package domain

import (
	"context"
	"errors"
)

type Service interface {
	Enqueue(ctx context.Context, req EnqueueRequest) (QueuedEmail, error)
	// Drain sends pending emails and returns how many were delivered.
	Drain(ctx context.Context, batchSize int) (int, error)
}

type EnqueueRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

var (
	ErrInvalidRecipient = errors.New("invalid_recipient")
	ErrInvalidSubject   = errors.New("invalid_subject")
)
