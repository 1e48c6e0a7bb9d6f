package models

import "errors"

// Domain-specific errors shared across the store and services
var (
	// ErrRequestNotFound indicates no request exists with the given ID
	ErrRequestNotFound = errors.New("request not found")

	// ErrRestaurantNotFound indicates no live restaurant exists with the given ID
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrCommentNotFound indicates no comment exists with the given ID
	ErrCommentNotFound = errors.New("comment not found")

	// ErrAlreadyAssigned indicates the BDR is already on the request
	ErrAlreadyAssigned = errors.New("bdr is already assigned to this request")

	// ErrNotAssigned indicates the BDR is not on the request
	ErrNotAssigned = errors.New("bdr is not assigned to this request")

	// ErrProfileNotFound indicates no profile exists with the given ID
	ErrProfileNotFound = errors.New("profile not found")
)
