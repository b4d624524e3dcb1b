package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrEmptyCart            = errors.New("order must contain at least one item")
	ErrNegativeAmount       = errors.New("unit price and quantity must not be negative")
	ErrCouponInvalid        = errors.New("coupon is unknown, inactive or expired")
	ErrAffiliateInvalid     = errors.New("affiliate code is unknown or inactive")
	ErrIllegalTransition    = errors.New("order status transition is not allowed")
	ErrOrderLocked          = errors.New("order is locked by its payment state")
	ErrChargeAlreadyExists  = errors.New("order already has a charge in progress")
	ErrUnknownPaymentMethod = errors.New("payment method is not supported")

	// * Gateway errors.
	ErrGatewayUnavailable = errors.New("payment gateway is unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected the charge")

	// * Reconciliation errors.
	ErrMalformedNotification = errors.New("gateway notification is malformed")
)
