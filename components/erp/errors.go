package erp

import "errors"

var (
	// ErrUnknownView is returned when a path does not name one of the five views.
	ErrUnknownView = errors.New("erp: unknown view path")
	// ErrUnknownSession is returned when a session id is missing or expired.
	ErrUnknownSession = errors.New("erp: unknown session")
	// ErrViewNotMounted is returned when an action targets a view that is not mounted.
	ErrViewNotMounted = errors.New("erp: view not mounted")
	// ErrUnknownCurrency is returned for currencies outside USD, EUR and PKR.
	ErrUnknownCurrency = errors.New("erp: unknown currency")

	errMissingSessionStore = errors.New("erp: session store not configured")
)
