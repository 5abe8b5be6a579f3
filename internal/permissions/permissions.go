// Package permissions holds the authorization rules as pure decision
// functions. Handlers ask for a verdict and translate a denial into 401
// (anonymous caller) or 403 (authenticated but insufficient); nothing in
// this package touches the request or the store.
package permissions

import (
	"net/http"

	"kritika/internal/models"
)

// Resource classifies what a request is aimed at. Each kind carries its own
// request-level rule.
type Resource int

const (
	// ResourceCatalog covers categories, genres and titles: world-readable,
	// admin-writable.
	ResourceCatalog Resource = iota
	// ResourceReview covers reviews and comments: world-readable, writable
	// by any authenticated user (object-level rules apply on top).
	ResourceReview
	// ResourceUserAdmin covers the /users administration endpoints:
	// admin-only for every method.
	ResourceUserAdmin
	// ResourceSelf covers the /users/me profile endpoints: any
	// authenticated user.
	ResourceSelf
)

// IsSafeMethod reports whether the HTTP method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CanAccess is the request-level gate. A nil user is an anonymous caller.
func CanAccess(user *models.User, method string, resource Resource) bool {
	switch resource {
	case ResourceCatalog:
		return IsSafeMethod(method) || (user != nil && user.IsAdmin())
	case ResourceReview:
		return IsSafeMethod(method) || user != nil
	case ResourceUserAdmin:
		return user != nil && user.IsAdmin()
	case ResourceSelf:
		return user != nil
	}
	return false
}

// CanMutateObject is the object-level gate for reviews and comments: unsafe
// methods are reserved for the object's author, moderators and admins.
func CanMutateObject(user *models.User, method string, authorID string) bool {
	if IsSafeMethod(method) {
		return true
	}
	if user == nil {
		return false
	}
	return user.ID == authorID || user.IsAdmin() || user.IsModerator()
}
