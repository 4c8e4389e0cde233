// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access: approval toggles, global listings
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleMember:
		return 10
	default:
		return 0
	}
}

// # Distinguished Administrator

// AdminMatcher decides whether a viewer identity is THE administrator.
//
// The platform has exactly one distinguished admin identity, configured as an
// email address. Matching is by exact (case-insensitive) email equality, never
// by pattern or domain.
type AdminMatcher struct {
	email string
}

// NewAdminMatcher builds a matcher for the configured admin address.
func NewAdminMatcher(adminEmail string) AdminMatcher {
	return AdminMatcher{email: strings.ToLower(strings.TrimSpace(adminEmail))}
}

// Matches reports whether the given email is the distinguished admin identity.
// An empty configured address matches nothing.
func (m AdminMatcher) Matches(email string) bool {
	if m.email == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(email), m.email)
}

// MatchesClaims reports whether the given claims belong to the administrator,
// either via the distinguished email or an explicit admin role.
//
// Call sites that expose privileged surfaces must re-check this predicate at
// render time rather than trusting a previously computed flag.
func (m AdminMatcher) MatchesClaims(claims *AuthClaims) bool {
	if claims == nil {
		return false
	}
	if UserRole(claims.Role).AtLeast(RoleAdmin) {
		return true
	}
	return m.Matches(claims.Email)
}
