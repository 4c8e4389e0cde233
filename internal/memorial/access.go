// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial

import "github.com/eternize/eternize/internal/platform/sec"

// # View-Time Access Control

// Decision is the outcome of the view-time access check.
type Decision int

const (
	// DecisionLocked denies the view with a neutral screen state. The
	// response never distinguishes "pending" from "not yours".
	DecisionLocked Decision = iota

	// DecisionAllow grants the full memorial view.
	DecisionAllow
)

// ViewerContext is the identity snapshot of the requesting viewer.
// Anonymous viewers have all fields zero.
type ViewerContext struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// ViewerFromClaims builds a [ViewerContext] from verified auth claims.
// The admin flag is recomputed from the matcher on every call, never cached.
func ViewerFromClaims(claims *sec.AuthClaims, admin sec.AdminMatcher) ViewerContext {
	if claims == nil {
		return ViewerContext{}
	}
	return ViewerContext{
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsAdmin: admin.MatchesClaims(claims),
	}
}

// Decide evaluates the access predicate for one memorial view.
//
// The checks run in a fixed order and the first match wins:
//
//  1. Demo records are always viewable.
//  2. Approved memorials are always viewable.
//  3. The owner always sees their own memorial.
//  4. The administrator sees everything.
//  5. Everyone else gets the locked screen.
//
// The predicate is pure and must be evaluated per request against freshly
// loaded data; a stale approval state would change the outcome.
func Decide(viewer ViewerContext, m *Memorial) Decision {
	if m == nil {
		return DecisionLocked
	}

	if IsDemoID(m.ID) {
		return DecisionAllow
	}

	if m.Status == ApprovalApproved {
		return DecisionAllow
	}

	if m.IsOwnedBy(viewer.UserID) {
		return DecisionAllow
	}

	if viewer.IsAdmin {
		return DecisionAllow
	}

	return DecisionLocked
}
