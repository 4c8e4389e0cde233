// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eternize/eternize/internal/memorial"
	"github.com/eternize/eternize/internal/platform/sec"
)

/*
TestDecide_TruthTable exercises the full first-match-wins predicate.
*/
func TestDecide_TruthTable(t *testing.T) {
	owner := memorial.ViewerContext{UserID: "user-1", Email: "user@example.com"}
	stranger := memorial.ViewerContext{UserID: "user-2", Email: "other@example.com"}
	admin := memorial.ViewerContext{UserID: "user-9", Email: "admin@eternize.com.br", IsAdmin: true}
	anonymous := memorial.ViewerContext{}

	pending := &memorial.Memorial{ID: "mem-1", UserID: "user-1", Status: memorial.ApprovalPending}
	approved := &memorial.Memorial{ID: "mem-2", UserID: "user-1", Status: memorial.ApprovalApproved}
	demo := &memorial.Memorial{ID: "demo-1", UserID: "", Status: memorial.ApprovalPending}

	tests := []struct {
		name   string
		viewer memorial.ViewerContext
		target *memorial.Memorial
		want   memorial.Decision
	}{
		{"demo_anonymous", anonymous, demo, memorial.DecisionAllow},
		{"demo_stranger", stranger, demo, memorial.DecisionAllow},
		{"approved_anonymous", anonymous, approved, memorial.DecisionAllow},
		{"approved_stranger", stranger, approved, memorial.DecisionAllow},
		{"pending_owner", owner, pending, memorial.DecisionAllow},
		{"pending_admin", admin, pending, memorial.DecisionAllow},
		{"pending_stranger", stranger, pending, memorial.DecisionLocked},
		{"pending_anonymous", anonymous, pending, memorial.DecisionLocked},
		{"nil_memorial", admin, nil, memorial.DecisionLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, memorial.Decide(tt.viewer, tt.target))
		})
	}
}

/*
TestDecide_PublicFlagIrrelevant verifies that is_public never influences the
view decision; it only affects listings.
*/
func TestDecide_PublicFlagIrrelevant(t *testing.T) {
	stranger := memorial.ViewerContext{UserID: "user-2"}

	publicPending := &memorial.Memorial{
		ID: "mem-1", UserID: "user-1",
		IsPublic: true, Status: memorial.ApprovalPending,
	}
	privateApproved := &memorial.Memorial{
		ID: "mem-2", UserID: "user-1",
		IsPublic: false, Status: memorial.ApprovalApproved,
	}

	// Public but unapproved stays locked for strangers
	assert.Equal(t, memorial.DecisionLocked, memorial.Decide(stranger, publicPending))

	// Approved is viewable even when not public
	assert.Equal(t, memorial.DecisionAllow, memorial.Decide(stranger, privateApproved))
}

/*
TestViewerFromClaims verifies the per-request admin recomputation.
*/
func TestViewerFromClaims(t *testing.T) {
	matcher := sec.NewAdminMatcher("admin@eternize.com.br")

	t.Run("anonymous", func(t *testing.T) {
		viewer := memorial.ViewerFromClaims(nil, matcher)
		assert.Empty(t, viewer.UserID)
		assert.False(t, viewer.IsAdmin)
	})

	t.Run("regular_user", func(t *testing.T) {
		claims := &sec.AuthClaims{UserID: "user-1", Email: "user@example.com", Role: "member"}
		viewer := memorial.ViewerFromClaims(claims, matcher)
		assert.Equal(t, "user-1", viewer.UserID)
		assert.False(t, viewer.IsAdmin)
	})

	t.Run("admin_by_email", func(t *testing.T) {
		claims := &sec.AuthClaims{UserID: "user-9", Email: "Admin@Eternize.com.br", Role: "member"}
		viewer := memorial.ViewerFromClaims(claims, matcher)
		assert.True(t, viewer.IsAdmin)
	})

	t.Run("lookalike_email_denied", func(t *testing.T) {
		claims := &sec.AuthClaims{UserID: "user-8", Email: "admin@eternize.com.br.evil.com", Role: "member"}
		viewer := memorial.ViewerFromClaims(claims, matcher)
		assert.False(t, viewer.IsAdmin)
	})
}
