// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package optimistic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternize/eternize/pkg/optimistic"
)

/*
TestApply_ConfirmedMutationSticks verifies the local change survives when the
remote confirmation succeeds.
*/
func TestApply_ConfirmedMutationSticks(t *testing.T) {
	state := "pending"

	err := optimistic.Apply(&state,
		func(s *string) { *s = "approved" },
		func() error { return nil },
	)

	require.NoError(t, err)
	assert.Equal(t, "approved", state)
}

/*
TestApply_RollbackOnFailure verifies the snapshot is restored and the remote
error is surfaced when confirmation fails.
*/
func TestApply_RollbackOnFailure(t *testing.T) {
	remoteErr := errors.New("store unavailable")
	state := "pending"

	err := optimistic.Apply(&state,
		func(s *string) { *s = "approved" },
		func() error { return remoteErr },
	)

	require.ErrorIs(t, err, remoteErr)
	assert.Equal(t, "pending", state)
}

/*
TestApply_StructTarget verifies rollback restores every field of a struct
snapshot, not just the mutated one.
*/
func TestApply_StructTarget(t *testing.T) {
	type record struct {
		Approved bool
		Note     string
	}

	target := record{Approved: false, Note: "queued"}

	err := optimistic.Apply(&target,
		func(r *record) {
			r.Approved = true
			r.Note = "live"
		},
		func() error { return errors.New("boom") },
	)

	require.Error(t, err)
	assert.Equal(t, record{Approved: false, Note: "queued"}, target)
}
