// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package optimistic provides a small generic helper for optimistic state
transitions: apply a change locally, confirm it against a remote system, and
restore the prior snapshot if confirmation fails.

Key Functions:
  - Apply: Runs the apply → confirm → rollback cycle for a mutable target.

Every optimistic mutation in the system (admin approval toggles, profile image
swaps) goes through this helper instead of hand-rolled rollback code.
*/
package optimistic

// Apply runs an optimistic mutation against target.
//
// # Flow
//
//  1. Snapshot the current value of target.
//  2. Apply the local mutation.
//  3. Run confirm (the remote write).
//  4. If confirm fails, restore the snapshot and return the error.
//
// The target pointer always reflects the confirmed state when Apply returns.
func Apply[T any](target *T, mutate func(*T), confirm func() error) error {
	snapshot := *target

	mutate(target)

	if err := confirm(); err != nil {
		*target = snapshot
		return err
	}

	return nil
}
