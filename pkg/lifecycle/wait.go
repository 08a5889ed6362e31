// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy bounds a wait-for-state poll loop. The zero value is normalized to
// DefaultPolicy.
type Policy struct {
	// PollInterval is the initial delay between polls; subsequent delays grow
	// exponentially up to MaxInterval.
	PollInterval time.Duration
	MaxInterval  time.Duration
	// Timeout is the total budget for the whole wait.
	Timeout time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		PollInterval: 2 * time.Second,
		MaxInterval:  30 * time.Second,
		Timeout:      5 * time.Minute,
	}
}

func (p Policy) normalized() Policy {
	def := DefaultPolicy()
	if p.PollInterval <= 0 {
		p.PollInterval = def.PollInterval
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = def.MaxInterval
	}
	if p.Timeout <= 0 {
		p.Timeout = def.Timeout
	}
	return p
}

// WaitForState polls fetch until it reports one of the target states or the
// policy's budget is exhausted. A fetch error stops the wait immediately.
func WaitForState(ctx context.Context, policy Policy, fetch func(context.Context) (string, error), targets ...string) error {
	if len(targets) == 0 {
		return fmt.Errorf("at least one target state is required")
	}
	policy = policy.normalized()

	op := func() (string, error) {
		state, err := fetch(ctx)
		if err != nil {
			return "", backoff.Permanent(err)
		}
		for _, target := range targets {
			if state == target {
				return state, nil
			}
		}
		return "", fmt.Errorf("lifecycle state %q has not reached %v", state, targets)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.PollInterval
	b.MaxInterval = policy.MaxInterval

	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(policy.Timeout),
	)
	return err
}
