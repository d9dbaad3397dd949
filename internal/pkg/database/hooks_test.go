package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAfterCommit_RunsImmediatelyOutsideTx(t *testing.T) {
	calls := 0
	AfterCommit(context.Background(), func() { calls++ })
	assert.Equal(t, 1, calls)
}

func TestAfterCommit_DeferredUntilRun(t *testing.T) {
	ctx, run := WithCommitHooks(context.Background())
	calls := 0
	AfterCommit(ctx, func() { calls++ })
	AfterCommit(ctx, func() { calls++ })
	assert.Zero(t, calls)

	run()
	assert.Equal(t, 2, calls)

	// hooks fire once
	run()
	assert.Equal(t, 2, calls)
}

func TestAfterCommit_DroppedWithoutRun(t *testing.T) {
	ctx, _ := WithCommitHooks(context.Background())
	calls := 0
	AfterCommit(ctx, func() { calls++ })
	assert.Zero(t, calls)
}
