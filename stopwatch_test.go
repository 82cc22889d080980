// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"math"
	"testing"
)

func TestStopWatchRecordsTimestamps(t *testing.T) {
	ctx := newTestContext(t)

	sw, err := ctx.CreateStopWatch(1)
	if err != nil {
		t.Fatalf("CreateStopWatch: %v", err)
	}
	defer sw.Destroy()

	stop, err := sw.Stop(0)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}

	sub, err := ctx.BeginSequence().And(sw.Start()).Then(stop).Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	defer sub.Release()

	if err := sub.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	elapsed, err := sw.GetTimestamps(true)
	if err != nil {
		t.Fatalf("GetTimestamps: %v", err)
	}
	if len(elapsed) != 1 {
		t.Fatalf("len(elapsed) = %d, want 1", len(elapsed))
	}
	if elapsed[0] <= 0 {
		t.Fatalf("elapsed[0] = %v, want a positive duration", elapsed[0])
	}
}

func TestStopWatchStopIndexOutOfRange(t *testing.T) {
	ctx := newTestContext(t)

	sw, err := ctx.CreateStopWatch(1)
	if err != nil {
		t.Fatalf("CreateStopWatch: %v", err)
	}
	defer sw.Destroy()

	if _, err := sw.Stop(1); err == nil {
		t.Fatal("Stop(1) on a 1-stop stopwatch should fail")
	}
}

func TestStopWatchResetClearsAvailability(t *testing.T) {
	ctx := newTestContext(t)

	sw, err := ctx.CreateStopWatch(1)
	if err != nil {
		t.Fatalf("CreateStopWatch: %v", err)
	}
	defer sw.Destroy()

	if err := sw.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	elapsed, err := sw.GetTimestamps(false)
	if err != nil {
		t.Fatalf("GetTimestamps: %v", err)
	}
	if !math.IsNaN(elapsed[0]) {
		t.Fatalf("elapsed[0] = %v, want NaN for an unwritten stop", elapsed[0])
	}
}
