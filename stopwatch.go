// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"math"

	"github.com/gogpu/hephaistos/hal"
)

// StopWatch times a sequence of steps with device timestamps: one start
// write on TOP_OF_PIPE, and one stop write on BOTTOM_OF_PIPE per
// recorded stop.
type StopWatch struct {
	ctx   *Context
	pool  hal.QueryPool
	stops uint32
}

// CreateStopWatch allocates a (stops+1)-entry timestamp query pool.
func (c *Context) CreateStopWatch(stops uint32) (*StopWatch, error) {
	pool, err := c.device.NewQueryPool(stops + 1)
	if err != nil {
		return nil, wrapErr("CreateStopWatch", "", err)
	}
	c.retain()
	return &StopWatch{ctx: c, pool: pool, stops: stops}, nil
}

// Reset issues a host-side pool reset, clearing every entry's
// availability before the next recording pass.
func (s *StopWatch) Reset() error {
	if err := s.pool.Reset(); err != nil {
		return wrapErr("StopWatch.Reset", "", err)
	}
	return nil
}

// Start returns a Command writing the stopwatch's TOP_OF_PIPE start
// timestamp; record it first in the timed step.
func (s *StopWatch) Start() Command {
	return CommandFunc(func(rec hal.Recorder) hal.PipelineStageMask {
		rec.WriteTimestamp(s.pool, 0, hal.PipelineStageTopOfPipe)
		return hal.PipelineStageMask(hal.PipelineStageTopOfPipe)
	})
}

// Stop returns a Command writing stop index's BOTTOM_OF_PIPE timestamp;
// index must be in [0, stops).
func (s *StopWatch) Stop(index uint32) (Command, error) {
	if index >= s.stops {
		return nil, invalidArg("StopWatch.Stop", "stop index out of range")
	}
	return CommandFunc(func(rec hal.Recorder) hal.PipelineStageMask {
		rec.WriteTimestamp(s.pool, index+1, hal.PipelineStageBottomOfPipe)
		return hal.PipelineStageMask(hal.PipelineStageBottomOfPipe)
	}), nil
}

// GetTimestamps retrieves the recorded timestamps as nanoseconds since
// the start write, one entry per stop. wait blocks until every entry is
// available; otherwise an unavailable stop reports NaN.
func (s *StopWatch) GetTimestamps(wait bool) ([]float64, error) {
	ticks, available, err := s.pool.Results(wait)
	if err != nil {
		return nil, wrapErr("GetTimestamps", "", err)
	}
	validBits := s.ctx.device.TimestampValidBits()
	period := s.ctx.device.TimestampPeriod()
	var mask uint64
	if validBits >= 64 {
		mask = math.MaxUint64
	} else {
		mask = (uint64(1) << validBits) - 1
	}

	start := ticks[0] & mask
	out := make([]float64, s.stops)
	for i := uint32(0); i < s.stops; i++ {
		if !available[i+1] || !available[0] {
			out[i] = math.NaN()
			continue
		}
		delta := (ticks[i+1] & mask) - start
		out[i] = float64(delta) * float64(period)
	}
	return out, nil
}

// Destroy releases the stopwatch's query pool.
func (s *StopWatch) Destroy() {
	s.pool.Destroy()
	s.ctx.release()
}
