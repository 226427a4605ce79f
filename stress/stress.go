// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package stress runs cores in parallel, each on its own goroutine, with no
// coordination other than the global exclusive monitor. Every core increments
// a shared counter with a load exclusive and store exclusive retry loop. If
// the monitor is correct no increment is lost.
package stress

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/armexclusive/curated"
	"github.com/jetsetilly/armexclusive/hardware/access"
	"github.com/jetsetilly/armexclusive/hardware/core"
	"github.com/jetsetilly/armexclusive/hardware/memory"
	"github.com/jetsetilly/armexclusive/hardware/monitor"
	"github.com/jetsetilly/armexclusive/logger"
	"github.com/jetsetilly/armexclusive/random"
)

// Sentinal error patterns.
const (
	InvalidConfig = "stress: invalid configuration: %s"
	LostIncrement = "stress: counter is %d but expected %d"
	Cancelled     = "stress: %v"
)

// Config for a stress run.
type Config struct {
	// number of cores running in parallel
	Cores int

	// number of increments made by each core
	Increments int

	// the address of the counter and the address of a neighbouring word that
	// each core writes to with an ordinary store between increments. the
	// ordinary stores cause reservations to be invalidated
	Counter  uint32
	Neighbor uint32

	// if true each core stores to the neighbouring word between
	// increments
	Interfere bool

	GranuleBits      int
	SpuriousInterval int

	// each core yields to the scheduler a random number of times, up to
	// Jitter, between the load exclusive and the store exclusive. this
	// widens the window in which another core can interfere. the seed for
	// the random numbers is taken from Seed, or from the time if Seed is zero
	Jitter int
	Seed   int64

	// log every failed store exclusive
	Verbose bool

	// optional observer attached to every core
	Observer core.Observer
}

// DefaultConfig returns a Config with sensible values.
func DefaultConfig() Config {
	return Config{
		Cores:       4,
		Increments:  1000,
		Counter:     0x00,
		Neighbor:    0x04,
		Interfere:   true,
		GranuleBits: monitor.DefaultGranuleBits,
		Jitter:      4,
	}
}

// Result of a stress run.
type Result struct {
	Counter  uint32
	Retries  int64
	Duration time.Duration
	Seed     int64
}

func (r Result) String() string {
	return fmt.Sprintf("counter %d after %d retries in %v (seed %d)", r.Counter, r.Retries, r.Duration, r.Seed)
}

// Run the stress test. An error is returned if the final value of the counter
// is not exactly Cores * Increments or if the context is cancelled.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Cores < 1 {
		return Result{}, curated.Errorf(InvalidConfig, "at least one core required")
	}
	if cfg.Increments < 0 {
		return Result{}, curated.Errorf(InvalidConfig, "increments must not be negative")
	}

	for _, addr := range []uint32{cfg.Counter, cfg.Neighbor} {
		if uint64(addr)+4 > math.MaxUint32 {
			return Result{}, curated.Errorf(InvalidConfig, fmt.Sprintf("address %#08x too large", addr))
		}
	}
	if cfg.Interfere && max(cfg.Counter, cfg.Neighbor)-min(cfg.Counter, cfg.Neighbor) < 4 {
		return Result{}, curated.Errorf(InvalidConfig, "counter and neighbour must not overlap")
	}

	global, err := monitor.NewGlobal(cfg.GranuleBits)
	if err != nil {
		return Result{}, curated.Errorf(InvalidConfig, err)
	}
	global.SetLogging(logger.Deny)
	if err := global.SetSpuriousInterval(cfg.SpuriousInterval); err != nil {
		return Result{}, curated.Errorf(InvalidConfig, err)
	}

	size := max(cfg.Counter, cfg.Neighbor) + 4
	mem := memory.NewImage(int(size))

	rnd := random.NewRandom(cfg.Seed)
	verbose := logger.Conditional(cfg.Verbose)

	var retries atomic.Int64
	start := time.Now()

	logger.Logf(logger.Allow, "stress", "%d cores making %d increments each (seed %d)", cfg.Cores, cfg.Increments, rnd.Seed())

	grp, ctx := errgroup.WithContext(ctx)
	for id := 0; id < cfg.Cores; id++ {
		c := core.NewCore(id, mem, global)
		if cfg.Observer != nil {
			c.SetObserver(cfg.Observer)
		}

		rng := rnd.Stream(id)

		grp.Go(func() error {
			defer c.Close()
			for i := 0; i < cfg.Increments; i++ {
				for {
					if err := ctx.Err(); err != nil {
						return err
					}
					v := c.Execute(access.NewLoadExclusive(access.Word, cfg.Counter)).Value
					for j := rng.Intn(cfg.Jitter); j > 0; j-- {
						runtime.Gosched()
					}
					if c.Execute(access.NewStoreExclusive(access.Word, cfg.Counter, v+1)).Succeeded() {
						break
					}
					retries.Add(1)
					logger.Logf(verbose, "stress", "core %d: retry increment %d", c.ID(), i)
				}
				if cfg.Interfere {
					c.Execute(access.NewStore(access.Word, cfg.Neighbor, uint32(c.ID())))
				}
			}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return Result{}, curated.Errorf(Cancelled, err)
	}

	res := Result{
		Counter:  mem.Read(cfg.Counter, access.Word),
		Retries:  retries.Load(),
		Duration: time.Since(start),
		Seed:     rnd.Seed(),
	}

	logger.Logf(logger.Allow, "stress", "%s", res)

	if expected := uint32(cfg.Cores * cfg.Increments); res.Counter != expected {
		return res, curated.Errorf(LostIncrement, res.Counter, expected)
	}

	return res, nil
}
