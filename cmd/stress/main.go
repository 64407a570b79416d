/*
 * Pvector - Persistent Bit-Partitioned Vectors
 *
 * Copyright Steady Labs
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command stress runs a randomized operation mix against a vector and a
// flat mirror slice, verifying structure and contents as it goes.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/steadylabs/pvector"
)

type stressState struct {
	vector *pvector.Vector[int64]
	mirror []int64

	ops       uint64
	appends   uint64
	sets      uint64
	pops      uint64
	extends   uint64
	concats   uint64
	verifies  uint64
	startTime time.Time
}

func (s *stressState) writeStatus() {
	fmt.Printf("\rops %s, elements %s, leaf allocs %s, interior allocs %s   ",
		humanize.Comma(int64(s.ops)),
		humanize.Comma(int64(s.vector.Count())),
		humanize.Comma(int64(pvector.LeafNodesAllocated())),
		humanize.Comma(int64(pvector.InteriorNodesAllocated())),
	)
}

func (s *stressState) writeSummary() {
	stats, err := pvector.GetVectorStats(s.vector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to collect stats: %s\n", err)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"metric", "value"})
	t.AppendRows([]table.Row{
		{"operations", humanize.Comma(int64(s.ops))},
		{"appends", humanize.Comma(int64(s.appends))},
		{"sets", humanize.Comma(int64(s.sets))},
		{"pops", humanize.Comma(int64(s.pops))},
		{"extends", humanize.Comma(int64(s.extends))},
		{"concats", humanize.Comma(int64(s.concats))},
		{"verifications", humanize.Comma(int64(s.verifies))},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"elements", humanize.Comma(int64(stats.ElementCount))},
		{"capacity", humanize.Comma(int64(stats.Capacity))},
		{"levels", stats.Levels},
		{"interior nodes", humanize.Comma(int64(stats.InteriorNodeCount))},
		{"leaf nodes", humanize.Comma(int64(stats.LeafNodeCount))},
		{"leaf nodes allocated", humanize.Comma(int64(pvector.LeafNodesAllocated()))},
		{"interior nodes allocated", humanize.Comma(int64(pvector.InteriorNodesAllocated()))},
		{"elapsed", time.Since(s.startTime).Round(time.Millisecond)},
	})
	t.Render()
}

// verify checks structural invariants and compares the vector with its
// mirror element by element.
func (s *stressState) verify() error {
	s.verifies++

	if err := pvector.VerifyVector(s.vector); err != nil {
		return err
	}
	if got, want := s.vector.Count(), len(s.mirror); got != want {
		return fmt.Errorf("vector has %d elements, mirror has %d", got, want)
	}
	if !slices.Equal(s.vector.ToSlice(), s.mirror) {
		return fmt.Errorf("vector contents diverged from mirror at %d elements", len(s.mirror))
	}
	return nil
}

func main() {

	var maxLength uint64
	var opCount uint64
	var verifyEvery uint64
	var seedHex string

	flag.Uint64Var(&maxLength, "maxlen", 100_000, "max number of elements before extra removal kicks in")
	flag.Uint64Var(&opCount, "ops", 1_000_000, "number of operations to run (0 means run until interrupted)")
	flag.Uint64Var(&verifyEvery, "verify", 10_000, "verify structure and contents every n operations")
	flag.StringVar(&seedHex, "seed", "", "seed for prng in hex (default is Unix time)")

	flag.Parse()

	seed := time.Now().UnixNano()
	if len(seedHex) != 0 {
		var err error
		seed, err = strconv.ParseInt(strings.ReplaceAll(seedHex, "0x", ""), 16, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse seed flag (hex string)\n")
			os.Exit(1)
		}
	}
	fmt.Printf("seed: 0x%x\n", seed)

	r := rand.New(rand.NewSource(seed))

	state := &stressState{
		vector:    pvector.NewVector[int64](),
		startTime: time.Now(),
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	statusTicker := time.NewTicker(3 * time.Second)
	defer statusTicker.Stop()

	for opCount == 0 || state.ops < opCount {
		select {
		case <-sigc:
			fmt.Println()
			state.writeSummary()
			return

		case <-statusTicker.C:
			state.writeStatus()

		default:
		}

		// Once the vector outgrows maxlen, every operation is a pop.
		opKind := r.Intn(6)
		if uint64(state.vector.Count()) > maxLength {
			opKind = 2
		}

		switch opKind {
		case 0, 1: // append
			value := r.Int63()
			state.vector = state.vector.Append(value)
			state.mirror = append(state.mirror, value)
			state.appends++

		case 2: // pop
			if state.vector.Count() > 0 {
				state.vector = state.vector.Pop()
				state.mirror = state.mirror[:len(state.mirror)-1]
				state.pops++
			}

		case 3: // set
			if state.vector.Count() > 0 {
				index := r.Intn(state.vector.Count())
				value := r.Int63()

				state.vector = state.vector.Set(index, value)
				state.mirror[index] = value
				state.sets++
			}

		case 4: // extend
			values := make([]int64, r.Intn(3*pvector.BranchingFactor))
			for i := range values {
				values[i] = r.Int63()
			}
			state.vector = state.vector.Extend(values)
			state.mirror = append(state.mirror, values...)
			state.extends++

		case 5: // concat
			values := make([]int64, r.Intn(pvector.BranchingFactor))
			for i := range values {
				values[i] = r.Int63()
			}
			state.vector = pvector.Concat(state.vector, pvector.NewVectorFromSlice(values))
			state.mirror = append(state.mirror, values...)
			state.concats++
		}

		state.ops++

		if verifyEvery > 0 && state.ops%verifyEvery == 0 {
			if err := state.verify(); err != nil {
				fmt.Fprintf(os.Stderr, "\nverification failed after %d ops: %s\n", state.ops, err)
				os.Exit(1)
			}
		}
	}

	if err := state.verify(); err != nil {
		fmt.Fprintf(os.Stderr, "\nfinal verification failed: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	state.writeSummary()
}
