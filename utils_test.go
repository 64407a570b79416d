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

package pvector

import (
	"flag"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var seed = flag.Int64("seed", 0, "seed for pseudo-random source")

func newRand(tb testing.TB) *rand.Rand {
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// Benchmarks always log, so only log for tests which
	// will only log with -v flag or on error.
	if t, ok := tb.(*testing.T); ok {
		t.Logf("seed: %d\n", *seed)
	}

	return rand.New(rand.NewSource(*seed))
}

func sequentialInt64s(count int) []int64 {
	values := make([]int64, count)
	for i := range values {
		values[i] = int64(i)
	}
	return values
}

func randInt64s(r *rand.Rand, count int) []int64 {
	values := make([]int64, count)
	for i := range values {
		values[i] = r.Int63()
	}
	return values
}

// requireVectorContent checks count, per-index lookup, block-wise export
// and the structural invariants of v against expected.
func requireVectorContent(t *testing.T, expected []int64, v *Vector[int64]) {
	require.NoError(t, VerifyVector(v))
	require.Equal(t, len(expected), v.Count())
	require.Equal(t, expected, v.ToSlice())

	for i := 0; i < len(expected); i++ {
		require.Equal(t, expected[i], v.Get(i))
	}
}

// requirePanicsWithFatalError checks that fn panics with one of this
// package's fatal error values.
func requirePanicsWithFatalError(t *testing.T, fn func()) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")

		err, ok := r.(Error)
		require.True(t, ok, "panic value %v is not a pvector error", r)
		require.True(t, err.IsFatal())
	}()

	fn()
}
