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
	"fmt"

	"github.com/dustin/go-humanize"
)

type VectorStats struct {
	Levels            uint64
	ElementCount      uint64
	InteriorNodeCount uint64
	LeafNodeCount     uint64

	// Capacity is how many elements the tree holds at its current depth
	// before the root is promoted.
	Capacity uint64
}

func (s *VectorStats) NodeCount() uint64 {
	return s.InteriorNodeCount + s.LeafNodeCount
}

func (s VectorStats) String() string {
	return fmt.Sprintf("elements:%s capacity:%s levels:%d interior:%s leaves:%s",
		humanize.Comma(int64(s.ElementCount)),
		humanize.Comma(int64(s.Capacity)),
		s.Levels,
		humanize.Comma(int64(s.InteriorNodeCount)),
		humanize.Comma(int64(s.LeafNodeCount)),
	)
}

// GetVectorStats returns a census of the nodes reachable from v.
func GetVectorStats[T comparable](v *Vector[T]) (VectorStats, error) {
	if v.size == 0 {
		return VectorStats{}, nil
	}

	level := uint64(0)
	interiorNodeCount := uint64(0)
	leafNodeCount := uint64(0)

	nextLevel := []nodeRef[T]{v.root}

	for len(nextLevel) > 0 {

		refs := nextLevel

		nextLevel = []nodeRef[T](nil)

		for _, ref := range refs {
			switch ref.kind() {
			case nodeKindInterior:
				interiorNodeCount++

				node := ref.interior
				for slot, childCount := 0, node.childCount(); slot < childCount; slot++ {
					nextLevel = append(nextLevel, node.child(slot))
				}

			case nodeKindLeaf:
				leafNodeCount++

			default:
				return VectorStats{}, NewInvalidVectorErrorf("empty ref reachable at level %d", level+1)
			}
		}

		level++
	}

	return VectorStats{
		Levels:            level,
		ElementCount:      uint64(v.size),
		InteriorNodeCount: interiorNodeCount,
		LeafNodeCount:     leafNodeCount,
		Capacity:          uint64(shiftToMaxSize(v.shift)),
	}, nil
}
