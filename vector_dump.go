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
	"strings"
)

// PrintVector prints the vector's node structure to stdout.
func PrintVector[T comparable](v *Vector[T]) {
	dumps, err := DumpVectorStructure(v)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(strings.Join(dumps, "\n"))
}

// DumpVectorStructure returns one line per node, level by level from the
// root down. Leaf lines show only the defined element prefix.
func DumpVectorStructure[T comparable](v *Vector[T]) ([]string, error) {
	var dumps []string

	dumps = append(dumps, fmt.Sprintf("vector count:%d shift:%d", v.size, v.shift))
	if v.size == 0 {
		return dumps, nil
	}

	nextLevel := []nodeRef[T]{v.root}

	level := 0
	leafIndex := 0
	for len(nextLevel) > 0 {

		refs := nextLevel

		nextLevel = []nodeRef[T](nil)

		for _, ref := range refs {
			switch ref.kind() {
			case nodeKindInterior:
				node := ref.interior
				childCount := node.childCount()
				dumps = append(dumps, fmt.Sprintf("level %d, interior children:%d", level+1, childCount))

				for slot := 0; slot < childCount; slot++ {
					nextLevel = append(nextLevel, node.child(slot))
				}

			case nodeKindLeaf:
				fill := min(BranchingFactor, v.size-leafIndex*BranchingFactor)
				dumps = append(dumps, fmt.Sprintf("level %d, leaf %v", level+1, ref.leaf.values[:fill]))
				leafIndex++

			default:
				return nil, NewInvalidVectorErrorf("empty ref reachable at level %d", level+1)
			}
		}

		level++
	}

	return dumps, nil
}
