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

import "fmt"

// Extend returns a new vector with the elements of values appended in
// order. The receiver is unchanged. values may be nil or empty, in which
// case the receiver is returned as is.
//
// This is the batched fast path: it allocates one leaf per BranchingFactor
// appended elements and amortizes interior-node construction across each
// whole leaf instead of each element.
func (v *Vector[T]) Extend(values []T) *Vector[T] {
	if len(values) == 0 {
		return v
	}
	return pushBatch(v, values)
}

// pushBatch appends values to original in two phases: top up the partial
// last leaf with a single path copy, then drip whole leaves.
func pushBatch[T comparable](original *Vector[T], values []T) *Vector[T] {
	result := original
	pos := 0

	// Phase 1: the last leaf is partially filled. Build its replacement
	// once, with the old prefix and as many new values as fit, and publish
	// it with one path copy.
	if lastFill := result.size & branchingFactorMask; lastFill > 0 {
		leafBase := result.size &^ branchingFactorMask
		pad := min(BranchingFactor-lastFill, len(values))

		prev := result.findLeafNode(leafBase)
		leaf := newLeafNode[T]()
		copy(leaf.values[:lastFill], prev.values[:lastFill])
		copy(leaf.values[lastFill:lastFill+pad], values[:pad])

		root := replaceLeafNode(result.root, result.shift, leafBase, leaf)
		result = newVector(root, result.size+pad, result.shift)
		pos = pad
	}

	// Phase 2: the element count is now a multiple of BranchingFactor (or
	// the input is exhausted). Append whole leaves; the final one may be
	// partial.
	for pos < len(values) {
		fill := min(len(values)-pos, BranchingFactor)
		leaf := newLeafNode[T]()
		copy(leaf.values[:fill], values[pos:pos+fill])
		result = result.pushLeafNode(leaf, fill)
		pos += fill
	}

	return result
}

// replaceLeafNode rebuilds the path from ref down to the leaf whose first
// element index is leafBase, substituting leaf. Untouched subtrees are
// shared.
func replaceLeafNode[T comparable](ref nodeRef[T], shift int, leafBase int, leaf *leafNode[T]) nodeRef[T] {
	if shift == leafNodeShift {
		return leafRef(leaf)
	}

	slot := (leafBase >> shift) & branchingFactorMask
	children := ref.interior.childArray()
	children[slot] = replaceLeafNode(children[slot], shift-branchingFactorShift, leafBase, leaf)
	return interiorRef(newInteriorNode(children))
}

// pushLeafNode attaches leaf as the new rightmost leaf, contributing fill
// elements. The receiver's element count must be a multiple of
// BranchingFactor.
func (v *Vector[T]) pushLeafNode(leaf *leafNode[T], fill int) *Vector[T] {
	if v.size&branchingFactorMask != 0 {
		panic(NewUnreachableError(fmt.Sprintf("pushLeafNode on size %d with a partial last leaf", v.size)))
	}

	if v.size == 0 {
		return newVector(leafRef(leaf), fill, leafNodeShift)
	}

	if v.size+fill <= shiftToMaxSize(v.shift) {
		// The current root still has room. A non-empty vector whose size is
		// a multiple of BranchingFactor fills its root leaf completely, so
		// having room implies the root is an interior node.
		root := appendLeafNode(v.root, v.shift, v.size, leaf)
		return newVector(root, v.size+fill, v.shift)
	}

	// Level promotion: the old root becomes slot 0 of a new root, with a
	// fresh spine of the old depth ending in leaf at slot 1.
	var children [BranchingFactor]nodeRef[T]
	children[0] = v.root
	children[1] = newPath(v.shift, leaf)
	root := interiorRef(newInteriorNode(children))
	return newVector(root, v.size+fill, v.shift+branchingFactorShift)
}

// appendLeafNode places leaf at the slot for index in a path-copied version
// of ref, building a spine through any empty slot on the way down. ref must
// be an interior node with room for the leaf.
func appendLeafNode[T comparable](ref nodeRef[T], shift int, index int, leaf *leafNode[T]) nodeRef[T] {
	slot := (index >> shift) & branchingFactorMask
	children := ref.interior.childArray()

	// Lowest interior level: the leaf lands directly in the target slot.
	if shift == lowestInteriorShift {
		children[slot] = leafRef(leaf)
		return interiorRef(newInteriorNode(children))
	}

	if child := children[slot]; child.isEmpty() {
		children[slot] = newPath(shift-branchingFactorShift, leaf)
	} else {
		children[slot] = appendLeafNode(child, shift-branchingFactorShift, index, leaf)
	}
	return interiorRef(newInteriorNode(children))
}

// newPath builds a spine: a chain of interior nodes with a single occupied
// slot each, of depth shift/branchingFactorShift, terminating in leaf.
func newPath[T comparable](shift int, leaf *leafNode[T]) nodeRef[T] {
	if shift == leafNodeShift {
		return leafRef(leaf)
	}

	var children [BranchingFactor]nodeRef[T]
	children[0] = newPath(shift-branchingFactorShift, leaf)
	return interiorRef(newInteriorNode(children))
}
