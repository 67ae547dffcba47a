package fst

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

type buildNode struct {
	children map[byte]*buildNode
	final    bool
	finalOut Output
}

// Builder assembles a transducer from key/output pairs and freezes it
// into its serialized image. Keys may be added in any order; duplicate
// keys are rejected. This builder keeps each key's output entirely on
// its final node, so arc outputs stay at the monoid identity.
type Builder struct {
	outs Outputs
	root *buildNode
	keys int
}

func NewBuilder(outs Outputs) *Builder {
	return &Builder{
		outs: outs,
		root: &buildNode{children: make(map[byte]*buildNode)},
	}
}

// Add inserts one key with its output.
func (b *Builder) Add(key []byte, out Output) error {
	if len(key) == 0 {
		return errors.New("fst: cannot add empty key")
	}
	n := b.root
	for _, label := range key {
		child := n.children[label]
		if child == nil {
			child = &buildNode{children: make(map[byte]*buildNode)}
			n.children[label] = child
		}
		n = child
	}
	if n.final {
		return fmt.Errorf("fst: duplicate key % x", key)
	}
	n.final = true
	n.finalOut = out
	b.keys++
	return nil
}

// Len returns the number of keys added so far.
func (b *Builder) Len() int { return b.keys }

// Finish freezes the build trie into its serialized image and returns
// the ready-to-traverse transducer. The builder must not be reused
// afterwards.
func (b *Builder) Finish() (*FST, error) {
	if b.root == nil {
		return nil, errors.New("fst: builder already finished")
	}
	image := make([]byte, 0, 16*b.keys)
	root := emitNode(b.root, &image)
	b.root = nil
	return newFST(image, root, b.outs)
}

// emitNode serializes n's subtree, children first, and returns n's
// image offset.
func emitNode(n *buildNode, image *[]byte) uint64 {
	labels := sortedLabels(n.children)
	targets := make([]uint64, len(labels))
	for i, label := range labels {
		targets[i] = emitNode(n.children[label], image)
	}
	off := uint64(len(*image))
	flags := byte(0)
	if n.final {
		flags |= nodeFinal
	}
	*image = append(*image, flags)
	if n.final {
		*image = binary.AppendUvarint(*image, uint64(n.finalOut))
	}
	*image = binary.AppendUvarint(*image, uint64(len(labels)))
	for i, label := range labels {
		*image = append(*image, label)
		*image = binary.AppendUvarint(*image, 0) // arc output: identity
		*image = binary.AppendUvarint(*image, targets[i])
	}
	return off
}

func sortedLabels(children map[byte]*buildNode) []byte {
	labels := make([]byte, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}
