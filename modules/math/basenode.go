package math

import "github.com/vk/nodeprovider/graph"

// BaseNode is the common ancestor of every node in this package.
type BaseNode struct {
	graph.Node
	graph.Abstract
}

// BinaryNode is an operation over two numbers.
type BinaryNode struct {
	BaseNode
	graph.Abstract

	A float64 `slot:"input"`
	B float64 `slot:"input"`
}
