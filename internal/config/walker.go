package config

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/teleios/teleios/internal/logx"
)

// walk mirrors a block-level YAML token stream
// (KEY/SCALAR/BLOCK_MAPPING_START/BLOCK_SEQUENCE_START/BLOCK_ENTRY/BLOCK_END)
// over yaml.v3's already-parsed Node tree: MappingNode stands in for
// KEY+BLOCK_MAPPING_START, SequenceNode for BLOCK_SEQUENCE_START, each
// sequence element for one BLOCK_ENTRY, and leaving a Mapping/Sequence's
// Content for BLOCK_END.
func (c *Config) walk(root *yaml.Node) {
	doc := root
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return
		}

		doc = root.Content[0]
	}

	sequences := make(map[string]int)
	c.walkMapping(doc, nil, sequences, "")
}

func isFlowStyle(n *yaml.Node) bool {
	return n.Style&yaml.FlowStyle != 0
}

// extend returns path with seg appended, always copying so sibling calls
// never observe each other's appends to a shared backing array.
func extend(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg

	return out
}

// walkMapping walks a block mapping. seqPath is the path of the nearest
// enclosing sequence (empty outside any sequence); it is threaded through
// unchanged so every scalar found inside a sequence element, however deeply
// nested, still aggregates into that sequence's own list bucket.
func (c *Config) walkMapping(n *yaml.Node, path []string, sequences map[string]int, seqPath string) {
	if n == nil {
		return
	}

	if n.Kind != yaml.MappingNode {
		logx.Fatalf("config: expected a block mapping at %q (NO_TOKEN)", joinPath(path))

		return
	}

	if isFlowStyle(n) {
		logx.Fatalf("config: flow-style mapping at %q is not supported, block style only", joinPath(path))

		return
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		currentKey := n.Content[i].Value
		valueNode := n.Content[i+1]
		leafPath := extend(path, currentKey)

		switch valueNode.Kind {
		case yaml.MappingNode:
			c.walkMapping(valueNode, leafPath, sequences, seqPath)
		case yaml.SequenceNode:
			c.walkSequence(valueNode, leafPath, sequences)
		case yaml.ScalarNode:
			c.recordScalar(leafPath, valueNode.Value, seqPath)
		default:
			logx.Fatalf("config: unsupported node kind at %q (NO_TOKEN)", joinPath(leafPath))
		}
	}
}

// walkSequence walks a block sequence rooted at path. Every element,
// whatever its kind, is recorded as if its own sequence were the
// innermost enclosing one: joinPath(path) becomes the list-bucket key
// passed down to recordScalar for every scalar found within this
// sequence's elements (a nested sequence further down overrides it for
// its own elements).
func (c *Config) walkSequence(n *yaml.Node, path []string, sequences map[string]int) {
	if isFlowStyle(n) {
		logx.Fatalf("config: flow-style sequence at %q is not supported, block style only", joinPath(path))

		return
	}

	seqPath := joinPath(path)
	seqKey := seqPath + "."

	for _, item := range n.Content {
		idx := sequences[seqKey]
		sequences[seqKey] = idx + 1
		itemPath := extend(path, strconv.Itoa(idx))

		switch item.Kind {
		case yaml.MappingNode:
			c.walkMapping(item, itemPath, sequences, seqPath)
		case yaml.SequenceNode:
			c.walkSequence(item, itemPath, sequences)
		case yaml.ScalarNode:
			c.recordScalar(itemPath, item.Value, seqPath)
		default:
			logx.Fatalf("config: unsupported node kind at %q (NO_TOKEN)", joinPath(itemPath))
		}
	}
}
