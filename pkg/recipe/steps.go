package recipe

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/types"
)

// Step is one recipe entry before its plugin is resolved
type Step struct {
	// Index is 1-based
	Index int
	Name  string
	Args  types.Value
	Line  int
}

// ParseSteps reads the steps of a recipe document in order
func ParseSteps(content []byte) ([]Step, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(content))
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrRecipeParse, "recipe is empty")
		}
		return nil, errors.Wrap(err, errors.ErrRecipeParse, "invalid recipe YAML")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errors.New(errors.ErrRecipeParse, "recipe is empty")
		}
		root = root.Content[0]
	}
	root = resolveAlias(root)

	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return nil, errors.New(errors.ErrRecipeParse, "recipe is empty")
	}
	if root.Kind != yaml.SequenceNode {
		return nil, parseError(root, 0, "recipe must be a list of steps")
	}

	steps := make([]Step, 0, len(root.Content))
	for i, item := range root.Content {
		step, err := parseStep(resolveAlias(item), i+1)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(node *yaml.Node, index int) (Step, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) < 2 {
		return Step{}, parseError(node, index, "step must be a mapping of a plugin name to its arguments")
	}
	if len(node.Content) > 2 {
		return Step{}, parseError(node.Content[2], index,
			"step must name exactly one plugin, found extra key %q", node.Content[2].Value)
	}

	key := resolveAlias(node.Content[0])
	if key.Kind != yaml.ScalarNode {
		return Step{}, parseError(key, index, "plugin name must be a scalar")
	}

	args, err := toValue(node.Content[1], index)
	if err != nil {
		return Step{}, err
	}

	return Step{Index: index, Name: key.Value, Args: args, Line: key.Line}, nil
}

func toValue(node *yaml.Node, index int) (types.Value, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return types.Absent(), nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return types.Value{}, parseError(node, index, "%v", err)
			}
			return types.Bool(b), nil
		case "!!int", "!!float":
			return types.Number(node.Value), nil
		default:
			return types.String(node.Value), nil
		}

	case yaml.MappingNode:
		entries := make([]types.Entry, 0, len(node.Content)/2)
		seen := make(map[string]bool, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := resolveAlias(node.Content[i])
			if key.Kind != yaml.ScalarNode {
				return types.Value{}, parseError(key, index, "argument keys must be scalars")
			}
			if seen[key.Value] {
				return types.Value{}, parseError(key, index, "duplicate argument %q", key.Value)
			}
			seen[key.Value] = true
			v, err := toValue(node.Content[i+1], index)
			if err != nil {
				return types.Value{}, err
			}
			entries = append(entries, types.Entry{Key: key.Value, Value: v})
		}
		return types.Map(entries...), nil

	case yaml.SequenceNode:
		items := make([]types.Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := toValue(child, index)
			if err != nil {
				return types.Value{}, err
			}
			items = append(items, v)
		}
		return types.List(items...), nil

	default:
		return types.Value{}, parseError(node, index, "unsupported YAML node")
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func parseError(node *yaml.Node, index int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if index > 0 {
		return errors.Newf(errors.ErrRecipeParse, "step %d (line %d): %s", index, node.Line, msg).
			WithDetail("step", index).
			WithDetail("line", node.Line)
	}
	return errors.Newf(errors.ErrRecipeParse, "line %d: %s", node.Line, msg).
		WithDetail("line", node.Line)
}
