package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (*Collection, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	c := NewCollection()
	// An empty document is an empty dataset.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return c, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level: %w", ErrNotMapping)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		rec, err := decodeYAMLRecord(resolveAlias(root.Content[i+1]))
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", key, err)
		}
		c.Put(key, rec)
	}
	return c, nil
}

func decodeYAMLRecord(node *yaml.Node) (*Record, error) {
	if node.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	// Field values stay as nodes so untouched fields are written back with
	// their source tag and style.
	rec := NewRecord()
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := resolveAlias(node.Content[i+1])
		var discard any
		if err := value.Decode(&discard); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		rec.Set(name, value)
	}
	return rec, nil
}

// yamlValue decodes a field node into plain Go values for JSON output.
func yamlValue(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// yamlText returns a field node as display text. Scalars keep their source
// spelling; ok is false for null.
func yamlText(n *yaml.Node) (text string, ok bool) {
	if n.Kind == yaml.ScalarNode {
		if n.ShortTag() == "!!null" {
			return "", false
		}
		return n.Value, true
	}
	v, err := yamlValue(n)
	if err != nil {
		return n.Value, true
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v), true
	}
	return string(b), true
}

func yamlBool(n *yaml.Node) (value bool, ok bool) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" {
		return false, false
	}
	if err := n.Decode(&value); err != nil {
		return false, false
	}
	return value, true
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func encodeYAML(w io.Writer, c *Collection) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range c.keys {
		recNode, err := encodeYAMLRecord(c.records[key])
		if err != nil {
			return fmt.Errorf("record %q: %w", key, err)
		}
		root.Content = append(root.Content, stringNode(key), recNode)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func encodeYAMLRecord(r *Record) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range r.names {
		if src, ok := r.fields[name].(*yaml.Node); ok {
			node.Content = append(node.Content, stringNode(name), src)
			continue
		}
		value := &yaml.Node{}
		if err := value.Encode(r.fields[name]); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		node.Content = append(node.Content, stringNode(name), value)
	}
	return node, nil
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
