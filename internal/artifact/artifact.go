// Package artifact writes the per-run files that describe what a run saw and
// did: the dependency map, script metadata, the graph and the run report.
package artifact

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/sqlgridgo/internal/dag"
	"github.com/specialistvlad/sqlgridgo/internal/fsutil"
)

// EncodeDependencies renders the dependency map as YAML with sorted keys.
// Scripts without dependencies map to null.
func EncodeDependencies(deps map[string][]string) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range sortedNames(deps) {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if tables := deps[name]; len(tables) > 0 {
			value = &yaml.Node{Kind: yaml.SequenceNode}
			for _, t := range tables {
				value.Content = append(value.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: t})
			}
		}
		doc.Content = append(doc.Content, key, value)
	}
	if len(doc.Content) == 0 {
		return []byte("{}\n"), nil
	}
	return encode(doc)
}

// WriteDependencies writes EncodeDependencies(deps) to path.
func WriteDependencies(path string, deps map[string][]string) error {
	data, err := EncodeDependencies(deps)
	if err != nil {
		return err
	}
	return write(path, data)
}

// WriteMetadata writes the leading comment block of each script that has
// one. Scripts without comments are left out.
func WriteMetadata(path string, metadata map[string]string) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range sortedNames(metadata) {
		text := metadata[name]
		if text == "" {
			continue
		}
		value := &yaml.Node{Kind: yaml.ScalarNode, Value: text}
		if bytes.ContainsRune([]byte(text), '\n') {
			value.Style = yaml.LiteralStyle
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, value)
	}
	if len(doc.Content) == 0 {
		return write(path, []byte("{}\n"))
	}
	data, err := encode(doc)
	if err != nil {
		return err
	}
	return write(path, data)
}

// WriteGraph renders g as a DOT document to path.
func WriteGraph(path string, g *dag.Graph, style dag.Style) error {
	var buf bytes.Buffer
	if err := g.Render(&buf, style); err != nil {
		return fmt.Errorf("artifact: render graph: %w", err)
	}
	return write(path, buf.Bytes())
}

func encode(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("artifact: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("artifact: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func write(path string, data []byte) error {
	if err := fsutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("artifact: write %s: %w", path, err)
	}
	return nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
