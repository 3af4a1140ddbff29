package loader

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"assetmerge/internal/domain"
)

// ParseYAML decodes a YAML list of flat mappings. The node API is used
// instead of plain unmarshalling because Go maps would scramble the key
// order that downstream extraction depends on.
func ParseYAML(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseError("yaml", err)
	}

	table := &Table{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return table, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, parseError("yaml", fmt.Errorf("expected top-level list, got %s", nodeKind(root)))
	}

	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, parseError("yaml", fmt.Errorf("expected mapping list item, got %s", nodeKind(item)))
		}

		row := domain.NewRow()
		for i := 0; i+1 < len(item.Content); i += 2 {
			keyNode, valNode := item.Content[i], item.Content[i+1]
			key := strings.TrimSpace(keyNode.Value)
			if key == "" {
				continue
			}

			var raw any
			if err := valNode.Decode(&raw); err != nil {
				return nil, parseError("yaml", err)
			}
			row.Set(key, domain.ValueOf(raw))
			table.addColumn(key)
		}
		table.addRow(row)
	}

	return table, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
