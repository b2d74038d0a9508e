package compose

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// secretKeys are the environment entries the Formbricks compose file ships
// without values. Each gets a fresh random value on first run.
var secretKeys = map[string]bool{
	"NEXTAUTH_SECRET": true,
	"ENCRYPTION_KEY":  true,
	"CRON_SECRET":     true,
}

// newSecret returns 32 random bytes, hex encoded.
func newSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// fillSecrets fills empty secret entries in the compose file with fresh
// random values and reports how many were filled. Keys that already carry
// a value are left alone, so repeated runs never rotate credentials out
// from under a live stack. The file is edited as a YAML node tree, which
// keeps comments and the rest of the document intact.
func fillSecrets(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read compose file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("failed to parse compose file: %w", err)
	}

	filled := 0
	if err := fillSecretNodes(&doc, &filled); err != nil {
		return 0, err
	}
	if filled == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return 0, fmt.Errorf("failed to render compose file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("failed to render compose file: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("failed to write compose file: %w", err)
	}
	return filled, nil
}

// fillSecretNodes walks the node tree looking for mapping entries whose key
// is a secret and whose value is empty. Alias nodes are skipped; their
// anchor target is visited where it is defined.
func fillSecretNodes(n *yaml.Node, filled *int) error {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range n.Content {
			if err := fillSecretNodes(child, filled); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if secretKeys[key.Value] && isEmptyScalar(value) {
				secret, err := newSecret()
				if err != nil {
					return err
				}
				value.SetString(secret)
				*filled++
				continue
			}
			if err := fillSecretNodes(value, filled); err != nil {
				return err
			}
		}
	}
	return nil
}

func isEmptyScalar(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && (n.Tag == "!!null" || n.Value == "")
}
