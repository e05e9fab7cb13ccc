package config

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// LoadHeaderFile reads a YAML mapping of header name to value and returns
// the rows in file order as [name, value] pairs.
//
//	Accept: "*/*"
//	User-Agent: my-client/1.0
func LoadHeaderFile(fs afero.Fs, path string) ([][]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read header file: %w", err)
	}

	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse header file %s: %w", path, err)
	}

	pairs := make([][]string, 0, len(doc))
	for _, item := range doc {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("header name %v in %s is not a string", item.Key, path)
		}
		pairs = append(pairs, []string{name, fmt.Sprint(item.Value)})
	}
	return pairs, nil
}
