package domain

import (
	"fmt"
	"strings"
)

// ModelInfo describes one selectable model.
type ModelInfo struct {
	Name     string `json:"name" yaml:"name"`   // unique id sent to the provider
	Label    string `json:"label" yaml:"label"` // display text
	Provider string `json:"provider" yaml:"provider"`
}

// Validate checks that the identifying fields are present.
func (m ModelInfo) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("model name is required")
	}
	if strings.TrimSpace(m.Provider) == "" {
		return fmt.Errorf("provider is required for model %q", m.Name)
	}
	return nil
}

// DisplayLabel returns Label, falling back to Name.
func (m ModelInfo) DisplayLabel() string {
	if m.Label != "" {
		return m.Label
	}
	return m.Name
}

// Group is the set of models that share a provider.
type Group struct {
	Provider string
	Models   []ModelInfo
}

// Selection is a chosen model/provider pair.
type Selection struct {
	Model    string `json:"model"`
	Provider string `json:"provider"`
}

// Matches reports whether m is the selected model.
func (s Selection) Matches(m ModelInfo) bool {
	return s.Model == m.Name && s.Provider == m.Provider
}

// Filter returns the models whose provider or label contains query,
// ignoring case. An empty query returns models unchanged.
func Filter(models []ModelInfo, query string) []ModelInfo {
	if query == "" {
		return models
	}
	q := strings.ToLower(query)

	out := make([]ModelInfo, 0, len(models))
	for _, m := range models {
		if strings.Contains(strings.ToLower(m.Provider), q) || strings.Contains(strings.ToLower(m.Label), q) {
			out = append(out, m)
		}
	}
	return out
}

// GroupByProvider groups models by provider, in the order each provider is
// first seen.
func GroupByProvider(models []ModelInfo) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, m := range models {
		i, ok := index[m.Provider]
		if !ok {
			i = len(groups)
			index[m.Provider] = i
			groups = append(groups, Group{Provider: m.Provider})
		}
		groups[i].Models = append(groups[i].Models, m)
	}
	return groups
}

// Merge concatenates the lists in argument order.
func Merge(lists ...[]ModelInfo) []ModelInfo {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]ModelInfo, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Find returns the model with the given name and provider.
func Find(models []ModelInfo, name, provider string) (ModelInfo, bool) {
	for _, m := range models {
		if m.Name == name && m.Provider == provider {
			return m, true
		}
	}
	return ModelInfo{}, false
}
