// Package apikey supplies the Ticketmaster API key to the API clients.
package apikey

import (
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
)

// APIKeyProvider returns the API key, or false when none is configured.
type APIKeyProvider interface {
	APIKey() (string, bool)
}

// StaticProvider always returns the same key.
type StaticProvider string

func (p StaticProvider) APIKey() (string, bool) {
	key := strings.TrimSpace(string(p))
	return key, key != ""
}

// EnvProvider reads the key from an environment variable.
type EnvProvider struct {
	Variable string
}

func NewEnvProvider(variable string) *EnvProvider {
	return &EnvProvider{Variable: variable}
}

func (p *EnvProvider) APIKey() (string, bool) {
	return StaticProvider(os.Getenv(p.Variable)).APIKey()
}

// FileProvider reads a JSON object of string values from disk and returns the
// value stored under the first key in lexical order.
type FileProvider struct {
	Path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

func (p *FileProvider) APIKey() (string, bool) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		log.Printf("[FileProvider] Could not read api key file %q: %v", p.Path, err)
		return "", false
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		log.Printf("[FileProvider] Could not parse api key file %q: %v", p.Path, err)
		return "", false
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if key, ok := StaticProvider(values[k]).APIKey(); ok {
			return key, true
		}
	}
	return "", false
}

// Chain tries each provider in order and returns the first key found.
type Chain []APIKeyProvider

func (c Chain) APIKey() (string, bool) {
	for _, p := range c {
		if key, ok := p.APIKey(); ok {
			return key, true
		}
	}
	return "", false
}
