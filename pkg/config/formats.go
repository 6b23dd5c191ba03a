package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func parseTOML(data []byte) (*File, error) {
	var raw struct {
		Settings Settings        `toml:"settings"`
		Targets  map[string]body `toml:"targets"`
	}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	f := &File{Settings: raw.Settings}
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "targets" {
			f.Targets = append(f.Targets, raw.Targets[key[1]].target(key[1]))
		}
	}
	return f, nil
}

func parseYAML(data []byte) (*File, error) {
	var raw struct {
		Settings Settings  `yaml:"settings"`
		Targets  yaml.Node `yaml:"targets"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	f := &File{Settings: raw.Settings}
	if raw.Targets.Kind == 0 {
		return f, nil
	}
	if raw.Targets.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: targets must be a mapping", raw.Targets.Line)
	}
	for i := 0; i+1 < len(raw.Targets.Content); i += 2 {
		var b body
		if err := raw.Targets.Content[i+1].Decode(&b); err != nil {
			return nil, err
		}
		f.Targets = append(f.Targets, b.target(raw.Targets.Content[i].Value))
	}
	return f, nil
}

func parseJSON(data []byte) (*File, error) {
	var raw struct {
		Settings Settings        `json:"settings"`
		Targets  json.RawMessage `json:"targets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	f := &File{Settings: raw.Settings}
	if len(raw.Targets) == 0 || string(raw.Targets) == "null" {
		return f, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw.Targets))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("targets must be an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		var b body
		if err := dec.Decode(&b); err != nil {
			return nil, err
		}
		f.Targets = append(f.Targets, b.target(tok.(string)))
	}
	return f, nil
}
