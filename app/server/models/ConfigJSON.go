package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

type configFields Config

// configKeys 是 Config 自己认识的 JSON 键
var configKeys = func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}()

func (c *Config) UnmarshalJSON(data []byte) error {
	var fields configFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		if configKeys[key] {
			delete(raw, key)
		}
	}
	fields.Extra = nil
	if len(raw) > 0 {
		fields.Extra = raw
	}

	*c = Config(fields)
	return nil
}

func (c Config) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(configFields(c))
	if err != nil || len(c.Extra) == 0 {
		return data, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range c.Extra {
		if !configKeys[key] {
			merged[key] = value
		}
	}

	return json.Marshal(merged)
}
