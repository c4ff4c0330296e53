package config

import (
	"gopkg.in/yaml.v3"
)

// yaml.v3 does not look at encoding.TextUnmarshaler, so enum fields need
// explicit yaml hooks on top of what go-enum generates.

func (x IndexFmt) MarshalYAML() (any, error) {
	return x.String(), nil
}

func (x *IndexFmt) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	return x.UnmarshalText([]byte(name))
}

func (x PageFmt) MarshalYAML() (any, error) {
	return x.String(), nil
}

func (x *PageFmt) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	return x.UnmarshalText([]byte(name))
}
