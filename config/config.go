// Package config reads and writes the dendron.yml project file.
package config

import (
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

const DefaultFile = "dendron.yml"

// Project selects which pipeline stages the driver runs and how a directory
// of programs is discovered.
type Project struct {
	Name      string `yaml:"name"`
	Suffix    string `yaml:"suffix"`
	Display   bool   `yaml:"display"`
	Interpret bool   `yaml:"interpret"`
	Compile   bool   `yaml:"compile"`
	Listing   bool   `yaml:"listing"`
	Execute   bool   `yaml:"execute"`
	Symbols   bool   `yaml:"symbols"`
	LogLevel  string `yaml:"log_level"`
}

func Default() Project {
	return Project{
		Suffix:    ".dendron",
		Display:   true,
		Interpret: true,
		Compile:   true,
		Listing:   true,
		Execute:   true,
		Symbols:   true,
		LogLevel:  "WARNING",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Project, error) {
	doc := Default()

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, err
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Default(), err
	}
	return doc, nil
}

// Save writes p to path.
func Save(path string, p Project) error {
	out, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, out, 0644)
}
