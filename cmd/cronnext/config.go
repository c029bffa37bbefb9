package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// scheduleFile is the YAML document read by --file:
//
//	timezone: Europe/Paris
//	schedules:
//	  - name: backup
//	    expression: "0 0 3 * * *"
type scheduleFile struct {
	// Timezone applies when --tz is not given.
	Timezone  string          `yaml:"timezone"`
	Schedules []namedSchedule `yaml:"schedules"`
}

type namedSchedule struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"expression"`
}

// loadScheduleFile reads and checks a schedule file. Entries without a name
// are named after their expression.
func loadScheduleFile(path string) (*scheduleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, s := range file.Schedules {
		if s.Expression == "" {
			return nil, fmt.Errorf("%s: schedule %d (%q) has no expression", path, i, s.Name)
		}
		if s.Name == "" {
			file.Schedules[i].Name = s.Expression
		}
	}
	return &file, nil
}
