package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/me/schedsim/pkg/sched"
)

// Scenario is a YAML-described simulation: a process set plus the policy
// and tunables to run it under. It is the file format consumed by the CLI
// and emitted by the sampler.
type Scenario struct {
	Label     string               `yaml:"label,omitempty"`
	Policy    string               `yaml:"policy"`
	Config    sched.Config         `yaml:",inline"`
	AgingExpr string               `yaml:"aging_expr,omitempty"`
	Processes []sched.ProcessInput `yaml:"processes"`
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return DecodeScenario(f)
}

// DecodeScenario decodes a scenario from YAML. Missing tunables fall back
// to the simulator defaults.
func DecodeScenario(r io.Reader) (*Scenario, error) {
	s := &Scenario{Config: sched.DefaultConfig()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return s, nil
}

// ResolvePolicy parses the scenario's policy name.
func (s *Scenario) ResolvePolicy() (sched.Policy, error) {
	return sched.ParsePolicy(s.Policy)
}

// Encode writes the scenario as YAML.
func (s *Scenario) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	return enc.Close()
}
