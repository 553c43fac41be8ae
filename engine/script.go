package engine

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// DamageInput is what a damage script sees.
type DamageInput struct {
	Level       int
	Power       int
	TargetLevel int
	Roll        int
}

// Script is a compiled damage formula. Scripts read the globals level, power,
// target_level and roll and must define an int global named damage.
type Script struct {
	compiled *tengo.Compiled
}

// scriptInputs are the globals a damage script reads.
var scriptInputs = []string{"level", "power", "target_level", "roll"}

// Compile compiles a damage script once; engines clone it per encounter.
func Compile(src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	if err := declare(script, scriptInputs, 0); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("engine: compile damage script: %w", err)
	}
	if !compiled.IsDefined("damage") {
		return nil, fmt.Errorf("engine: damage script does not define damage")
	}
	return &Script{compiled: compiled}, nil
}

func declare(script *tengo.Script, names []string, value any) error {
	for _, name := range names {
		if err := script.Add(name, value); err != nil {
			return fmt.Errorf("engine: declare %s: %w", name, err)
		}
	}
	return nil
}

func (s *Script) clone() *Script {
	return &Script{compiled: s.compiled.Clone()}
}

// Damage runs the formula. Negative results are clamped to zero.
func (s *Script) Damage(in DamageInput) (int, error) {
	if s == nil || s.compiled == nil {
		return 0, fmt.Errorf("engine: nil damage script")
	}
	vars := []struct {
		name  string
		value int
	}{
		{"level", in.Level},
		{"power", in.Power},
		{"target_level", in.TargetLevel},
		{"roll", in.Roll},
	}
	for _, v := range vars {
		if err := s.compiled.Set(v.name, v.value); err != nil {
			return 0, fmt.Errorf("engine: set %s: %w", v.name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return 0, fmt.Errorf("engine: run damage script: %w", err)
	}
	damage := s.compiled.Get("damage").Int()
	if damage < 0 {
		damage = 0
	}
	return damage, nil
}
