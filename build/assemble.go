package build

import (
	"scratchc/common"
	"scratchc/sb3"
	"scratchc/walk"
)

// Assemble wraps a finished block store and symbol table in the project
// envelope: an empty stage plus the single sprite carrying the scripts and
// the materialized variables and lists.
func Assemble(blocks sb3.Store, table *walk.SymbolTable) *sb3.Project {
	sprite := sb3.NewSprite("Sprite1")
	sprite.Blocks = blocks

	for _, name := range table.Variables() {
		sprite.Variables[name] = []interface{}{name, table.VariableInit(name)}
	}

	for _, name := range table.Lists() {
		values := table.ListInit(name)
		if values == nil {
			values = []string{}
		}

		sprite.Lists[name] = []interface{}{name, values}
	}

	// a sprite that says anything renders as text output only
	sprite.Visible = blocks.CountOpcode(sb3.OpLooksSay) == 0

	return &sb3.Project{
		Targets:    []interface{}{sb3.NewStage(), sprite},
		Monitors:   []interface{}{},
		Extensions: []interface{}{},
		Meta: &sb3.Meta{
			SemVer: "3.0.0",
			VM:     "0.2.0",
			Agent:  common.Agent,
		},
	}
}
