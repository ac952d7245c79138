// Package tracker implements the mutation operations of the OKR tracker:
// validation, lifecycle rules, and the write paths for every entity. Reads
// that need aggregation live in the dashboard package instead.
package tracker

import (
	"go.uber.org/zap"

	"github.com/oselo/compass/internal/store"
)

// Services bundles one service per screen area, all sharing the same store.
type Services struct {
	Cycles       *Cycles
	Objectives   *Objectives
	KeyResults   *KeyResults
	Initiatives  *Initiatives
	WorkItems    *WorkItems
	Evidence     *EvidenceService
	Risks        *Risks
	Dependencies *Dependencies
	Budget       *Budget
	Decisions    *Decisions
	Org          *Org
	Resolver     *Resolver
}

// NewServices wires every tracker service onto the given store.
func NewServices(st store.Store, logger *zap.Logger) *Services {
	resolver := NewResolver(st)
	return &Services{
		Cycles:       &Cycles{store: st, logger: logger},
		Objectives:   &Objectives{store: st},
		KeyResults:   &KeyResults{store: st},
		Initiatives:  &Initiatives{store: st},
		WorkItems:    &WorkItems{store: st},
		Evidence:     &EvidenceService{store: st},
		Risks:        &Risks{store: st},
		Dependencies: &Dependencies{store: st},
		Budget:       &Budget{store: st},
		Decisions:    &Decisions{store: st},
		Org:          &Org{store: st},
		Resolver:     resolver,
	}
}
