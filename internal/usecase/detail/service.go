// Package detail drives the single-hadith view.
package detail

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	"github.com/kailas-cloud/hadithview/internal/usecase/view"
)

// NotFoundMessage is shown when the backend has no hadith with the requested id.
const NotFoundMessage = "Hadith not found."

// Orchestrator owns the detail view state.
type Orchestrator struct {
	api     Getter
	machine *view.Machine[hadith.Detail]
}

// New creates an Idle Orchestrator.
func New(api Getter, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		api:     api,
		machine: view.NewMachine[hadith.Detail]("detail", view.DescribeFailure("Loading hadith", NotFoundMessage), logger),
	}
}

// Load triggers a fetch of hadith id. An id < 1 resets the view and returns nil.
func (o *Orchestrator) Load(id int) view.Fetch {
	if id < 1 {
		o.machine.Reset()
		return nil
	}
	return o.machine.Trigger(func(ctx context.Context) (hadith.Detail, error) {
		d, err := o.api.GetHadith(ctx, id)
		if err != nil {
			return hadith.Detail{}, fmt.Errorf("hadith %d: %w", id, err)
		}
		return d, nil
	})
}

// Run loads id and waits for the outcome.
func (o *Orchestrator) Run(ctx context.Context, id int) view.State[hadith.Detail] {
	if f := o.Load(id); f != nil {
		f(ctx)
	}
	return o.State()
}

// State returns the current view state.
func (o *Orchestrator) State() view.State[hadith.Detail] {
	return o.machine.State()
}
