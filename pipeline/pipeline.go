// Package pipeline implements a small, generic multi-stage processing
// pipeline. Payloads are read from a Source, pass through each stage in
// order and end up in a Sink. The first error reported by any part of the
// pipeline shuts the whole pipeline down.
package pipeline

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

type workerParams struct {
	stage int

	inCh  <-chan Payload
	outCh chan<- Payload
	errCh chan<- error
}

func (p *workerParams) StageIndex() int        { return p.stage }
func (p *workerParams) Input() <-chan Payload  { return p.inCh }
func (p *workerParams) Output() chan<- Payload { return p.outCh }
func (p *workerParams) Error() chan<- error    { return p.errCh }

// Pipeline is a sequence of stages.
type Pipeline struct {
	stages []StageRunner
}

// New returns a pipeline whose payloads traverse the given stages in order.
func New(stages ...StageRunner) *Pipeline {
	return &Pipeline{
		stages: stages,
	}
}

/*Process feeds the contents of source through the pipeline stages and
delivers the results to sink. All errors that occurred are returned
aggregated in a multi-error.

Calls to Process block until:
- all data from the source has been processed OR
- an error occurs OR
- the supplied context expires*/
func (p *Pipeline) Process(ctx context.Context, source Source, sink Sink) error {
	var wg sync.WaitGroup
	pCtx, ctxCancelFn := context.WithCancel(ctx)

	// stageCh[i] feeds stage i; the last channel feeds the sink
	stageCh := make([]chan Payload, len(p.stages)+1)
	// room for one error per stage plus the source and the sink
	errCh := make(chan error, len(p.stages)+2)
	for i := 0; i < len(stageCh); i++ {
		stageCh[i] = make(chan Payload)
	}

	for i := 0; i < len(p.stages); i++ {
		wg.Add(1)
		go func(stageIndex int) {
			p.stages[stageIndex].Run(pCtx, &workerParams{
				stage: stageIndex,
				inCh:  stageCh[stageIndex],
				outCh: stageCh[stageIndex+1],
				errCh: errCh,
			})

			// signal the next stage that no more data is coming
			close(stageCh[stageIndex+1])
			wg.Done()
		}(i)
	}

	wg.Add(2)
	go func() {
		sourceWorker(pCtx, source, stageCh[0], errCh)
		close(stageCh[0])
		wg.Done()
	}()

	go func() {
		sinkWorker(pCtx, sink, stageCh[len(stageCh)-1], errCh)
		wg.Done()
	}()

	// monitor: once everything exits, close errCh to end the loop below
	go func() {
		wg.Wait()
		close(errCh)
		ctxCancelFn()
	}()

	var err error
	for pErr := range errCh {
		err = multierror.Append(err, pErr)
		ctxCancelFn()
	}
	return err
}

// sourceWorker iterates the source and publishes each payload to outCh.
func sourceWorker(ctx context.Context, source Source, outCh chan<- Payload, errCh chan<- error) {
	for source.Next(ctx) {
		payload := source.Payload()
		select {
		case outCh <- payload:
		case <-ctx.Done():
			return
		}
	}

	if err := source.Error(); err != nil {
		maybeEmitError(xerrors.Errorf("pipeline source: %w", err), errCh)
	}
}

// sinkWorker hands every payload arriving on inCh to the sink.
func sinkWorker(ctx context.Context, sink Sink, inCh <-chan Payload, errCh chan<- error) {
	for {
		select {
		case payload, ok := <-inCh:
			if !ok {
				return
			}
			if err := sink.Consume(ctx, payload); err != nil {
				maybeEmitError(xerrors.Errorf("pipeline sink: %w", err), errCh)
				return
			}
			payload.MarkAsProcessed()
		case <-ctx.Done():
			return
		}
	}
}
