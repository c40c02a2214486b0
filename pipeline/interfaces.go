package pipeline

import "context"

// Payload is implemented by values that travel through a pipeline.
type Payload interface {
	// MarkAsProcessed is invoked by the pipeline once the payload reaches
	// the sink or is dropped by a stage.
	MarkAsProcessed()
}

// Processor is implemented by types that transform payloads inside a stage.
type Processor interface {
	// Process operates on the input payload and returns the payload to
	// forward to the next stage. Returning a nil payload drops it.
	Process(context.Context, Payload) (Payload, error)
}

// ProcessorFunc is an adapter to allow the use of plain functions as
// Processor instances. If f is a function with the appropriate signature,
// ProcessorFunc(f) is a Processor that calls f.
type ProcessorFunc func(context.Context, Payload) (Payload, error)

// Process calls f(ctx, p).
func (f ProcessorFunc) Process(ctx context.Context, p Payload) (Payload, error) {
	return f(ctx, p)
}

// StageRunner is implemented by types that can be strung together to form a
// multi-stage pipeline.
type StageRunner interface {
	/*Run reads payloads from the stage input, processes them and writes
	the results to the stage output.

	Calls to Run block until:
	- the stage input channel is closed OR
	- the provided context expires OR
	- an error occurs while processing payloads*/
	Run(context.Context, StageParams)
}

// StageParams carries the channels a stage reads from and writes to.
type StageParams interface {
	// StageIndex returns the position of the stage in the pipeline.
	StageIndex() int

	// Input returns the channel the stage reads payloads from.
	Input() <-chan Payload

	// Output returns the channel the stage writes payloads to.
	Output() chan<- Payload

	// Error returns the channel for reporting processing errors.
	Error() chan<- error
}

// Source is implemented by types that generate the pipeline input.
type Source interface {
	// Next fetches the next payload. It returns false when the source is
	// exhausted or fails.
	Next(context.Context) bool

	// Payload returns the payload fetched by the last call to Next.
	Payload() Payload

	// Error returns the last error observed by the source.
	Error() error
}

// Sink is implemented by types that consume the pipeline output.
type Sink interface {
	// Consume processes a payload emitted by the last stage.
	Consume(context.Context, Payload) error
}
