package pipeline

import (
	"context"
	"fmt"
	"sync"

	gc "gopkg.in/check.v1"
)

type sourceStub struct {
	index int
	data  []Payload
	err   error
}

func (s *sourceStub) Next(context.Context) bool {
	if s.err != nil || s.index == len(s.data) {
		return false
	}
	s.index++
	return true
}

func (s *sourceStub) Payload() Payload { return s.data[s.index-1] }
func (s *sourceStub) Error() error     { return s.err }

type sinkStub struct {
	mu   sync.Mutex
	data []Payload
	err  error
}

func (s *sinkStub) Consume(_ context.Context, p Payload) error {
	s.mu.Lock()
	s.data = append(s.data, p)
	s.mu.Unlock()
	return s.err
}

type intPayload struct {
	mu        sync.Mutex
	processed bool
	val       int
}

func (p *intPayload) MarkAsProcessed() {
	p.mu.Lock()
	p.processed = true
	p.mu.Unlock()
}

func (p *intPayload) String() string { return fmt.Sprint(p.val) }

func intPayloads(numValues int) []Payload {
	out := make([]Payload, numValues)
	for i := 0; i < len(out); i++ {
		out[i] = &intPayload{val: i}
	}
	return out
}

func assertAllProcessed(c *gc.C, payloads []Payload) {
	for i, p := range payloads {
		payload := p.(*intPayload)
		payload.mu.Lock()
		processed := payload.processed
		payload.mu.Unlock()
		c.Assert(processed, gc.Equals, true, gc.Commentf("payload %d not processed", i))
	}
}

// testStage forwards, drops or fails on every payload it receives.
type testStage struct {
	c            *gc.C
	dropPayloads bool
	err          error
}

func (s testStage) Run(ctx context.Context, params StageParams) {
	defer func() {
		s.c.Logf("[stage %d] exiting", params.StageIndex())
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-params.Input():
			if !ok {
				return
			}
			if s.err != nil {
				s.c.Logf("[stage %d] emit error: %v", params.StageIndex(), s.err)
				params.Error() <- s.err
				return
			}

			if s.dropPayloads {
				p.MarkAsProcessed()
				continue
			}

			select {
			case <-ctx.Done():
				return
			case params.Output() <- p:
			}
		}
	}
}
