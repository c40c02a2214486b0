package pipeline

import (
	"context"
	"sort"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(StageTestSuite))

type StageTestSuite struct{}

func (s StageTestSuite) TestFIFO(c *gc.C) {
	stages := make([]StageRunner, 10)
	for i := 0; i < len(stages); i++ {
		stages[i] = FIFO(makePassthroughProcessor())
	}

	src := &sourceStub{data: intPayloads(3)}
	sink := new(sinkStub)

	err := New(stages...).Process(context.TODO(), src, sink)
	c.Assert(err, gc.IsNil)
	c.Assert(sink.data, gc.DeepEquals, src.data)
	assertAllProcessed(c, src.data)
}

func (s StageTestSuite) TestFIFODropsNilPayloads(c *gc.C) {
	dropOdd := ProcessorFunc(func(_ context.Context, p Payload) (Payload, error) {
		if p.(*intPayload).val%2 == 1 {
			return nil, nil
		}
		return p, nil
	})

	src := &sourceStub{data: intPayloads(6)}
	sink := new(sinkStub)

	err := New(FIFO(dropOdd)).Process(context.TODO(), src, sink)
	c.Assert(err, gc.IsNil)
	c.Assert(sink.data, gc.DeepEquals, []Payload{src.data[0], src.data[2], src.data[4]})
	assertAllProcessed(c, src.data)
}

func (s StageTestSuite) TestFixedWorkerPool(c *gc.C) {
	numWorkers := 8
	src := &sourceStub{data: intPayloads(numWorkers * 4)}
	sink := new(sinkStub)

	err := New(FixedWorkerPool(makePassthroughProcessor(), numWorkers)).Process(context.TODO(), src, sink)
	c.Assert(err, gc.IsNil)

	got := make([]int, 0, len(sink.data))
	for _, p := range sink.data {
		got = append(got, p.(*intPayload).val)
	}
	sort.Ints(got)
	for i, val := range got {
		c.Assert(val, gc.Equals, i)
	}
	c.Assert(got, gc.HasLen, len(src.data))
	assertAllProcessed(c, src.data)
}

func (s StageTestSuite) TestFixedWorkerPoolErrorHandling(c *gc.C) {
	failing := ProcessorFunc(func(context.Context, Payload) (Payload, error) {
		return nil, xerrors.New("boom")
	})

	src := &sourceStub{data: intPayloads(10)}
	err := New(FixedWorkerPool(failing, 3)).Process(context.TODO(), src, new(sinkStub))
	c.Assert(err, gc.ErrorMatches, "(?s).*pipeline stage 0: boom.*")
}

func (s StageTestSuite) TestFixedWorkerPoolPanicsWithoutWorkers(c *gc.C) {
	c.Assert(func() { FixedWorkerPool(makePassthroughProcessor(), 0) }, gc.PanicMatches, "FixedWorkerPool: numWorkers must be > 0")
}

func makePassthroughProcessor() Processor {
	return ProcessorFunc(func(_ context.Context, p Payload) (Payload, error) {
		return p, nil
	})
}
