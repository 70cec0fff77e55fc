package worker_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"basegraph.app/hubsync/internal/queue"
	"basegraph.app/hubsync/internal/service"
	"basegraph.app/hubsync/internal/tracker"
	"basegraph.app/hubsync/internal/worker"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeConsumer struct {
	mu       sync.Mutex
	batches  [][]queue.Message
	acked    []string
	requeued []string
	dlq      []string
}

func (c *fakeConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	c.mu.Lock()
	if len(c.batches) > 0 {
		next := c.batches[0]
		c.batches = c.batches[1:]
		c.mu.Unlock()
		return next, nil
	}
	c.mu.Unlock()

	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Millisecond):
	}
	return nil, nil
}

func (c *fakeConsumer) Ack(ctx context.Context, msg queue.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acked = append(c.acked, msg.ID)
	return nil
}

func (c *fakeConsumer) Requeue(ctx context.Context, msg queue.Message, errMsg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requeued = append(c.requeued, msg.ID)
	return nil
}

func (c *fakeConsumer) SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dlq = append(c.dlq, msg.ID)
	return nil
}

func (c *fakeConsumer) snapshot() (acked, requeued, dlq []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.acked...), append([]string(nil), c.requeued...), append([]string(nil), c.dlq...)
}

type fakeBackfill struct {
	mu     sync.Mutex
	owners []string
	err    error
}

func (b *fakeBackfill) Run(ctx context.Context, ownerID string) (*service.BackfillResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.owners = append(b.owners, ownerID)
	if b.err != nil {
		return nil, b.err
	}
	return &service.BackfillResult{OwnerID: ownerID}, nil
}

func backfillMsg(id string, attempt int) queue.Message {
	return queue.Message{ID: id, TaskType: queue.TaskTypeBackfill, OwnerID: "org_1", Attempt: attempt}
}

var _ = Describe("Worker", func() {
	var (
		consumer *fakeConsumer
		backfill *fakeBackfill
		w        *worker.Worker
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &fakeConsumer{}
		backfill = &fakeBackfill{}
		w = worker.New(consumer, backfill, worker.Config{MaxAttempts: 3})
	})

	It("runs the backfill and acks", func() {
		Expect(w.ProcessMessage(ctx, backfillMsg("1-0", 1))).To(Succeed())
		Expect(backfill.owners).To(Equal([]string{"org_1"}))
		acked, _, _ := consumer.snapshot()
		Expect(acked).To(Equal([]string{"1-0"}))
	})

	It("does not ack a failed backfill", func() {
		backfill.err = tracker.ErrUpstream
		Expect(w.ProcessMessage(ctx, backfillMsg("1-0", 1))).To(MatchError(tracker.ErrUpstream))
		acked, _, _ := consumer.snapshot()
		Expect(acked).To(BeEmpty())
	})

	It("requeues transient failures under the attempt limit", func() {
		w.HandleFailedMessage(ctx, backfillMsg("1-0", 1), tracker.ErrUpstream)
		_, requeued, dlq := consumer.snapshot()
		Expect(requeued).To(Equal([]string{"1-0"}))
		Expect(dlq).To(BeEmpty())
	})

	It("dead-letters once attempts run out", func() {
		w.HandleFailedMessage(ctx, backfillMsg("1-0", 3), tracker.ErrUpstream)
		_, requeued, dlq := consumer.snapshot()
		Expect(requeued).To(BeEmpty())
		Expect(dlq).To(Equal([]string{"1-0"}))
	})

	DescribeTable("dead-letters failures a retry cannot fix",
		func(err error) {
			w.HandleFailedMessage(ctx, backfillMsg("1-0", 1), err)
			_, requeued, dlq := consumer.snapshot()
			Expect(requeued).To(BeEmpty())
			Expect(dlq).To(Equal([]string{"1-0"}))
		},
		Entry("missing integration", service.ErrIntegrationNotFound),
		Entry("disabled integration", service.ErrIntegrationDisabled),
		Entry("rejected key", errors.Join(errors.New("backfilling Team"), tracker.ErrUnauthorized)),
	)

	It("dead-letters unknown task types", func() {
		consumer.batches = [][]queue.Message{{{ID: "2-0", TaskType: "mystery", OwnerID: "org_1", Attempt: 1}}}

		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan error)
		go func() { done <- w.Run(runCtx) }()

		Eventually(func() []string {
			_, _, dlq := consumer.snapshot()
			return dlq
		}).Should(Equal([]string{"2-0"}))

		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})

	It("recovers from a panicking backfill", func() {
		w = worker.New(consumer, panickingBackfill{}, worker.Config{MaxAttempts: 3})
		consumer.batches = [][]queue.Message{{backfillMsg("3-0", 1)}}

		runCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		done := make(chan error)
		go func() { done <- w.Run(runCtx) }()

		Eventually(func() []string {
			_, requeued, _ := consumer.snapshot()
			return requeued
		}).Should(Equal([]string{"3-0"}))

		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})
})

type panickingBackfill struct{}

func (panickingBackfill) Run(ctx context.Context, ownerID string) (*service.BackfillResult, error) {
	panic("boom")
}
