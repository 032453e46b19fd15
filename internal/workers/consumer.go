package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"campaign-server/internal/observability"

	kafkago "github.com/segmentio/kafka-go"
)

// ConsumerConfig holds configuration for the Kafka event consumer.
type ConsumerConfig struct {
	Brokers       []string
	ConsumerGroup string
	Topic         string
	NumWorkers    int
	QueueSize     int
	// DrainTimeout bounds how long Stop waits for in-flight events.
	DrainTimeout time.Duration
}

// DefaultConsumerConfig returns defaults for a consumer.
func DefaultConsumerConfig(brokers []string, consumerGroup, topic string) ConsumerConfig {
	return ConsumerConfig{
		Brokers:       brokers,
		ConsumerGroup: consumerGroup,
		Topic:         topic,
		NumWorkers:    5,
		QueueSize:     100,
		DrainTimeout:  30 * time.Second,
	}
}

// committer is the subset of *kafkago.Reader used by workers.
type committer interface {
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type fetchedEvent struct {
	event EventMessage
	msg   kafkago.Message
}

type consumer struct {
	config    ConsumerConfig
	reader    *kafkago.Reader
	commits   committer
	processor EventProcessor
	logger    *observability.Logger

	events chan fetchedEvent

	cancelFetch context.CancelFunc
	done        chan struct{}
	stopping    atomic.Bool
	stopOnce    sync.Once
}

// NewConsumer creates a Kafka consumer that runs processor on
// config.NumWorkers goroutines.
func NewConsumer(config ConsumerConfig, processor EventProcessor, logger *observability.Logger) EventConsumer {
	defaults := DefaultConsumerConfig(nil, "", "")
	if config.NumWorkers <= 0 {
		config.NumWorkers = defaults.NumWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = defaults.DrainTimeout
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.ConsumerGroup,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		StartOffset:    kafkago.FirstOffset,
		CommitInterval: 0,
	})

	return &consumer{
		config:    config,
		reader:    reader,
		commits:   reader,
		processor: processor,
		logger:    logger,
		events:    make(chan fetchedEvent, config.QueueSize),
		done:      make(chan struct{}),
	}
}

func (c *consumer) Start(ctx context.Context) error {
	defer close(c.done)

	// Fetching is cancelled by Stop only, so a cancelled parent context
	// still lets workers finish the queue.
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancelFetch = cancel
	fetchCtx = observability.WithFields(fetchCtx,
		observability.Field{Key: "consumer_group", Value: c.config.ConsumerGroup},
		observability.Field{Key: "topic", Value: c.config.Topic},
		observability.Field{Key: "processor", Value: c.processor.Name()},
	)

	c.logger.Info(fetchCtx, fmt.Sprintf("starting consumer with %d workers", c.config.NumWorkers))

	var wg sync.WaitGroup
	for i := 0; i < c.config.NumWorkers; i++ {
		wg.Add(1)
		go c.worker(fetchCtx, &wg, i)
	}

	c.fetchLoop(fetchCtx)
	close(c.events)

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		c.logger.Info(fetchCtx, "all workers finished")
	case <-time.After(c.config.DrainTimeout):
		c.logger.Warn(fetchCtx, "drain timeout exceeded, in-flight events will be redelivered")
	}

	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			c.logger.Error(fetchCtx, "failed to close kafka reader", err)
		}
	}
	return nil
}

func (c *consumer) fetchLoop(ctx context.Context) {
	for !c.stopping.Load() {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if c.stopping.Load() || ctx.Err() != nil {
				return
			}
			c.logger.Error(ctx, "failed to fetch message from kafka", err)
			time.Sleep(time.Second)
			continue
		}

		var event EventMessage
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error(ctx, "failed to unmarshal event, skipping", err)
			c.commit(ctx, msg)
			continue
		}

		select {
		case c.events <- fetchedEvent{event: event, msg: msg}:
		case <-ctx.Done():
			return
		}
	}
}

func (c *consumer) worker(ctx context.Context, wg *sync.WaitGroup, id int) {
	defer wg.Done()
	ctx = observability.WithFields(ctx, observability.Field{Key: "worker_id", Value: id})

	for e := range c.events {
		eventCtx := observability.WithFields(ctx,
			observability.Field{Key: "event_id", Value: e.event.ID},
			observability.Field{Key: "event_type", Value: e.event.Type},
		)

		err := c.processor.Process(eventCtx, e.event)
		switch {
		case err == nil:
			c.commit(eventCtx, e.msg)
		case IsPermanent(err):
			c.logger.Error(eventCtx, "event rejected, skipping", err)
			c.commit(eventCtx, e.msg)
		default:
			// Left uncommitted for redelivery.
			c.logger.Error(eventCtx, "failed to process event", err)
		}
	}
}

func (c *consumer) commit(ctx context.Context, msg kafkago.Message) {
	if c.commits == nil {
		return
	}
	if err := c.commits.CommitMessages(context.WithoutCancel(ctx), msg); err != nil {
		c.logger.Error(ctx, "failed to commit offset", err)
	}
}

func (c *consumer) Stop() {
	c.stopOnce.Do(func() {
		c.stopping.Store(true)
		if c.cancelFetch != nil {
			c.cancelFetch()
		}
		<-c.done
	})
}
