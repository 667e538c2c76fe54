package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/jitter"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const listenStatement = "LISTEN " + usecase.OutboxNotifyChannel

// OutboxWorker публикует события из outbox в Kafka.
// Обработка запускается при старте, по NOTIFY и по таймеру.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	logger    logger.Logger
	producer  usecase.MessageProducer
	cfg       *cfg.OutboxCfg
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	dbConnStr string
	mu        sync.Mutex
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	cfg *cfg.OutboxCfg,
	dbConnStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		cfg:       cfg,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	// Запускаем слушатель уведомлений
	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

func (w *OutboxWorker) run(ctx context.Context) {
	// Обрабатываем "остатки" при старте
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Worker stopped by context cancellation")
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		c, err := pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err = c.Exec(ctx, listenStatement); err != nil {
			_ = c.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		conn = c
		w.logger.Infof("Subscribed to '%s' channel", usecase.OutboxNotifyChannel)
		return nil
	}

	defer func() {
		if conn != nil {
			_ = conn.Close(context.Background())
		}
	}()

	for attempt := 0; ; {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		if conn == nil {
			if err := connect(); err != nil {
				delay := jitter.ExponentialBackoff(w.cfg.RetryDelay, w.cfg.MaxRetryDelay, attempt, jitter.DefaultJitter)
				w.logger.Warnf("LISTEN connect failed: %v. Retrying in %s", err, delay)
				attempt++

				if !w.sleep(ctx, delay) {
					return
				}
				continue
			}
			attempt = 0
		}

		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}

			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(ctx)
			conn = nil
			continue
		}

		if notif != nil && notif.Channel == usecase.OutboxNotifyChannel {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		}
	}
}

// drain обрабатывает пачки, пока в outbox остаются события.
// Вызовы из таймера и слушателя сериализуются.
func (w *OutboxWorker) drain(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

// processBatch возвращает false, если продолжать обработку сейчас не нужно:
// outbox пуст или Kafka временно недоступна.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.cfg.BatchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for i, event := range events {
		err := w.processEvent(ctx, event)
		if err == nil {
			if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
				w.logger.Warnf("mark processed failed: %v", err)
			}
			continue
		}

		if isRetryableError(err) {
			w.logger.Warnf("Temporary Kafka failure for event %s, will retry: %v", event.EventID, err)
			// Оставшиеся события пачки вернутся в очередь вместе с текущим
			for _, rest := range events[i:] {
				if err := w.repo.ReturnToPending(ctx, rest.ID); err != nil {
					w.logger.Warnf("return to pending failed: %v", err)
				}
			}
			return false, nil
		}

		w.logger.Errorf(err, "Permanent Kafka failure for event %s", event.EventID)
		if err := w.repo.MarkAsFailed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark failed failed: %v", err)
		}
	}

	return true, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	return w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event))
}

// sleep ждёт d и возвращает false, если воркер остановлен раньше.
func (w *OutboxWorker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-w.stop:
		return false
	case <-timer.C:
		return true
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"leader not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
