// Package notify доставляет уведомления о выплаченных реферальных комиссиях на внешний webhook.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/service"
	"github.com/fsdevblog/groph-settle/internal/transport/notify/client"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultAPITimeout             = 10 * time.Second
	defaultIdlePause              = 2 * time.Second
	defaultLimitPerIteration uint = 100
	defaultWorkers           uint = 5
	maxBackoffShift               = 5
)

// Processor вычитывает outbox уведомлений и рассылает их пулом воркеров.
type Processor struct {
	client            Client
	svs               Servicer
	l                 *logrus.Entry
	limitPerIteration uint
	workers           uint
	idlePause         time.Duration
}

func NewProcessor(svs Servicer, webhookURL string, l *logrus.Logger) *Processor {
	return &Processor{
		svs:    svs,
		client: client.New(webhookURL),
		l: l.WithFields(logrus.Fields{
			"component": "notify",
			"module":    "processor",
		}),
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
		idlePause:         defaultIdlePause,
	}
}

// SetLimitPerIteration устанавливает кол-во уведомлений, обрабатываемых за одну итерацию.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	p.limitPerIteration = limit
	return p
}

// SetWorkers устанавливает кол-во воркеров, отправляющих уведомления.
func (p *Processor) SetWorkers(workers uint) *Processor {
	if workers > 0 {
		p.workers = workers
	}
	return p
}

// Run обрабатывает outbox в цикле до отмены контекста.
//
// Алгоритм работы:
//  1. Запрашивает через сервисный слой порцию неотправленных уведомлений (не более SetLimitPerIteration).
//  2. Раздает их N воркерам (SetWorkers), каждый отправляет уведомление на webhook.
//  3. Передает результаты в сервисный слой: доставленные помечаются отправленными, остальным растет счетчик попыток.
//
// Если уведомлений нет или произошла ошибка, выжидает паузу с небольшим разбросом.
// Пока доставка подряд не удается, пауза удваивается с каждой итерацией (см. backoffPause).
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"limitPerIteration": p.limitPerIteration,
		"workers":           p.workers,
	}).Info("Starting")

	var failStreak int
	for {
		err := p.process(ctx)
		if err == nil {
			failStreak = 0
			continue
		}

		pause := p.idlePause
		switch {
		case errors.Is(err, ErrDeliveryFailed):
			failStreak++
			pause = backoffPause(p.idlePause, failStreak)
			p.l.WithError(err).WithField("pause", pause).Warn("delivery failed, backing off")
		case errors.Is(err, ErrNoNotifications):
			failStreak = 0
		case ctx.Err() == nil:
			p.l.WithError(err).Error("process error")
		}

		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(jitter(pause, defaultJitterSpread)):
		}
	}
}

// backoffPause возвращает паузу после streak неудачных итераций подряд: base, 2*base, 4*base...
// Рост ограничен сдвигом maxBackoffShift.
func backoffPause(base time.Duration, streak int) time.Duration {
	if streak <= 1 {
		return base
	}
	return base << min(streak-1, maxBackoffShift)
}

// process выполняет одну итерацию: выборка, рассылка, фиксация результатов.
// Возвращает ErrNoNotifications, если отправлять нечего, и ErrDeliveryFailed, если хотя бы одно
// уведомление не доставлено (результаты при этом уже зафиксированы).
func (p *Processor) process(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	notifications, produceErr := p.produce(ctx)
	if produceErr != nil {
		return fmt.Errorf("process: %w", produceErr)
	}

	results := p.runWorkers(ctx, notifications)
	if len(results) == 0 {
		return nil
	}

	var failed int
	deliveries := make([]service.DeliveryResult, len(results))
	for i, result := range results {
		deliveries[i] = service.DeliveryResult{
			NotificationID: result.Notification.ID,
			Error:          result.Error,
		}
		if result.Error != nil {
			failed++
		}
	}

	// Результаты фиксируются даже после отмены ctx, иначе доставленные уведомления уйдут повторно.
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultServiceTimeout)
	defer cancel()

	if err := p.svs.MarkDelivered(reqCtx, deliveries); err != nil {
		return fmt.Errorf("process: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("process: %w: %d of %d", ErrDeliveryFailed, failed, len(deliveries))
	}
	return nil
}

type workerResult struct {
	WorkerID     uint
	Notification *domain.CommissionNotification
	Error        error
}

// runWorkers раздает уведомления воркерам и собирает результаты (fan-out/fan-in).
func (p *Processor) runWorkers(ctx context.Context, notifications []domain.CommissionNotification) []workerResult {
	var taskCh = make(chan *domain.CommissionNotification, len(notifications))
	for i := range notifications {
		taskCh <- &notifications[i]
	}
	close(taskCh)

	var resultCh = make(chan *workerResult, len(notifications))

	wg := new(sync.WaitGroup)
	wg.Add(int(p.workers)) // nolint:gosec
	for i := uint(0); i < p.workers; i++ {
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	var results = make([]workerResult, 0, len(notifications))
	for result := range resultCh {
		l := p.l.WithFields(logrus.Fields{
			"worker":         result.WorkerID,
			"notificationID": result.Notification.ID,
			"commissionID":   result.Notification.CommissionID,
			"attempt":        result.Notification.Attempts + 1,
		})
		if result.Error != nil {
			l.WithError(result.Error).Error("send commission notification")
		} else {
			l.Info("Delivered")
		}
		results = append(results, *result)
	}
	return results
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan *domain.CommissionNotification,
	resultCh chan<- *workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			resultCh <- p.processWorkerTask(ctx, workerID, task)
		}
	}
}

// processWorkerTask отправляет уведомление. На ответ 429 ждет время из заголовка Retry-After и повторяет.
func (p *Processor) processWorkerTask(
	ctx context.Context,
	workerID uint,
	task *domain.CommissionNotification,
) *workerResult {
	result := &workerResult{
		WorkerID:     workerID,
		Notification: task,
	}
	payload := client.Payload{
		EventID:       task.EventID,
		CommissionID:  task.CommissionID,
		ReferrerEmail: task.ReferrerEmail,
		ReferredEmail: task.ReferredEmail,
		Amount:        task.Amount,
		CreatedAt:     task.CreatedAt,
	}

	for {
		reqCtx, cancel := context.WithTimeout(ctx, defaultAPITimeout)
		err := p.client.Send(reqCtx, payload)
		cancel()

		var tooManyReq *client.TooManyRequestError
		if !errors.As(err, &tooManyReq) {
			result.Error = err
			return result
		}

		select {
		case <-ctx.Done():
			result.Error = ctx.Err()
			return result
		case <-time.After(tooManyReq.RetryAfter):
		}
	}
}

// produce получает порцию неотправленных уведомлений. Возвращает ErrNoNotifications, если их нет.
func (p *Processor) produce(ctx context.Context) ([]domain.CommissionNotification, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	notifications, err := p.svs.PendingNotifications(produceCtx, p.limitPerIteration)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	if len(notifications) == 0 {
		return nil, ErrNoNotifications
	}
	return notifications, nil
}
