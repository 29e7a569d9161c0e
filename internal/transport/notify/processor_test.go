package notify

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/service"
	"github.com/fsdevblog/groph-settle/internal/transport/notify/client"
	"github.com/fsdevblog/groph-settle/internal/transport/notify/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type ProcessorTestSuite struct {
	suite.Suite
	processor   *Processor
	mockClient  *mocks.MockClient
	mockService *mocks.MockServicer
	ctrl        *gomock.Controller
}

func (s *ProcessorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.mockClient = mocks.NewMockClient(s.ctrl)
	s.mockService = mocks.NewMockServicer(s.ctrl)

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	s.processor = NewProcessor(s.mockService, "", logger).SetWorkers(2)
	s.processor.client = s.mockClient
}

func (s *ProcessorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func testNotifications() []domain.CommissionNotification {
	return []domain.CommissionNotification{
		{
			ID:            1,
			EventID:       uuid.New(),
			CommissionID:  10,
			ReferrerEmail: "first.referrer@example.com",
			ReferredEmail: "first.owner@example.com",
			Amount:        decimal.NewFromInt(1000),
		},
		{
			ID:            2,
			EventID:       uuid.New(),
			CommissionID:  11,
			ReferrerEmail: "second.referrer@example.com",
			ReferredEmail: "second.owner@example.com",
			Amount:        decimal.RequireFromString("33.34"),
			Attempts:      3,
		},
	}
}

// TestProcess_NoNotifications outbox пуст.
func (s *ProcessorTestSuite) TestProcess_NoNotifications() {
	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), s.processor.limitPerIteration).
		Return([]domain.CommissionNotification{}, nil)

	err := s.processor.process(context.Background())

	s.ErrorIs(err, ErrNoNotifications)
}

func (s *ProcessorTestSuite) TestProcess_ServiceError() {
	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), s.processor.limitPerIteration).
		Return(nil, domain.ErrUnknown)

	err := s.processor.process(context.Background())

	s.ErrorIs(err, domain.ErrUnknown)
}

// TestProcess_MixedResults одно уведомление доставлено, второе нет. Оба результата уходят в сервис.
func (s *ProcessorTestSuite) TestProcess_MixedResults() {
	notifications := testNotifications()

	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), s.processor.limitPerIteration).
		Return(notifications, nil)

	s.mockClient.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload client.Payload) error {
			if payload.CommissionID == 10 {
				s.Equal(notifications[0].EventID, payload.EventID)
				s.Equal("first.referrer@example.com", payload.ReferrerEmail)
				return nil
			}
			return client.NewStatusCodeError(http.StatusBadGateway)
		}).Times(2)

	s.mockService.EXPECT().
		MarkDelivered(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, results []service.DeliveryResult) {
			s.Require().Len(results, 2)
			for _, result := range results {
				switch result.NotificationID {
				case 1:
					s.NoError(result.Error)
				case 2:
					var statusErr *client.StatusCodeError
					s.ErrorAs(result.Error, &statusErr)
				default:
					s.Failf("unexpected notification", "id %d", result.NotificationID)
				}
			}
		}).Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s.ErrorIs(s.processor.process(ctx), ErrDeliveryFailed)
}

// TestProcess_RetryAfter ответ 429 повторяется после паузы из Retry-After.
func (s *ProcessorTestSuite) TestProcess_RetryAfter() {
	notifications := testNotifications()[:1]

	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), s.processor.limitPerIteration).
		Return(notifications, nil)

	gomock.InOrder(
		s.mockClient.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			Return(client.NewTooManyRequestError(10*time.Millisecond)),
		s.mockClient.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			Return(nil),
	)

	s.mockService.EXPECT().
		MarkDelivered(gomock.Any(), []service.DeliveryResult{{NotificationID: 1}}).
		Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s.NoError(s.processor.process(ctx))
}

func (s *ProcessorTestSuite) TestProcess_MarkDeliveredError() {
	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), s.processor.limitPerIteration).
		Return(testNotifications(), nil)
	s.mockClient.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.mockService.EXPECT().
		MarkDelivered(gomock.Any(), gomock.Any()).
		Return(errors.New("commit failed"))

	s.Error(s.processor.process(context.Background()))
}

// TestRun_StopsOnCancel Run завершается после отмены контекста.
func (s *ProcessorTestSuite) TestRun_StopsOnCancel() {
	s.processor.idlePause = 10 * time.Millisecond
	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), gomock.Any()).
		Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.processor.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("processor did not stop")
	}
}

// TestRun_BacksOffOnFailedDelivery при постоянных отказах webhook итерации разнесены паузой,
// которая растет с каждой неудачей, а попытки не сгорают за одну серию.
func (s *ProcessorTestSuite) TestRun_BacksOffOnFailedDelivery() {
	const idlePause = 20 * time.Millisecond
	s.processor.idlePause = idlePause

	notifications := testNotifications()[:1]
	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), gomock.Any()).
		Return(notifications, nil).AnyTimes()
	s.mockClient.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(client.NewStatusCodeError(http.StatusBadGateway)).AnyTimes()

	var (
		mu    sync.Mutex
		marks []time.Time
	)
	s.mockService.EXPECT().
		MarkDelivered(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ []service.DeliveryResult) {
			mu.Lock()
			defer mu.Unlock()
			marks = append(marks, time.Now())
		}).Return(nil).AnyTimes()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	s.processor.Run(ctx)

	mu.Lock()
	defer mu.Unlock()

	// без паузы за 200ms было бы исчерпано domain.MaxNotificationAttempts попыток.
	s.Require().NotEmpty(marks)
	s.Less(len(marks), int(domain.MaxNotificationAttempts))

	minGap := time.Duration(float64(idlePause) * (1 - defaultJitterSpread))
	for i := 1; i < len(marks); i++ {
		gap := marks[i].Sub(marks[i-1])
		s.GreaterOrEqual(gap, minGap*time.Duration(1<<(i-1)), "gap %d", i)
	}
}

func TestBackoffPause(t *testing.T) {
	base := 2 * time.Second

	cases := []struct {
		streak int
		want   time.Duration
	}{
		{streak: 0, want: base},
		{streak: 1, want: base},
		{streak: 2, want: 2 * base},
		{streak: 3, want: 4 * base},
		{streak: maxBackoffShift + 1, want: base << maxBackoffShift},
		{streak: 100, want: base << maxBackoffShift},
	}
	for _, tc := range cases {
		if got := backoffPause(base, tc.streak); got != tc.want {
			t.Errorf("backoffPause(%s, %d) = %s, want %s", base, tc.streak, got, tc.want)
		}
	}
}
