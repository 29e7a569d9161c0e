package service

import (
	"context"
	"testing"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/fsdevblog/groph-settle/internal/service/mocks"
	"github.com/fsdevblog/groph-settle/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-settle/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockCtrl             *gomock.Controller
	mockUOW              *uowmocks.MockUOW
	mockTX               *uowmocks.MockTX
	mockRequestRepo      *mocks.MockTransactionRequestRepository
	mockAccountRepo      *mocks.MockAccountRepository
	mockLedgerRepo       *mocks.MockReferralLedgerRepository
	mockNotificationRepo *mocks.MockNotificationRepository
	settlementService    *SettlementService
}

func TestSettlementServiceSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}

func (s *SettlementServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockRequestRepo = mocks.NewMockTransactionRequestRepository(s.mockCtrl)
	s.mockAccountRepo = mocks.NewMockAccountRepository(s.mockCtrl)
	s.mockLedgerRepo = mocks.NewMockReferralLedgerRepository(s.mockCtrl)
	s.mockNotificationRepo = mocks.NewMockNotificationRepository(s.mockCtrl)

	// Репозитории, которые сервис получает из транзакции uow.
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.TransactionRequestRepoName)).
		Return(s.mockRequestRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.ReferralLedgerRepoName)).
		Return(s.mockLedgerRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.NotificationRepoName)).
		Return(s.mockNotificationRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	s.settlementService = NewSettlementService(s.mockUOW, logger)
}

func (s *SettlementServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *SettlementServiceTestSuite) pendingRequest() *domain.TransactionRequest {
	return &domain.TransactionRequest{
		ID:        42,
		Kind:      domain.TransactionKindGiftCardExchange,
		AccountID: 7,
		Amount:    decimal.RequireFromString("2500.55"),
		Status:    domain.TransactionStatusPending,
	}
}

// TestSettle_ApproveOrder проверяет порядок операций при одобрении с найденным реферером.
func (s *SettlementServiceTestSuite) TestSettle_ApproveOrder() {
	request := s.pendingRequest()
	owner := &domain.Account{ID: 7, Email: "owner@example.com", ReferrerEmail: " Referrer@Example.com "}
	referrer := &domain.Account{ID: 9, Email: "referrer@example.com"}
	commission := decimal.RequireFromString("250.06")

	gomock.InOrder(
		s.mockRequestRepo.EXPECT().GetForUpdate(gomock.Any(), request.ID).Return(request, nil),
		s.mockAccountRepo.EXPECT().GetOwnerInfo(gomock.Any(), owner.ID).Return(owner, nil),
		s.mockRequestRepo.EXPECT().
			UpdateStatus(gomock.Any(), request.ID, domain.TransactionStatusApproved).
			Return(nil),
		s.mockAccountRepo.EXPECT().
			CreditBalance(gomock.Any(), owner.ID, request.Amount).
			Return(decimal.RequireFromString("2500.55"), nil),
		s.mockAccountRepo.EXPECT().FindByEmail(gomock.Any(), "Referrer@Example.com").Return(referrer, nil),
		s.mockAccountRepo.EXPECT().
			CreditBalance(gomock.Any(), referrer.ID, decimalEq(commission)).
			Return(commission, nil),
		s.mockLedgerRepo.EXPECT().
			RecordCommission(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, args repoargs.CommissionCreate) (*domain.CommissionRecord, error) {
				s.Equal(referrer.ID, args.ReferrerID)
				s.Equal(owner.ID, args.ReferredID)
				s.Equal(request.ID, args.TransactionID)
				s.Equal(domain.CommissionStatusPaid, args.Status)
				s.True(commission.Equal(args.Amount))
				return &domain.CommissionRecord{ID: 100, Amount: args.Amount}, nil
			}),
		s.mockLedgerRepo.EXPECT().
			LogActivity(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, args repoargs.ReferralActivityCreate) {
				s.Equal(domain.ActivityCommissionPaid, args.ActivityType)
				s.Require().NotNil(args.ReferrerID)
				s.Equal(referrer.ID, *args.ReferrerID)
			}).Return(nil),
		s.mockNotificationRepo.EXPECT().
			Enqueue(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, args repoargs.NotificationCreate) {
				s.Equal(int64(100), args.CommissionID)
				s.Equal(referrer.Email, args.ReferrerEmail)
				s.Equal(owner.Email, args.ReferredEmail)
				s.NotEmpty(args.EventID.String())
			}).Return(nil),
	)

	result, err := s.settlementService.Settle(context.Background(), SettleArgs{TransactionID: request.ID, Status: "Approved"})
	s.Require().NoError(err)
	s.True(result.ReferralProcessed)
	s.Equal("250.06", result.CommissionAmount.StringFixed(domain.CommissionScale))
}

// TestSettle_ReferrerResolvesToOwner реферальный email принадлежит самому владельцу, хотя и не совпадает
// с его email посимвольно.
func (s *SettlementServiceTestSuite) TestSettle_ReferrerResolvesToOwner() {
	request := s.pendingRequest()
	owner := &domain.Account{ID: 7, Email: "owner@example.com", ReferrerEmail: "alias@example.com"}

	s.mockRequestRepo.EXPECT().GetForUpdate(gomock.Any(), request.ID).Return(request, nil)
	s.mockAccountRepo.EXPECT().GetOwnerInfo(gomock.Any(), owner.ID).Return(owner, nil)
	s.mockRequestRepo.EXPECT().UpdateStatus(gomock.Any(), request.ID, domain.TransactionStatusApproved).Return(nil)
	s.mockAccountRepo.EXPECT().CreditBalance(gomock.Any(), owner.ID, request.Amount).Return(request.Amount, nil)
	s.mockAccountRepo.EXPECT().FindByEmail(gomock.Any(), "alias@example.com").Return(owner, nil)
	s.mockLedgerRepo.EXPECT().
		RecordFailedReferral(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, args repoargs.FailedReferralCreate) {
			s.Equal(string(domain.ReferralReasonSelfReferral), args.Error)
			s.Equal("alias@example.com", args.ReferrerEmail)
		}).Return(nil)
	s.mockLedgerRepo.EXPECT().
		LogActivity(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, args repoargs.ReferralActivityCreate) {
			s.Equal(domain.ActivityCommissionFailed, args.ActivityType)
			s.Nil(args.ReferrerID)
		}).Return(nil)

	result, err := s.settlementService.Settle(context.Background(), SettleArgs{TransactionID: request.ID, Status: "Approved"})
	s.Require().NoError(err)
	s.False(result.ReferralProcessed)
	s.Equal(string(domain.ReferralReasonSelfReferral), result.ReferralNote)
}

// TestSettle_DeclineSkipsBalances отклонение не трогает балансы и реферальную часть.
func (s *SettlementServiceTestSuite) TestSettle_DeclineSkipsBalances() {
	request := s.pendingRequest()
	owner := &domain.Account{ID: 7, Email: "owner@example.com"}

	s.mockRequestRepo.EXPECT().GetForUpdate(gomock.Any(), request.ID).Return(request, nil)
	s.mockAccountRepo.EXPECT().GetOwnerInfo(gomock.Any(), owner.ID).Return(owner, nil)
	s.mockRequestRepo.EXPECT().UpdateStatus(gomock.Any(), request.ID, domain.TransactionStatusDeclined).Return(nil)

	result, err := s.settlementService.Settle(context.Background(), SettleArgs{TransactionID: request.ID, Status: "Declined"})
	s.Require().NoError(err)
	s.Equal(domain.TransactionStatusDeclined, result.Status)
	s.False(result.ReferralProcessed)
}

func (s *SettlementServiceTestSuite) TestSettle_ErrorMapping() {
	cases := []struct {
		name    string
		prepare func()
		wantErr error
	}{
		{
			name: "request not found",
			prepare: func() {
				s.mockRequestRepo.EXPECT().GetForUpdate(gomock.Any(), int64(42)).
					Return(nil, domain.ErrRecordNotFound)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "already approved",
			prepare: func() {
				request := s.pendingRequest()
				request.Status = domain.TransactionStatusApproved
				s.mockRequestRepo.EXPECT().GetForUpdate(gomock.Any(), int64(42)).Return(request, nil)
			},
			wantErr: domain.ErrAlreadySettled,
		},
		{
			name: "owner missing",
			prepare: func() {
				s.mockRequestRepo.EXPECT().GetForUpdate(gomock.Any(), int64(42)).Return(s.pendingRequest(), nil)
				s.mockAccountRepo.EXPECT().GetOwnerInfo(gomock.Any(), int64(7)).
					Return(nil, domain.ErrRecordNotFound)
			},
			wantErr: domain.ErrOwnerNotFound,
		},
		{
			name: "storage failure",
			prepare: func() {
				s.mockRequestRepo.EXPECT().GetForUpdate(gomock.Any(), int64(42)).Return(s.pendingRequest(), nil)
				s.mockAccountRepo.EXPECT().GetOwnerInfo(gomock.Any(), int64(7)).
					Return(&domain.Account{ID: 7}, nil)
				s.mockRequestRepo.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.TransactionStatusApproved).
					Return(domain.ErrUnknown)
			},
			wantErr: domain.ErrPersistenceFailure,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			tc.prepare()
			result, err := s.settlementService.Settle(context.Background(), SettleArgs{TransactionID: 42, Status: "Approved"})
			s.Require().ErrorIs(err, tc.wantErr)
			s.Nil(result)
		})
	}
}

// TestSettle_ValidationBeforeStorage некорректные аргументы отклоняются без открытия транзакции.
func (s *SettlementServiceTestSuite) TestSettle_ValidationBeforeStorage() {
	ctrl := gomock.NewController(s.T())
	strictUOW := uowmocks.NewMockUOW(ctrl)
	strictUOW.EXPECT().Do(gomock.Any(), gomock.Any()).Times(0)

	svc := NewSettlementService(strictUOW, logrus.New())

	_, err := svc.Settle(context.Background(), SettleArgs{TransactionID: 1, Status: "Approve"})
	s.Require().ErrorIs(err, domain.ErrInvalidStatus)

	_, err = svc.Settle(context.Background(), SettleArgs{TransactionID: -1, Status: "Approved"})
	s.Require().ErrorIs(err, domain.ErrMissingParameter)
}

func (s *SettlementServiceTestSuite) TestSettle_RepositoryNotRegistered() {
	ctrl := gomock.NewController(s.T())
	tx := uowmocks.NewMockTX(ctrl)
	tx.EXPECT().Get(gomock.Any()).Return(nil, uow.ErrRepositoryNotRegistered)

	u := uowmocks.NewMockUOW(ctrl)
	u.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, tx)
		})

	svc := NewSettlementService(u, logrus.New())
	_, err := svc.Settle(context.Background(), SettleArgs{TransactionID: 1, Status: "Approved"})
	s.Require().ErrorIs(err, domain.ErrPersistenceFailure)
	s.Require().ErrorIs(err, uow.ErrRepositoryNotRegistered)
}

// decimalMatcher сравнивает decimal.Decimal по значению, без учета внутреннего представления.
type decimalMatcher struct {
	want decimal.Decimal
}

func decimalEq(want decimal.Decimal) gomock.Matcher {
	return decimalMatcher{want: want}
}

func (m decimalMatcher) Matches(x interface{}) bool {
	got, ok := x.(decimal.Decimal)
	return ok && m.want.Equal(got)
}

func (m decimalMatcher) String() string {
	return "is equal to " + m.want.String()
}
