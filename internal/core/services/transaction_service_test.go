package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/apperrors"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-1"

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo      *fakeTxnRepo
	settingsRepo *fakeSettingsRepo
	cache        *fakeReportCache
	service      portssvc.TransactionSvcFacade
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.txnRepo = newFakeTxnRepo()
	s.settingsRepo = newFakeSettingsRepo()
	s.cache = newFakeReportCache()
	s.service = services.NewTransactionService(
		s.txnRepo,
		s.settingsRepo,
		s.cache,
		services.WithUndoWindow(50*time.Millisecond),
	)
}

func createReq(txnType, category, amount, date string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Type:        txnType,
		Description: "ทดสอบ",
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Date:        date,
	}
}

func (s *TransactionServiceTestSuite) TestCreateTransaction() {
	ctx := context.Background()
	txn, notice, err := s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "1000", "2024-03-05"))
	s.Require().NoError(err)
	s.Nil(notice, "no goal configured, no notice")
	s.NotEmpty(txn.TransactionID)
	s.Equal(domain.Income, txn.Type)
	s.Equal(time.March, txn.Date.Month())

	stored, err := s.txnRepo.FindTransactionByID(ctx, testUserID, txn.TransactionID)
	s.Require().NoError(err)
	s.True(stored.Amount.Equal(decimal.NewFromInt(1000)))
	s.Equal(1, s.cache.invalidated, "writes must invalidate cached reports")
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_Validation() {
	ctx := context.Background()

	_, _, err := s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "-5", "2024-03-05"))
	s.Require().ErrorIs(err, apperrors.ErrValidation, "negative amount")

	_, _, err = s.service.CreateTransaction(ctx, testUserID, createReq("income", "ต้นทุนสินค้า", "10", "2024-03-05"))
	s.Require().ErrorIs(err, apperrors.ErrValidation, "expense category on income type")

	_, _, err = s.service.CreateTransaction(ctx, testUserID, createReq("expense", "ไม่ใช่หมวดหมู่", "10", "2024-03-05"))
	s.Require().ErrorIs(err, apperrors.ErrValidation, "unknown category")

	_, _, err = s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "10", "05/03/2024"))
	s.Require().ErrorIs(err, apperrors.ErrValidation, "bad date format")

	s.Equal(0, s.cache.invalidated, "rejected writes must not touch the cache")
}

func (s *TransactionServiceTestSuite) TestGoalNotices() {
	ctx := context.Background()
	s.Require().NoError(s.settingsRepo.SaveMonthlyGoal(ctx, testUserID, decimal.NewFromInt(1000)))

	// Balance 0 -> 500: no crossing.
	_, notice, err := s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "500", "2024-03-05"))
	s.Require().NoError(err)
	s.Nil(notice)

	// 500 -> 1200: crosses the goal upward.
	_, notice, err = s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "700", "2024-03-06"))
	s.Require().NoError(err)
	s.Require().NotNil(notice)
	s.Equal(domain.NoticeGoalReached, notice.Kind)
	s.True(notice.Balance.Equal(decimal.NewFromInt(1200)))

	// 1200 -> 1300: already past the goal, no repeat notice.
	_, notice, err = s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "100", "2024-03-07"))
	s.Require().NoError(err)
	s.Nil(notice)

	// 1300 -> -2100: falls below minus twice the goal.
	_, notice, err = s.service.CreateTransaction(ctx, testUserID, createReq("expense", "ต้นทุนสินค้า", "3400", "2024-03-08"))
	s.Require().NoError(err)
	s.Require().NotNil(notice)
	s.Equal(domain.NoticeLossWarning, notice.Kind)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction() {
	ctx := context.Background()
	txn, _, err := s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "1000", "2024-03-05"))
	s.Require().NoError(err)

	updated, _, err := s.service.UpdateTransaction(ctx, testUserID, txn.TransactionID, createReq("expense", "ค่าขนส่ง", "200", "2024-03-06"))
	s.Require().NoError(err)
	s.Equal(domain.Expense, updated.Type)
	s.True(updated.Amount.Equal(decimal.NewFromInt(200)))

	_, _, err = s.service.UpdateTransaction(ctx, testUserID, "missing", createReq("income", "ขายสินค้า", "10", "2024-03-05"))
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionServiceTestSuite) TestListTransactions_AppliesFilter() {
	ctx := context.Background()
	_, _, err := s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "1000", "2024-03-05"))
	s.Require().NoError(err)
	_, _, err = s.service.CreateTransaction(ctx, testUserID, createReq("expense", "ค่าขนส่ง", "200", "2024-03-06"))
	s.Require().NoError(err)

	all, err := s.service.ListTransactions(ctx, testUserID, domain.TransactionFilter{})
	s.Require().NoError(err)
	s.Len(all, 2)

	expensesOnly, err := s.service.ListTransactions(ctx, testUserID, domain.TransactionFilter{TypeFilter: "expense"})
	s.Require().NoError(err)
	s.Require().Len(expensesOnly, 1)
	s.Equal(domain.Expense, expensesOnly[0].Type)
}

func (s *TransactionServiceTestSuite) TestStageDeleteAndUndo() {
	ctx := context.Background()
	txn, _, err := s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "1000", "2024-03-05"))
	s.Require().NoError(err)

	deadline, err := s.service.StageDelete(ctx, testUserID, txn.TransactionID)
	s.Require().NoError(err)
	s.True(deadline.After(time.Now().Add(-time.Second)))

	// Gone from the store immediately.
	_, err = s.txnRepo.FindTransactionByID(ctx, testUserID, txn.TransactionID)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)

	// Undo within the window restores it intact.
	s.Require().NoError(s.service.UndoDelete(ctx, testUserID, txn.TransactionID))
	restored, err := s.txnRepo.FindTransactionByID(ctx, testUserID, txn.TransactionID)
	s.Require().NoError(err)
	s.True(restored.Amount.Equal(decimal.NewFromInt(1000)))

	// A second undo has nothing to restore.
	s.Require().ErrorIs(s.service.UndoDelete(ctx, testUserID, txn.TransactionID), apperrors.ErrUndoExpired)
}

func (s *TransactionServiceTestSuite) TestUndoAfterWindowExpires() {
	ctx := context.Background()
	txn, _, err := s.service.CreateTransaction(ctx, testUserID, createReq("income", "ขายสินค้า", "1000", "2024-03-05"))
	s.Require().NoError(err)

	_, err = s.service.StageDelete(ctx, testUserID, txn.TransactionID)
	s.Require().NoError(err)

	time.Sleep(120 * time.Millisecond)

	s.Require().ErrorIs(s.service.UndoDelete(ctx, testUserID, txn.TransactionID), apperrors.ErrUndoExpired)
	_, err = s.txnRepo.FindTransactionByID(ctx, testUserID, txn.TransactionID)
	s.Require().ErrorIs(err, apperrors.ErrNotFound, "expired delete stays deleted")
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
