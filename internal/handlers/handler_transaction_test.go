package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/apperrors"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/dto"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/handlers"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, *domain.GoalNotice, error) {
	args := m.Called(ctx, userID, req)
	var txn *domain.Transaction
	var notice *domain.GoalNotice
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	if args.Get(1) != nil {
		notice = args.Get(1).(*domain.GoalNotice)
	}
	return txn, notice, args.Error(2)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, *domain.GoalNotice, error) {
	args := m.Called(ctx, userID, transactionID, req)
	var txn *domain.Transaction
	var notice *domain.GoalNotice
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	if args.Get(1) != nil {
		notice = args.Get(1).(*domain.GoalNotice)
	}
	return txn, notice, args.Error(2)
}
func (m *MockTransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) StageDelete(ctx context.Context, userID, transactionID string) (time.Time, error) {
	args := m.Called(ctx, userID, transactionID)
	return args.Get(0).(time.Time), args.Error(1)
}
func (m *MockTransactionService) UndoDelete(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock SessionLockService ---
type MockSessionLockService struct {
	mock.Mock
}

func (m *MockSessionLockService) Status(ctx context.Context, sessionKey, username string) (domain.LockStatus, error) {
	args := m.Called(ctx, sessionKey, username)
	return args.Get(0).(domain.LockStatus), args.Error(1)
}
func (m *MockSessionLockService) Touch(sessionKey string) {
	m.Called(sessionKey)
}
func (m *MockSessionLockService) IsUnlocked(sessionKey string) bool {
	args := m.Called(sessionKey)
	return args.Bool(0)
}
func (m *MockSessionLockService) VerifyPin(ctx context.Context, sessionKey, username, pin string) (domain.LockStatus, error) {
	args := m.Called(ctx, sessionKey, username, pin)
	return args.Get(0).(domain.LockStatus), args.Error(1)
}
func (m *MockSessionLockService) SetPin(ctx context.Context, sessionKey, username, pin, confirm string) (domain.LockStatus, error) {
	args := m.Called(ctx, sessionKey, username, pin, confirm)
	return args.Get(0).(domain.LockStatus), args.Error(1)
}
func (m *MockSessionLockService) ResetPin(ctx context.Context, sessionKey, username string, confirmed bool) (domain.LockStatus, error) {
	args := m.Called(ctx, sessionKey, username, confirmed)
	return args.Get(0).(domain.LockStatus), args.Error(1)
}
func (m *MockSessionLockService) BeginChangePin(ctx context.Context, sessionKey, username string) (domain.LockStatus, error) {
	args := m.Called(ctx, sessionKey, username)
	return args.Get(0).(domain.LockStatus), args.Error(1)
}
func (m *MockSessionLockService) Run(ctx context.Context) {
	m.Called(ctx)
}

var _ portssvc.SessionLockSvcFacade = (*MockSessionLockService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, login, password string) (*domain.User, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateRefreshTokenHash(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Dashboard(ctx context.Context, userID string, refMonth time.Time) (*domain.MonthDashboard, error) {
	args := m.Called(ctx, userID, refMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthDashboard), args.Error(1)
}
func (m *MockReportingService) MonthTransactions(ctx context.Context, userID string, refMonth time.Time) ([]domain.Transaction, domain.MonthlySummary, error) {
	args := m.Called(ctx, userID, refMonth)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Get(1).(domain.MonthlySummary), args.Error(2)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsService) SetMonthlyGoal(ctx context.Context, userID string, goal decimal.Decimal) error {
	args := m.Called(ctx, userID, goal)
	return args.Error(0)
}
func (m *MockSettingsService) ToggleFavorite(ctx context.Context, userID string, fav domain.Favorite) (bool, error) {
	args := m.Called(ctx, userID, fav)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthHandlerService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}
func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
func (m *MockGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}
func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockTxnService  *MockTransactionService
	mockLockService *MockSessionLockService
	jwtSecret       string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTxnService = new(MockTransactionService)
	suite.mockLockService = new(MockSessionLockService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger route registration
	}
	services := &portssvc.ServiceContainer{
		Transaction:        suite.mockTxnService,
		Reporting:          new(MockReportingService),
		Settings:           new(MockSettingsService),
		SessionLock:        suite.mockLockService,
		User:               new(MockUserService),
		TokenService:       new(MockTokenService),
		GoogleOAuthHandler: new(MockGoogleOAuthService),
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// generateTestToken creates a signed JWT for the given user.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "sla-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) doRequest(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) unlockSession() {
	suite.mockLockService.On("IsUnlocked", mock.AnythingOfType("string")).Return(true)
	suite.mockLockService.On("Touch", mock.AnythingOfType("string")).Return()
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	suite.unlockSession()

	reqBody := dto.CreateTransactionRequest{
		Type:        "income",
		Description: "ขายสินค้า",
		Amount:      decimal.NewFromInt(1000),
		Category:    "ขายสินค้า",
		Date:        "2024-03-05",
	}
	expectedTxn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.Income,
		Description:   reqBody.Description,
		Amount:        reqBody.Amount,
		Category:      reqBody.Category,
		Date:          time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
	}
	notice := &domain.GoalNotice{
		Kind:    domain.NoticeGoalReached,
		Balance: decimal.NewFromInt(1000),
		Goal:    decimal.NewFromInt(800),
	}

	suite.mockTxnService.On("CreateTransaction",
		mock.Anything,
		userID,
		reqBody,
	).Return(expectedTxn, notice, nil).Once()

	token := suite.generateTestToken(userID)
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", token, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CreateTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expectedTxn.TransactionID, resp.Transaction.TransactionID)
	suite.Equal("2024-03-05", resp.Transaction.Date)
	suite.Require().NotNil(resp.Notice)
	suite.Equal(string(domain.NoticeGoalReached), resp.Notice.Kind)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_LockedSessionRejected() {
	userID := uuid.NewString()
	suite.mockLockService.On("IsUnlocked", mock.AnythingOfType("string")).Return(false)

	reqBody := dto.CreateTransactionRequest{
		Type:        "expense",
		Description: "ต้นทุนสินค้า",
		Amount:      decimal.NewFromInt(300),
		Category:    "ต้นทุนสินค้า",
		Date:        "2024-03-05",
	}
	token := suite.generateTestToken(userID)
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", token, reqBody)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockTxnService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingTokenRejected() {
	reqBody := dto.CreateTransactionRequest{
		Type:        "income",
		Description: "ขายสินค้า",
		Amount:      decimal.NewFromInt(100),
		Category:    "ขายสินค้า",
		Date:        "2024-03-05",
	}
	payload, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_PassesFilter() {
	userID := uuid.NewString()
	suite.unlockSession()

	expectedFilter := domain.TransactionFilter{
		SearchTerm: "ค่าขนส่ง",
		TypeFilter: "expense",
		Period:     domain.PeriodMonth,
		SortBy:     domain.SortHighest,
	}
	suite.mockTxnService.On("ListTransactions",
		mock.Anything,
		userID,
		expectedFilter,
	).Return([]domain.Transaction{}, nil).Once()

	token := suite.generateTestToken(userID)
	target := "/api/v1/transactions?search=" + url.QueryEscape("ค่าขนส่ง") + "&type=expense&period=month&sort=highest"
	w := suite.doRequest(http.MethodGet, target, token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestStageDelete_ReturnsUndoDeadline() {
	userID := uuid.NewString()
	txnID := uuid.NewString()
	suite.unlockSession()

	deadline := time.Now().Add(5 * time.Second).UTC().Truncate(time.Second)
	suite.mockTxnService.On("StageDelete", mock.Anything, userID, txnID).Return(deadline, nil).Once()

	token := suite.generateTestToken(userID)
	w := suite.doRequest(http.MethodDelete, "/api/v1/transactions/"+txnID, token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StageDeleteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txnID, resp.TransactionID)
	suite.True(deadline.Equal(resp.UndoDeadline))
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUndoDelete_ExpiredWindowIsGone() {
	userID := uuid.NewString()
	txnID := uuid.NewString()
	suite.unlockSession()

	suite.mockTxnService.On("UndoDelete", mock.Anything, userID, txnID).Return(apperrors.ErrUndoExpired).Once()

	token := suite.generateTestToken(userID)
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/"+txnID+"/undo", token, nil)

	suite.Equal(http.StatusGone, w.Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
