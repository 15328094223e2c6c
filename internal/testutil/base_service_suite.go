package testutil

import (
	"context"
	"time"

	"github.com/mjfashion/billdesk/internal/auth"
	"github.com/mjfashion/billdesk/internal/cache"
	"github.com/mjfashion/billdesk/internal/config"
	domainAuth "github.com/mjfashion/billdesk/internal/domain/auth"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	"github.com/mjfashion/billdesk/internal/logger"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/mjfashion/billdesk/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	BillRepo bill.Repository
	AuthRepo domainAuth.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	sessions     *auth.SessionStore
	logger       *logger.Logger
	config       *config.Configuration
	now          time.Time
	pdfGenerator *MockPDFGenerator
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	// keep sessions in memory so tests never touch the operator's session file
	cfg.Auth.SessionFile = ""

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		BillRepo: NewInMemoryBillStore(),
		AuthRepo: NewInMemoryAuthRepository(),
	}

	s.sessions = auth.NewSessionStore(s.config, cache.NewInMemoryCache(), s.logger)
	s.pdfGenerator = NewMockPDFGenerator()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.BillRepo.(*InMemoryBillStore).Clear()
	s.stores.AuthRepo.(*InMemoryAuthRepository).Clear()
	s.sessions.Clear(s.ctx)
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// SignIn stores a live session for tests that need an authorized operator
func (s *BaseServiceTestSuite) SignIn(token string) *domainAuth.User {
	user := &domainAuth.User{ID: "1", UserName: "admin", Name: "Admin", Token: token}
	_, err := s.sessions.Save(s.ctx, user)
	s.Require().NoError(err)
	return user
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetSessions returns the test session store
func (s *BaseServiceTestSuite) GetSessions() *auth.SessionStore {
	return s.sessions
}

// GetPDFGenerator returns the test PDF generator
func (s *BaseServiceTestSuite) GetPDFGenerator() *MockPDFGenerator {
	return s.pdfGenerator
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
