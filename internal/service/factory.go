package service

import (
	"github.com/mjfashion/billdesk/internal/auth"
	"github.com/mjfashion/billdesk/internal/config"
	domainAuth "github.com/mjfashion/billdesk/internal/domain/auth"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	"github.com/mjfashion/billdesk/internal/logger"
	"github.com/mjfashion/billdesk/internal/pdf"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	PDFGenerator pdf.Generator
	Sessions     *auth.SessionStore

	// Repositories
	BillRepo bill.Repository
	AuthRepo domainAuth.Repository
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	pdfGenerator pdf.Generator,
	sessions *auth.SessionStore,
	billRepo bill.Repository,
	authRepo domainAuth.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		PDFGenerator: pdfGenerator,
		Sessions:     sessions,
		BillRepo:     billRepo,
		AuthRepo:     authRepo,
	}
}
