package repository

import (
	"github.com/mjfashion/billdesk/internal/config"
	"github.com/mjfashion/billdesk/internal/domain/auth"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	"github.com/mjfashion/billdesk/internal/httpclient"
	"github.com/mjfashion/billdesk/internal/logger"
	restRepo "github.com/mjfashion/billdesk/internal/repository/rest"
)

func NewBillRepository(cfg *config.Configuration, client httpclient.Client, logger *logger.Logger) bill.Repository {
	return restRepo.NewBillRepository(cfg, client, logger)
}

func NewAuthRepository(cfg *config.Configuration, client httpclient.Client, logger *logger.Logger) auth.Repository {
	return restRepo.NewAuthRepository(cfg, client, logger)
}
