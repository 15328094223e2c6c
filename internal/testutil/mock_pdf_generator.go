package testutil

import (
	"context"

	domain "github.com/mjfashion/billdesk/internal/domain/pdf"
	"github.com/mjfashion/billdesk/internal/pdf"
	"github.com/stretchr/testify/mock"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

type MockPDFGenerator struct {
	mock.Mock
}

// RenderBillPdf implements pdf.Generator.
func (m *MockPDFGenerator) RenderBillPdf(ctx context.Context, doc *domain.PrintDocument) ([]byte, error) {
	args := m.Called(ctx, doc)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func NewMockPDFGenerator() *MockPDFGenerator {
	return &MockPDFGenerator{}
}
