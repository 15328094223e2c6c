package rest

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mjfashion/billdesk/internal/config"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/logger"
	"github.com/mjfashion/billdesk/internal/testutil"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const getBillBody = `{
	"customer": {"title": "Mr", "name": "Rahul Shah", "location": "Dadar"},
	"billing_detail": {"id": 42, "billing_date": "2024-03-01", "total": "1100.00", "tax": "55.00", "packaging": "20.00", "grand_total": "1175.00"},
	"billings": [
		{"id": 701, "description": "Silk saree", "qty": "1", "unit": "piece", "rate": "1100", "amount": "1100.00"}
	]
}`

type RestRepositorySuite struct {
	suite.Suite
	client *testutil.MockHTTPClient
	bills  bill.Repository
	cfg    *config.Configuration
}

func TestRestRepository(t *testing.T) {
	suite.Run(t, new(RestRepositorySuite))
}

func (s *RestRepositorySuite) SetupTest() {
	s.cfg = config.GetDefaultConfig()
	s.cfg.API.BaseURL = "http://billing.test/api/"
	s.client = testutil.NewMockHTTPClient()
	s.bills = NewBillRepository(s.cfg, s.client, logger.NewNopLogger())
}

func (s *RestRepositorySuite) newBill() *bill.Bill {
	item := bill.NewBlankLineItem()
	item.Description = "Kurta"
	item.Quantity = types.ParseNullAmount("2")
	item.Rate = types.ParseNullAmount("450")
	item.Recalculate()

	date, err := types.ParseDate("2024-03-01")
	s.Require().NoError(err)

	b := &bill.Bill{
		Customer: bill.Customer{Title: types.CustomerTitleMr, Name: "Rahul Shah", Location: "Dadar"},
		Detail:   bill.Detail{BillingDate: date},
		Items:    []*bill.LineItem{item},
	}
	b.ApplyAggregate(bill.NewAggregate(b.Items, decimal.NewFromInt(45), decimal.Zero))
	return b
}

func (s *RestRepositorySuite) TestGet_SendsBearerToken() {
	s.client.RegisterResponse(http.MethodGet, "/get-bill/42", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(getBillBody),
	})

	got, err := s.bills.Get(testutil.SetupAuthorizedContext("t0k3n"), "42")
	s.Require().NoError(err)

	req := s.client.LastRequest()
	s.Require().NotNil(req)
	s.Equal("http://billing.test/api/get-bill/42", req.URL)
	s.Equal("Bearer t0k3n", req.Headers["Authorization"])

	s.Equal(types.RecordID("42"), got.Detail.ID)
	s.Equal("Mr. Rahul Shah", got.Customer.DisplayName())
	s.Equal("2024-03-01", got.Detail.BillingDate.String())
	s.Equal("1175.00", types.FormatAmount(got.Detail.GrandTotal))
	s.Require().Len(got.Items, 1)
	s.Equal(types.RecordID("701"), got.Items[0].ID)
	s.Equal("1100.00", types.FormatAmount(got.Items[0].Amount))
}

func (s *RestRepositorySuite) TestCallsWithoutTokenAreRejected() {
	_, err := s.bills.List(testutil.SetupContext())
	s.True(ierr.IsPermissionDenied(err))
	s.Empty(s.client.Requests())
}

func (s *RestRepositorySuite) TestGet_MissingBill() {
	ctx := testutil.SetupAuthorizedContext("t0k3n")

	s.client.RegisterResponse(http.MethodGet, "/get-bill/7", testutil.MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`{"error":"Bill not found"}`),
	})
	_, err := s.bills.Get(ctx, "7")
	s.True(ierr.IsNotFound(err))
	s.Equal("Bill not found", ierr.GetHint(err))

	_, err = s.bills.Get(ctx, "")
	s.True(ierr.IsValidation(err))
}

func (s *RestRepositorySuite) TestList() {
	s.client.RegisterResponse(http.MethodGet, "/get-bills", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"bills":[` + getBillBody + `,null]}`),
	})

	got, err := s.bills.List(testutil.SetupAuthorizedContext("t0k3n"))
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *RestRepositorySuite) TestCreate_SendsTotals() {
	s.client.RegisterJSONResponse(http.MethodPost, "/create-billing", http.StatusCreated, map[string]any{"message": "created"})

	s.Require().NoError(s.bills.Create(testutil.SetupAuthorizedContext("t0k3n"), s.newBill()))

	var body map[string]any
	s.Require().NoError(json.Unmarshal(s.client.LastRequest().Body, &body))
	s.Equal("Rahul Shah", body["customer_name"])
	s.Equal("2024-03-01", body["billing_date"])
	s.Equal("900", body["total"])
	s.Equal("45", body["gst"])
	s.Equal("945", body["grand_total"])
	s.NotContains(body, "billing_to_delete")
}

func (s *RestRepositorySuite) TestCreate_InvalidBillIsNotSent() {
	b := s.newBill()
	b.Customer.Name = ""

	err := s.bills.Create(testutil.SetupAuthorizedContext("t0k3n"), b)
	s.True(ierr.IsValidation(err))
	s.Empty(s.client.Requests())
}

func (s *RestRepositorySuite) TestUpdate_SendsDeletedRows() {
	s.client.RegisterJSONResponse(http.MethodPut, "/update-bill/42", http.StatusOK, map[string]any{"message": "updated"})

	b := s.newBill()
	b.Detail.ID = "42"
	s.Require().NoError(s.bills.Update(testutil.SetupAuthorizedContext("t0k3n"), b, []types.RecordID{"702", "703"}))

	req := s.client.LastRequest()
	s.Equal(http.MethodPut, req.Method)
	s.Equal("http://billing.test/api/update-bill/42", req.URL)
	s.JSONEq(`[702, 703]`, string(mustField(s.T(), req.Body, "billing_to_delete")))

	// nothing removed still sends an empty list
	s.Require().NoError(s.bills.Update(testutil.SetupAuthorizedContext("t0k3n"), b, nil))
	s.JSONEq(`[]`, string(mustField(s.T(), s.client.LastRequest().Body, "billing_to_delete")))
}

func (s *RestRepositorySuite) TestUpdate_RequiresID() {
	err := s.bills.Update(testutil.SetupAuthorizedContext("t0k3n"), s.newBill(), nil)
	s.True(ierr.IsValidation(err))
}

func (s *RestRepositorySuite) TestSearch() {
	s.client.RegisterResponse(http.MethodPost, "/search-bill", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"bills":[` + getBillBody + `],"totalGrandTotal":1175.004}`),
	})

	from, err := types.ParseDate("2024-03-01")
	s.Require().NoError(err)

	got, err := s.bills.Search(testutil.SetupAuthorizedContext("t0k3n"), &types.BillSearchFilter{
		CustomerName: " Rahul ",
		StartDate:    &from,
	})
	s.Require().NoError(err)
	s.Len(got.Bills, 1)
	s.Equal("1175.00", types.FormatAmount(got.TotalGrandTotal))

	s.JSONEq(`{"customer_name":"Rahul","start_date":"2024-03-01"}`, string(s.client.LastRequest().Body))
}

func (s *RestRepositorySuite) TestSearch_NoMatches() {
	s.client.RegisterJSONResponse(http.MethodPost, "/search-bill", http.StatusOK, map[string]any{"error": "No bills found"})

	_, err := s.bills.Search(testutil.SetupAuthorizedContext("t0k3n"), &types.BillSearchFilter{Location: "Pune"})
	s.True(ierr.IsNotFound(err))
	s.Equal("No bills found", ierr.GetHint(err))
}

func (s *RestRepositorySuite) TestSearch_InvalidRange() {
	from, _ := types.ParseDate("2024-03-05")
	to, _ := types.ParseDate("2024-03-01")

	_, err := s.bills.Search(testutil.SetupAuthorizedContext("t0k3n"), &types.BillSearchFilter{StartDate: &from, EndDate: &to})
	s.True(ierr.IsValidation(err))
	s.Empty(s.client.Requests())
}

func TestSignIn(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	repo := NewAuthRepository(config.GetDefaultConfig(), client, logger.NewNopLogger())
	ctx := testutil.SetupContext()

	client.RegisterJSONResponse(http.MethodPost, "/sign-in", http.StatusOK, map[string]any{
		"id":    3,
		"name":  "Meera",
		"email": "meera@example.com",
		"token": "t0k3n",
	})

	user, err := repo.SignIn(ctx, "meera", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t0k3n", user.Token)
	assert.Equal(t, "meera", user.UserName)
	assert.Empty(t, client.LastRequest().Headers["Authorization"])
	assert.JSONEq(t, `{"user_name":"meera","password":"secret"}`, string(client.LastRequest().Body))
}

func TestSignIn_Rejected(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	repo := NewAuthRepository(config.GetDefaultConfig(), client, logger.NewNopLogger())
	ctx := testutil.SetupContext()

	client.RegisterJSONResponse(http.MethodPost, "/sign-in", http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
	_, err := repo.SignIn(ctx, "meera", "wrong")
	assert.True(t, ierr.IsPermissionDenied(err))
	assert.Equal(t, "Invalid credentials", ierr.GetHint(err))

	client.RegisterJSONResponse(http.MethodPost, "/sign-in", http.StatusOK, map[string]any{"name": "Meera"})
	_, err = repo.SignIn(ctx, "meera", "secret")
	assert.True(t, ierr.IsPermissionDenied(err))

	_, err = repo.SignIn(ctx, "", "secret")
	assert.True(t, ierr.IsValidation(err))
}

func mustField(t *testing.T, body []byte, field string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &fields))
	raw, ok := fields[field]
	require.True(t, ok, "missing field %s", field)
	return raw
}
