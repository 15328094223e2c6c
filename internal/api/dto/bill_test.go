package dto

import (
	"encoding/json"
	"testing"

	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBill(t *testing.T) *bill.Bill {
	date, err := types.ParseDate("2024-03-01")
	require.NoError(t, err)

	saved := bill.NewBlankLineItem()
	saved.ID = "7"
	saved.Description = " Silk saree "
	saved.Quantity = types.ParseNullAmount("2")
	saved.Rate = types.ParseNullAmount("150.25")
	saved.Recalculate()

	fresh := bill.NewBlankLineItem()
	fresh.Description = "Dupatta"
	fresh.Quantity = types.ParseNullAmount("1")
	fresh.Unit = types.LineItemUnitDozen
	fresh.Rate = types.ParseNullAmount("80")
	fresh.Recalculate()

	b := &bill.Bill{
		Customer: bill.Customer{Title: types.CustomerTitleMrs, Name: "Asha Patel", Location: "Borivali"},
		Detail:   bill.Detail{ID: "42", BillingDate: date},
		Items:    []*bill.LineItem{saved, fresh},
	}
	b.ApplyAggregate(bill.NewAggregate(b.Items, types.ParseAmount("18"), types.ParseAmount("5")))
	return b
}

func TestNewCreateBillRequest(t *testing.T) {
	req := NewCreateBillRequest(sampleBill(t))
	require.NoError(t, req.Validate())

	assert.Equal(t, "Silk saree", req.Items[0].Description)
	assert.Equal(t, types.RecordID("7"), req.Items[0].ID)
	assert.True(t, req.Items[1].ID.IsZero())
	assert.Equal(t, "380.50", types.FormatAmount(req.Total))
	assert.Equal(t, "403.50", types.FormatAmount(req.GrandTotal))
	assert.True(t, req.GST.Equal(req.TotalTax))

	body, err := json.Marshal(req)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(body, &wire))
	assert.Equal(t, "Mrs", wire["title"])
	assert.Equal(t, "2024-03-01", wire["billing_date"])
	assert.NotContains(t, wire, "billing_to_delete")

	items := wire["items"].([]any)
	assert.Equal(t, float64(7), items[0].(map[string]any)["id"])
	assert.NotContains(t, items[1].(map[string]any), "id")
}

func TestNewUpdateBillRequest(t *testing.T) {
	req := NewUpdateBillRequest(sampleBill(t), nil)
	body, err := json.Marshal(req)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(body, &wire))
	assert.Equal(t, []any{}, wire["billing_to_delete"])
	assert.Equal(t, "Asha Patel", wire["customer_name"])

	req = NewUpdateBillRequest(sampleBill(t), []types.RecordID{"3", "9"})
	body, err = json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"billing_to_delete":[3,9]`)
}

func TestCreateBillRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateBillRequest)
	}{
		{name: "missing name", mutate: func(r *CreateBillRequest) { r.CustomerName = "" }},
		{name: "missing location", mutate: func(r *CreateBillRequest) { r.Location = "" }},
		{name: "unknown title", mutate: func(r *CreateBillRequest) { r.Title = "Sir" }},
		{name: "missing date", mutate: func(r *CreateBillRequest) { r.BillingDate = types.Date{} }},
		{name: "no items", mutate: func(r *CreateBillRequest) { r.Items = nil }},
		{name: "blank description", mutate: func(r *CreateBillRequest) { r.Items[1].Description = "  " }},
		{name: "zero quantity", mutate: func(r *CreateBillRequest) { r.Items[0].Qty = types.ParseAmount("0") }},
		{name: "negative rate", mutate: func(r *CreateBillRequest) { r.Items[0].Rate = types.ParseAmount("-1") }},
		{name: "unknown unit", mutate: func(r *CreateBillRequest) { r.Items[0].Unit = "box" }},
		{name: "grand total mismatch", mutate: func(r *CreateBillRequest) { r.GrandTotal = types.ParseAmount("1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewCreateBillRequest(sampleBill(t))
			tt.mutate(req)
			assert.True(t, ierr.IsValidation(req.Validate()))
		})
	}
}

func TestBillResponse_Decode(t *testing.T) {
	raw := `{
		"customer": {"title": "Mr", "name": "Rahul Shah", "location": "Dadar"},
		"billing_detail": {"id": 42, "billing_date": "2024-03-01T00:00:00.000000Z", "tax": "18.00", "packaging": 5, "grand_total": "123.00"},
		"billings": [
			{"id": 1, "description": "Kurta", "qty": 2, "unit": "piece", "rate": "50.00", "amount": "100.00"}
		]
	}`

	var resp BillResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	require.NotNil(t, resp.Bill)

	assert.Equal(t, "Mr. Rahul Shah", resp.Customer.DisplayName())
	assert.Equal(t, types.RecordID("42"), resp.Detail.ID)
	assert.Equal(t, "2024-03-01", resp.Detail.BillingDate.String())
	assert.Equal(t, "100.00", types.FormatAmount(resp.Detail.Subtotal()))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, types.RecordID("1"), resp.Items[0].ID)
	assert.Equal(t, "100.00", types.FormatAmount(resp.Items[0].Amount))
}

func TestSearchBillsResponse_Decode(t *testing.T) {
	var found SearchBillsResponse
	require.NoError(t, json.Unmarshal([]byte(`{"bills":[{"customer":{"name":"A"},"billing_detail":{"id":1},"billings":[]}, null],"totalGrandTotal":"250.456"}`), &found))
	assert.Len(t, ToBills(found.Bills), 1)
	assert.True(t, found.TotalGrandTotal.Valid)

	var missing SearchBillsResponse
	require.NoError(t, json.Unmarshal([]byte(`{"error":"No bills found"}`), &missing))
	assert.Equal(t, "No bills found", missing.Error)
	assert.False(t, missing.TotalGrandTotal.Valid)
}

func TestSignInRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SignInRequest{UserName: "admin", Password: "secret"}).Validate())
	assert.True(t, ierr.IsValidation((&SignInRequest{UserName: "  ", Password: "secret"}).Validate()))
	assert.True(t, ierr.IsValidation((&SignInRequest{UserName: "admin"}).Validate()))
}
