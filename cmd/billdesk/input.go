package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/service"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/samber/lo"
)

// itemSpec is a line item given on the command line as "description;qty;rate[;unit]"
type itemSpec struct {
	Description string
	Quantity    string
	Rate        string
	Unit        string
}

func parseItemSpec(value string) (itemSpec, error) {
	parts := strings.Split(value, ";")
	if len(parts) < 3 || len(parts) > 4 {
		return itemSpec{}, ierr.NewErrorf("invalid item %q", value).
			WithHintf("Item %q must look like \"description;qty;rate\" or \"description;qty;rate;unit\"", value).
			Mark(ierr.ErrInvalidArgument)
	}

	spec := itemSpec{
		Description: strings.TrimSpace(parts[0]),
		Quantity:    strings.TrimSpace(parts[1]),
		Rate:        strings.TrimSpace(parts[2]),
		Unit:        string(types.DefaultLineItemUnit),
	}
	if len(parts) == 4 && strings.TrimSpace(parts[3]) != "" {
		spec.Unit = strings.TrimSpace(parts[3])
	}
	return spec, nil
}

// fieldEdit changes one field of an existing row, given as "line:field=value" with 1-based lines
type fieldEdit struct {
	Index int
	Field types.LineItemField
	Value string
}

func parseFieldEdit(value string) (fieldEdit, error) {
	invalid := func() error {
		return ierr.NewErrorf("invalid edit %q", value).
			WithHintf("Edit %q must look like \"line:field=value\", e.g. \"2:rate=150\"", value).
			Mark(ierr.ErrInvalidArgument)
	}

	target, newValue, ok := strings.Cut(value, "=")
	if !ok {
		return fieldEdit{}, invalid()
	}
	line, field, ok := strings.Cut(target, ":")
	if !ok {
		return fieldEdit{}, invalid()
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 {
		return fieldEdit{}, invalid()
	}

	f := types.LineItemField(strings.TrimSpace(field))
	if f == "qty" {
		f = types.LineItemFieldQuantity
	}
	if err := f.Validate(); err != nil {
		return fieldEdit{}, err
	}
	return fieldEdit{Index: n - 1, Field: f, Value: newValue}, nil
}

// appendItem adds spec as a new row, reusing the blank row a new draft starts with
func appendItem(lines *service.InvoiceLineEngine, spec itemSpec) error {
	index := -1
	if lines.Len() == 1 {
		if first, err := lines.Item(0); err == nil && isBlank(first) {
			index = 0
		}
	}
	if index < 0 {
		index = lines.AddItem()
	}

	values := []struct {
		field types.LineItemField
		value string
	}{
		{types.LineItemFieldDescription, spec.Description},
		{types.LineItemFieldQuantity, spec.Quantity},
		{types.LineItemFieldRate, spec.Rate},
		{types.LineItemFieldUnit, spec.Unit},
	}
	for _, v := range values {
		if err := lines.UpdateItemField(index, v.field, v.value); err != nil {
			return err
		}
	}
	return nil
}

func isBlank(item *bill.LineItem) bool {
	return !item.IsPersisted() &&
		strings.TrimSpace(item.Description) == "" &&
		!item.Quantity.Valid &&
		!item.Rate.Valid
}

// removeLines removes the given 1-based lines, highest first so earlier removals do not shift later ones
func removeLines(lines *service.InvoiceLineEngine, numbers []int) error {
	sorted := lo.Uniq(numbers)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	for _, n := range sorted {
		if err := lines.RemoveItem(n - 1); err != nil {
			return err
		}
	}
	return nil
}
