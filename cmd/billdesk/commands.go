package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/mjfashion/billdesk/internal/api/dto"
	"github.com/mjfashion/billdesk/internal/domain/bill"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/service"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/urfave/cli/v2"
)

func commands() []*cli.Command {
	headerFlags := []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "customer title: Mr, Ms, Mrs, Dr, Prof or Other"},
		&cli.StringFlag{Name: "name", Usage: "customer name"},
		&cli.StringFlag{Name: "location", Usage: "customer location"},
		&cli.StringFlag{Name: "date", Usage: "billing date as YYYY-MM-DD"},
		&cli.StringSliceFlag{Name: "item", Usage: `line item as "description;qty;rate[;unit]", repeatable`},
		&cli.StringFlag{Name: "gst", Usage: "flat GST amount"},
		&cli.StringFlag{Name: "packing", Usage: "flat packaging charge"},
	}

	return []*cli.Command{
		{
			Name:  "login",
			Usage: "sign in to the billing api",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true},
				&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"BILLDESK_PASSWORD"}},
			},
			Action: action(runLogin),
		},
		{
			Name:   "logout",
			Usage:  "forget the current session",
			Action: action(runLogout),
		},
		{
			Name:   "list",
			Usage:  "list all bills",
			Action: action(runList),
		},
		{
			Name:  "search",
			Usage: "search bills by customer, location and billing date",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Usage: "customer name"},
				&cli.StringFlag{Name: "location", Usage: "customer location"},
				&cli.StringFlag{Name: "from", Usage: "first billing date as YYYY-MM-DD"},
				&cli.StringFlag{Name: "to", Usage: "last billing date as YYYY-MM-DD"},
			},
			Action: action(runSearch),
		},
		{
			Name:      "show",
			Usage:     "show one bill",
			ArgsUsage: "<bill id>",
			Action:    action(runShow),
		},
		{
			Name:      "print",
			Usage:     "render a bill as a printable pdf",
			ArgsUsage: "<bill id>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Usage: "output directory, defaults to print.output_dir"},
			},
			Action: action(runPrint),
		},
		{
			Name:   "new",
			Usage:  "create a bill",
			Flags:  headerFlags,
			Action: action(runNew),
		},
		{
			Name:      "edit",
			Usage:     "edit a saved bill",
			ArgsUsage: "<bill id>",
			Flags: append(headerFlags,
				&cli.IntSliceFlag{Name: "remove", Usage: "line number to remove, repeatable"},
				&cli.StringSliceFlag{Name: "set", Usage: `change a line as "line:field=value", repeatable`},
			),
			Action: action(runEdit),
		},
	}
}

func runLogin(ctx context.Context, c *cli.Context, a *app) error {
	user, err := a.AuthService.SignIn(ctx, &dto.SignInRequest{
		UserName: c.String("user"),
		Password: c.String("password"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Signed in as %s\n", user.DisplayName())
	return nil
}

func runLogout(ctx context.Context, c *cli.Context, a *app) error {
	a.AuthService.SignOut(ctx)
	fmt.Fprintln(c.App.Writer, "Signed out")
	return nil
}

func runList(ctx context.Context, c *cli.Context, a *app) error {
	bills, err := a.BillService.ListBills(ctx)
	if err != nil {
		return err
	}
	writeBillTable(c.App.Writer, bills)
	return nil
}

func runSearch(ctx context.Context, c *cli.Context, a *app) error {
	filter := &types.BillSearchFilter{
		CustomerName: c.String("name"),
		Location:     c.String("location"),
	}
	for flag, target := range map[string]**types.Date{"from": &filter.StartDate, "to": &filter.EndDate} {
		if !c.IsSet(flag) {
			continue
		}
		d, err := parseDateFlag(flag, c.String(flag))
		if err != nil {
			return err
		}
		*target = &d
	}

	result, err := a.BillService.SearchBills(ctx, filter)
	if err != nil {
		return err
	}
	writeBillTable(c.App.Writer, result.Bills)
	fmt.Fprintf(c.App.Writer, "\nGrand total: %s\n", types.FormatAmount(result.TotalGrandTotal))
	return nil
}

func runShow(ctx context.Context, c *cli.Context, a *app) error {
	id, err := billIDArg(c)
	if err != nil {
		return err
	}
	b, err := a.BillService.GetBill(ctx, id)
	if err != nil {
		return err
	}
	writeBill(c.App.Writer, b)
	return nil
}

func runPrint(ctx context.Context, c *cli.Context, a *app) error {
	id, err := billIDArg(c)
	if err != nil {
		return err
	}

	out, err := a.BillService.RenderBillPdf(ctx, id)
	if err != nil {
		return err
	}

	dir := a.Config.Print.OutputDir
	if c.IsSet("out") {
		dir = c.String("out")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ierr.WithError(err).
			WithHintf("Cannot create output directory %s", dir).
			Mark(ierr.ErrSystem)
	}

	path := filepath.Join(dir, fmt.Sprintf("bill-%s.pdf", id))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return ierr.WithError(err).
			WithHintf("Cannot write %s", path).
			Mark(ierr.ErrSystem)
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func runNew(ctx context.Context, c *cli.Context, a *app) error {
	draft := a.BillService.NewDraft()
	if err := applyHeaderFlags(c, draft); err != nil {
		return err
	}
	if err := applyItemFlags(c, draft.Lines); err != nil {
		return err
	}
	applyChargeFlags(c, draft.Lines)

	totals := draft.Lines.CurrentAggregate()
	if err := a.BillService.SubmitDraft(ctx, draft); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "Bill created")
	writeAggregate(c.App.Writer, totals)
	return nil
}

func runEdit(ctx context.Context, c *cli.Context, a *app) error {
	id, err := billIDArg(c)
	if err != nil {
		return err
	}

	draft, err := a.BillService.OpenForEdit(ctx, id)
	if err != nil {
		return err
	}
	if err := applyHeaderFlags(c, draft); err != nil {
		return err
	}

	// edits refer to the lines as they were loaded, so they run before removals and additions
	for _, value := range c.StringSlice("set") {
		edit, err := parseFieldEdit(value)
		if err != nil {
			return err
		}
		if err := draft.Lines.UpdateItemField(edit.Index, edit.Field, edit.Value); err != nil {
			return err
		}
	}
	if err := removeLines(draft.Lines, c.IntSlice("remove")); err != nil {
		return err
	}
	if err := applyItemFlags(c, draft.Lines); err != nil {
		return err
	}
	applyChargeFlags(c, draft.Lines)

	if err := a.BillService.SubmitDraft(ctx, draft); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Bill #%s updated\n", id)
	writeAggregate(c.App.Writer, draft.Lines.CurrentAggregate())
	return nil
}

func applyHeaderFlags(c *cli.Context, draft *service.BillDraft) error {
	if c.IsSet("title") {
		draft.Customer.Title = types.CustomerTitle(c.String("title"))
	}
	if c.IsSet("name") {
		draft.Customer.Name = c.String("name")
	}
	if c.IsSet("location") {
		draft.Customer.Location = c.String("location")
	}
	if c.IsSet("date") {
		d, err := parseDateFlag("date", c.String("date"))
		if err != nil {
			return err
		}
		draft.BillingDate = d
	}
	return nil
}

func applyItemFlags(c *cli.Context, lines *service.InvoiceLineEngine) error {
	for _, value := range c.StringSlice("item") {
		spec, err := parseItemSpec(value)
		if err != nil {
			return err
		}
		if err := appendItem(lines, spec); err != nil {
			return err
		}
	}
	return nil
}

func applyChargeFlags(c *cli.Context, lines *service.InvoiceLineEngine) {
	if c.IsSet("gst") {
		lines.SetTax(c.String("gst"))
	}
	if c.IsSet("packing") {
		lines.SetPackaging(c.String("packing"))
	}
}

func billIDArg(c *cli.Context) (types.RecordID, error) {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return "", ierr.NewError("bill id is required").
			WithHintf("Usage: billdesk %s <bill id>", c.Command.Name).
			Mark(ierr.ErrInvalidArgument)
	}
	return types.RecordID(id), nil
}

func parseDateFlag(flag, value string) (types.Date, error) {
	d, err := types.ParseDate(value)
	if err != nil {
		return types.Date{}, ierr.WithError(err).
			WithHintf("--%s must be a date like 2024-03-01", flag).
			Mark(ierr.ErrInvalidArgument)
	}
	return d, nil
}

func writeBillTable(w io.Writer, bills []*bill.Bill) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCUSTOMER\tLOCATION\tITEMS\tGRAND TOTAL")
	for _, b := range bills {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			b.Detail.ID,
			b.Detail.BillingDate,
			b.Customer.DisplayName(),
			b.Customer.Location,
			len(b.Items),
			types.FormatAmount(b.Detail.GrandTotal))
	}
	_ = tw.Flush()
}

func writeBill(w io.Writer, b *bill.Bill) {
	fmt.Fprintf(w, "Bill #%s  %s\n", b.Detail.ID, b.Detail.BillingDate)
	fmt.Fprintf(w, "Name: %s  Location: %s\n\n", b.Customer.DisplayName(), b.Customer.Location)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SR\tDESCRIPTION\tQTY\tUNIT\tRATE\tAMOUNT")
	for i, item := range b.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			item.Description,
			item.QuantityOrZero(),
			item.Unit,
			item.RateOrZero(),
			types.FormatAmount(item.Amount))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %s\n", types.FormatAmount(b.Detail.Subtotal()))
	fmt.Fprintf(w, "GST: %s\n", types.FormatAmount(b.Detail.Tax))
	fmt.Fprintf(w, "Packaging: %s\n", types.FormatAmount(b.Detail.Packaging))
	fmt.Fprintf(w, "Grand Total: %s\n", types.FormatAmount(b.Detail.GrandTotal))
}

func writeAggregate(w io.Writer, agg bill.Aggregate) {
	fmt.Fprintf(w, "Total: %s  GST: %s  Packaging: %s  Grand Total: %s\n",
		types.FormatAmount(agg.Subtotal),
		types.FormatAmount(agg.Tax),
		types.FormatAmount(agg.Packaging),
		types.FormatAmount(agg.GrandTotal))
}
