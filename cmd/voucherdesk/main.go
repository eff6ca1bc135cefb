package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"voucherdesk/internal/cli"
	"voucherdesk/internal/config"
	"voucherdesk/internal/core"
	"voucherdesk/internal/notify"
	"voucherdesk/internal/remote"
	"voucherdesk/internal/remote/httpapi"
	"voucherdesk/internal/remote/memory"
	"voucherdesk/internal/session"
	"voucherdesk/internal/store"
	"voucherdesk/internal/workflow"
)

const usage = `usage: voucherdesk <command> [flags]

commands:
  login     authenticate and store the session
  logout    discard the stored session
  vouchers  list vouchers (-q search, -status all|active|used|expired)
  payments  list payments (-q search, -status all|PENDING|PAID|FAILED)
  stats     show voucher and payment summary stats
  create    create a voucher (-mb, -days, -phone, -package, -expires)
  pay       initiate a payment (-voucher, -amount, -gateway, -phone)
  refresh   reload both collections
`

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	sessions := cli.InitSession(logger, cfg.SessionDBPath)
	defer sessions.Close()

	var backend remote.Service
	switch cfg.Backend {
	case config.BackendMemory:
		backend = demoBackend()
		logger.Info("Using in-memory demo backend")
	default:
		client, err := httpapi.New(cfg.APIBaseURL, sessions, cfg.HTTPTimeout)
		if err != nil {
			logger.Error("Failed to initialize API client", "error", err)
			os.Exit(1)
		}
		backend = client
	}

	// Notifications land on stdout; they replace the web UI's toasts.
	notifier := notify.Func(func(message string, severity notify.Severity) {
		fmt.Printf("[%s] %s\n", severity, message)
	})

	app := &app{
		sessions: sessions,
		backend:  backend,
		vouchers: store.NewVoucherStore(backend, notifier),
		payments: store.NewPaymentStore(backend, notifier),
		notifier: notifier,
	}

	ctx := context.Background()
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

type app struct {
	sessions *session.Store
	backend  remote.Service
	vouchers *store.VoucherStore
	payments *store.PaymentStore
	notifier notify.Notifier
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.sessions.Clear(ctx)
	case "vouchers":
		return a.listVouchers(ctx, args)
	case "payments":
		return a.listPayments(ctx, args)
	case "stats":
		return a.stats(ctx)
	case "create":
		return a.create(ctx, args)
	case "pay":
		return a.pay(ctx, args)
	case "refresh":
		return store.RefreshAll(ctx, a.vouchers, a.payments)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	sess, err := a.backend.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.sessions.Save(ctx, sess); err != nil {
		return err
	}
	a.notifier.Notify("Login successful! Welcome back.", notify.SeveritySuccess)
	return nil
}

func (a *app) listVouchers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("vouchers", flag.ExitOnError)
	search := fs.String("q", "", "search text")
	facet := fs.String("status", core.StatusAll, "status facet")
	fs.Parse(args)

	if err := a.vouchers.Load(ctx); err != nil {
		return err
	}
	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tPACKAGE\tEXPIRES\tSTATUS\tUSED BY\tCREATED")
	for _, v := range a.vouchers.Filter(*search, *facet) {
		code := v.Code
		if v.Provisional {
			code += " (pending)"
		}
		usedBy := v.UsedBy
		if usedBy == "" {
			usedBy = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			code, v.PackageType,
			v.ExpirationDate.Format("2006-01-02"),
			v.Status(now), usedBy,
			v.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func (a *app) listPayments(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("payments", flag.ExitOnError)
	search := fs.String("q", "", "search text")
	facet := fs.String("status", core.StatusAll, "status facet")
	fs.Parse(args)

	if err := a.payments.Load(ctx); err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VOUCHER\tGATEWAY\tAMOUNT\tPHONE\tSTATUS\tREFERENCE")
	for _, p := range a.payments.Filter(*search, *facet) {
		ref := p.GatewayReferenceID
		if ref == "" {
			ref = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.VoucherCode, p.Gateway, p.Amount, p.PhoneNumber, p.Status, ref)
	}
	return w.Flush()
}

func (a *app) stats(ctx context.Context) error {
	if err := store.RefreshAll(ctx, a.vouchers, a.payments); err != nil {
		return err
	}
	vs := a.vouchers.Stats()
	ps := a.payments.Stats()
	fmt.Printf("Vouchers: total=%d active=%d used=%d expired=%d revenue=%s UGX\n",
		vs.Total, vs.Active, vs.Used, vs.Expired, vs.Revenue)
	fmt.Printf("Payments: total=%d paid=%d pending=%d failed=%d amount=%s UGX\n",
		ps.Total, ps.Paid, ps.Pending, ps.Failed, ps.TotalAmount)
	return nil
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	amountMB := fs.Int("mb", 500, "data amount in MB")
	days := fs.Int("days", 3, "expires in days")
	phone := fs.String("phone", "", "recipient phone number")
	pkg := fs.String("package", string(core.PackageStandard), "package type")
	expires := fs.String("expires", "", "explicit expiration date (RFC3339, optional)")
	fs.Parse(args)

	in := workflow.CreateVoucherInput{
		AmountMB:    *amountMB,
		ExpiresDays: *days,
		Phone:       *phone,
		PackageType: core.PackageType(*pkg),
	}
	if *expires != "" {
		t, err := time.Parse(time.RFC3339, *expires)
		if err != nil {
			return fmt.Errorf("parse expiration date: %w", err)
		}
		in.ExpirationDate = t
	}

	w := workflow.NewCreateVoucher(a.backend, a.vouchers, a.notifier)
	return w.Submit(ctx, in)
}

func (a *app) pay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	voucher := fs.String("voucher", "", "voucher code")
	amount := fs.String("amount", "", "amount in UGX")
	gateway := fs.String("gateway", string(core.GatewayMTN), "payment gateway (MTN or AIRTEL)")
	phone := fs.String("phone", "", "phone number to charge")
	fs.Parse(args)

	parsed, err := core.ParseAmount(*amount)
	if err != nil {
		return err
	}

	w := workflow.NewInitiatePayment(a.backend, a.vouchers, a.notifier, nil)
	return w.Submit(ctx, workflow.InitiatePaymentInput{
		Gateway:     core.Gateway(*gateway),
		Amount:      parsed,
		PhoneNumber: *phone,
		VoucherCode: *voucher,
	})
}

// demoBackend seeds the in-memory backend with a recognizable data set
// for offline use.
func demoBackend() *memory.Store {
	now := time.Now().UTC()
	s := memory.New()
	s.Seed(
		[]core.Voucher{
			{ID: "demo-1", Code: "DEMO0001", PackageType: core.PackageStandard, CreatedAt: now.Add(-48 * time.Hour), ExpirationDate: now.Add(24 * time.Hour)},
			{ID: "demo-2", Code: "DEMO0002", PackageType: core.PackagePremium, CreatedAt: now.Add(-72 * time.Hour), ExpirationDate: now.Add(-time.Hour)},
			{ID: "demo-3", Code: "DEMO0003", PackageType: core.PackageBasic, CreatedAt: now.Add(-24 * time.Hour), ExpirationDate: now.Add(48 * time.Hour), Used: true, UsedBy: "demo@example.com"},
		},
		[]core.Payment{
			{ID: "demo-p1", VoucherCode: "DEMO0003", Gateway: core.GatewayMTN, Amount: core.Money{Cents: 1000_00}, PhoneNumber: "+256770000001", Status: core.PaymentPaid, GatewayReferenceID: "REF-1001", CreatedAt: now.Add(-20 * time.Hour)},
			{ID: "demo-p2", VoucherCode: "DEMO0001", Gateway: core.GatewayAirtel, Amount: core.Money{Cents: 500_00}, PhoneNumber: "+256770000002", Status: core.PaymentPending, CreatedAt: now.Add(-time.Hour)},
		},
	)
	return s
}
