package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/manager"
	"dukkan/internal/usecase"
	"dukkan/pkg/config"
	"dukkan/pkg/feedback"
)

type cli struct {
	Yes bool `help:"Skip confirmation prompts for destructive actions." short:"y"`

	Orders    ordersCmd    `cmd:"" help:"Manage storefront orders."`
	Products  productsCmd  `cmd:"" help:"Manage products, variants, and code pools."`
	Discounts discountsCmd `cmd:"" help:"Manage discount codes."`
	Disputes  disputesCmd  `cmd:"" help:"Work dispute threads and resolutions."`
	Users     usersCmd     `cmd:"" help:"Manage users, roles, permissions, and wallets."`
	Analytics analyticsCmd `cmd:"" help:"View or reset storefront analytics."`
	Audit     auditCmd     `cmd:"" help:"Browse the audit trail."`
	Settings  settingsCmd  `cmd:"" help:"Site and telegram settings."`
	Broadcast broadcastCmd `cmd:"" help:"Send a broadcast notification."`
	Upload    uploadCmd    `cmd:"" help:"Upload an image."`
}

// app wires the shared client, feedback ring, and confirmation policy into
// every command.
type app struct {
	client  *rest.Client
	notify  *feedback.Memory
	confirm manager.Confirmer
	ctx     context.Context
}

func newApp(cfg *config.Config, skipConfirm bool) *app {
	notify := feedback.NewMemory(50)
	client := rest.New(
		cfg.APIBaseURL,
		rest.NewStaticCredentials(cfg.AdminToken),
		rest.WithTimeout(time.Duration(cfg.HTTPTimeout)*time.Second),
	)

	confirm := manager.Confirmer(manager.ConfirmFunc(promptConfirm))
	if skipConfirm {
		confirm = manager.AlwaysConfirm
	}

	return &app{
		client:  client,
		notify:  notify,
		confirm: confirm,
		ctx:     context.Background(),
	}
}

func promptConfirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// flush prints whatever the feedback channel collected during the command.
func (a *app) flush() {
	for _, n := range a.notify.Drain() {
		if n.Kind == feedback.KindError {
			fmt.Fprintf(os.Stderr, "error: %s\n", n.Message)
		} else {
			fmt.Println(n.Message)
		}
	}
}

func main() {
	root := &cli{}
	cliCtx := kong.Parse(root,
		kong.Description("Admin console for the dukkan storefront API."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	if err != nil {
		cliCtx.FatalIfErrorf(err)
	}

	a := newApp(cfg, root.Yes)
	err = cliCtx.Run(a)
	a.flush()
	cliCtx.FatalIfErrorf(err)
}

type ordersCmd struct {
	List    ordersListCmd    `cmd:"" help:"List orders."`
	Status  ordersStatusCmd  `cmd:"" help:"Transition an order's status."`
	Deliver ordersDeliverCmd `cmd:"" help:"Manually deliver an account-type order."`
}

type ordersListCmd struct {
	Status   string `help:"Filter by status."`
	Search   string `help:"Search by order number or customer."`
	Page     int    `default:"1" help:"1-based page."`
	Advanced bool   `help:"Use the advanced list endpoint."`
}

func (cmd *ordersListCmd) Run(a *app) error {
	uc := usecase.NewOrderUseCase(a.client, a.notify)
	uc.UseAdvanced(cmd.Advanced)
	col := uc.Collection()
	if cmd.Status != "" {
		col.SetFilterValue("status", cmd.Status)
	}
	if cmd.Search != "" {
		col.SetFilterValue("search", cmd.Search)
	}
	if err := col.SetPage(a.ctx, cmd.Page); err != nil {
		return err
	}
	for _, o := range col.Items() {
		fmt.Printf("%s\t%s\t%s\t%.2f JOD\t%s\n", o.ID, o.OrderNumber, o.Status, o.TotalJOD, o.UserEmail)
	}
	if col.HasNext() {
		fmt.Printf("-- more on page %d --\n", col.Page()+1)
	}
	return nil
}

type ordersStatusCmd struct {
	ID string `arg:"" help:"Order id."`
	To string `arg:"" help:"Target status."`
}

func (cmd *ordersStatusCmd) Run(a *app) error {
	uc := usecase.NewOrderUseCase(a.client, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.UpdateStatus(a.ctx, cmd.ID, cmd.To)
}

type ordersDeliverCmd struct {
	ID       string `arg:"" help:"Order id."`
	Email    string `required:"" help:"Delivered account email."`
	Password string `required:"" help:"Delivered account password."`
	End      string `help:"Subscription end date (YYYY-MM-DD)."`
	Notes    string `help:"Delivery notes."`
}

func (cmd *ordersDeliverCmd) Run(a *app) error {
	uc := usecase.NewOrderUseCase(a.client, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.Deliver(a.ctx, cmd.ID, usecase.DeliveryInput{
		Email:           cmd.Email,
		Password:        cmd.Password,
		SubscriptionEnd: cmd.End,
		Notes:           cmd.Notes,
	})
}

type productsCmd struct {
	List     productsListCmd     `cmd:"" help:"List products."`
	Toggle   productsToggleCmd   `cmd:"" help:"Activate or deactivate a product."`
	Feature  productsFeatureCmd  `cmd:"" help:"Feature or unfeature a product."`
	AddCodes productsAddCodesCmd `cmd:"" name:"add-codes" help:"Append delivery codes to a product."`
}

type productsListCmd struct {
	Category string `help:"Filter by category id."`
	Search   string `help:"Search by name."`
	Page     int    `default:"1"`
}

func (cmd *productsListCmd) Run(a *app) error {
	uc := usecase.NewProductUseCase(a.client, a.notify)
	col := uc.Collection()
	if cmd.Category != "" {
		col.SetFilterValue("category_id", cmd.Category)
	}
	if cmd.Search != "" {
		col.SetFilterValue("search", cmd.Search)
	}
	if err := col.SetPage(a.ctx, cmd.Page); err != nil {
		return err
	}
	for _, p := range col.Items() {
		state := "inactive"
		if p.IsActive {
			state = "active"
		}
		fmt.Printf("%s\t%s\t%.2f JOD\tstock=%d\t%s\n", p.ID, p.Name, p.PriceJOD, p.StockCount, state)
	}
	return nil
}

type productsToggleCmd struct {
	ID  string `arg:"" help:"Product id."`
	Off bool   `help:"Deactivate instead of activate."`
}

func (cmd *productsToggleCmd) Run(a *app) error {
	uc := usecase.NewProductUseCase(a.client, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.SetActive(a.ctx, cmd.ID, !cmd.Off)
}

type productsFeatureCmd struct {
	ID  string `arg:"" help:"Product id."`
	Off bool   `help:"Unfeature instead of feature."`
}

func (cmd *productsFeatureCmd) Run(a *app) error {
	uc := usecase.NewProductUseCase(a.client, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.SetFeatured(a.ctx, cmd.ID, !cmd.Off)
}

type productsAddCodesCmd struct {
	ID    string   `arg:"" help:"Product id."`
	Codes []string `arg:"" help:"Delivery codes to append."`
}

func (cmd *productsAddCodesCmd) Run(a *app) error {
	uc := usecase.NewProductUseCase(a.client, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.AddCodes(a.ctx, cmd.ID, cmd.Codes)
}

type discountsCmd struct {
	List   discountsListCmd   `cmd:"" help:"List discount codes."`
	Create discountsCreateCmd `cmd:"" help:"Create a discount code."`
	Toggle discountsToggleCmd `cmd:"" help:"Activate or deactivate a code."`
}

type discountsListCmd struct {
	Page int `default:"1"`
}

func (cmd *discountsListCmd) Run(a *app) error {
	uc := usecase.NewDiscountUseCase(a.client, a.notify)
	if err := uc.Collection().SetPage(a.ctx, cmd.Page); err != nil {
		return err
	}
	for _, d := range uc.Collection().Items() {
		uses := "unlimited"
		if d.MaxUses != nil {
			uses = fmt.Sprintf("%d/%d", d.UsedCount, *d.MaxUses)
		}
		fmt.Printf("%s\t%s\t%s %.2f\tuses=%s\n", d.ID, d.Code, d.DiscountType, d.DiscountValue, uses)
	}
	return nil
}

type discountsCreateCmd struct {
	Code    string `required:"" help:"Code, stored upper-cased."`
	Type    string `required:"" enum:"percentage,fixed" help:"Discount type."`
	Value   string `required:"" help:"Discount value."`
	Min     string `help:"Minimum purchase."`
	MaxUses string `name:"max-uses" help:"Usage cap; empty means unlimited."`
}

func (cmd *discountsCreateCmd) Run(a *app) error {
	uc := usecase.NewDiscountUseCase(a.client, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.Create(a.ctx, &usecase.DiscountDraft{
		Code:          cmd.Code,
		DiscountType:  cmd.Type,
		DiscountValue: cmd.Value,
		MinPurchase:   cmd.Min,
		MaxUses:       cmd.MaxUses,
		IsActive:      true,
	})
}

type discountsToggleCmd struct {
	ID  string `arg:"" help:"Discount id."`
	Off bool   `help:"Deactivate instead of activate."`
}

func (cmd *discountsToggleCmd) Run(a *app) error {
	uc := usecase.NewDiscountUseCase(a.client, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.SetActive(a.ctx, cmd.ID, !cmd.Off)
}

type disputesCmd struct {
	List    disputesListCmd    `cmd:"" help:"List disputes."`
	Reply   disputesReplyCmd   `cmd:"" help:"Reply to a dispute thread."`
	Resolve disputesResolveCmd `cmd:"" help:"Apply a terminal resolution."`
}

type disputesListCmd struct {
	Status string `help:"Filter by status (open, in_progress, resolved)."`
	Page   int    `default:"1"`
}

func (cmd *disputesListCmd) Run(a *app) error {
	uc := usecase.NewDisputeUseCase(a.client, a.notify)
	col := uc.Collection()
	if cmd.Status != "" {
		col.SetFilterValue("status", cmd.Status)
	}
	if err := col.SetPage(a.ctx, cmd.Page); err != nil {
		return err
	}
	for _, d := range col.Items() {
		fmt.Printf("%s\t%s\t%s\treplies=%d\n", d.ID, d.Status, d.Reason, len(d.Messages))
	}
	return nil
}

type disputesReplyCmd struct {
	ID      string `arg:"" help:"Dispute id."`
	Message string `arg:"" help:"Reply text."`
}

func (cmd *disputesReplyCmd) Run(a *app) error {
	uc := usecase.NewDisputeUseCase(a.client, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.Reply(a.ctx, cmd.ID, cmd.Message)
}

type disputesResolveCmd struct {
	ID       string `arg:"" help:"Dispute id."`
	Decision string `required:"" enum:"refund,redeliver,reject" help:"Resolution decision."`
	Notes    string `required:"" help:"Resolution notes."`
}

func (cmd *disputesResolveCmd) Run(a *app) error {
	uc := usecase.NewDisputeUseCase(a.client, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.Resolve(a.ctx, cmd.ID, cmd.Decision, cmd.Notes, a.confirm)
}

type usersCmd struct {
	List        usersListCmd        `cmd:"" help:"List users."`
	Role        usersRoleCmd        `cmd:"" help:"Change a user's role."`
	Permissions usersPermissionsCmd `cmd:"" help:"Show or replace a user's permission grants."`
	Wallet      usersWalletCmd      `cmd:"" help:"Credit or deduct a user's wallet."`
}

type usersListCmd struct {
	Search string `help:"Search by name or email."`
	Role   string `help:"Filter by role."`
	Page   int    `default:"1"`
}

func (cmd *usersListCmd) Run(a *app) error {
	uc := usecase.NewUserUseCase(a.client, usecase.NewAuthzEditor(a.client), a.notify)
	col := uc.Collection()
	if cmd.Search != "" {
		col.SetFilterValue("search", cmd.Search)
	}
	if cmd.Role != "" {
		col.SetFilterValue("role", cmd.Role)
	}
	if err := col.SetPage(a.ctx, cmd.Page); err != nil {
		return err
	}
	for _, u := range col.Items() {
		fmt.Printf("%s\t%s\t%s\t%s\t%.2f JOD\n", u.ID, u.Name, u.Email, u.Role, u.WalletBalanceJOD)
	}
	return nil
}

type usersRoleCmd struct {
	ID   string `arg:"" help:"User id."`
	Role string `arg:"" enum:"buyer,support,moderator,admin" help:"New role."`
}

func (cmd *usersRoleCmd) Run(a *app) error {
	uc := usecase.NewUserUseCase(a.client, usecase.NewAuthzEditor(a.client), a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.ChangeRole(a.ctx, cmd.ID, cmd.Role)
}

type usersPermissionsCmd struct {
	ID  string   `arg:"" help:"User id."`
	Set []string `help:"Replace the grant list (repeat --set)."`
}

func (cmd *usersPermissionsCmd) Run(a *app) error {
	authz := usecase.NewAuthzEditor(a.client)
	if len(cmd.Set) == 0 {
		perms, err := authz.Permissions(a.ctx, cmd.ID)
		if err != nil {
			return err
		}
		for _, p := range perms {
			fmt.Println(p)
		}
		return nil
	}

	uc := usecase.NewUserUseCase(a.client, authz, a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	return uc.SetPermissions(a.ctx, cmd.ID, cmd.Set)
}

type usersWalletCmd struct {
	ID     string  `arg:"" help:"User id."`
	Amount float64 `arg:"" help:"Amount in JOD."`
	Deduct bool    `help:"Deduct instead of credit."`
	Note   string  `help:"Ledger note."`
}

func (cmd *usersWalletCmd) Run(a *app) error {
	uc := usecase.NewUserUseCase(a.client, usecase.NewAuthzEditor(a.client), a.notify)
	if err := uc.Collection().Load(a.ctx); err != nil {
		return err
	}
	if cmd.Deduct {
		return uc.Deduct(a.ctx, cmd.ID, cmd.Amount, cmd.Note)
	}
	return uc.Credit(a.ctx, cmd.ID, cmd.Amount, cmd.Note)
}

type analyticsCmd struct {
	Overview analyticsOverviewCmd `cmd:"" help:"Show the analytics overview."`
	Reset    analyticsResetCmd    `cmd:"" help:"Reset analytics for a scope."`
}

type analyticsOverviewCmd struct{}

func (cmd *analyticsOverviewCmd) Run(a *app) error {
	uc := usecase.NewAnalyticsUseCase(a.client, a.notify)
	if err := uc.Load(a.ctx); err != nil {
		return err
	}
	o := uc.Overview()
	fmt.Printf("orders=%d revenue=%.2f JOD users=%d open_disputes=%d active_products=%d\n",
		o.TotalOrders, o.TotalRevenueJOD, o.TotalUsers, o.OpenDisputes, o.ActiveProducts)
	return nil
}

type analyticsResetCmd struct {
	Period string `default:"today" enum:"today,week,month,all" help:"Scope to wipe; defaults to the narrowest."`
}

func (cmd *analyticsResetCmd) Run(a *app) error {
	uc := usecase.NewAnalyticsUseCase(a.client, a.notify)
	return uc.Reset(a.ctx, cmd.Period, a.confirm)
}

type auditCmd struct {
	Page int `default:"1"`
}

func (cmd *auditCmd) Run(a *app) error {
	uc := usecase.NewAuditUseCase(a.client, a.notify)
	if err := uc.Collection().SetPage(a.ctx, cmd.Page); err != nil {
		return err
	}
	for _, l := range uc.Collection().Items() {
		fmt.Printf("%s\t%s\t%s (%s)\n", l.CreatedAt.Format("2006-01-02 15:04"), l.Action, l.UserName, l.UserRole)
	}
	return nil
}

type settingsCmd struct {
	Show         settingsShowCmd `cmd:"" help:"Show site and telegram settings."`
	TelegramTest telegramTestCmd `cmd:"" name:"telegram-test" help:"Send a telegram test message."`
}

type settingsShowCmd struct{}

func (cmd *settingsShowCmd) Run(a *app) error {
	uc := usecase.NewSettingsUseCase(a.client, a.notify)
	if err := uc.Load(a.ctx); err != nil {
		return err
	}
	site := uc.Site()
	tg := uc.Telegram()
	fmt.Printf("store=%s support=%s currency=%s maintenance=%v\n",
		site.StoreName, site.SupportEmail, site.Currency, site.MaintenanceMode)
	fmt.Printf("telegram: enabled=%v chat=%s notify_orders=%v notify_disputes=%v\n",
		tg.Enabled, tg.ChatID, tg.NotifyOrders, tg.NotifyDisputes)
	return nil
}

type telegramTestCmd struct{}

func (cmd *telegramTestCmd) Run(a *app) error {
	uc := usecase.NewSettingsUseCase(a.client, a.notify)
	return uc.TestTelegram(a.ctx)
}

type broadcastCmd struct {
	Title    string `required:"" help:"Notification title."`
	Message  string `required:"" help:"Notification body."`
	Audience string `default:"all" enum:"all,buyers,admins" help:"Target audience."`
}

func (cmd *broadcastCmd) Run(a *app) error {
	uc := usecase.NewBroadcastUseCase(a.client, a.notify)
	return uc.Send(a.ctx, usecase.BroadcastInput{
		Title:    cmd.Title,
		Message:  cmd.Message,
		Audience: cmd.Audience,
	})
}

type uploadCmd struct {
	File   string `arg:"" type:"path" help:"Image file to upload."`
	Folder string `default:"products" help:"Destination folder."`
}

func (cmd *uploadCmd) Run(a *app) error {
	f, err := os.Open(cmd.File)
	if err != nil {
		return err
	}
	defer f.Close()

	uc := usecase.NewUploadUseCase(a.client, a.notify)
	url, err := uc.UploadImage(a.ctx, filepath.Base(cmd.File), f, cmd.Folder)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}
