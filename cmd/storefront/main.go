// Command storefront is the terminal client for the beauty-products shop:
// catalog browsing, cart management, checkout, order tracking, and the admin
// product console, all against the remote REST backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cbcbeauty/storefront/core/cart"
	"github.com/cbcbeauty/storefront/core/catalog"
	"github.com/cbcbeauty/storefront/core/checkout"
	"github.com/cbcbeauty/storefront/core/config"
	"github.com/cbcbeauty/storefront/core/logger"
	"github.com/cbcbeauty/storefront/core/notify"
	"github.com/cbcbeauty/storefront/core/order"
	"github.com/cbcbeauty/storefront/core/session"
	"github.com/cbcbeauty/storefront/core/storage"
	"github.com/cbcbeauty/storefront/core/store"
	"github.com/cbcbeauty/storefront/integration/api"
	s3store "github.com/cbcbeauty/storefront/integration/storage/s3"
	redisstore "github.com/cbcbeauty/storefront/integration/store/redis"
	"github.com/cbcbeauty/storefront/pkg/money"
)

type appConfig struct {
	StorePath       string `env:"STOREFRONT_STORE_PATH" envDefault:"storefront.json"`
	UseRedis        bool   `env:"STOREFRONT_USE_REDIS"`
	Currency        string `env:"STOREFRONT_CURRENCY" envDefault:"USD"`
	TrackingBaseURL string `env:"STOREFRONT_TRACKING_URL" envDefault:"https://shop.cbcbeauty.example"`
	LogLevel        string `env:"STOREFRONT_LOG_LEVEL" envDefault:"warn"`
}

// app bundles the wired managers behind the CLI commands.
type app struct {
	cfg      appConfig
	session  *session.Manager
	cart     *cart.Manager
	notify   *notify.Dispatcher
	catalog  *catalog.Service
	orders   *order.Service
	checkout *checkout.Service
	money    *money.Formatter
	logger   *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithLevel(parseLevel(cfg.LogLevel)),
	)

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	dispatcher := notify.NewDispatcher(notify.WithLogger(log))
	defer dispatcher.Close()
	go printNotifications(dispatcher)

	var sess *session.Manager

	var apiCfg api.Config
	if err := config.Load(&apiCfg); err != nil {
		return err
	}
	client, err := api.New(apiCfg,
		api.WithLogger(log),
		api.WithTokenSource(api.TokenFunc(func(ctx context.Context) string {
			if sess == nil {
				return ""
			}
			return sess.Token(ctx)
		})),
		api.WithOnUnauthorized(func() {
			if sess != nil {
				sess.Logout(context.Background())
			}
		}),
	)
	if err != nil {
		return err
	}

	sess = session.NewManager(st, client, session.WithLogger(log))
	sess.Restore(ctx)

	formatter, err := money.NewFormatter(cfg.Currency)
	if err != nil {
		return err
	}

	cartMgr := cart.NewManager(ctx, st,
		cart.WithNotifier(dispatcher),
		cart.WithLogger(log),
	)
	catalogSvc := catalog.NewService(client, catalog.WithLogger(log))
	orderSvc := order.NewService(client, order.WithLogger(log))
	checkoutSvc := checkout.NewService(cartMgr, orderSvc, catalogSvc,
		checkout.WithNotifier(dispatcher),
		checkout.WithLogger(log),
	)

	a := &app{
		cfg:      cfg,
		session:  sess,
		cart:     cartMgr,
		notify:   dispatcher,
		catalog:  catalogSvc,
		orders:   orderSvc,
		checkout: checkoutSvc,
		money:    formatter,
		logger:   log,
	}

	err = a.dispatch(ctx, args[0], args[1:])

	// Give the dispatcher's event channel a beat to drain before exit.
	time.Sleep(50 * time.Millisecond)
	return err
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "products":
		return a.listProducts(ctx)
	case "product":
		return a.showProduct(ctx, args)
	case "search":
		return a.searchProducts(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		a.session.Logout(ctx)
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return a.whoami()
	case "cart":
		return a.showCart()
	case "cart-add":
		return a.cartAdd(ctx, args)
	case "cart-remove":
		return a.cartRemove(ctx, args)
	case "cart-qty":
		return a.cartQuantity(ctx, args)
	case "cart-clear":
		return a.cart.Clear(ctx)
	case "checkout":
		return a.runCheckout(ctx, args)
	case "orders":
		return a.listOrders(ctx)
	case "order":
		return a.showOrder(ctx, args)
	case "watch":
		return a.watchOrders(ctx)
	case "add-product":
		return a.addProduct(ctx, args)
	case "delete-product":
		return a.deleteProduct(ctx, args)
	case "update-order":
		return a.updateOrder(ctx, args)
	case "upload-images":
		return a.uploadImages(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) listProducts(ctx context.Context) error {
	products, err := a.catalog.All(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		a.printProduct(p)
	}
	return nil
}

func (a *app) showProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: product <id>")
	}
	p, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}
	a.printProduct(p)
	if p.Description != "" {
		fmt.Println(" ", p.Description)
	}
	return nil
}

func (a *app) searchProducts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: search <query>")
	}
	products, err := a.catalog.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	for _, p := range products {
		a.printProduct(p)
	}
	return nil
}

func (a *app) printProduct(p catalog.Product) {
	line := fmt.Sprintf("%-10s %-32s %10s", p.ProductID, p.ProductName, a.money.Format(p.LastPrice))
	if badge := a.money.FormatDiscount(p.DiscountPercent()); badge != "" {
		line += "  " + badge
	}
	switch p.Availability() {
	case catalog.StockStatusOutOfStock:
		line += "  [out of stock]"
	case catalog.StockStatusLowStock:
		line += fmt.Sprintf("  [only %d left]", p.Stock)
	}
	fmt.Println(line)
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	res := a.session.Login(ctx, session.Credentials{Email: args[0], Password: args[1]})
	if !res.Success {
		return errors.New(res.Err)
	}
	fmt.Printf("Welcome back, %s.\n", res.User.Name)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: register <name> <email> <password>")
	}
	res := a.session.Register(ctx, session.Registration{
		Name:     args[0],
		Email:    args[1],
		Password: args[2],
	})
	if !res.Success {
		return errors.New(res.Err)
	}
	fmt.Printf("Welcome, %s.\n", res.User.Name)
	return nil
}

func (a *app) whoami() error {
	user := a.session.Current()
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Type)
	return nil
}

func (a *app) showCart() error {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}
	for _, li := range items {
		fmt.Printf("%-10s %-32s x%-3d %10s\n",
			li.ProductID, li.ProductName, li.Quantity, a.money.Format(li.Subtotal()))
	}
	fmt.Printf("%47s %10s\n", "Total:", a.money.Format(a.cart.Total()))
	return nil
}

func (a *app) cartAdd(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: cart-add <productID> [quantity]")
	}
	quantity := 1
	if len(args) == 2 {
		q, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		quantity = q
	}

	product, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if !a.catalog.InStock(ctx, product.ProductID, quantity) {
		a.notify.ShowError(fmt.Sprintf("Only %d left in stock", product.Stock))
		return nil
	}
	return a.cart.Add(ctx, product, quantity)
}

func (a *app) cartRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cart-remove <productID>")
	}
	return a.cart.Remove(ctx, args[0])
}

func (a *app) cartQuantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: cart-qty <productID> <quantity>")
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	return a.cart.SetQuantity(ctx, args[0], quantity)
}

func (a *app) runCheckout(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	form := checkout.Form{}
	fs.StringVar(&form.FirstName, "first", "", "first name")
	fs.StringVar(&form.LastName, "last", "", "last name")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.Phone, "phone", "", "phone number")
	fs.StringVar(&form.Address, "address", "", "shipping address")
	fs.StringVar(&form.City, "city", "", "city")
	fs.StringVar(&form.PostalCode, "postal", "", "postal code")
	fs.StringVar(&form.Country, "country", "Sri Lanka", "country")
	fs.StringVar(&form.PaymentMethod, "method", checkout.PaymentCashOnDelivery,
		"payment method: card or cash_on_delivery")
	fs.StringVar(&form.Card.Number, "card", "", "card number")
	fs.StringVar(&form.Card.Expiry, "expiry", "", "card expiry MM/YY")
	fs.StringVar(&form.Card.CVV, "cvv", "", "card cvv")
	fs.StringVar(&form.Card.CardholderName, "holder", "", "cardholder name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	conf, err := a.checkout.PlaceOrder(ctx, form)
	if err != nil {
		var fields checkout.FieldErrors
		if errors.As(err, &fields) {
			for field, msg := range fields {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
			}
		}
		return err
	}

	fmt.Printf("Order %s placed. Total %s.\n",
		conf.Order.OrderID, a.money.Format(conf.Order.TotalAmount))
	if conf.Payment != nil {
		fmt.Printf("Paid %s with card ending %s (ref %s).\n",
			a.money.Format(conf.Payment.Amount), conf.Payment.CardLast4, conf.Payment.TransactionID)
	}
	fmt.Println("Track it at", order.TrackingURL(a.cfg.TrackingBaseURL, conf.Order.OrderID))
	return nil
}

func (a *app) listOrders(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	orders, err := a.orders.All(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("%-12s %-10s %10s  %s\n",
			o.OrderID, o.Status, a.money.Format(o.TotalAmount), o.Name)
	}
	return nil
}

func (a *app) showOrder(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: order <id>")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}
	o, err := a.orders.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Order %s: %s\n", o.OrderID, o.Status.Message())
	for _, item := range o.OrderedItems {
		fmt.Printf("  %s x%d\n", item.ProductID, item.Qty)
	}
	fmt.Printf("  Total %s, %s\n", a.money.Format(o.TotalAmount), o.PaymentMethod)
	fmt.Println("  Track:", order.TrackingURL(a.cfg.TrackingBaseURL, o.OrderID))
	return nil
}

// watchOrders polls order statuses until interrupted, announcing changes as
// notifications.
func (a *app) watchOrders(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	watcher := order.NewWatcher(a.orders, a.notify, order.WithWatcherLogger(a.logger))
	fmt.Println("Watching order status. Press Ctrl+C to stop.")

	if err := watcher.Start(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *app) addProduct(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("add-product", flag.ContinueOnError)
	var (
		id       = fs.String("id", "", "product id")
		name     = fs.String("name", "", "product name")
		desc     = fs.String("desc", "", "description")
		category = fs.String("category", "", "category")
		price    = fs.String("price", "0", "list price")
		last     = fs.String("last-price", "", "discounted price (defaults to price)")
		stock    = fs.Int("stock", 0, "stock quantity")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	listPrice, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("invalid price %q", *price)
	}
	lastPrice := listPrice
	if *last != "" {
		if lastPrice, err = decimal.NewFromString(*last); err != nil {
			return fmt.Errorf("invalid last price %q", *last)
		}
	}

	product := catalog.Product{
		ProductID:   *id,
		ProductName: *name,
		Description: *desc,
		Category:    *category,
		Price:       listPrice,
		LastPrice:   lastPrice,
		Stock:       *stock,
		Images:      fs.Args(),
	}
	if err := a.catalog.Create(ctx, product); err != nil {
		return err
	}
	a.notify.ShowSuccess(fmt.Sprintf("%s added successfully!", product.ProductName))
	return nil
}

func (a *app) deleteProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delete-product <id>")
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}
	return a.catalog.Delete(ctx, args[0])
}

func (a *app) updateOrder(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("update-order", flag.ContinueOnError)
	var (
		id     = fs.String("id", "", "order id")
		status = fs.String("status", "", "new status")
		notes  = fs.String("notes", "", "admin notes")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	updated, err := a.orders.Update(ctx, *id, order.UpdateParams{
		Status: order.Status(*status),
		Notes:  *notes,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Order %s is now %s.\n", updated.OrderID, updated.Status)
	return nil
}

func (a *app) uploadImages(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: upload-images <file>...")
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	var s3cfg s3store.Config
	if err := config.Load(&s3cfg); err != nil {
		return err
	}
	st, err := s3store.New(ctx, s3cfg)
	if err != nil {
		return err
	}
	uploader := storage.NewUploader(st, storage.WithUploaderLogger(a.logger))

	uploads := make([]storage.Upload, 0, len(args))
	files := make([]*os.File, 0, len(args))
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		files = append(files, f)

		info, err := f.Stat()
		if err != nil {
			return err
		}
		uploads = append(uploads, storage.Upload{
			Filename: info.Name(),
			Content:  f,
			Size:     info.Size(),
		})
	}

	urls, err := uploader.UploadImages(ctx, uploads)
	if err != nil {
		return err
	}
	for _, u := range urls {
		fmt.Println(u)
	}
	return nil
}

func (a *app) requireAuth() error {
	if !a.session.IsAuthenticated() {
		return errors.New("please log in first")
	}
	return nil
}

func (a *app) requireAdmin() error {
	if !a.session.IsAdmin() {
		return errors.New("access denied: admin privileges required")
	}
	return nil
}

// openStore picks the state backend: Redis when configured, a local JSON
// file otherwise.
func openStore(ctx context.Context, cfg appConfig) (store.Store, func(), error) {
	if cfg.UseRedis {
		var rcfg redisstore.Config
		if err := config.Load(&rcfg); err != nil {
			return nil, nil, err
		}
		client, err := redisstore.Connect(ctx, rcfg)
		if err != nil {
			return nil, nil, err
		}
		st := redisstore.NewStore(client, redisstore.WithKeyPrefix(rcfg.KeyPrefix))
		return st, func() { _ = client.Close() }, nil
	}

	st, err := store.NewFile(cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	return st, func() {}, nil
}

func printNotifications(d *notify.Dispatcher) {
	for ev := range d.Events() {
		if ev.Kind != notify.EventShown {
			continue
		}
		fmt.Printf("[%s] %s\n", ev.Notification.Severity, ev.Notification.Message)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func usage() {
	fmt.Print(`storefront - beauty products shop client

Catalog:
  products                         list all products
  product <id>                     show one product
  search <query>                   search by name or category

Account:
  login <email> <password>
  register <name> <email> <password>
  logout
  whoami

Cart:
  cart                             show the cart
  cart-add <productID> [qty]
  cart-remove <productID>
  cart-qty <productID> <quantity>
  cart-clear

Orders:
  checkout -first .. -last .. -email .. -phone .. -address .. -city .. -postal ..
           [-method card -card .. -expiry MM/YY -cvv .. -holder ..]
  orders                           list my orders
  order <id>                       show order details
  watch                            poll order status for changes

Admin:
  add-product -id .. -name .. -price .. [-stock ..] [image-url...]
  delete-product <id>
  update-order -id .. -status .. [-notes ..]
  upload-images <file>...
`)
}
