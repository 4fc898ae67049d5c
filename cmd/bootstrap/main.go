// Command bootstrap places a single order in memory, pays it and prints the
// effects its fulfillment produced.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/polkiloo/orderflow/internal/adapter/sink"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/fulfillment"
	"github.com/polkiloo/orderflow/internal/logger"
	"github.com/polkiloo/orderflow/internal/pkg/auth"
	"github.com/polkiloo/orderflow/internal/pkg/authnum"
	"github.com/polkiloo/orderflow/internal/storage/memory"
	"github.com/polkiloo/orderflow/internal/usecase"
)

func main() {
	var (
		types = flag.String("types", "membership", "Comma separated product types to buy")
		name  = flag.String("name", "Awesome book", "Product name")
		card  = flag.String("card", "4111111111111111", "Card number to pay with")
	)
	flag.Parse()

	if err := run(context.Background(), os.Stdout, *name, strings.Split(*types, ","), *card); err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, name string, types []string, card string) error {
	log := logger.NewWithWriter(os.Stderr)
	store := memory.New()
	recorder := &sink.Recorder{}
	dispatcher := fulfillment.NewDispatcher(sink.FanOut{sink.NewLogSink(log), recorder}, log, fulfillment.Options{})

	hasher, err := auth.NewBlake2bHasher("bootstrap")
	if err != nil {
		return err
	}
	method, _, err := usecase.NewPaymentMethodUseCase(store.PaymentMethods(), hasher).Register(ctx, card)
	if err != nil {
		return fmt.Errorf("register card: %w", err)
	}

	customer, err := store.Customers().Create(ctx)
	if err != nil {
		return err
	}

	products := make([]model.Product, 0, len(types))
	for _, t := range types {
		products = append(products, model.NewProduct(name, model.ProductType(t)))
	}
	order, err := usecase.NewOrderUseCase(store.Customers(), store.Orders(), store.Effects()).
		Place(ctx, customer.ID, usecase.OrderRequest{Products: products})
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}

	payments := usecase.NewPaymentUseCase(store.Orders(), store.Customers(), store.Payments(), store.PaymentMethods(),
		authnum.NewUUIDIssuer(), dispatcher, log)
	result, err := payments.Checkout(ctx, customer.ID, order.ID, method.Code)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	for _, line := range recorder.Lines() {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, result.Payment.IsPaid())
	if len(result.Payment.Order.Items) > 0 {
		fmt.Fprintln(out, result.Payment.Order.Items[0].Product.Type)
	}
	for _, skipped := range result.Report.Skipped {
		fmt.Fprintf(out, "skipped item %d: %v\n", skipped.Index, skipped.Reason)
	}
	return nil
}
