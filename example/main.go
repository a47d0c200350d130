// Package main demonstrates usage of the scg-spanerr packages.
package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/next-trace/scg-spanerr/span"
	"github.com/next-trace/scg-spanerr/spanerr"
	"github.com/next-trace/scg-spanerr/spanlog"
)

// QuantityError is a caller-owned error kind the parse error is mapped into.
type QuantityError struct {
	Field string
	cause error
}

func (e *QuantityError) Error() string { return fmt.Sprintf("invalid %s: %v", e.Field, e.cause) }
func (e *QuantityError) Unwrap() error { return e.cause }

func parseQuantity(ctx context.Context, raw string) (int, error) {
	ctx = span.Enter(ctx, "parse_quantity", span.WithField("raw", raw))

	r := spanerr.InCurrentSpan(ctx, spanerr.From(strconv.Atoi(raw)))

	return spanerr.SpannedMapErr(r, func(err error) *QuantityError {
		return &QuantityError{Field: "quantity", cause: err}
	}).Unpack()
}

func handleOrder(ctx context.Context, id, qty string) error {
	ctx = span.Enter(ctx, "handle_order", span.WithField("order_id", id))

	if _, err := parseQuantity(ctx, qty); err != nil {
		// Already spanned: Wrap leaves it alone.
		return spanerr.Wrap(ctx, err)
	}

	return nil
}

func main() {
	logger, _ := zap.NewDevelopment(spanlog.WrapCore())
	defer func() { _ = logger.Sync() }()

	err := handleOrder(context.Background(), "o-17", "twelve")

	// Display is the wrapped error's text only.
	fmt.Println(err)

	// %+v adds the captured frames.
	fmt.Printf("%+v\n", err)

	var qe *QuantityError
	if errors.As(err, &qe) {
		fmt.Println("field:", qe.Field)
	}

	logger.Error("order rejected", zap.Error(err))

	lr := logrus.New()
	lr.AddHook(spanlog.NewLogrusHook())
	lr.WithError(err).Error("order rejected")
}
