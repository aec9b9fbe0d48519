package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/submit"
)

func (a *app) catalog() (order.Catalog, error) {
	if a.cfg.Catalog.File == "" {
		return order.DefaultCatalog()
	}
	f, err := os.Open(a.cfg.Catalog.File)
	if err != nil {
		return order.Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	catalog, err := order.LoadCatalog(f)
	if err != nil {
		return order.Catalog{}, fmt.Errorf("load catalog %s: %w", a.cfg.Catalog.File, err)
	}
	return catalog, nil
}

func (a *app) submitter() *submit.Client {
	return submit.New(
		submit.WithEndpoint(a.cfg.Order.Endpoint),
		submit.WithPath(a.cfg.Order.Path),
		submit.WithTimeout(a.cfg.Order.Timeout),
		submit.WithLogger(a.log().Named("submit")),
	)
}

func (a *app) themes() (*render.Themes, error) {
	return render.NewThemes(a.cfg.Theme.Name, a.cfg.Theme.Variant, render.PizzaTheme())
}

// contract returns the configured order schema, or the embedded one.
func (a *app) contract(ctx context.Context) (*schema.Schema, error) {
	if a.cfg.Schema.Source == "" {
		return schema.Default()
	}
	src, err := schema.ParseSource(a.cfg.Schema.Source)
	if err != nil {
		return nil, err
	}
	return schema.LoadSource(ctx, src, schema.WithFetchTimeout(a.cfg.Order.Timeout))
}
