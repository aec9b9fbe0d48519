package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
	"github.com/goliatone/go-orderform/pkg/testsupport"
)

type fixedDriver struct {
	name     string
	size     int
	toppings []int
	infos    []string
	abort    bool
}

func (d *fixedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if d.abort {
		return "", tui.ErrAborted
	}
	return d.name, nil
}

func (d *fixedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *fixedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return d.size, nil
}

func (d *fixedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return d.toppings, nil
}

func (d *fixedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func execute(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidate_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fullName":"Ada","size":"S","toppings":["2"]}`), 0o600))

	out, err := execute(t, &app{}, "", "validate", path)
	require.NoError(t, err)

	var report validationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestValidate_InvalidStdin(t *testing.T) {
	out, err := execute(t, &app{}, `{"fullName":"  Al ","size":"XL","toppings":["9"]}`, "validate", "-")
	require.ErrorIs(t, err, ErrInvalidOrder)

	var report validationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Valid)
	assert.Equal(t, "full name must be at least 3 characters", report.Errors["fullName"])
	assert.Contains(t, report.Errors, "size")
	assert.Contains(t, report.Errors, "toppings")
}

func TestValidate_BadJSON(t *testing.T) {
	_, err := execute(t, &app{}, `{`, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode draft")
}

func TestOrder_SubmitsToConfiguredEndpoint(t *testing.T) {
	api := testsupport.NewOrderAPI(t)

	driver := &fixedDriver{name: "Grace Hopper", size: 2, toppings: []int{0, 4}}
	_, err := execute(t, &app{driver: driver}, "", "order", "--endpoint", api.Endpoint())
	require.NoError(t, err)

	drafts := api.Drafts()
	require.Len(t, drafts, 1)
	assert.Equal(t, "Grace Hopper", drafts[0].FullName)
	assert.Equal(t, order.SizeLarge, drafts[0].Size)
	assert.Equal(t, order.Toppings{"1", "5"}, drafts[0].Toppings)
	require.NotEmpty(t, driver.infos)
	assert.Contains(t, driver.infos[len(driver.infos)-1], "Order submitted!")
}

func TestOrder_AbortIsNotAnError(t *testing.T) {
	_, err := execute(t, &app{driver: &fixedDriver{abort: true}}, "", "order")
	require.NoError(t, err)
}

func TestServe_HandlerAndShutdown(t *testing.T) {
	a := &app{}
	cmd := newRootCommand(a)
	require.NoError(t, a.setup(cmd))
	a.cfg.Server.ShutdownGrace = time.Second

	srv, err := a.server(context.Background())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx, srv, ln) }()

	res, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestSetup_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `sizes:
  - {value: S, label: Personal}
  - {value: M, label: Regular}
  - {value: L, label: Family}
toppings:
  - {value: "1", label: Salami}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ORDERFORM_CATALOG_FILE", path)

	a := &app{}
	require.NoError(t, a.setup(newRootCommand(a)))
	catalog, err := a.catalog()
	require.NoError(t, err)
	assert.Equal(t, "Family", catalog.SizeLabel("L"))
	assert.Equal(t, "Salami", catalog.ToppingLabel("1"))
}
