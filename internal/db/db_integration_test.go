//go:build integration

package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tokobajukeren/pos-api/internal/repository/dao"
)

func TestPostgres(t *testing.T) {
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=pos",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=pos",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("postgres://pos:secret@%s/pos?sslmode=disable", resource.GetHostPort("5432/tcp"))

	var gdb *gorm.DB
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		var err error
		gdb, err = OpenPostgresWithURL(dsn)
		return err
	})
	require.NoError(t, err)

	ctx := context.Background()

	users := dao.NewUserDAO(gdb)
	_, err = users.Insert(ctx, dao.User{Username: "kasir", Password: "x"})
	require.NoError(t, err)
	_, err = users.Insert(ctx, dao.User{Username: "kasir", Password: "y"})
	assert.ErrorIs(t, err, dao.ErrUsernameExists)

	products := dao.NewProductDAO(gdb)
	_, err = products.Insert(ctx, dao.Product{
		ID:    "p1",
		Name:  "Kaos",
		Price: decimal.RequireFromString("37834.5"),
		Stock: []dao.ProductStock{{ProductID: "p1", Size: "M", Quantity: 2}},
	})
	require.NoError(t, err)

	transactions := dao.NewTransactionDAO(gdb)
	_, err = transactions.InsertSale(ctx, dao.Transaction{
		ID:            "TRX-1",
		Date:          time.Now(),
		Discount:      decimal.RequireFromString("5675.175"),
		Total:         decimal.RequireFromString("32159.325"),
		PaymentMethod: "Tunai",
		Items:         []dao.TransactionItem{{ProductID: "p1", Name: "Kaos", Price: decimal.RequireFromString("37834.5"), Size: "M", Quantity: 1}},
	}, []dao.StockDecrement{{ProductID: "p1", Size: "M", Quantity: 1}})
	require.NoError(t, err)

	found, err := transactions.FindByID(ctx, "TRX-1")
	require.NoError(t, err)
	assert.True(t, found.Discount.Equal(decimal.RequireFromString("5675.175")))

	_, err = transactions.InsertSale(ctx, dao.Transaction{
		ID:            "TRX-2",
		Date:          time.Now(),
		PaymentMethod: "Tunai",
	}, []dao.StockDecrement{{ProductID: "p1", Size: "M", Quantity: 5}})
	assert.ErrorIs(t, err, dao.ErrInsufficientStock)

	_, err = transactions.FindByID(ctx, "TRX-2")
	assert.ErrorIs(t, err, dao.ErrTransactionNotFound)
}
