package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
)

// The ledger is the only code allowed to touch products.stock. Both
// directions use the same discipline: lock every referenced row in
// ascending product-id order, then apply all changes or none.

func (l *inventoryLedger) Reserve(ctx context.Context, items []model.StockItem) error {
	return l.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return reserveStockTx(ctx, tx, items)
	})
}

func (l *inventoryLedger) Release(ctx context.Context, items []model.StockItem) error {
	return l.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return releaseStockTx(ctx, tx, items)
	})
}

// lockStockRows acquires FOR UPDATE locks on every product in ascending id
// order and returns the locked items with current stock, in that order.
// The fixed lock order is what prevents deadlocks between concurrent
// confirmations sharing products.
func lockStockRows(ctx context.Context, tx pgx.Tx, items []model.StockItem) ([]lockedStock, error) {
	sorted := make([]model.StockItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	locked := make([]lockedStock, 0, len(sorted))
	for _, item := range sorted {
		var sku string
		var stock int
		err := tx.QueryRow(ctx, `SELECT sku, stock FROM products WHERE id=$1 FOR UPDATE`, item.ProductID).Scan(&sku, &stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", domainErrors.ErrProductNotFound, item.SKU)
			}
			return nil, err
		}
		locked = append(locked, lockedStock{item: item, sku: sku, stock: stock})
	}
	return locked, nil
}

type lockedStock struct {
	item  model.StockItem
	sku   string
	stock int
}

func reserveStockTx(ctx context.Context, tx pgx.Tx, items []model.StockItem) error {
	locked, err := lockStockRows(ctx, tx, items)
	if err != nil {
		return err
	}

	// All locks held: verify every item before mutating anything.
	for _, row := range locked {
		if row.stock < row.item.Qty {
			return fmt.Errorf("%w: %s", domainErrors.ErrInsufficientStock, row.sku)
		}
	}

	for _, row := range locked {
		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id=$1`,
			row.item.ProductID, row.item.Qty); err != nil {
			return err
		}
	}
	return nil
}

func releaseStockTx(ctx context.Context, tx pgx.Tx, items []model.StockItem) error {
	locked, err := lockStockRows(ctx, tx, items)
	if err != nil {
		return err
	}

	for _, row := range locked {
		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE id=$1`,
			row.item.ProductID, row.item.Qty); err != nil {
			return err
		}
	}
	return nil
}
