// Package postgres is the PostgreSQL persistence collaborator.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bar-inventory/internal/core"
	"bar-inventory/migrations"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Migrate applies any pending schema migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log logrus.FieldLogger) error {
	if _, err := migrations.Apply(ctx, pool, log); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Store implements core.Repository on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ core.Repository = (*Store)(nil)

// New returns a Store using pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func notFound(err error, what, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, core.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", what, id, err)
}

// ── Items ─────────────────────────────────────────────────────────────────────

const itemColumns = `id, name, category, barcode, unit_price, stock_by_location, updated_at`

func scanItem(row pgx.Row) (*core.InventoryItem, error) {
	var item core.InventoryItem
	var stock []byte
	if err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Barcode, &item.UnitPrice, &stock, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.StockByLocation = map[string]decimal.Decimal{}
	if err := json.Unmarshal(stock, &item.StockByLocation); err != nil {
		return nil, fmt.Errorf("decode stock of item %s: %w", item.ID, err)
	}
	return &item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]core.InventoryItem, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY category, lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("query inventory items: %w", err)
	}
	defer rows.Close()

	var out []core.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory items: %w", err)
	}
	core.SortInventoryItems(out)
	return out, nil
}

func (s *Store) GetItem(ctx context.Context, id string) (*core.InventoryItem, error) {
	item, err := scanItem(s.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "inventory item", id)
	}
	return item, nil
}

func (s *Store) UpsertItem(ctx context.Context, item core.InventoryItem) (*core.InventoryItem, error) {
	stock, err := json.Marshal(item.StockByLocation)
	if err != nil {
		return nil, fmt.Errorf("encode stock of item %s: %w", item.ID, err)
	}
	saved, err := scanItem(s.pool.QueryRow(ctx, `
		INSERT INTO inventory_items (id, name, category, barcode, unit_price, stock_by_location, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, now())
		ON CONFLICT (id) DO UPDATE SET
			name              = EXCLUDED.name,
			category          = EXCLUDED.category,
			barcode           = EXCLUDED.barcode,
			unit_price        = EXCLUDED.unit_price,
			stock_by_location = EXCLUDED.stock_by_location,
			updated_at        = now()
		RETURNING `+itemColumns,
		item.ID, item.Name, item.Category, item.Barcode, item.UnitPrice, string(stock),
	))
	if err != nil {
		return nil, fmt.Errorf("upsert inventory item %s: %w", item.ID, err)
	}
	return saved, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory item %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// SetItemLocation rewrites one key of the stock map in place so concurrent edits to
// other locations of the same item are not lost.
func (s *Store) SetItemLocation(ctx context.Context, id, location string, qty decimal.Decimal) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE inventory_items
		SET stock_by_location = jsonb_set(stock_by_location, ARRAY[$2::text], to_jsonb($3::text), true),
		    updated_at = now()
		WHERE id = $1`,
		id, location, qty.String(),
	)
	if err != nil {
		return fmt.Errorf("set %s stock of item %s: %w", location, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory item %s: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *Store) AdjustItemLocation(ctx context.Context, id, location string, delta decimal.Decimal) (decimal.Decimal, error) {
	var next decimal.Decimal
	err := s.pool.QueryRow(ctx, `
		UPDATE inventory_items
		SET stock_by_location = jsonb_set(
		        stock_by_location,
		        ARRAY[$2::text],
		        to_jsonb((COALESCE((stock_by_location->>$2::text)::numeric, 0) + $3::numeric)::text),
		        true),
		    updated_at = now()
		WHERE id = $1
		RETURNING (stock_by_location->>$2::text)::numeric`,
		id, location, delta.String(),
	).Scan(&next)
	if err != nil {
		return decimal.Zero, notFound(err, "inventory item", id)
	}
	return next, nil
}

// ── Orders ────────────────────────────────────────────────────────────────────

const orderColumns = `id, order_date::text, delivery_date::text, supplier_name, status, total_amount, created_at`

func scanOrder(row pgx.Row) (*core.PurchaseOrder, error) {
	var o core.PurchaseOrder
	var status string
	if err := row.Scan(&o.ID, &o.OrderDate, &o.DeliveryDate, &o.SupplierName, &status, &o.TotalAmount, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Status = core.OrderStatus(status)
	return &o, nil
}

func (s *Store) loadLines(ctx context.Context, orderID string) (map[string][]core.OrderLine, error) {
	query := `SELECT order_id, inventory_item_id, quantity, unit_price FROM purchase_order_lines`
	var args []any
	if orderID != "" {
		query += ` WHERE order_id = $1`
		args = append(args, orderID)
	}
	query += ` ORDER BY order_id, line_number`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	out := map[string][]core.OrderLine{}
	for rows.Next() {
		var id string
		var l core.OrderLine
		if err := rows.Scan(&id, &l.InventoryItemID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		out[id] = append(out[id], l)
	}
	return out, rows.Err()
}

func (s *Store) ListOrders(ctx context.Context) ([]core.PurchaseOrder, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+orderColumns+` FROM purchase_orders ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query purchase orders: %w", err)
	}
	defer rows.Close()

	var out []core.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchase orders: %w", err)
	}

	lines, err := s.loadLines(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Lines = lines[out[i].ID]
	}
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*core.PurchaseOrder, error) {
	o, err := scanOrder(s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "purchase order", id)
	}
	lines, err := s.loadLines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines[id]
	return o, nil
}

// UpsertOrder replaces the header and all lines of the order in one transaction.
func (s *Store) UpsertOrder(ctx context.Context, order core.PurchaseOrder) (*core.PurchaseOrder, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO purchase_orders (id, order_date, delivery_date, supplier_name, status, total_amount, created_at)
		VALUES ($1, $2::date, $3::date, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			order_date    = EXCLUDED.order_date,
			delivery_date = EXCLUDED.delivery_date,
			supplier_name = EXCLUDED.supplier_name,
			status        = EXCLUDED.status,
			total_amount  = EXCLUDED.total_amount`,
		order.ID, order.OrderDate, order.DeliveryDate, order.SupplierName, string(order.Status), order.TotalAmount, order.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert purchase order %s: %w", order.ID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_order_lines WHERE order_id = $1`, order.ID); err != nil {
		return nil, fmt.Errorf("clear lines of purchase order %s: %w", order.ID, err)
	}
	for i, l := range order.Lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO purchase_order_lines (order_id, line_number, inventory_item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			order.ID, i+1, l.InventoryItemID, l.Quantity, l.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("insert line %d of purchase order %s: %w", i+1, order.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit purchase order %s: %w", order.ID, err)
	}
	return s.GetOrder(ctx, order.ID)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("purchase order %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// ── Records ───────────────────────────────────────────────────────────────────

const recordColumns = `id, recorded_at, label, record_type, items`

func scanRecord(row pgx.Row) (*core.PeriodRecord, error) {
	var r core.PeriodRecord
	var typ string
	var items []byte
	if err := row.Scan(&r.ID, &r.Date, &r.Label, &typ, &items); err != nil {
		return nil, err
	}
	r.Type = core.RecordType(typ)
	if err := json.Unmarshal(items, &r.Items); err != nil {
		return nil, fmt.Errorf("decode items of record %s: %w", r.ID, err)
	}
	return &r, nil
}

func (s *Store) ListRecords(ctx context.Context) ([]core.PeriodRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+recordColumns+` FROM inventory_records ORDER BY recorded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.PeriodRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

func (s *Store) GetRecord(ctx context.Context, id string) (*core.PeriodRecord, error) {
	r, err := scanRecord(s.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM inventory_records WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "record", id)
	}
	return r, nil
}

func (s *Store) UpsertRecord(ctx context.Context, rec core.PeriodRecord) (*core.PeriodRecord, error) {
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items of record %s: %w", rec.ID, err)
	}
	saved, err := scanRecord(s.pool.QueryRow(ctx, `
		INSERT INTO inventory_records (id, recorded_at, label, record_type, items)
		VALUES ($1, $2, $3, $4, $5::jsonb)
		ON CONFLICT (id) DO UPDATE SET
			recorded_at = EXCLUDED.recorded_at,
			label       = EXCLUDED.label,
			record_type = EXCLUDED.record_type,
			items       = EXCLUDED.items
		RETURNING `+recordColumns,
		rec.ID, rec.Date, rec.Label, string(rec.Type), string(items),
	))
	if err != nil {
		return nil, fmt.Errorf("upsert record %s: %w", rec.ID, err)
	}
	return saved, nil
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM inventory_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %s: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteAllRecords(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM inventory_records`)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
