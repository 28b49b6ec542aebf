package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"barfops/internal"
	"barfops/internal/catalog"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS catalog_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  section TEXT NOT NULL,
  product TEXT NOT NULL,
  weight TEXT NOT NULL DEFAULT '',
  display TEXT NOT NULL,
  lastSeenAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(section, product, weight)
);
CREATE INDEX IF NOT EXISTS idx_catalog_product ON catalog_items(product);

CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  location TEXT NOT NULL,
  deliveryDate TEXT,
  createdAt TEXT NOT NULL,
  importedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_location ON orders(location);

CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  orderId TEXT NOT NULL,
  rawName TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  subOptionsJson TEXT NOT NULL,
  FOREIGN KEY(orderId) REFERENCES orders(id)
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(orderId);

CREATE TABLE IF NOT EXISTS inventory_records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  option TEXT NOT NULL DEFAULT '',
  section TEXT,
  resolvedDisplay TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(name, option)
);

CREATE TABLE IF NOT EXISTS demand_days (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  location TEXT NOT NULL,
  day TEXT NOT NULL,
  section TEXT NOT NULL,
  product TEXT NOT NULL,
  weight TEXT NOT NULL DEFAULT '',
  count INTEGER NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(location, day, section, product, weight)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func weightColumn(k internal.CatalogKey) string {
	if k.Weight == nil {
		return ""
	}
	return *k.Weight
}

func weightFromColumn(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func (d *DB) UpsertCatalogItems(items []internal.CatalogKey) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO catalog_items (section, product, weight, display, lastSeenAt)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(section, product, weight) DO UPDATE SET
  display=excluded.display,
  lastSeenAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.Exec(string(item.Section), item.Product, weightColumn(item), catalog.Display(item)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListCatalogItems() ([]internal.CatalogKey, error) {
	rows, err := d.conn.Query(`SELECT section, product, weight FROM catalog_items ORDER BY section, product, weight`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CatalogKey
	for rows.Next() {
		var section, product, weight string
		if err := rows.Scan(&section, &product, &weight); err != nil {
			return nil, err
		}
		out = append(out, internal.CatalogKey{
			Section: internal.Section(section),
			Product: product,
			Weight:  weightFromColumn(weight),
		})
	}
	return out, rows.Err()
}

func (d *DB) InsertOrder(order internal.Order) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
INSERT INTO orders (id, location, deliveryDate, createdAt)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  location=excluded.location,
  deliveryDate=excluded.deliveryDate,
  createdAt=excluded.createdAt
`, order.ID, order.Location, order.DeliveryDate, order.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM order_items WHERE orderId = ?`, order.ID); err != nil {
		return err
	}

	for _, item := range order.Items {
		subJSON, _ := json.Marshal(item.SubOptions)
		if _, err := tx.Exec(`
INSERT INTO order_items (orderId, rawName, quantity, subOptionsJson)
VALUES (?, ?, ?, ?)
`, order.ID, item.RawName, item.Quantity, string(subJSON)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListOrders() ([]internal.Order, error) {
	rows, err := d.conn.Query(`SELECT id, location, deliveryDate, createdAt FROM orders ORDER BY createdAt`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Order
	for rows.Next() {
		var order internal.Order
		var createdAt string
		if err := rows.Scan(&order.ID, &order.Location, &order.DeliveryDate, &createdAt); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			order.CreatedAt = parsed
		}
		out = append(out, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := d.listOrderItems(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (d *DB) listOrderItems(orderID string) ([]internal.OrderLineItem, error) {
	rows, err := d.conn.Query(`SELECT rawName, quantity, subOptionsJson FROM order_items WHERE orderId = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.OrderLineItem
	for rows.Next() {
		var item internal.OrderLineItem
		var subJSON string
		if err := rows.Scan(&item.RawName, &item.Quantity, &subJSON); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(subJSON), &item.SubOptions)
		out = append(out, item)
	}
	return out, rows.Err()
}

// InventoryRow is a stored legacy record plus its reconciliation state.
type InventoryRow struct {
	ID       int
	Record   internal.LegacyRecord
	Resolved *string
}

func (d *DB) UpsertInventoryRecords(records []internal.LegacyRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO inventory_records (name, option, section)
VALUES (?, ?, ?)
ON CONFLICT(name, option) DO UPDATE SET section=excluded.section
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, record := range records {
		var section *string
		if record.Section != nil {
			s := string(*record.Section)
			section = &s
		}
		if _, err := stmt.Exec(record.Name, record.Option, section); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListInventoryRecords() ([]InventoryRow, error) {
	rows, err := d.conn.Query(`SELECT id, name, option, section, resolvedDisplay FROM inventory_records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InventoryRow
	for rows.Next() {
		var row InventoryRow
		var section *string
		if err := rows.Scan(&row.ID, &row.Record.Name, &row.Record.Option, &section, &row.Resolved); err != nil {
			return nil, err
		}
		if section != nil {
			if parsed, ok := internal.ParseSection(*section); ok {
				row.Record.Section = &parsed
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) UpdateInventoryResolution(id int, display *string) error {
	_, err := d.conn.Exec(`UPDATE inventory_records SET resolvedDisplay = ? WHERE id = ?`, display, id)
	return err
}

func (d *DB) UpsertDemandRow(row internal.DemandRow) error {
	_, err := d.conn.Exec(`
INSERT INTO demand_days (location, day, section, product, weight, count, updatedAt)
VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(location, day, section, product, weight) DO UPDATE SET
  count=excluded.count,
  updatedAt=CURRENT_TIMESTAMP
`, row.Location, row.Day, string(row.Key.Section), row.Key.Product, weightColumn(row.Key), row.Count)
	return err
}

func (d *DB) ListDemandRows(day string) ([]internal.DemandRow, error) {
	rows, err := d.conn.Query(`
SELECT location, day, section, product, weight, count
FROM demand_days WHERE day = ?
ORDER BY location, section, product, weight
`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.DemandRow
	for rows.Next() {
		var row internal.DemandRow
		var section, weight string
		if err := rows.Scan(&row.Location, &row.Day, &section, &row.Key.Product, &weight, &row.Count); err != nil {
			return nil, err
		}
		row.Key.Section = internal.Section(section)
		row.Key.Weight = weightFromColumn(weight)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
