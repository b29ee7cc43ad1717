package postgres

import (
	"context"
	"fmt"
)

// schema is the bookkeeping schema. Applied idempotently on startup.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
    id                UUID PRIMARY KEY,
    name              TEXT NOT NULL,
    tax_id            TEXT NOT NULL,
    email             TEXT,
    phone             TEXT,
    address           TEXT,
    balance           NUMERIC(18,4) NOT NULL DEFAULT 0,
    last_invoice_date TIMESTAMPTZ
);

CREATE UNIQUE INDEX IF NOT EXISTS customers_tax_id_idx ON customers (tax_id);

CREATE TABLE IF NOT EXISTS invoices (
    id            UUID PRIMARY KEY,
    number        TEXT NOT NULL UNIQUE,
    date          TIMESTAMPTZ NOT NULL,
    customer_id   UUID NOT NULL,
    customer_name TEXT NOT NULL,
    type          TEXT NOT NULL CHECK (type IN ('purchase', 'sales')),
    status        TEXT NOT NULL CHECK (status IN ('draft', 'paid')),
    subtotal      NUMERIC(18,4) NOT NULL,
    total_vat     NUMERIC(18,4) NOT NULL,
    grand_total   NUMERIC(18,4) NOT NULL
);

CREATE TABLE IF NOT EXISTS invoice_lines (
    invoice_id  UUID NOT NULL REFERENCES invoices (id) ON DELETE CASCADE,
    line_id     TEXT NOT NULL,
    line_no     INT NOT NULL,
    description TEXT NOT NULL,
    quantity    NUMERIC(18,4) NOT NULL,
    unit_price  NUMERIC(18,4) NOT NULL,
    vat_rate    NUMERIC(7,4) NOT NULL,
    total       NUMERIC(18,4) NOT NULL,
    PRIMARY KEY (invoice_id, line_no)
);

CREATE TABLE IF NOT EXISTS sys_sequences (
    key         TEXT PRIMARY KEY,
    current_val BIGINT NOT NULL
);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
