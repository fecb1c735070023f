package server

import (
	"context"

	"github.com/google/uuid"
)

// queryLogSchema records every executed query for the demo server.
const queryLogSchema = `
CREATE TABLE IF NOT EXISTS query_log (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL DEFAULT '',
	sql_query TEXT NOT NULL,
	num_results INTEGER NOT NULL DEFAULT 0,
	executed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// logQuery is best-effort; a failed insert never fails the request.
func (s *Server) logQuery(ctx context.Context, question, sqlQuery string, numResults int) {
	if s.driver != "sqlite" {
		return
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_log (id, question, sql_query, num_results)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), question, sqlQuery, numResults)
	if err != nil {
		s.logger.Debug("failed to record query", "error", err)
	}
}

// sampleSchema seeds the in-memory demo database.
const sampleSchema = `
CREATE TABLE customers (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	country TEXT NOT NULL,
	credit_limit REAL
);

CREATE TABLE products (
	code TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	product_line TEXT NOT NULL,
	quantity_in_stock INTEGER NOT NULL,
	price REAL NOT NULL
);

CREATE TABLE orders (
	id INTEGER PRIMARY KEY,
	customer_id INTEGER NOT NULL REFERENCES customers(id),
	status TEXT NOT NULL,
	order_date TEXT NOT NULL,
	total_amount REAL
);

INSERT INTO customers (id, name, country, credit_limit) VALUES
	(1, 'Atelier graphique', 'France', 21000),
	(2, 'Signal Gift Stores', 'USA', 71800),
	(3, 'Australian Collectors', 'Australia', 117300),
	(4, 'La Rochelle Gifts', 'France', NULL),
	(5, 'Baane Mini Imports', 'Norway', 81700);

INSERT INTO products (code, name, product_line, quantity_in_stock, price) VALUES
	('S10_1678', '1969 Harley Davidson', 'Motorcycles', 7933, 95.70),
	('S10_1949', '1952 Alpine Renault', 'Classic Cars', 7305, 214.30),
	('S10_2016', '1996 Moto Guzzi', 'Motorcycles', 6625, 118.94),
	('S12_1099', '1968 Ford Mustang', 'Classic Cars', 68, 194.57),
	('S18_1342', '1937 Lincoln Berline', 'Vintage Cars', 8693, 102.74);

INSERT INTO orders (id, customer_id, status, order_date, total_amount) VALUES
	(10100, 3, 'Shipped', '2024-01-06', 10223.83),
	(10101, 5, 'Shipped', '2024-01-09', 40206.20),
	(10102, 1, 'In Process', '2024-01-10', 5494.78),
	(10103, 2, 'Cancelled', '2024-01-29', NULL),
	(10104, 3, 'Shipped', '2024-01-31', 40206.20);
`
