package sqlite

import "database/sql"

// schema sets up the tables on startup.
// Participants must be created after bills due to the foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    auto_title INTEGER NOT NULL DEFAULT 0,
    bill_total REAL NOT NULL,
    tip_percentage INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
    bill_id TEXT NOT NULL,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    is_locked INTEGER NOT NULL DEFAULT 0,
    locked_amount REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (bill_id, id),
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_participants_bill_position ON participants(bill_id, position);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
