package sqlite

import (
	"context"
)

const invoiceBlockColumns = `id, client_id, hours_target, hours_carried_forward, start_date, end_date, status, notes`

// CreateInvoiceBlock creates a new invoice block
func (r *SQLiteRepository) CreateInvoiceBlock(ctx context.Context, block *InvoiceBlock) error {
	query := `
	INSERT INTO invoice_blocks (` + invoiceBlockColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	return ExecuteInsert(ctx, r.db, query,
		block.ID, block.ClientID, block.HoursTarget, block.HoursCarriedForward,
		FormatTimeForDB(block.StartDate), FormatTimePtrForDB(block.EndDate), block.Status, block.Notes)
}

// GetInvoiceBlock retrieves an invoice block by ID
func (r *SQLiteRepository) GetInvoiceBlock(ctx context.Context, id string) (*InvoiceBlock, error) {
	query := `
	SELECT ` + invoiceBlockColumns + `
	FROM invoice_blocks
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanInvoiceBlock, "invoice block", id, id)
}

// GetActiveInvoiceBlock retrieves the active block for a client, if any.
// The partial unique index on (client_id) WHERE status = 'ACTIVE' guarantees
// at most one row.
func (r *SQLiteRepository) GetActiveInvoiceBlock(ctx context.Context, clientID string) (*InvoiceBlock, error) {
	query := `
	SELECT ` + invoiceBlockColumns + `
	FROM invoice_blocks
	WHERE client_id = ? AND status = 'ACTIVE'`

	return QuerySingle(ctx, r.db, query, ScanInvoiceBlock, "active invoice block", clientID, clientID)
}

// ListInvoiceBlocks retrieves all blocks for a client, newest first
func (r *SQLiteRepository) ListInvoiceBlocks(ctx context.Context, clientID string) ([]*InvoiceBlock, error) {
	query := `
	SELECT ` + invoiceBlockColumns + `
	FROM invoice_blocks
	WHERE client_id = ?
	ORDER BY start_date DESC`

	return QueryMultiple(ctx, r.db, query, ScanInvoiceBlocks, "invoice blocks", clientID)
}

// UpdateInvoiceBlock updates an existing invoice block
func (r *SQLiteRepository) UpdateInvoiceBlock(ctx context.Context, block *InvoiceBlock) error {
	query := `
	UPDATE invoice_blocks
	SET hours_target = ?, hours_carried_forward = ?, start_date = ?, end_date = ?, status = ?, notes = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "invoice block", block.ID,
		block.HoursTarget, block.HoursCarriedForward, FormatTimeForDB(block.StartDate),
		FormatTimePtrForDB(block.EndDate), block.Status, block.Notes, block.ID)
}

// DeleteInvoiceBlock deletes an invoice block by ID
func (r *SQLiteRepository) DeleteInvoiceBlock(ctx context.Context, id string) error {
	query := `DELETE FROM invoice_blocks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "invoice block", id, id)
}

// CompleteInvoiceBlock marks a block completed and optionally creates its
// successor inside one transaction, so a reset can never leave the client
// with both blocks active or neither write applied.
func (r *SQLiteRepository) CompleteInvoiceBlock(ctx context.Context, completed *InvoiceBlock, next *InvoiceBlock) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	updateQuery := `
	UPDATE invoice_blocks
	SET status = ?, end_date = ?
	WHERE id = ?`
	if err := ExecuteWithRowsAffected(ctx, tx, updateQuery, "invoice block", completed.ID,
		completed.Status, FormatTimePtrForDB(completed.EndDate), completed.ID); err != nil {
		return err
	}

	if next != nil {
		insertQuery := `
		INSERT INTO invoice_blocks (` + invoiceBlockColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		if err := ExecuteInsert(ctx, tx, insertQuery,
			next.ID, next.ClientID, next.HoursTarget, next.HoursCarriedForward,
			FormatTimeForDB(next.StartDate), FormatTimePtrForDB(next.EndDate), next.Status, next.Notes); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}
