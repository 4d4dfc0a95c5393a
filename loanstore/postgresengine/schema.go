package postgresengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// schemaStatements returns the DDL for the loans table and its indexes.
//
// The partial unique index allows at most one open loan per book.
func (s LoanStore) schemaStatements() []string {
	table, indexPrefix := qualifiedTable(s.tableName)

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id uuid PRIMARY KEY,
	user_id uuid NOT NULL,
	book_id uuid NOT NULL,
	borrowed_on date NOT NULL,
	due_on date NOT NULL,
	returned_on date NULL,
	intrinsic_status text NOT NULL CHECK (intrinsic_status IN ('Active', 'Returned')),
	CHECK (returned_on IS NULL OR returned_on >= borrowed_on)
)`, table),
		fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (book_id) WHERE intrinsic_status = 'Active' AND returned_on IS NULL`,
			pq.QuoteIdentifier(indexPrefix+"_one_open_loan_per_book"), table,
		),
		fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS %s ON %s (user_id)`,
			pq.QuoteIdentifier(indexPrefix+"_user_id_idx"), table,
		),
		fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS %s ON %s (book_id)`,
			pq.QuoteIdentifier(indexPrefix+"_book_id_idx"), table,
		),
	}
}

// qualifiedTable quotes a table or schema.table name the way goqu renders it in queries.
// Indexes live in the schema of their table, so their names are built from the bare table name.
func qualifiedTable(tableName string) (quoted string, indexPrefix string) {
	schema, table, qualified := strings.Cut(tableName, ".")
	if !qualified {
		return pq.QuoteIdentifier(tableName), tableName
	}

	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(table), table
}

// CreateSchema creates the loans table and its indexes if they do not exist yet.
func (s LoanStore) CreateSchema(ctx context.Context) (err error) {
	ctx, finish := s.observe(ctx, operationCreateSchema)
	defer func() { finish(err) }()

	for _, statement := range s.schemaStatements() {
		if _, err = s.exec(ctx, statement, operationCreateSchema, loanstore.ErrCreatingSchemaFailed); err != nil {
			return err
		}
	}

	s.logOperation(ctx, logMsgSchemaCreated)

	return nil
}
