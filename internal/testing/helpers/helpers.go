// Package helpers holds database assertions shared by the repository
// integration tests.
package helpers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/studiohub/api/internal/database"
)

const lookupTimeout = 5 * time.Second

// splitRecordID strips the table prefix from a full record ID, so both
// "booking:abc123" and bare "abc123" address the same row.
func splitRecordID(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

func lookupRecord(t *testing.T, db database.Database, table, id string) []interface{} {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	results, err := db.Query(ctx, "SELECT * FROM type::record($table, $id)", map[string]interface{}{
		"table": table,
		"id":    splitRecordID(id),
	})
	if err != nil {
		return nil
	}
	return results
}

// AssertRecordExists fails the test unless table:id is present in the
// test database.
func AssertRecordExists(t *testing.T, db database.Database, table, id string) {
	t.Helper()
	if !recordFound(lookupRecord(t, db, table, id)) {
		t.Errorf("record %s:%s missing from database", table, splitRecordID(id))
	}
}

// AssertRecordNotExists fails the test if table:id is still present,
// typically after a delete.
func AssertRecordNotExists(t *testing.T, db database.Database, table, id string) {
	t.Helper()
	if recordFound(lookupRecord(t, db, table, id)) {
		t.Errorf("record %s:%s should have been removed", table, splitRecordID(id))
	}
}

// recordFound unwraps the SurrealDB response envelope and reports
// whether the statement produced any rows.
func recordFound(results []interface{}) bool {
	if len(results) == 0 {
		return false
	}
	envelope, ok := results[0].(map[string]interface{})
	if !ok {
		return false
	}
	switch rows := envelope["result"].(type) {
	case nil:
		return false
	case []interface{}:
		return len(rows) > 0
	default:
		return true
	}
}
