package warehouse

import (
	"fmt"
	"regexp"
)

// ddlDatabricks is the table definition on the managed warehouse.
const ddlDatabricks = `CREATE TABLE IF NOT EXISTS %s (
    submission_id    STRING,
    business_unit    STRING,
    submission_date  TIMESTAMP,
    revenue          DECIMAL(15,2),
    expenses         DECIMAL(15,2),
    profit_margin    DECIMAL(5,2),
    submitted_by     STRING,
    created_at       TIMESTAMP
)`

// ddlSQLite spells the same columns with SQLite affinities so text ids are
// never coerced to numbers.
const ddlSQLite = `CREATE TABLE IF NOT EXISTS %s (
    submission_id    TEXT PRIMARY KEY,
    business_unit    TEXT NOT NULL,
    submission_date  TIMESTAMP NOT NULL,
    revenue          DECIMAL(15,2) NOT NULL,
    expenses         DECIMAL(15,2) NOT NULL,
    profit_margin    DECIMAL(5,2) NOT NULL,
    submitted_by     TEXT NOT NULL,
    created_at       TIMESTAMP NOT NULL
)`

const insertSQL = `INSERT INTO %s
    (submission_id, business_unit, submission_date, revenue, expenses,
     profit_margin, submitted_by, created_at)
    VALUES (?, ?, ?, CAST(? AS DECIMAL(15,2)), CAST(? AS DECIMAL(15,2)),
            CAST(? AS DECIMAL(5,2)), ?, ?)`

const selectSQL = `SELECT
    submission_id, business_unit, submission_date, revenue, expenses,
    profit_margin, submitted_by, created_at
    FROM %s
    ORDER BY submission_date DESC
    LIMIT %d`

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

// validTable guards the one identifier interpolated into statements.
func validTable(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// DDL returns the CREATE TABLE statement for the given driver.
func DDL(driver, table string) (string, error) {
	if err := validTable(table); err != nil {
		return "", err
	}
	switch driver {
	case DriverSQLite:
		return fmt.Sprintf(ddlSQLite, table), nil
	case DriverDatabricks:
		return fmt.Sprintf(ddlDatabricks, table), nil
	default:
		return "", fmt.Errorf("unknown warehouse driver %q", driver)
	}
}
