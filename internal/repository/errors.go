package repository

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

const (
	foreignKeyViolation = "23503"

	keeperParkingLotConstraint = "fk_parking_lot_keepers_parking_lot"
)

// foreignKeyConstraint returns the violated constraint name when err is a
// foreign key violation.
func foreignKeyConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func isForeignKeyViolation(err error) bool {
	_, ok := foreignKeyConstraint(err)
	return ok
}
