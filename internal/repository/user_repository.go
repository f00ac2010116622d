package repository

import (
	"context"

	"parking-lot-service/internal/model"
	apperrors "parking-lot-service/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type UserRepository interface {
	// Transaction methods
	FindByIDForShare(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.User, error)
	// AssignParkingLot 將管理員指派到停車場
	AssignParkingLot(ctx context.Context, tx pgx.Tx, parkingLotID uuid.UUID, keeperIDs []uuid.UUID) error
	// RemoveParkingLot 移除停車場所有管理員
	RemoveParkingLot(ctx context.Context, tx pgx.Tx, parkingLotID uuid.UUID) error
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "scan user")
	}
	if !user.Role.IsValid() {
		return nil, errors.Errorf("user %s has unknown role %q", user.ID, user.Role)
	}
	return &user, nil
}

// FindByIDForShare locks the user row against concurrent updates until
// the transaction ends, so a role check stays valid for the writes that
// follow it.
func (r *UserRepositoryImpl) FindByIDForShare(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, name, role, created_at, updated_at
		FROM users
		WHERE id = $1
		FOR SHARE
	`

	return scanUser(tx.QueryRow(ctx, query, id))
}

func (r *UserRepositoryImpl) AssignParkingLot(ctx context.Context, tx pgx.Tx, parkingLotID uuid.UUID, keeperIDs []uuid.UUID) error {
	query := `
		INSERT INTO parking_lot_keepers (parking_lot_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, keeperID := range keeperIDs {
		batch.Queue(query, parkingLotID, keeperID)
	}

	results := tx.SendBatch(ctx, batch)
	for range keeperIDs {
		if _, err := results.Exec(); err != nil {
			results.Close()
			if constraint, ok := foreignKeyConstraint(err); ok {
				if constraint == keeperParkingLotConstraint {
					return apperrors.ErrParkingLotNotFound
				}
				return apperrors.ErrKeeperNotFound
			}
			return errors.Wrap(err, "assign keeper")
		}
	}

	return errors.Wrap(results.Close(), "close keeper batch")
}

func (r *UserRepositoryImpl) RemoveParkingLot(ctx context.Context, tx pgx.Tx, parkingLotID uuid.UUID) error {
	query := `
		DELETE FROM parking_lot_keepers
		WHERE parking_lot_id = $1
	`

	if _, err := tx.Exec(ctx, query, parkingLotID); err != nil {
		return errors.Wrap(err, "remove keepers")
	}

	return nil
}
