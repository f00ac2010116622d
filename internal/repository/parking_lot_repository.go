package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parking-lot-service/internal/model"
	apperrors "parking-lot-service/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type ParkingLotRepository interface {
	Detail(ctx context.Context, id uuid.UUID) ([]*model.ParkingLotDetailRow, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.ParkingLotWithKeeperCount, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, lot *model.ParkingLot) (*model.ParkingLot, error)
	Update(ctx context.Context, tx pgx.Tx, id uuid.UUID, params model.UpdateParkingLotParams) (*model.ParkingLot, error)
}

type ParkingLotRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewParkingLotRepository(pool *pgxpool.Pool) ParkingLotRepository {
	return &ParkingLotRepositoryImpl{
		pool: pool,
	}
}

func scanParkingLot(row pgx.Row, lot *model.ParkingLot) error {
	return row.Scan(
		&lot.ID,
		&lot.AreaName,
		&lot.Address,
		&lot.ImageURL,
		&lot.CarCost,
		&lot.MotorCost,
		&lot.OwnerID,
		&lot.CreatedAt,
		&lot.UpdatedAt,
	)
}

func (r *ParkingLotRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, lot *model.ParkingLot) (*model.ParkingLot, error) {
	query := `
		INSERT INTO parking_lots (
			id, area_name, address, image_url, car_cost, motor_cost, owner_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, area_name, address, image_url, car_cost, motor_cost, owner_id, created_at, updated_at
	`

	var created model.ParkingLot
	err := scanParkingLot(tx.QueryRow(ctx, query,
		lot.ID, lot.AreaName, lot.Address, lot.ImageURL,
		lot.CarCost, lot.MotorCost, lot.OwnerID, lot.CreatedAt, lot.UpdatedAt,
	), &created)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "insert parking lot")
	}

	return &created, nil
}

func (r *ParkingLotRepositoryImpl) Update(
	ctx context.Context,
	tx pgx.Tx,
	id uuid.UUID,
	params model.UpdateParkingLotParams,
) (*model.ParkingLot, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.AreaName != nil {
		set("area_name", *params.AreaName)
	}
	if params.Address != nil {
		set("address", *params.Address)
	}
	if params.ImageURL != nil {
		set("image_url", *params.ImageURL)
	}
	if params.CarCost != nil {
		set("car_cost", *params.CarCost)
	}
	if params.MotorCost != nil {
		set("motor_cost", *params.MotorCost)
	}
	if params.OwnerID != nil {
		set("owner_id", *params.OwnerID)
	}

	// updated_at is refreshed even when nothing else changes
	set("updated_at", time.Now().UTC())

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE parking_lots
		SET %s
		WHERE id = $%d
		RETURNING id, area_name, address, image_url, car_cost, motor_cost, owner_id, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)

	var lot model.ParkingLot
	err := scanParkingLot(tx.QueryRow(ctx, query, args...), &lot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParkingLotNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "update parking lot")
	}

	return &lot, nil
}

func (r *ParkingLotRepositoryImpl) Detail(ctx context.Context, id uuid.UUID) ([]*model.ParkingLotDetailRow, error) {
	query := `
		SELECT p.id, p.area_name, p.address, p.image_url, p.car_cost, p.motor_cost,
		       p.owner_id, p.created_at, p.updated_at,
		       u.id AS keeper_id, u.name AS keeper_name
		FROM parking_lots p
		LEFT JOIN parking_lot_keepers k ON k.parking_lot_id = p.id
		LEFT JOIN users u ON u.id = k.user_id
		WHERE p.id = $1
		ORDER BY u.name
	`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, errors.Wrap(err, "query parking lot detail")
	}
	defer rows.Close()

	result := make([]*model.ParkingLotDetailRow, 0)
	for rows.Next() {
		var row model.ParkingLotDetailRow
		err := rows.Scan(
			&row.ID,
			&row.AreaName,
			&row.Address,
			&row.ImageURL,
			&row.CarCost,
			&row.MotorCost,
			&row.OwnerID,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.KeeperID,
			&row.KeeperName,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan parking lot detail")
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate parking lot detail")
	}

	return result, nil
}

func (r *ParkingLotRepositoryImpl) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.ParkingLotWithKeeperCount, error) {
	query := `
		SELECT p.id, p.area_name, p.address, p.image_url, p.car_cost, p.motor_cost,
		       p.owner_id, p.created_at, p.updated_at,
		       COUNT(k.user_id) AS keeper_count
		FROM parking_lots p
		LEFT JOIN parking_lot_keepers k ON k.parking_lot_id = p.id
		WHERE p.owner_id = $1
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "query parking lots by owner")
	}
	defer rows.Close()

	lots := make([]*model.ParkingLotWithKeeperCount, 0)
	for rows.Next() {
		var lot model.ParkingLotWithKeeperCount
		err := rows.Scan(
			&lot.ID,
			&lot.AreaName,
			&lot.Address,
			&lot.ImageURL,
			&lot.CarCost,
			&lot.MotorCost,
			&lot.OwnerID,
			&lot.CreatedAt,
			&lot.UpdatedAt,
			&lot.KeeperCount,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan parking lot by owner")
		}
		lots = append(lots, &lot)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate parking lots by owner")
	}

	return lots, nil
}
