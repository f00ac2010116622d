package service

import (
	"context"
	"time"

	"parking-lot-service/internal/cache"
	"parking-lot-service/internal/model"
	"parking-lot-service/internal/repository"
	"parking-lot-service/internal/storage"
	apperrors "parking-lot-service/pkg/app_errors"
	"parking-lot-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type ParkingLotService interface {
	Create(ctx context.Context, req model.CreateParkingLotRequest) (*model.ParkingLot, error)
	// Update 部分更新；park_keeper_ids 非空時整批替換管理員
	Update(ctx context.Context, id uuid.UUID, req model.UpdateParkingLotRequest) (*model.ParkingLot, error)
	Detail(ctx context.Context, id uuid.UUID) (*model.DetailParkingLot, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.ParkingLotWithKeeperCount, error)
}

type ParkingLotServiceImpl struct {
	db             TxBeginner
	repository     repository.ParkingLotRepository
	userRepository repository.UserRepository
	files          storage.FileStore
	cache          cache.ParkingLotCache
	log            *zap.Logger
}

func NewParkingLotService(
	db TxBeginner,
	parkingLotRepository repository.ParkingLotRepository,
	userRepository repository.UserRepository,
	files storage.FileStore,
	detailCache cache.ParkingLotCache,
) ParkingLotService {
	if detailCache == nil {
		detailCache = cache.NewNoopParkingLotCache()
	}
	return &ParkingLotServiceImpl{
		db:             db,
		repository:     parkingLotRepository,
		userRepository: userRepository,
		files:          files,
		cache:          detailCache,
		log:            logger.WithComponent("service"),
	}
}

func (s *ParkingLotServiceImpl) Create(ctx context.Context, req model.CreateParkingLotRequest) (*model.ParkingLot, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "begin create transaction")
	}
	defer tx.Rollback(ctx)

	// 1. owner must be a park owner
	if err := s.ensureParkOwner(ctx, tx, req.OwnerID); err != nil {
		return nil, err
	}

	// 2. file_name is accepted but not checked here; image_url starts as the placeholder
	now := time.Now().UTC()
	lot := &model.ParkingLot{
		ID:        uuid.New(),
		AreaName:  *req.AreaName,
		Address:   *req.Address,
		ImageURL:  model.PlaceholderImageURL,
		CarCost:   *req.CarCost,
		MotorCost: *req.MotorCost,
		OwnerID:   req.OwnerID,
		CreatedAt: &now,
	}

	created, err := s.repository.Create(ctx, tx, lot)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit create transaction")
	}

	return created, nil
}

func (s *ParkingLotServiceImpl) Update(ctx context.Context, id uuid.UUID, req model.UpdateParkingLotRequest) (*model.ParkingLot, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "begin update transaction")
	}
	defer tx.Rollback(ctx)

	// 1. owner check, only when owner_id is supplied
	if req.OwnerID != nil {
		if err := s.ensureParkOwner(ctx, tx, *req.OwnerID); err != nil {
			return nil, err
		}
	}

	// 2. image must already be uploaded
	if req.FileName != nil {
		exists, err := s.files.Exists(ctx, *req.FileName)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrImageNotFound
		}
	}

	// 3. replace keepers; an empty list leaves the current keepers in place
	if len(req.ParkKeeperIDs) > 0 {
		if err := s.userRepository.RemoveParkingLot(ctx, tx, id); err != nil {
			return nil, err
		}
		if err := s.userRepository.AssignParkingLot(ctx, tx, id, req.ParkKeeperIDs); err != nil {
			return nil, err
		}
	}

	// 4. remaining columns plus updated_at
	lot, err := s.repository.Update(ctx, tx, id, req.Params())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit update transaction")
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn("Failed to invalidate parking lot detail",
			zap.String("parking_lot_id", id.String()), zap.Error(err))
	}

	return lot, nil
}

func (s *ParkingLotServiceImpl) Detail(ctx context.Context, id uuid.UUID) (*model.DetailParkingLot, error) {
	cached, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.Warn("Failed to read parking lot detail from cache",
			zap.String("parking_lot_id", id.String()), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	// version is read before the query; an update committing in between bumps it and the write below is dropped
	version, versionErr := s.cache.Version(ctx, id)
	if versionErr != nil {
		s.log.Warn("Failed to read parking lot detail version",
			zap.String("parking_lot_id", id.String()), zap.Error(versionErr))
	}

	rows, err := s.repository.Detail(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := model.NewDetailParkingLot(rows)

	// a missing lot is answered with nulls and never cached, so a later create is visible at once
	if detail.ID.Valid && versionErr == nil {
		if _, err := s.cache.Set(ctx, id, version, detail); err != nil {
			s.log.Warn("Failed to cache parking lot detail",
				zap.String("parking_lot_id", id.String()), zap.Error(err))
		}
	}

	return detail, nil
}

func (s *ParkingLotServiceImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.ParkingLotWithKeeperCount, error) {
	return s.repository.FindByOwner(ctx, ownerID)
}

func (s *ParkingLotServiceImpl) ensureParkOwner(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) error {
	user, err := s.userRepository.FindByIDForShare(ctx, tx, ownerID)
	if err != nil {
		return err
	}
	if !user.IsParkOwner() {
		return apperrors.ErrOwnerRoleRequired
	}
	return nil
}

// validateCreate guards callers that skip request binding.
func validateCreate(req model.CreateParkingLotRequest) error {
	if req.AreaName == nil || req.Address == nil || req.OwnerID == uuid.Nil {
		return apperrors.ErrInvalidInput
	}
	if !validCost(req.CarCost, true) || !validCost(req.MotorCost, true) {
		return apperrors.ErrInvalidInput
	}
	return nil
}

func validateUpdate(req model.UpdateParkingLotRequest) error {
	if !validCost(req.CarCost, false) || !validCost(req.MotorCost, false) {
		return apperrors.ErrInvalidInput
	}
	if req.OwnerID != nil && *req.OwnerID == uuid.Nil {
		return apperrors.ErrInvalidInput
	}
	for _, keeperID := range req.ParkKeeperIDs {
		if keeperID == uuid.Nil {
			return apperrors.ErrInvalidInput
		}
	}
	return nil
}

func validCost(cost *float64, required bool) bool {
	if cost == nil {
		return !required
	}
	return *cost >= 0
}
