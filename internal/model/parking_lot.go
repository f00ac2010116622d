package model

import (
	"time"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

// PlaceholderImageURL is stored on every newly created parking lot until
// an image is attached through an update.
const PlaceholderImageURL = "some url"

type ParkingLot struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	AreaName  string     `json:"area_name" db:"area_name"`
	Address   string     `json:"address" db:"address"`
	ImageURL  string     `json:"image_url" db:"image_url"`
	CarCost   float64    `json:"car_cost" db:"car_cost"`
	MotorCost float64    `json:"motor_cost" db:"motor_cost"`
	OwnerID   uuid.UUID  `json:"owner_id" db:"owner_id"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateParkingLotParams 部分更新參數，nil 代表不變更
type UpdateParkingLotParams struct {
	AreaName  *string
	Address   *string
	ImageURL  *string
	CarCost   *float64
	MotorCost *float64
	OwnerID   *uuid.UUID
}

// IsEmpty reports whether no column would change besides updated_at.
func (p UpdateParkingLotParams) IsEmpty() bool {
	return p.AreaName == nil && p.Address == nil && p.ImageURL == nil &&
		p.CarCost == nil && p.MotorCost == nil && p.OwnerID == nil
}

// ParkingLotWithKeeperCount 停車場與其管理員數量
type ParkingLotWithKeeperCount struct {
	ParkingLot
	KeeperCount int64 `json:"keeper_count" db:"keeper_count"`
}

// ParkingLotDetailRow is one row of the parking lot ⟕ keeper join. The
// parking lot columns repeat on every row; keeper columns are null when
// the lot has no keepers.
type ParkingLotDetailRow struct {
	ParkingLot
	KeeperID   uuid.NullUUID `db:"keeper_id"`
	KeeperName null.String   `db:"keeper_name"`
}

type KeeperOnDetailParkingLot struct {
	ID   uuid.NullUUID `json:"id"`
	Name null.String   `json:"name"`
}

// DetailParkingLot 停車場詳細資料；查無資料時所有欄位為 null
type DetailParkingLot struct {
	ID        uuid.NullUUID              `json:"id"`
	AreaName  null.String                `json:"area_name"`
	Address   null.String                `json:"address"`
	ImageURL  null.String                `json:"image_url"`
	CarCost   null.Float                 `json:"car_cost"`
	MotorCost null.Float                 `json:"motor_cost"`
	OwnerID   uuid.NullUUID              `json:"owner_id"`
	CreatedAt null.Time                  `json:"created_at"`
	UpdatedAt null.Time                  `json:"updated_at"`
	Keepers   []KeeperOnDetailParkingLot `json:"keepers"`
}

// NewDetailParkingLot folds the joined rows into a single detail. Parent
// columns come from the last row; a keeper is kept only when both its id
// and name are present. No rows yields an all-null detail with an empty
// keeper list.
func NewDetailParkingLot(rows []*ParkingLotDetailRow) *DetailParkingLot {
	detail := &DetailParkingLot{
		Keepers: make([]KeeperOnDetailParkingLot, 0),
	}

	for _, row := range rows {
		detail.ID = uuid.NullUUID{UUID: row.ID, Valid: true}
		detail.AreaName = null.StringFrom(row.AreaName)
		detail.Address = null.StringFrom(row.Address)
		detail.ImageURL = null.StringFrom(row.ImageURL)
		detail.CarCost = null.FloatFrom(row.CarCost)
		detail.MotorCost = null.FloatFrom(row.MotorCost)
		detail.OwnerID = uuid.NullUUID{UUID: row.OwnerID, Valid: true}
		detail.CreatedAt = null.TimeFromPtr(row.CreatedAt)
		detail.UpdatedAt = null.TimeFromPtr(row.UpdatedAt)

		if row.KeeperID.Valid && row.KeeperName.Valid {
			detail.Keepers = append(detail.Keepers, KeeperOnDetailParkingLot{
				ID:   row.KeeperID,
				Name: row.KeeperName,
			})
		}
	}

	return detail
}

// CreateParkingLotRequest 建立停車場請求；空字串的名稱與地址可接受，file_name 不檢查
type CreateParkingLotRequest struct {
	AreaName  *string   `json:"area_name" binding:"required"`
	Address   *string   `json:"address" binding:"required"`
	FileName  *string   `json:"file_name"`
	CarCost   *float64  `json:"car_cost" binding:"required,gte=0"`
	MotorCost *float64  `json:"motor_cost" binding:"required,gte=0"`
	OwnerID   uuid.UUID `json:"owner_id" binding:"required"`
}

// UpdateParkingLotRequest 更新停車場請求，所有欄位皆為選填
type UpdateParkingLotRequest struct {
	AreaName      *string     `json:"area_name"`
	Address       *string     `json:"address"`
	FileName      *string     `json:"file_name" binding:"omitempty,filename"`
	CarCost       *float64    `json:"car_cost" binding:"omitempty,gte=0"`
	MotorCost     *float64    `json:"motor_cost" binding:"omitempty,gte=0"`
	OwnerID       *uuid.UUID  `json:"owner_id"`
	ParkKeeperIDs []uuid.UUID `json:"park_keeper_ids"`
}

// Params maps the request onto the columns it changes. file_name becomes
// the stored image_url.
func (r UpdateParkingLotRequest) Params() UpdateParkingLotParams {
	return UpdateParkingLotParams{
		AreaName:  r.AreaName,
		Address:   r.Address,
		ImageURL:  r.FileName,
		CarCost:   r.CarCost,
		MotorCost: r.MotorCost,
		OwnerID:   r.OwnerID,
	}
}
