package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parking-lot-service/internal/model"
	"parking-lot-service/internal/service/mocks"
	apperrors "parking-lot-service/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
)

func setupParkingLotTestRouter(mockService *mocks.MockParkingLotService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	parkingLotHandler := NewParkingLotHandler(mockService)
	parkingLotHandler.RegisterRoutes(router)

	return router
}

func validCreateBody(ownerID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"area_name":  "Central",
		"address":    "12 Main St",
		"file_name":  "central.png",
		"car_cost":   5000,
		"motor_cost": 2000,
		"owner_id":   ownerID.String(),
	}
}

func TestCreateParkingLot(t *testing.T) {
	ownerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		createdAt := time.Now().UTC()
		created := &model.ParkingLot{
			ID:        uuid.New(),
			AreaName:  "Central",
			Address:   "12 Main St",
			ImageURL:  model.PlaceholderImageURL,
			CarCost:   5000,
			MotorCost: 2000,
			OwnerID:   ownerID,
			CreatedAt: &createdAt,
		}
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(req model.CreateParkingLotRequest) bool {
			return req.AreaName != nil && *req.AreaName == "Central" && req.OwnerID == ownerID &&
				req.CarCost != nil && *req.CarCost == 5000 &&
				req.FileName != nil && *req.FileName == "central.png"
		})).Return(created, nil).Once()

		req := createJSONHTTPRequest("POST", "/parking-lot", validCreateBody(ownerID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, created.ID.String(), data["id"])
		assert.Equal(t, model.PlaceholderImageURL, data["image_url"])
		assert.Nil(t, data["updated_at"])
	})

	t.Run("Failed - ErrOwnerRoleRequired", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrOwnerRoleRequired).Once()

		req := createJSONHTTPRequest("POST", "/parking-lot", validCreateBody(ownerID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Related user is not having owner role"}`, w.Body.String())
	})

	t.Run("Failed - wrapped ErrUserNotFound", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.Wrap(apperrors.ErrUserNotFound, "insert parking lot")).Once()

		req := createJSONHTTPRequest("POST", "/parking-lot", validCreateBody(ownerID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})

	t.Run("Failed - unexpected error", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		req := createJSONHTTPRequest("POST", "/parking-lot", validCreateBody(ownerID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/parking-lot", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid request format"}`, w.Body.String())
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed - missing area_name", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		body := validCreateBody(ownerID)
		delete(body, "area_name")

		req := createJSONHTTPRequest("POST", "/parking-lot", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{
			"error": "Invalid input",
			"validation_errors": [{"field": "area_name", "message": "this field is required"}]
		}`, w.Body.String())
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success - file_name with a path is ignored", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(req model.CreateParkingLotRequest) bool {
			return req.FileName != nil && *req.FileName == "uploads/lot.png"
		})).Return(&model.ParkingLot{ID: uuid.New(), ImageURL: model.PlaceholderImageURL, OwnerID: ownerID}, nil).Once()

		body := validCreateBody(ownerID)
		body["file_name"] = "uploads/lot.png"

		req := createJSONHTTPRequest("POST", "/parking-lot", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, model.PlaceholderImageURL, data["image_url"])
	})

	t.Run("Success - empty area_name and address", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(req model.CreateParkingLotRequest) bool {
			return req.AreaName != nil && *req.AreaName == "" && req.Address != nil && *req.Address == ""
		})).Return(&model.ParkingLot{ID: uuid.New(), OwnerID: ownerID}, nil).Once()

		body := validCreateBody(ownerID)
		body["area_name"] = ""
		body["address"] = ""

		req := createJSONHTTPRequest("POST", "/parking-lot", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Failed - ErrInvalidInput", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidInput).Once()

		req := createJSONHTTPRequest("POST", "/parking-lot", validCreateBody(ownerID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid input"}`, w.Body.String())
	})

	t.Run("Failed - negative cost", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		body := validCreateBody(ownerID)
		body["motor_cost"] = -1

		req := createJSONHTTPRequest("POST", "/parking-lot", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{
			"error": "Invalid input",
			"validation_errors": [{"field": "motor_cost", "message": "must be greater than or equal to 0"}]
		}`, w.Body.String())
	})

	t.Run("Failed - owner_id is not a UUID", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		body := validCreateBody(ownerID)
		body["owner_id"] = "42"

		req := createJSONHTTPRequest("POST", "/parking-lot", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateParkingLot(t *testing.T) {
	lotID := uuid.New()
	url := "/parking-lot/" + lotID.String()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		keeperA, keeperB := uuid.New(), uuid.New()
		updatedAt := time.Now().UTC()
		mockService.On("Update", mock.Anything, lotID, mock.MatchedBy(func(req model.UpdateParkingLotRequest) bool {
			return req.AreaName != nil && *req.AreaName == "East" &&
				req.Address == nil &&
				len(req.ParkKeeperIDs) == 2 &&
				req.ParkKeeperIDs[0] == keeperA && req.ParkKeeperIDs[1] == keeperB
		})).Return(&model.ParkingLot{ID: lotID, AreaName: "East", UpdatedAt: &updatedAt}, nil).Once()

		req := createJSONHTTPRequest("PATCH", url, map[string]interface{}{
			"area_name":       "East",
			"park_keeper_ids": []string{keeperA.String(), keeperB.String()},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "East", data["area_name"])
		assert.NotNil(t, data["updated_at"])
	})

	t.Run("Success - empty body", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("Update", mock.Anything, lotID, model.UpdateParkingLotRequest{}).
			Return(&model.ParkingLot{ID: lotID}, nil).Once()

		req := createJSONHTTPRequest("PATCH", url, map[string]interface{}{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - malformed id", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		req := createJSONHTTPRequest("PATCH", "/parking-lot/abc", map[string]interface{}{"area_name": "East"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - file_name with a path", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		req := createJSONHTTPRequest("PATCH", url, map[string]interface{}{"file_name": "../secrets.txt"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{
			"error": "Invalid input",
			"validation_errors": [{"field": "file_name", "message": "must be a plain file name"}]
		}`, w.Body.String())
		mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	errorCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"Failed - ErrImageNotFound", apperrors.ErrImageNotFound, http.StatusBadRequest, "Image not found"},
		{"Failed - ErrKeeperNotFound", apperrors.ErrKeeperNotFound, http.StatusBadRequest, "Keeper not found"},
		{"Failed - ErrOwnerRoleRequired", apperrors.ErrOwnerRoleRequired, http.StatusBadRequest, "Related user is not having owner role"},
		{"Failed - ErrInvalidInput", apperrors.ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
		{"Failed - ErrUserNotFound", apperrors.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"Failed - ErrParkingLotNotFound", apperrors.ErrParkingLotNotFound, http.StatusNotFound, "Parking lot not found"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := mocks.NewMockParkingLotService(t)
			router := setupParkingLotTestRouter(mockService)

			mockService.On("Update", mock.Anything, lotID, mock.Anything).Return(nil, tc.err).Once()

			req := createJSONHTTPRequest("PATCH", url, map[string]interface{}{"file_name": "lot.png"})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, `{"error":"`+tc.message+`"}`, w.Body.String())
		})
	}
}

func TestGetParkingLot(t *testing.T) {
	lotID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		keeperID := uuid.New()
		detail := model.NewDetailParkingLot([]*model.ParkingLotDetailRow{{
			ParkingLot: model.ParkingLot{ID: lotID, AreaName: "Central", OwnerID: uuid.New()},
			KeeperID:   uuid.NullUUID{UUID: keeperID, Valid: true},
			KeeperName: null.StringFrom("Kim"),
		}})
		mockService.On("Detail", mock.Anything, lotID).Return(detail, nil).Once()

		req, _ := http.NewRequest("GET", "/parking-lot/"+lotID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, lotID.String(), data["id"])
		keepers := data["keepers"].([]interface{})
		require.Len(t, keepers, 1)
		assert.Equal(t, map[string]interface{}{"id": keeperID.String(), "name": "Kim"}, keepers[0])
	})

	t.Run("Success - unknown id answers nulls", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("Detail", mock.Anything, lotID).Return(model.NewDetailParkingLot(nil), nil).Once()

		req, _ := http.NewRequest("GET", "/parking-lot/"+lotID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data": {
			"id": null, "area_name": null, "address": null, "image_url": null,
			"car_cost": null, "motor_cost": null, "owner_id": null,
			"created_at": null, "updated_at": null, "keepers": []
		}}`, w.Body.String())
	})

	t.Run("Failed - malformed id", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		req, _ := http.NewRequest("GET", "/parking-lot/123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - unexpected error", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("Detail", mock.Anything, lotID).Return(nil, errors.New("connection refused")).Once()

		req, _ := http.NewRequest("GET", "/parking-lot/"+lotID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetParkingLotsByOwner(t *testing.T) {
	ownerID := uuid.New()
	url := "/parking-lot/owner/" + ownerID.String()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		lots := []*model.ParkingLotWithKeeperCount{
			{ParkingLot: model.ParkingLot{ID: uuid.New(), OwnerID: ownerID}, KeeperCount: 3},
		}
		mockService.On("ListByOwner", mock.Anything, ownerID).Return(lots, nil).Once()

		req, _ := http.NewRequest("GET", url, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].([]interface{})
		require.Len(t, data, 1)
		assert.Equal(t, float64(3), data[0].(map[string]interface{})["keeper_count"])
		assert.Equal(t, ownerID.String(), data[0].(map[string]interface{})["owner_id"])
	})

	t.Run("Success - no lots", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		mockService.On("ListByOwner", mock.Anything, ownerID).Return(nil, nil).Once()

		req, _ := http.NewRequest("GET", url, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Failed - malformed id", func(t *testing.T) {
		mockService := mocks.NewMockParkingLotService(t)
		router := setupParkingLotTestRouter(mockService)

		req, _ := http.NewRequest("GET", "/parking-lot/owner/xyz", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	})
}
