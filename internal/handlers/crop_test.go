package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/starkbrilliance/smartharvest/internal/models"
	"github.com/starkbrilliance/smartharvest/internal/repository"
	"github.com/starkbrilliance/smartharvest/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CropHandlerTestSuite defines the test suite for CropHandler
type CropHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *CropHandler
}

// SetupTest runs before each test
func (suite *CropHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.GrowArea{},
		&models.Subarea{},
		&models.Crop{},
		&models.Event{},
	)
	suite.Require().NoError(err)

	cropRepo := repository.NewCropRepository(suite.db)
	areaRepo := repository.NewAreaRepository(suite.db)
	eventRepo := repository.NewEventRepository(suite.db)
	suite.handler = NewCropHandler(services.NewCropService(cropRepo, areaRepo, eventRepo))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *CropHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *CropHandlerTestSuite) createTestArea(name string) *models.GrowArea {
	area := &models.GrowArea{Name: name}
	suite.db.Create(area)
	return area
}

func (suite *CropHandlerTestSuite) createTestSubarea(areaID, name string) *models.Subarea {
	subarea := &models.Subarea{GrowAreaID: areaID, Name: name}
	suite.db.Create(subarea)
	return subarea
}

func (suite *CropHandlerTestSuite) createTestCrop(name string, mutate func(*models.Crop)) *models.Crop {
	now := time.Now()
	crop := &models.Crop{
		Name:                name,
		PlantedDate:         now.AddDate(0, 0, -10),
		ExpectedHarvestDate: now.AddDate(0, 0, 20),
		Status:              models.CropStatusGrowing,
		IsActive:            true,
	}
	if mutate != nil {
		mutate(crop)
	}
	suite.db.Create(crop)
	return crop
}

// Helper function to create a request context
func (suite *CropHandlerTestSuite) createContext(method, url string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

func (suite *CropHandlerTestSuite) setIDParam(c *gin.Context, id string) {
	c.Params = gin.Params{{Key: "id", Value: id}}
}

// TestCreateCrop_Success tests successful crop creation
func (suite *CropHandlerTestSuite) TestCreateCrop_Success() {
	body, _ := json.Marshal(map[string]any{
		"name":                  "Basil",
		"variety":               "Genovese",
		"planted_date":          "2026-08-01",
		"expected_harvest_date": "2026-09-15",
	})

	c, w := suite.createContext("POST", "/api/crops", body)
	suite.handler.CreateCrop(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Basil", response["name"])
	assert.Equal(suite.T(), "growing", response["status"])
	assert.Equal(suite.T(), true, response["is_active"])
	assert.Equal(suite.T(), "No location specified", response["location"])
	assert.NotEmpty(suite.T(), response["id"])
	assert.Contains(suite.T(), response, "progress_percent")
	assert.Contains(suite.T(), response, "days_until_harvest")
}

// TestCreateCrop_MissingName tests validation of the required name
func (suite *CropHandlerTestSuite) TestCreateCrop_MissingName() {
	body, _ := json.Marshal(map[string]any{
		"planted_date":          "2026-08-01",
		"expected_harvest_date": "2026-09-15",
	})

	c, w := suite.createContext("POST", "/api/crops", body)
	suite.handler.CreateCrop(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateCrop_HarvestBeforePlanting tests the date ordering guard
func (suite *CropHandlerTestSuite) TestCreateCrop_HarvestBeforePlanting() {
	body, _ := json.Marshal(map[string]any{
		"name":                  "Basil",
		"planted_date":          "2026-09-15",
		"expected_harvest_date": "2026-08-01",
	})

	c, w := suite.createContext("POST", "/api/crops", body)
	suite.handler.CreateCrop(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateCrop_UnknownSubarea tests the referential guard
func (suite *CropHandlerTestSuite) TestCreateCrop_UnknownSubarea() {
	missing := "00000000-0000-0000-0000-000000000000"
	body, _ := json.Marshal(map[string]any{
		"name":                  "Basil",
		"subarea_id":            missing,
		"planted_date":          "2026-08-01",
		"expected_harvest_date": "2026-09-15",
	})

	c, w := suite.createContext("POST", "/api/crops", body)
	suite.handler.CreateCrop(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateCrop_LocationMismatch tests subarea/area consistency
func (suite *CropHandlerTestSuite) TestCreateCrop_LocationMismatch() {
	areaA := suite.createTestArea("Greenhouse A")
	areaB := suite.createTestArea("Greenhouse B")
	subarea := suite.createTestSubarea(areaB.ID, "Bench 1")

	body, _ := json.Marshal(map[string]any{
		"name":                  "Basil",
		"area_id":               areaA.ID,
		"subarea_id":            subarea.ID,
		"planted_date":          "2026-08-01",
		"expected_harvest_date": "2026-09-15",
	})

	c, w := suite.createContext("POST", "/api/crops", body)
	suite.handler.CreateCrop(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateCrop_InvalidMaintenanceFrequency tests schedule validation
func (suite *CropHandlerTestSuite) TestCreateCrop_InvalidMaintenanceFrequency() {
	body, _ := json.Marshal(map[string]any{
		"name":                  "Basil",
		"planted_date":          "2026-08-01",
		"expected_harvest_date": "2026-09-15",
		"maintenance_schedule": []map[string]any{
			{
				"event_type": "watering",
				"frequency":  "fortnightly",
				"start_date": "2026-08-01",
				"end_date":   "2026-09-15",
			},
		},
	})

	c, w := suite.createContext("POST", "/api/crops", body)
	suite.handler.CreateCrop(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListCrops_ExcludesSoftDeleted tests that the list only shows active
// crops, newest first
func (suite *CropHandlerTestSuite) TestListCrops_ExcludesSoftDeleted() {
	older := suite.createTestCrop("Older", func(c *models.Crop) {
		c.CreatedAt = time.Now().Add(-2 * time.Hour)
	})
	newer := suite.createTestCrop("Newer", func(c *models.Crop) {
		c.CreatedAt = time.Now().Add(-time.Hour)
	})
	suite.createTestCrop("Deleted", func(c *models.Crop) {
		c.IsActive = false
	})

	c, w := suite.createContext("GET", "/api/crops", nil)
	suite.handler.ListCrops(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Crops      []map[string]interface{} `json:"crops"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Crops, 2)
	assert.Equal(suite.T(), int64(2), response.Pagination.Total)
	assert.Equal(suite.T(), newer.Name, response.Crops[0]["name"])
	assert.Equal(suite.T(), older.Name, response.Crops[1]["name"])
}

// TestGetCrop_IncludesSoftDeletedAndEvents tests the public detail lookup
func (suite *CropHandlerTestSuite) TestGetCrop_IncludesSoftDeletedAndEvents() {
	area := suite.createTestArea("Greenhouse A")
	subarea := suite.createTestSubarea(area.ID, "Bench 1")
	crop := suite.createTestCrop("Basil", func(c *models.Crop) {
		c.SubareaID = &subarea.ID
		c.IsActive = false
	})
	suite.db.Create(&models.Event{
		CropID:    crop.ID,
		Type:      models.EventWatering,
		EventDate: time.Now().AddDate(0, 0, -1),
	})

	c, w := suite.createContext("GET", "/api/crops/"+crop.ID, nil)
	suite.setIDParam(c, crop.ID)
	suite.handler.GetCrop(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), crop.ID, response["id"])
	assert.Equal(suite.T(), false, response["is_active"])
	assert.Equal(suite.T(), "Bench 1", response["location"])

	events := response["events"].([]interface{})
	assert.Len(suite.T(), events, 1)
}

// TestGetCrop_NotFound tests lookup of a missing crop
func (suite *CropHandlerTestSuite) TestGetCrop_NotFound() {
	c, w := suite.createContext("GET", "/api/crops/missing", nil)
	suite.setIDParam(c, "00000000-0000-0000-0000-000000000000")
	suite.handler.GetCrop(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateCrop_Partial tests that only provided fields change
func (suite *CropHandlerTestSuite) TestUpdateCrop_Partial() {
	crop := suite.createTestCrop("Basil", func(c *models.Crop) {
		c.Notes = "original notes"
	})

	body, _ := json.Marshal(map[string]any{
		"status": "flowering",
	})

	c, w := suite.createContext("PATCH", "/api/crops/"+crop.ID, body)
	suite.setIDParam(c, crop.ID)
	suite.handler.UpdateCrop(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "flowering", response["status"])
	assert.Equal(suite.T(), "Basil", response["name"])
	assert.Equal(suite.T(), "original notes", response["notes"])
}

// TestUpdateCrop_ClearSubarea tests that an explicit null detaches the crop
func (suite *CropHandlerTestSuite) TestUpdateCrop_ClearSubarea() {
	area := suite.createTestArea("Greenhouse A")
	subarea := suite.createTestSubarea(area.ID, "Bench 1")
	crop := suite.createTestCrop("Basil", func(c *models.Crop) {
		c.SubareaID = &subarea.ID
	})

	c, w := suite.createContext("PATCH", "/api/crops/"+crop.ID, []byte(`{"subarea_id":null}`))
	suite.setIDParam(c, crop.ID)
	suite.handler.UpdateCrop(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Crop
	suite.db.First(&stored, "id = ?", crop.ID)
	assert.Nil(suite.T(), stored.SubareaID)
}

// TestUpdateCrop_InvalidStatus tests status validation on update
func (suite *CropHandlerTestSuite) TestUpdateCrop_InvalidStatus() {
	crop := suite.createTestCrop("Basil", nil)

	c, w := suite.createContext("PATCH", "/api/crops/"+crop.ID, []byte(`{"status":"wilted"}`))
	suite.setIDParam(c, crop.ID)
	suite.handler.UpdateCrop(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestHarvestCrop_Idempotent tests that repeated harvests keep the first
// timestamp
func (suite *CropHandlerTestSuite) TestHarvestCrop_Idempotent() {
	crop := suite.createTestCrop("Basil", nil)

	c, w := suite.createContext("POST", fmt.Sprintf("/api/crops/%s/harvest", crop.ID), nil)
	suite.setIDParam(c, crop.ID)
	suite.handler.HarvestCrop(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var first models.Crop
	suite.db.First(&first, "id = ?", crop.ID)
	suite.Require().NotNil(first.ActualHarvestDate)
	assert.Equal(suite.T(), models.CropStatusHarvested, first.Status)

	c, w = suite.createContext("POST", fmt.Sprintf("/api/crops/%s/harvest", crop.ID), nil)
	suite.setIDParam(c, crop.ID)
	suite.handler.HarvestCrop(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var second models.Crop
	suite.db.First(&second, "id = ?", crop.ID)
	suite.Require().NotNil(second.ActualHarvestDate)
	assert.True(suite.T(), first.ActualHarvestDate.Equal(*second.ActualHarvestDate))
}

// TestDeleteCrop_SoftDelete tests that deletion hides but keeps the row
func (suite *CropHandlerTestSuite) TestDeleteCrop_SoftDelete() {
	crop := suite.createTestCrop("Basil", nil)

	c, w := suite.createContext("DELETE", "/api/crops/"+crop.ID, nil)
	suite.setIDParam(c, crop.ID)
	suite.handler.DeleteCrop(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Crop
	err := suite.db.First(&stored, "id = ?", crop.ID).Error
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), stored.IsActive)
}

// TestDeleteCrop_NotFound tests deleting a missing crop
func (suite *CropHandlerTestSuite) TestDeleteCrop_NotFound() {
	c, w := suite.createContext("DELETE", "/api/crops/missing", nil)
	suite.setIDParam(c, "00000000-0000-0000-0000-000000000000")
	suite.handler.DeleteCrop(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateEvent_Success tests appending an event to the log
func (suite *CropHandlerTestSuite) TestCreateEvent_Success() {
	crop := suite.createTestCrop("Basil", nil)

	body, _ := json.Marshal(map[string]any{
		"type":       "watering",
		"notes":      "light watering",
		"event_date": "2026-08-20",
	})

	c, w := suite.createContext("POST", fmt.Sprintf("/api/crops/%s/events", crop.ID), body)
	suite.setIDParam(c, crop.ID)
	suite.handler.CreateEvent(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Event
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), crop.ID, response.CropID)
	assert.Equal(suite.T(), models.EventWatering, response.Type)
}

// TestCreateEvent_InvalidType tests event type validation
func (suite *CropHandlerTestSuite) TestCreateEvent_InvalidType() {
	crop := suite.createTestCrop("Basil", nil)

	body, _ := json.Marshal(map[string]any{
		"type":       "repotting",
		"event_date": "2026-08-20",
	})

	c, w := suite.createContext("POST", fmt.Sprintf("/api/crops/%s/events", crop.ID), body)
	suite.setIDParam(c, crop.ID)
	suite.handler.CreateEvent(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateEvent_UnknownCrop tests logging against a missing crop
func (suite *CropHandlerTestSuite) TestCreateEvent_UnknownCrop() {
	body, _ := json.Marshal(map[string]any{
		"type":       "watering",
		"event_date": "2026-08-20",
	})

	c, w := suite.createContext("POST", "/api/crops/missing/events", body)
	suite.setIDParam(c, "00000000-0000-0000-0000-000000000000")
	suite.handler.CreateEvent(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestListEvents_NewestFirst tests the event log ordering
func (suite *CropHandlerTestSuite) TestListEvents_NewestFirst() {
	crop := suite.createTestCrop("Basil", nil)
	suite.db.Create(&models.Event{
		CropID:    crop.ID,
		Type:      models.EventWatering,
		EventDate: time.Now().AddDate(0, 0, -3),
	})
	suite.db.Create(&models.Event{
		CropID:    crop.ID,
		Type:      models.EventPruning,
		EventDate: time.Now().AddDate(0, 0, -1),
	})

	c, w := suite.createContext("GET", fmt.Sprintf("/api/crops/%s/events", crop.ID), nil)
	suite.setIDParam(c, crop.ID)
	suite.handler.ListEvents(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var events []models.Event
	err := json.Unmarshal(w.Body.Bytes(), &events)
	assert.NoError(suite.T(), err)
	suite.Require().Len(events, 2)
	assert.Equal(suite.T(), models.EventPruning, events[0].Type)
	assert.Equal(suite.T(), models.EventWatering, events[1].Type)
}

// TestGetStats tests the dashboard counters
func (suite *CropHandlerTestSuite) TestGetStats() {
	now := time.Now()
	suite.createTestCrop("Growing", nil)
	suite.createTestCrop("Ready", func(c *models.Crop) {
		c.Status = models.CropStatusReady
	})
	suite.createTestCrop("Overdue", func(c *models.Crop) {
		c.ExpectedHarvestDate = now.AddDate(0, 0, -2)
	})
	suite.createTestCrop("Harvested", func(c *models.Crop) {
		c.Status = models.CropStatusHarvested
		harvestedAt := now.AddDate(0, 0, -1)
		c.ActualHarvestDate = &harvestedAt
	})
	suite.createTestCrop("Deleted", func(c *models.Crop) {
		c.IsActive = false
	})

	c, w := suite.createContext("GET", "/api/stats", nil)
	suite.handler.GetStats(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stats repository.CropStats
	err := json.Unmarshal(w.Body.Bytes(), &stats)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), stats.Active)
	assert.Equal(suite.T(), int64(1), stats.Ready)
	assert.Equal(suite.T(), int64(1), stats.Overdue)
	assert.Equal(suite.T(), int64(1), stats.Harvested)
}

// TestCropHandlerTestSuite runs the test suite
func TestCropHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CropHandlerTestSuite))
}
