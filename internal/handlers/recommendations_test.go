package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gameshelf/internal/constants"
	"gameshelf/internal/database"
	"gameshelf/internal/dto"
	"gameshelf/internal/models"
	"gameshelf/internal/repository"
	"gameshelf/internal/services"
)

// RecommendationHandlerTestSuite defines the test suite for RecommendationHandler
type RecommendationHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *RecommendationHandler
}

// SetupTest runs before each test
func (suite *RecommendationHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.LibraryEntry{},
		&models.Follow{},
		&models.UserPreference{},
		&models.GameTag{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	gameRepo := repository.NewGameRepository(suite.db)
	libraryRepo := repository.NewLibraryRepository(suite.db)
	followRepo := repository.NewFollowRepository(suite.db)
	prefRepo := repository.NewPreferenceRepository(suite.db)

	recService := services.NewRecommendationService(prefRepo, libraryRepo, followRepo, gameRepo)

	// Create handler (without AI service for tests)
	suite.handler = NewRecommendationHandler(recService, services.NewAIService(""))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *RecommendationHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *RecommendationHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username: username,
		Password: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *RecommendationHandlerTestSuite) createTestGame(appid, name string, tags ...string) *models.Game {
	game := &models.Game{
		AppID: appid,
		Name:  name,
	}
	suite.db.Create(game)
	for _, tag := range tags {
		suite.db.Create(&models.GameTag{GameID: game.ID, Tag: tag})
	}
	return game
}

// Helper function to create authenticated context
func (suite *RecommendationHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *RecommendationHandlerTestSuite) TestSetPreferences_RoundTrip() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string][]string{"tags": {"RPG", "Strategy"}})
	c, w := suite.createAuthContext("PUT", "/api/recommendations/preferences", body, user.ID)

	suite.handler.SetPreferences(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	c, w = suite.createAuthContext("GET", "/api/recommendations/preferences", nil, user.ID)
	suite.handler.GetPreferences(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Tags          []string `json:"tags"`
		AvailableTags []string `json:"available_tags"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.ElementsMatch(suite.T(), []string{"RPG", "Strategy"}, response.Tags)
	assert.Equal(suite.T(), constants.PopularTags, response.AvailableTags)
}

func (suite *RecommendationHandlerTestSuite) TestSetPreferences_UnknownTag() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string][]string{"tags": {"Not A Real Tag"}})
	c, w := suite.createAuthContext("PUT", "/api/recommendations/preferences", body, user.ID)

	suite.handler.SetPreferences(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *RecommendationHandlerTestSuite) TestGetRecommendations_TagScoring() {
	user := suite.createTestUser("alice")

	both := suite.createTestGame("1", "Tactics Quest", "RPG", "Strategy")
	rpgOnly := suite.createTestGame("2", "Sword Story", "RPG")
	suite.createTestGame("3", "Kickball", "Sports")

	suite.db.Create(&models.UserPreference{UserID: user.ID, Tag: "RPG", Weight: 1.0})
	suite.db.Create(&models.UserPreference{UserID: user.ID, Tag: "Strategy", Weight: 1.0})

	c, w := suite.createAuthContext("GET", "/api/recommendations", nil, user.ID)

	suite.handler.GetRecommendations(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Recommendations []dto.RecommendationDTO `json:"recommendations"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response.Recommendations, 2)

	// Two matching tags beat one.
	assert.Equal(suite.T(), both.ID, response.Recommendations[0].Game.ID)
	assert.Equal(suite.T(), 2.0, response.Recommendations[0].Score)
	assert.Equal(suite.T(), rpgOnly.ID, response.Recommendations[1].Game.ID)
	assert.Equal(suite.T(), 1.0, response.Recommendations[1].Score)
}

func (suite *RecommendationHandlerTestSuite) TestGetRecommendations_FollowedBoostAndOwnedExcluded() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	suite.db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})

	owned := suite.createTestGame("1", "Already Mine", "RPG")
	bobsGame := suite.createTestGame("2", "Bob's Favorite")
	taggedOnly := suite.createTestGame("3", "Niche Gem", "RPG")

	suite.db.Create(&models.LibraryEntry{UserID: alice.ID, GameID: owned.ID})
	suite.db.Create(&models.LibraryEntry{UserID: bob.ID, GameID: bobsGame.ID})
	suite.db.Create(&models.UserPreference{UserID: alice.ID, Tag: "RPG", Weight: 1.0})

	c, w := suite.createAuthContext("GET", "/api/recommendations", nil, alice.ID)

	suite.handler.GetRecommendations(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Recommendations []dto.RecommendationDTO `json:"recommendations"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response.Recommendations, 2)

	// The followed user's game outscores a plain tag match; owned games
	// never appear.
	assert.Equal(suite.T(), bobsGame.ID, response.Recommendations[0].Game.ID)
	assert.Equal(suite.T(), constants.FollowedUserBoost, response.Recommendations[0].Score)
	assert.Equal(suite.T(), taggedOnly.ID, response.Recommendations[1].Game.ID)
	for _, rec := range response.Recommendations {
		assert.NotEqual(suite.T(), owned.ID, rec.Game.ID)
	}
}

func (suite *RecommendationHandlerTestSuite) TestGameTags_RoundTrip() {
	suite.createTestUser("alice")
	game := suite.createTestGame("440", "Team Fortress 2")

	body, _ := json.Marshal(map[string][]string{"tags": {"FPS", "Multiplayer"}})
	c, w := suite.createAuthContext("PUT", "/api/games/1/tags", body, 1)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(game.ID, 10)}}

	suite.handler.SetGameTags(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	c, w = suite.createAuthContext("GET", "/api/games/1/tags", nil, 1)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(game.ID, 10)}}

	suite.handler.GetGameTags(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Tags []string `json:"tags"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.ElementsMatch(suite.T(), []string{"FPS", "Multiplayer"}, response.Tags)
}

func (suite *RecommendationHandlerTestSuite) TestGameTags_UnknownGame() {
	c, w := suite.createAuthContext("GET", "/api/games/99/tags", nil, 1)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	suite.handler.GetGameTags(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *RecommendationHandlerTestSuite) TestSuggestGameTags_NotConfigured() {
	game := suite.createTestGame("440", "Team Fortress 2")

	c, w := suite.createAuthContext("GET", "/api/games/1/tags/suggest", nil, 1)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(game.ID, 10)}}

	suite.handler.SuggestGameTags(c)

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

func TestRecommendationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RecommendationHandlerTestSuite))
}
