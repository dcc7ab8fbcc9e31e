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

// SocialHandlerTestSuite defines the test suite for SocialHandler
type SocialHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *SocialHandler
}

// SetupTest runs before each test
func (suite *SocialHandlerTestSuite) SetupTest() {
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
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	followRepo := repository.NewFollowRepository(suite.db)
	libraryRepo := repository.NewLibraryRepository(suite.db)

	socialService := services.NewSocialService(userRepo, followRepo, libraryRepo)
	suite.handler = NewSocialHandler(socialService)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *SocialHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *SocialHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username: username,
		Password: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *SocialHandlerTestSuite) createTestGame(appid, name string) *models.Game {
	game := &models.Game{
		AppID: appid,
		Name:  name,
	}
	suite.db.Create(game)
	return game
}

func (suite *SocialHandlerTestSuite) createTestEntry(userID, gameID uint64, playtime int64) {
	suite.db.Create(&models.LibraryEntry{
		UserID:          userID,
		GameID:          gameID,
		PlaytimeForever: playtime,
	})
}

// Helper function to create authenticated context
func (suite *SocialHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
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

func (suite *SocialHandlerTestSuite) setTargetParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
}

func (suite *SocialHandlerTestSuite) TestFollowUser_Success() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	c, w := suite.createAuthContext("POST", "/api/social/users/2/follow", nil, alice.ID)
	suite.setTargetParam(c, bob.ID)

	suite.handler.FollowUser(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var count int64
	suite.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", alice.ID, bob.ID).Count(&count)
	assert.EqualValues(suite.T(), 1, count)
}

func (suite *SocialHandlerTestSuite) TestFollowUser_Self() {
	alice := suite.createTestUser("alice")

	c, w := suite.createAuthContext("POST", "/api/social/users/1/follow", nil, alice.ID)
	suite.setTargetParam(c, alice.ID)

	suite.handler.FollowUser(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var count int64
	suite.db.Model(&models.Follow{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *SocialHandlerTestSuite) TestFollowUser_Duplicate() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	suite.db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})

	c, w := suite.createAuthContext("POST", "/api/social/users/2/follow", nil, alice.ID)
	suite.setTargetParam(c, bob.ID)

	suite.handler.FollowUser(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	// Still a single edge.
	var count int64
	suite.db.Model(&models.Follow{}).Count(&count)
	assert.EqualValues(suite.T(), 1, count)
}

func (suite *SocialHandlerTestSuite) TestFollowUser_UnknownTarget() {
	alice := suite.createTestUser("alice")

	c, w := suite.createAuthContext("POST", "/api/social/users/99/follow", nil, alice.ID)
	suite.setTargetParam(c, 99)

	suite.handler.FollowUser(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *SocialHandlerTestSuite) TestUnfollowUser_Success() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	suite.db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})

	c, w := suite.createAuthContext("DELETE", "/api/social/users/2/follow", nil, alice.ID)
	suite.setTargetParam(c, bob.ID)

	suite.handler.UnfollowUser(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Follow{}).Count(&count)
	assert.Zero(suite.T(), count)

	// Re-following after an unfollow works again.
	c, w = suite.createAuthContext("POST", "/api/social/users/2/follow", nil, alice.ID)
	suite.setTargetParam(c, bob.ID)
	suite.handler.FollowUser(c)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

func (suite *SocialHandlerTestSuite) TestUnfollowUser_NotFollowing() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	c, w := suite.createAuthContext("DELETE", "/api/social/users/2/follow", nil, alice.ID)
	suite.setTargetParam(c, bob.ID)

	suite.handler.UnfollowUser(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *SocialHandlerTestSuite) TestBrowseUsers_ExcludesSelfAndMarksFollowing() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	suite.createTestUser("carol")
	suite.db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})

	c, w := suite.createAuthContext("GET", "/api/social/users", nil, alice.ID)

	suite.handler.BrowseUsers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.UserListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response.Users, 2)
	assert.Equal(suite.T(), "bob", response.Users[0].Username)
	assert.True(suite.T(), response.Users[0].IsFollowing)
	assert.Equal(suite.T(), "carol", response.Users[1].Username)
	assert.False(suite.T(), response.Users[1].IsFollowing)
}

func (suite *SocialHandlerTestSuite) TestBrowseUsers_Search() {
	alice := suite.createTestUser("alice")
	suite.createTestUser("bob")
	suite.createTestUser("bobby")

	c, w := suite.createAuthContext("GET", "/api/social/users", nil, alice.ID)
	c.Request.URL.RawQuery = "search=bob"

	suite.handler.BrowseUsers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.UserListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Users, 2)
	assert.EqualValues(suite.T(), 2, response.Pagination.Total)
}

func (suite *SocialHandlerTestSuite) TestCommonGames_ScoredAndSorted() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	shared := suite.createTestGame("440", "Team Fortress 2")
	favorite := suite.createTestGame("570", "Dota 2")
	onlyMine := suite.createTestGame("10", "Counter-Strike")

	suite.createTestEntry(alice.ID, shared.ID, 10)
	suite.createTestEntry(alice.ID, favorite.ID, 5000)
	suite.createTestEntry(alice.ID, onlyMine.ID, 100)
	suite.createTestEntry(bob.ID, shared.ID, 20)
	suite.createTestEntry(bob.ID, favorite.ID, 4000)

	c, w := suite.createAuthContext("GET", "/api/social/users/2/common-games", nil, alice.ID)
	suite.setTargetParam(c, bob.ID)

	suite.handler.CommonGames(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Games []services.ScoredCommonGame `json:"games"`
		Count int                         `json:"count"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Equal(2, response.Count)

	// The heavily-played shared game ranks first.
	assert.Equal(suite.T(), "Dota 2", response.Games[0].Name)
	assert.Greater(suite.T(), response.Games[0].Relevance, response.Games[1].Relevance)
}

func (suite *SocialHandlerTestSuite) TestCommonGames_SortByNameAscending() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	dota := suite.createTestGame("570", "Dota 2")
	tf2 := suite.createTestGame("440", "Team Fortress 2")
	cs := suite.createTestGame("10", "Counter-Strike")

	suite.createTestEntry(alice.ID, dota.ID, 5000)
	suite.createTestEntry(alice.ID, tf2.ID, 10)
	suite.createTestEntry(alice.ID, cs.ID, 100)
	suite.createTestEntry(bob.ID, dota.ID, 4000)
	suite.createTestEntry(bob.ID, tf2.ID, 20)
	suite.createTestEntry(bob.ID, cs.ID, 50)

	c, w := suite.createAuthContext("GET", "/api/social/users/2/common-games", nil, alice.ID)
	c.Request.URL.RawQuery = "sort=name&order=asc"
	suite.setTargetParam(c, bob.ID)

	suite.handler.CommonGames(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Games []services.ScoredCommonGame `json:"games"`
		Count int                         `json:"count"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Equal(3, response.Count)
	assert.Equal(suite.T(), "Counter-Strike", response.Games[0].Name)
	assert.Equal(suite.T(), "Dota 2", response.Games[1].Name)
	assert.Equal(suite.T(), "Team Fortress 2", response.Games[2].Name)
}

func (suite *SocialHandlerTestSuite) TestCommonGames_SortByTheirPlaytime() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	dota := suite.createTestGame("570", "Dota 2")
	tf2 := suite.createTestGame("440", "Team Fortress 2")

	suite.createTestEntry(alice.ID, dota.ID, 5000)
	suite.createTestEntry(alice.ID, tf2.ID, 10)
	suite.createTestEntry(bob.ID, dota.ID, 40)
	suite.createTestEntry(bob.ID, tf2.ID, 900)

	c, w := suite.createAuthContext("GET", "/api/social/users/2/common-games", nil, alice.ID)
	c.Request.URL.RawQuery = "sort=their_playtime"
	suite.setTargetParam(c, bob.ID)

	suite.handler.CommonGames(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Games []services.ScoredCommonGame `json:"games"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response.Games, 2)

	// Defaults to descending, so bob's most-played game comes first.
	assert.Equal(suite.T(), "Team Fortress 2", response.Games[0].Name)
	assert.EqualValues(suite.T(), 900, response.Games[0].TheirPlaytime)
}

func TestSocialHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SocialHandlerTestSuite))
}
