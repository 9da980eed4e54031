package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/trip-planner-api/internal/auth"
	"github.com/yukikurage/trip-planner-api/internal/constants"
	"github.com/yukikurage/trip-planner-api/internal/middleware"
	"github.com/yukikurage/trip-planner-api/internal/repository"
	"github.com/yukikurage/trip-planner-api/internal/services"
	"github.com/yukikurage/trip-planner-api/internal/testutil"
	"gorm.io/gorm"
)

const testPassword = "Secret1!"

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	tokens   *auth.TokenManager
	notifier *memoryNotifier
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func setupTestEnv(t *testing.T) *testEnv {
	return setupTestEnvWithLimiter(t, middleware.NewRateLimiter(1000, 1000))
}

func setupTestEnvWithLimiter(t *testing.T, limiter *middleware.RateLimiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	tokens, err := auth.NewTokenManager("handler-secret", auth.NewMemoryDenylist())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	itineraryRepo := repository.NewItineraryRepository(db)
	notifier := &memoryNotifier{}

	userService := services.NewUserService(userRepo, tokens, notifier)
	friendService := services.NewFriendService(userRepo, repository.NewFriendRepository(db))
	itineraryService := services.NewItineraryService(itineraryRepo)
	accommodationService := services.NewAccommodationService(repository.NewAccommodationRepository(db), itineraryRepo)
	poiService := services.NewPointOfInterestService(repository.NewPointOfInterestRepository(db), itineraryRepo)

	router := Router{
		Tokens:           tokens,
		Limiter:          limiter,
		Health:           NewHealthHandler(db),
		Auth:             NewAuthHandler(userService, tokens, false),
		Users:            NewUserHandler(userService, friendService, itineraryService),
		Itineraries:      NewItineraryHandler(itineraryService),
		Accommodations:   NewAccommodationHandler(accommodationService),
		PointsOfInterest: NewPointOfInterestHandler(poiService),
	}.Engine()

	return &testEnv{router: router, db: db, tokens: tokens, notifier: notifier}
}

// do sends a JSON request with an optional bearer token.
func (e *testEnv) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user over HTTP and returns its id and session token.
func (e *testEnv) register(t *testing.T, name string) (string, string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"username": name,
		"email":    name + "@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User  struct{ ID string } `json:"user"`
		Token string              `json:"token"`
	}
	decodeData(t, w, &resp)
	return resp.User.ID, resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			return c
		}
	}
	return nil
}
