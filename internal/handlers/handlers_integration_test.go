package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kritika/internal/handlers"
	"kritika/internal/middleware"
	"kritika/internal/models"
	"kritika/internal/repositories"
	"kritika/internal/services"
)

// captureMailer records the last body sent to each recipient so tests can
// read emailed confirmation codes.
type captureMailer struct {
	mu       sync.Mutex
	lastBody map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{lastBody: make(map[string]string)}
}

func (m *captureMailer) Send(subject, body, from string, to []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rcpt := range to {
		m.lastBody[rcpt] = body
	}
	return nil
}

func (m *captureMailer) LastBody(rcpt string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastBody[rcpt]
}

type testEnv struct {
	app      *fiber.App
	mail     *captureMailer
	userRepo repositories.UserRepository
}

var dbCounter int64

// setupApp wires the full stack over a fresh in-memory SQLite database and
// seeds an admin and a moderator account.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:itest%d?mode=memory&cache=shared&_foreign_keys=on",
		atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.Review{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	genreRepo := repositories.NewGORMGenreRepository(db)
	titleRepo := repositories.NewGORMTitleRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	mail := newCaptureMailer()
	authService := services.NewAuthService(userRepo, mail,
		"test_jwt_secret", "test_code_secret", "noreply@test.local", false)
	catalogService := services.NewCatalogService(categoryRepo, genreRepo, titleRepo)
	reviewService := services.NewReviewService(reviewRepo, commentRepo, titleRepo)
	userService := services.NewUserService(userRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	apiV1.Use(middleware.Authenticate(authService, userRepo))

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewCatalogHandler(catalogService).RegisterRoutes(apiV1)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1)

	seed := []models.User{
		{Username: "admin", Email: "admin@test.local", Role: models.RoleAdmin},
		{Username: "mod", Email: "mod@test.local", Role: models.RoleModerator},
	}
	for i := range seed {
		if err := userRepo.Create(&seed[i]); err != nil {
			t.Fatalf("failed to seed user %s: %v", seed[i].Username, err)
		}
	}

	return &testEnv{app: app, mail: mail, userRepo: userRepo}
}

// request performs an in-process request and returns the response.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// token signs a user up (idempotently for seeded accounts) and exchanges
// the emailed confirmation code for an access token.
func (e *testEnv) token(t *testing.T, username, email string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": username,
		"email":    email,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "signup for %s", username)

	code := e.mail.LastBody(email)
	assert.NotEmpty(t, code, "confirmation code for %s", email)

	resp = e.request(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username":          username,
		"confirmation_code": code,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "token for %s", username)
	body := decodeMap(t, resp)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// createTitle creates a category and a title inside it, returning the
// title id.
func (e *testEnv) createTitle(t *testing.T, adminToken, name, categorySlug string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/v1/categories", adminToken, map[string]string{
		"name": "Films", "slug": categorySlug,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/api/v1/titles", adminToken, map[string]interface{}{
		"name":     name,
		"year":     1972,
		"category": categorySlug,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeMap(t, resp)
	id, _ := body["id"].(string)
	assert.NotEmpty(t, id)
	return id
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestSignupConflictsAndToken(t *testing.T) {
	env := setupApp(t)

	// Fresh registration.
	resp := env.request(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bob", "email": "b@x.com",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "bob", body["username"])
	assert.Equal(t, "b@x.com", body["email"])

	// Same username, different email.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bob", "email": "c@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp), "username")

	// Different username, same email.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "robert", "email": "b@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp), "email")

	// Identical pair: idempotent, a fresh code is issued.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bob", "email": "b@x.com",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	code := env.mail.LastBody("b@x.com")
	assert.NotEmpty(t, code)

	// Reserved username.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "me", "email": "me@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown username on the token endpoint is 404.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "ghost", "confirmation_code": "whatever",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Wrong code is a field-keyed 400.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "bob", "confirmation_code": "deadbeef",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp), "confirmation_code")

	// The emailed code works exactly once.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "bob", "confirmation_code": code,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decodeMap(t, resp)["token"])

	resp = env.request(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "bob", "confirmation_code": code,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogPermissionsAndValidation(t *testing.T) {
	env := setupApp(t)
	adminToken := env.token(t, "admin", "admin@test.local")
	userToken := env.token(t, "bob", "b@x.com")

	// Reads are open to everyone.
	resp := env.request(t, http.MethodGet, "/api/v1/categories", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Anonymous mutation is 401, non-admin mutation is 403.
	payload := map[string]string{"name": "Films", "slug": "films"}
	resp = env.request(t, http.MethodPost, "/api/v1/categories", "", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/api/v1/categories", userToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin mutation succeeds; a duplicate slug conflicts.
	resp = env.request(t, http.MethodPost, "/api/v1/categories", adminToken, payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/api/v1/categories", adminToken, payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/genres", adminToken, map[string]string{
		"name": "Drama", "slug": "drama",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Year bounds are enforced at validation time.
	resp = env.request(t, http.MethodPost, "/api/v1/titles", adminToken, map[string]interface{}{
		"name": "Ancient", "year": 1800, "category": "films",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/api/v1/titles", adminToken, map[string]interface{}{
		"name": "Future", "year": 3000, "category": "films",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown category slug is a field-keyed 400.
	resp = env.request(t, http.MethodPost, "/api/v1/titles", adminToken, map[string]interface{}{
		"name": "Nowhere", "year": 2000, "category": "does-not-exist",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp), "category")

	// Valid create embeds the category and genres; rating starts null.
	resp = env.request(t, http.MethodPost, "/api/v1/titles", adminToken, map[string]interface{}{
		"name":     "Solaris",
		"year":     1972,
		"category": "films",
		"genre":    []string{"drama"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	title := decodeMap(t, resp)
	assert.NotEmpty(t, title["id"])
	assert.Nil(t, title["rating"])
	category, _ := title["category"].(map[string]interface{})
	assert.Equal(t, "films", category["slug"])

	// Filter by genre slug.
	resp = env.request(t, http.MethodGet, "/api/v1/titles?genre=drama", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)

	// Filter by name substring and year.
	resp = env.request(t, http.MethodGet, "/api/v1/titles?name=olari&year=1972", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)
	resp = env.request(t, http.MethodGet, "/api/v1/titles?name=olari&year=1999", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 0)
}

func TestReviewFlow(t *testing.T) {
	env := setupApp(t)
	adminToken := env.token(t, "admin", "admin@test.local")
	modToken := env.token(t, "mod", "mod@test.local")
	user1Token := env.token(t, "bob", "b@x.com")
	user2Token := env.token(t, "alice", "a@x.com")

	titleID := env.createTitle(t, adminToken, "Solaris", "films")
	reviewsPath := fmt.Sprintf("/api/v1/titles/%s/reviews", titleID)

	// Anonymous creation is rejected.
	resp := env.request(t, http.MethodPost, reviewsPath, "", map[string]interface{}{
		"text": "great", "score": 8,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Score bounds.
	resp = env.request(t, http.MethodPost, reviewsPath, user1Token, map[string]interface{}{
		"text": "broken", "score": 11,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = env.request(t, http.MethodPost, reviewsPath, user1Token, map[string]interface{}{
		"text": "broken", "score": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// First review per author succeeds, the second conflicts.
	resp = env.request(t, http.MethodPost, reviewsPath, user1Token, map[string]interface{}{
		"text": "great", "score": 8,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	review := decodeMap(t, resp)
	reviewID, _ := review["id"].(string)
	assert.Equal(t, "bob", review["author"])

	resp = env.request(t, http.MethodPost, reviewsPath, user1Token, map[string]interface{}{
		"text": "again", "score": 3,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["message"], "one review")

	resp = env.request(t, http.MethodPost, reviewsPath, user2Token, map[string]interface{}{
		"text": "fine", "score": 6,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Rating is the average of the scores.
	resp = env.request(t, http.MethodGet, "/api/v1/titles/"+titleID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	title := decodeMap(t, resp)
	assert.InDelta(t, 7.0, title["rating"], 0.001)

	// Listing is open and returns both reviews.
	resp = env.request(t, http.MethodGet, reviewsPath, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)

	// A non-author regular user may not mutate someone else's review.
	reviewPath := reviewsPath + "/" + reviewID
	resp = env.request(t, http.MethodPatch, reviewPath, user2Token, map[string]interface{}{
		"text": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodDelete, reviewPath, user2Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The author may update their own review.
	resp = env.request(t, http.MethodPatch, reviewPath, user1Token, map[string]interface{}{
		"score": 10,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 10, decodeMap(t, resp)["score"], 0.001)

	// A moderator may delete any review.
	resp = env.request(t, http.MethodDelete, reviewPath, modToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/titles/"+titleID, "", nil)
	title = decodeMap(t, resp)
	assert.InDelta(t, 6.0, title["rating"], 0.001)

	// Reviews under a missing title are 404.
	resp = env.request(t, http.MethodGet, "/api/v1/titles/missing/reviews", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentFlow(t *testing.T) {
	env := setupApp(t)
	adminToken := env.token(t, "admin", "admin@test.local")
	modToken := env.token(t, "mod", "mod@test.local")
	user1Token := env.token(t, "bob", "b@x.com")
	user2Token := env.token(t, "alice", "a@x.com")

	titleID := env.createTitle(t, adminToken, "Solaris", "films")
	reviewsPath := fmt.Sprintf("/api/v1/titles/%s/reviews", titleID)

	resp := env.request(t, http.MethodPost, reviewsPath, user1Token, map[string]interface{}{
		"text": "great", "score": 8,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	reviewID, _ := decodeMap(t, resp)["id"].(string)
	commentsPath := reviewsPath + "/" + reviewID + "/comments"

	// Anonymous comment is rejected; an authenticated one works.
	resp = env.request(t, http.MethodPost, commentsPath, "", map[string]string{"text": "same"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodPost, commentsPath, user2Token, map[string]string{"text": "agreed"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	comment := decodeMap(t, resp)
	commentID, _ := comment["id"].(string)
	assert.Equal(t, "alice", comment["author"])

	// Anyone may read.
	resp = env.request(t, http.MethodGet, commentsPath, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)

	// Non-author mutation is forbidden; moderators may.
	commentPath := commentsPath + "/" + commentID
	resp = env.request(t, http.MethodPatch, commentPath, user1Token, map[string]string{"text": "mine now"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodPatch, commentPath, modToken, map[string]string{"text": "moderated"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The author may delete their own comment.
	resp = env.request(t, http.MethodDelete, commentPath, user2Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Comments under a missing review are 404.
	resp = env.request(t, http.MethodPost, reviewsPath+"/missing/comments", user2Token, map[string]string{"text": "?"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSelfProfile(t *testing.T) {
	env := setupApp(t)
	userToken := env.token(t, "bob", "b@x.com")

	resp := env.request(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/users/me", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decodeMap(t, resp)
	assert.Equal(t, "bob", profile["username"])
	assert.Equal(t, models.RoleUser, profile["role"])

	// A role field in the payload is silently discarded.
	resp = env.request(t, http.MethodPatch, "/api/v1/users/me", userToken, map[string]string{
		"bio":  "hello",
		"role": models.RoleAdmin,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	profile = decodeMap(t, resp)
	assert.Equal(t, "hello", profile["bio"])
	assert.Equal(t, models.RoleUser, profile["role"])

	// The guard holds: bob still cannot touch admin endpoints.
	resp = env.request(t, http.MethodGet, "/api/v1/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUserAdministration(t *testing.T) {
	env := setupApp(t)
	adminToken := env.token(t, "admin", "admin@test.local")
	userToken := env.token(t, "bob", "b@x.com")

	// Admin-only, every method.
	resp := env.request(t, http.MethodGet, "/api/v1/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/v1/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Create with an explicit role.
	resp = env.request(t, http.MethodPost, "/api/v1/users", adminToken, map[string]string{
		"username": "carol", "email": "c@x.com", "role": models.RoleModerator,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, models.RoleModerator, decodeMap(t, resp)["role"])

	// Lookup and search are by username.
	resp = env.request(t, http.MethodGet, "/api/v1/users/carol", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/v1/users?search=car", adminToken, nil)
	assert.Len(t, decodeList(t, resp), 1)

	// Promotion through the admin path takes immediate effect: bob's old
	// token now carries admin rights because the role is reloaded per
	// request.
	resp = env.request(t, http.MethodPatch, "/api/v1/users/bob", adminToken, map[string]string{
		"role": models.RoleAdmin,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/v1/users", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete by username.
	resp = env.request(t, http.MethodDelete, "/api/v1/users/carol", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/v1/users/carol", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPaginationDefaults(t *testing.T) {
	env := setupApp(t)
	adminToken := env.token(t, "admin", "admin@test.local")

	for i := 0; i < 12; i++ {
		resp := env.request(t, http.MethodPost, "/api/v1/genres", adminToken, map[string]string{
			"name": fmt.Sprintf("Genre %02d", i),
			"slug": fmt.Sprintf("genre-%02d", i),
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Default page size is 10.
	resp := env.request(t, http.MethodGet, "/api/v1/genres", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 10)

	resp = env.request(t, http.MethodGet, "/api/v1/genres?limit=5&offset=10", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)
}

func TestCascadeDeletes(t *testing.T) {
	env := setupApp(t)
	adminToken := env.token(t, "admin", "admin@test.local")
	userToken := env.token(t, "bob", "b@x.com")

	titleID := env.createTitle(t, adminToken, "Solaris", "films")
	reviewsPath := fmt.Sprintf("/api/v1/titles/%s/reviews", titleID)

	resp := env.request(t, http.MethodPost, reviewsPath, userToken, map[string]interface{}{
		"text": "great", "score": 8,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Deleting the title takes its reviews with it.
	resp = env.request(t, http.MethodDelete, "/api/v1/titles/"+titleID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.request(t, http.MethodGet, reviewsPath, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Deleting a user takes their reviews with them.
	title2 := env.createTitle(t, adminToken, "Stalker", "films-2")
	reviews2 := fmt.Sprintf("/api/v1/titles/%s/reviews", title2)
	resp = env.request(t, http.MethodPost, reviews2, userToken, map[string]interface{}{
		"text": "deep", "score": 9,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/api/v1/users/bob", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.request(t, http.MethodGet, reviews2, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 0)

	// Deleting a category leaves its titles with a null category.
	resp = env.request(t, http.MethodDelete, "/api/v1/categories/films-2", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/v1/titles/"+title2, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decodeMap(t, resp)["category"])
}
