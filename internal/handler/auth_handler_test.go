package handler

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fittrack/internal/auth"
	"fittrack/internal/crypto"
	"fittrack/internal/model"
	"fittrack/internal/protect"
	"fittrack/internal/service"
)

// memoryUserRepository is a map-backed UserRepository for handler tests.
// It hands out copies so callers cannot mutate stored rows.
type memoryUserRepository struct {
	users map[uuid.UUID]model.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[uuid.UUID]model.User)}
}

func copyUser(u model.User) model.User {
	clone := u
	clone.Nationality = copyStrPtr(u.Nationality)
	clone.Description = copyStrPtr(u.Description)
	clone.Hobbies = copyStrPtr(u.Hobbies)
	return clone
}

func copyStrPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = copyUser(*user)
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := copyUser(u)
	return &clone, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := copyUser(u)
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// newAuthTestServer wires real services over the in-memory repository.
func newAuthTestServer(t *testing.T) (*echo.Echo, *memoryUserRepository) {
	t.Helper()

	key := make([]byte, crypto.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	cipher, err := crypto.NewCipher(key)
	require.NoError(t, err)

	repo := newMemoryUserRepository()
	svc := service.NewAuthService(repo, crypto.NewBcryptHasher(), protect.NewFieldProtector(cipher), auth.NewMemoryStore(), time.Second)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	h := NewAuthHandler(svc)
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)
	e.GET("/me", h.Me)
	return e, repo
}

func doJSON(e *echo.Echo, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestAuthFlow(t *testing.T) {
	e, repo := newAuthTestServer(t)

	registerBody := `{"username":"john_doe","email":"john@example.com","password":"secret1","age":30,"nationality":"American"}`

	rec := doJSON(e, http.MethodPost, "/register", registerBody, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret1")
	assert.NotContains(t, rec.Body.String(), "password_hash")

	var registered model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.Equal(t, "john_doe", registered.Username)
	require.NotNil(t, registered.Nationality)
	assert.Equal(t, "American", *registered.Nationality)

	// The stored row carries ciphertext, not the supplied value.
	stored, err := repo.FindByID(context.Background(), registered.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Nationality)
	assert.NotEqual(t, "American", *stored.Nationality)

	t.Run("duplicate email", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/register", registerBody, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "DUPLICATE_EMAIL")
	})

	t.Run("login and me", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/login", `{"email":"john@example.com","password":"secret1"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)

		cookie := sessionCookie(t, rec)
		assert.Equal(t, resp.Token, cookie.Value)
		assert.True(t, cookie.HttpOnly)

		me := doJSON(e, http.MethodGet, "/me", "", cookie)
		require.Equal(t, http.StatusOK, me.Code)
		var current model.User
		require.NoError(t, json.Unmarshal(me.Body.Bytes(), &current))
		assert.Equal(t, registered.ID, current.ID)
		require.NotNil(t, current.Nationality)
		assert.Equal(t, "American", *current.Nationality)

		// The body token works as a bearer credential too.
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+resp.Token)
		bearer := httptest.NewRecorder()
		e.ServeHTTP(bearer, req)
		assert.Equal(t, http.StatusOK, bearer.Code)
	})

	t.Run("wrong password matches unknown email", func(t *testing.T) {
		wrongPassword := doJSON(e, http.MethodPost, "/login", `{"email":"john@example.com","password":"nope123"}`, nil)
		unknownEmail := doJSON(e, http.MethodPost, "/login", `{"email":"ghost@example.com","password":"secret1"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})

	t.Run("logout invalidates the session", func(t *testing.T) {
		login := doJSON(e, http.MethodPost, "/login", `{"email":"john@example.com","password":"secret1"}`, nil)
		require.Equal(t, http.StatusOK, login.Code)
		cookie := sessionCookie(t, login)

		logout := doJSON(e, http.MethodPost, "/logout", "", cookie)
		assert.Equal(t, http.StatusOK, logout.Code)

		// A second logout with the same token is still a success.
		again := doJSON(e, http.MethodPost, "/logout", "", cookie)
		assert.Equal(t, http.StatusOK, again.Code)

		me := doJSON(e, http.MethodGet, "/me", "", cookie)
		assert.Equal(t, http.StatusUnauthorized, me.Code)
		assert.Contains(t, me.Body.String(), "UNAUTHENTICATED")
	})
}

func TestAuthRegisterValidation(t *testing.T) {
	e, _ := newAuthTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@x.com","password":"secret1","age":30}`},
		{"bad email", `{"username":"a","email":"not-an-email","password":"secret1","age":30}`},
		{"short password", `{"username":"a","email":"a@x.com","password":"abc","age":30}`},
		{"zero age", `{"username":"a","email":"a@x.com","password":"secret1","age":0}`},
		{"malformed body", `{"username":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/register", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
		})
	}
}

func TestMeWithoutSession(t *testing.T) {
	e, _ := newAuthTestServer(t)
	rec := doJSON(e, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}
