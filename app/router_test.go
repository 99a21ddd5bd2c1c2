package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"
	"spongkj/contacts-api/pkg/middleware"
	"spongkj/contacts-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.fail {
		return fmt.Errorf("smtp: connection refused")
	}

	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

type discardAvatars struct{}

func (discardAvatars) Save(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	return "/avatars/" + key, nil
}

func newTestAPI(t *testing.T) (*gin.Engine, *internal.Deps, *fakeMailer) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Contact{}))

	mailer := &fakeMailer{}

	d := &internal.Deps{
		DB:      db,
		Argon:   security.New(),
		Tokens:  security.NewTokenIssuer("test-secret", time.Hour),
		Mailer:  mailer,
		Avatars: discardAvatars{},
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.NewRequestIDMiddleware())
	registerRoutes(router, d)

	return router, d, mailer
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func respMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	msg, _ := body["message"].(string)
	return msg
}

// signupUser registers an account and returns its verification token
// straight from the store.
func signupUser(t *testing.T, router *gin.Engine, d *internal.Deps, email, password string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/users/signup", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user model.User
	require.NoError(t, d.DB.Where("email = ?", email).First(&user).Error)
	require.NotNil(t, user.VerificationToken)

	return *user.VerificationToken
}

func verifiedUser(t *testing.T, router *gin.Engine, d *internal.Deps, email, password string) {
	t.Helper()

	token := signupUser(t, router, d, email, password)

	w := doJSON(t, router, http.MethodGet, "/api/users/verify/"+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func login(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	return body.Token
}
