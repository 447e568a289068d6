package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"anchorlog/internal/auth"
	"anchorlog/internal/repository/sqlite"
	"anchorlog/internal/service"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	boundaryRepo := sqlite.NewBoundaryRepository(db)
	diaryCardRepo := sqlite.NewDiaryCardRepository(db)
	physicalGoalRepo := sqlite.NewPhysicalGoalRepository(db)
	therapyGoalRepo := sqlite.NewTherapyGoalRepository(db)
	valueRepo := sqlite.NewValueRepository(db)
	problemRepo := sqlite.NewProblemRepository(db)

	for _, repo := range []interface {
		Init(context.Context) error
	}{userRepo, boundaryRepo, diaryCardRepo, physicalGoalRepo, therapyGoalRepo, valueRepo, problemRepo} {
		require.NoError(t, repo.Init(context.Background()))
	}

	users := service.NewUserService(userRepo)
	tracker := service.NewTrackerService(
		boundaryRepo, diaryCardRepo, physicalGoalRepo, therapyGoalRepo, valueRepo, problemRepo,
	)
	tokens := auth.NewTokenManager(testSecret, 2*time.Hour)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(users, tracker, nil, tokens, logger).RegisterRoutes(router)

	return &testServer{router: router, tokens: tokens}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) signUpAndLogin(t *testing.T, email string) (string, int64) {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/sign-up", "", gin.H{"email": email, "password": "hunter22"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/login", "", gin.H{"email": email, "password": "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token  string `json:"token"`
		UserID int64  `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Greater(t, resp.UserID, int64(0))
	return resp.Token, resp.UserID
}

func TestSignUpLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/sign-up", "", gin.H{"email": "a@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/sign-up", "", gin.H{"email": "a@example.com", "password": "other"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPost, "/login", "", gin.H{"email": "a@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)

	cookie := w.Header().Get("Set-Cookie")
	require.Contains(t, cookie, "token=")
	require.Contains(t, cookie, "HttpOnly")
	require.Contains(t, cookie, "SameSite=Strict")
	require.Contains(t, cookie, "Path=/")

	var resp struct {
		Token  string `json:"token"`
		UserID int64  `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := ts.tokens.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.UserID, claims.UserID)
	require.Equal(t, "a@example.com", claims.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.signUpAndLogin(t, "a@example.com")

	w := ts.do(t, http.MethodPost, "/login", "", gin.H{"email": "a@example.com", "password": "hunter23"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/login", "", gin.H{"email": "nobody@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateRejectsWithoutValidToken(t *testing.T) {
	ts := newTestServer(t)
	token, userID := ts.signUpAndLogin(t, "a@example.com")

	// no token
	w := ts.do(t, http.MethodGet, fmt.Sprintf("/boundaries/%d", userID), "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// expired token
	expired, err := auth.NewTokenManager(testSecret, -time.Minute).Issue(userID, "a@example.com")
	require.NoError(t, err)
	w = ts.do(t, http.MethodGet, fmt.Sprintf("/boundaries/%d", userID), expired, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// tampered signature
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)
	w = ts.do(t, http.MethodGet, fmt.Sprintf("/boundaries/%d", userID), tampered, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateBlocksBeforePersistence(t *testing.T) {
	ts := newTestServer(t)
	token, userID := ts.signUpAndLogin(t, "a@example.com")

	w := ts.do(t, http.MethodPost, fmt.Sprintf("/add-a-boundary/%d", userID), "",
		gin.H{"boundary": "b", "category": "my-boundary"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// nothing was written
	w = ts.do(t, http.MethodGet, fmt.Sprintf("/boundaries/%d", userID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestBoundaryCreateListRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token, userID := ts.signUpAndLogin(t, "a@example.com")

	w := ts.do(t, http.MethodPost, fmt.Sprintf("/add-a-boundary/%d", userID), token,
		gin.H{"boundary": "no late replies", "category": "my-boundary"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/boundaries/%d", userID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var boundaries []BoundaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &boundaries))
	require.Len(t, boundaries, 1)
	require.Greater(t, boundaries[0].ID, int64(0))
	require.Equal(t, "no late replies", boundaries[0].Boundary)
	require.Equal(t, "my-boundary", boundaries[0].Category)
}

func TestBoundaryDeleteIdempotence(t *testing.T) {
	ts := newTestServer(t)
	token, userID := ts.signUpAndLogin(t, "a@example.com")

	w := ts.do(t, http.MethodDelete, fmt.Sprintf("/boundaries/%d/999", userID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPost, fmt.Sprintf("/add-a-boundary/%d", userID), token,
		gin.H{"boundary": "b", "category": "my-boundary"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/boundaries/%d", userID), token, nil)
	var boundaries []BoundaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &boundaries))
	require.Len(t, boundaries, 1)

	path := fmt.Sprintf("/boundaries/%d/%d", userID, boundaries[0].ID)
	w = ts.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProblemCompletion(t *testing.T) {
	ts := newTestServer(t)
	token, userID := ts.signUpAndLogin(t, "a@example.com")

	w := ts.do(t, http.MethodPost, fmt.Sprintf("/add-a-problem/%d", userID), token,
		gin.H{"problem": "overcommitting", "category": "solve"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/problems/%d", userID), token, nil)
	var problems []ProblemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problems))
	require.Len(t, problems, 1)
	require.False(t, problems[0].IsDone)

	w = ts.do(t, http.MethodPut, fmt.Sprintf("/update-problem/%d/%d", userID, problems[0].ID), token,
		gin.H{"isDone": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/problems/%d", userID), token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problems))
	require.True(t, problems[0].IsDone)

	w = ts.do(t, http.MethodPut, fmt.Sprintf("/update-problem/%d/12345", userID), token,
		gin.H{"isDone": true})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBoundaryCount(t *testing.T) {
	ts := newTestServer(t)
	token, userID := ts.signUpAndLogin(t, "a@example.com")

	for _, category := range []string{"my-boundary", "my-boundary", "others-boundary"} {
		w := ts.do(t, http.MethodPost, fmt.Sprintf("/add-a-boundary/%d", userID), token,
			gin.H{"boundary": "b", "category": category})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := ts.do(t, http.MethodGet, fmt.Sprintf("/boundary-count/%d", userID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var counts struct {
		Mine   int64 `json:"myBoundariesCount"`
		Others int64 `json:"othersBoundariesCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	require.Equal(t, int64(2), counts.Mine)
	require.Equal(t, int64(1), counts.Others)
}

func TestPathUserMustMatchToken(t *testing.T) {
	ts := newTestServer(t)
	aliceToken, aliceID := ts.signUpAndLogin(t, "alice@example.com")
	bobToken, bobID := ts.signUpAndLogin(t, "bob@example.com")

	// bob cannot read alice's rows
	w := ts.do(t, http.MethodGet, fmt.Sprintf("/boundaries/%d", aliceID), bobToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// bob cannot delete alice's row through his own path either
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/add-a-boundary/%d", aliceID), aliceToken,
		gin.H{"boundary": "b", "category": "my-boundary"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/boundaries/%d", aliceID), aliceToken, nil)
	var boundaries []BoundaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &boundaries))
	require.Len(t, boundaries, 1)

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/boundaries/%d/%d", bobID, boundaries[0].ID), bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/boundaries/%d", aliceID), aliceToken, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &boundaries))
	require.Len(t, boundaries, 1, "alice's row must survive")
}

func TestRecentBoundariesLimit(t *testing.T) {
	ts := newTestServer(t)
	token, userID := ts.signUpAndLogin(t, "a@example.com")

	for i := 0; i < 5; i++ {
		w := ts.do(t, http.MethodPost, fmt.Sprintf("/add-a-boundary/%d", userID), token,
			gin.H{"boundary": fmt.Sprintf("boundary %d", i), "category": "my-boundary"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := ts.do(t, http.MethodGet, fmt.Sprintf("/recent-boundaries/%d", userID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var boundaries []BoundaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &boundaries))
	require.Len(t, boundaries, 3)
	require.Equal(t, "boundary 4", boundaries[0].Boundary)
}

func TestSignUpValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/sign-up", "", gin.H{"email": "a@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/sign-up", "", gin.H{"password": "hunter22"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
