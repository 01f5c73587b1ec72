package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindwell/internal/microservices/http-api/handler"
	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository/memory"
	"mindwell/internal/middleware/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type apiResponse struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Interacted *bool           `json:"interacted"`
	Engagement *struct {
		Likes     int64 `json:"likes"`
		Bookmarks int64 `json:"bookmarks"`
		Shares    int64 `json:"shares"`
	} `json:"engagement"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

type RouterSuite struct {
	suite.Suite
	router *gin.Engine
	repos  Repositories
	tokens *auth.TokenManager
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.repos = MemoryRepositories(memory.NewStore())
	s.tokens = auth.NewTokenManager(testSecret, "mindwell")
	s.router = NewRouter(NewServices(s.repos, nil, logger), RouterConfig{
		Tokens:         s.tokens,
		Logger:         logger,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		RequestTimeout: 5 * time.Second,
		Checks: map[string]handler.Check{
			"database": func(context.Context) error { return nil },
		},
	})
}

func (s *RouterSuite) token(userID, role string) string {
	tok, err := s.tokens.Issue(userID, role, time.Hour)
	s.Require().NoError(err)
	return tok
}

func (s *RouterSuite) do(method, path, token string, body any) (int, apiResponse) {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (s *RouterSuite) seed(mutate func(*models.Resource)) *models.Resource {
	r := &models.Resource{
		Title:       "Box breathing",
		Description: "Four counts in, hold, out, hold",
		Category:    "anxiety",
		Type:        "article",
		URL:         "https://example.org/box",
		Author:      "Dr. Rivera",
		IsActive:    true,
	}
	r.ApplyDefaults()
	if mutate != nil {
		mutate(r)
	}
	s.Require().NoError(s.repos.Resources.Create(context.Background(), r))
	return r
}

func (s *RouterSuite) TestHealth() {
	code, resp := s.do(http.MethodGet, "/api/v1/health", "", nil)
	s.Equal(http.StatusOK, code)
	s.True(resp.Success)
}

func (s *RouterSuite) TestLikeToggleRoundTrip() {
	res := s.seed(nil)
	tok := s.token("student-1", auth.RoleStudent)
	path := "/api/v1/resources/" + res.ID + "/interact"

	code, resp := s.do(http.MethodPost, path, tok, map[string]string{"interactionType": "like"})
	s.Equal(http.StatusOK, code)
	s.Require().NotNil(resp.Interacted)
	s.True(*resp.Interacted)
	s.Require().NotNil(resp.Engagement)
	s.Equal(int64(1), resp.Engagement.Likes)

	code, resp = s.do(http.MethodPost, path, tok, map[string]string{"interactionType": "like"})
	s.Equal(http.StatusOK, code)
	s.False(*resp.Interacted)
	s.Equal(int64(0), resp.Engagement.Likes)
}

func (s *RouterSuite) TestInteractRejectsUnknownType() {
	res := s.seed(nil)
	code, resp := s.do(http.MethodPost, "/api/v1/resources/"+res.ID+"/interact",
		s.token("student-1", auth.RoleStudent), map[string]string{"interactionType": "comment"})

	s.Equal(http.StatusBadRequest, code)
	s.False(resp.Success)
	s.Equal("Invalid interaction type", resp.Error)
}

func (s *RouterSuite) TestInteractRequiresAuthentication() {
	res := s.seed(nil)
	code, resp := s.do(http.MethodPost, "/api/v1/resources/"+res.ID+"/interact", "", map[string]string{"interactionType": "like"})
	s.Equal(http.StatusUnauthorized, code)
	s.False(resp.Success)

	code, _ = s.do(http.MethodPost, "/api/v1/resources/"+res.ID+"/interact", "forged", map[string]string{"interactionType": "like"})
	s.Equal(http.StatusUnauthorized, code)
}

func (s *RouterSuite) TestCategoryPagination() {
	for i := 0; i < 7; i++ {
		s.seed(func(r *models.Resource) { r.Title = fmt.Sprintf("Anxiety %d", i) })
	}
	for i := 0; i < 3; i++ {
		s.seed(func(r *models.Resource) { r.Category = "stress" })
	}

	code, resp := s.do(http.MethodGet, "/api/v1/resources?category=anxiety&page=2&limit=5", "", nil)
	s.Equal(http.StatusOK, code)
	var items []models.Resource
	s.Require().NoError(json.Unmarshal(resp.Data, &items))
	s.Len(items, 2)
	s.Require().NotNil(resp.Pagination)
	s.Equal(2, resp.Pagination.Pages)
	s.Equal(int64(7), resp.Pagination.Total)
}

func (s *RouterSuite) TestRate() {
	res := s.seed(func(r *models.Resource) { r.Rating = models.RatingSummary{Average: 4.0, Count: 1} })
	tok := s.token("student-1", auth.RoleStudent)
	path := "/api/v1/resources/" + res.ID + "/rate"

	code, resp := s.do(http.MethodPost, path, tok, map[string]int{"rating": 5})
	s.Equal(http.StatusOK, code)
	s.Equal("Rating submitted successfully", resp.Message)

	code, resp = s.do(http.MethodPost, path, tok, map[string]int{"rating": 6})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("Rating must be between 1 and 5", resp.Error)

	code, _ = s.do(http.MethodPost, path, tok, map[string]string{"rating": "five"})
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/v1/resources/missing/rate", tok, map[string]int{"rating": 3})
	s.Equal(http.StatusNotFound, code)

	got, err := s.repos.Resources.GetActiveByID(context.Background(), res.ID)
	s.Require().NoError(err)
	s.Equal(models.RatingSummary{Average: 4.5, Count: 2}, got.Rating)
}

func (s *RouterSuite) TestInteractionHistory() {
	a := s.seed(func(r *models.Resource) { r.Title = "A" })
	b := s.seed(func(r *models.Resource) { r.Title = "B" })
	tok := s.token("student-1", auth.RoleStudent)

	s.do(http.MethodPost, "/api/v1/resources/"+a.ID+"/interact", tok, map[string]string{"interactionType": "bookmark"})
	s.do(http.MethodPost, "/api/v1/resources/"+b.ID+"/interact", tok, map[string]string{"interactionType": "like"})
	code, _ := s.do(http.MethodPost, "/api/v1/resources/"+b.ID+"/view", tok, nil)
	s.Equal(http.StatusOK, code)

	code, resp := s.do(http.MethodGet, "/api/v1/resources/user/interactions?type=bookmark", tok, nil)
	s.Equal(http.StatusOK, code)
	var rows []struct {
		ResourceID string `json:"resourceId"`
		Resource   struct {
			Title string `json:"title"`
		} `json:"resource"`
	}
	s.Require().NoError(json.Unmarshal(resp.Data, &rows))
	s.Require().Len(rows, 1)
	s.Equal("A", rows[0].Resource.Title)

	code, resp = s.do(http.MethodGet, "/api/v1/resources/user/interactions", tok, nil)
	s.Equal(http.StatusOK, code)
	s.Require().NoError(json.Unmarshal(resp.Data, &rows))
	s.Len(rows, 3)

	code, _ = s.do(http.MethodGet, "/api/v1/resources/user/interactions", "", nil)
	s.Equal(http.StatusUnauthorized, code)
}

func (s *RouterSuite) TestAdminContentManagement() {
	admin := s.token("admin-1", auth.RoleAdmin)
	student := s.token("student-1", auth.RoleStudent)
	body := map[string]any{
		"title":       "Sleep hygiene basics",
		"description": "Habits for better sleep",
		"category":    "self-care",
		"type":        "article",
		"url":         "https://example.org/sleep",
		"author":      "Sleep Foundation",
		"tags":        []string{"Sleep", "habits", "sleep"},
	}

	code, _ := s.do(http.MethodPost, "/api/v1/resources", student, body)
	s.Equal(http.StatusForbidden, code)

	code, resp := s.do(http.MethodPost, "/api/v1/resources", admin, body)
	s.Require().Equal(http.StatusCreated, code)
	var created models.Resource
	s.Require().NoError(json.Unmarshal(resp.Data, &created))
	s.Equal([]string{"sleep", "habits"}, []string(created.Tags))

	code, resp = s.do(http.MethodGet, "/api/v1/resources/meta/categories", "", nil)
	s.Equal(http.StatusOK, code)
	s.JSONEq(`["self-care"]`, string(resp.Data))

	code, _ = s.do(http.MethodPut, "/api/v1/resources/"+created.ID, admin, map[string]any{"isFeatured": true})
	s.Equal(http.StatusOK, code)

	code, resp = s.do(http.MethodGet, "/api/v1/resources/featured", "", nil)
	s.Equal(http.StatusOK, code)
	var featured []models.Resource
	s.Require().NoError(json.Unmarshal(resp.Data, &featured))
	s.Len(featured, 1)

	code, _ = s.do(http.MethodDelete, "/api/v1/resources/"+created.ID, admin, nil)
	s.Equal(http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/api/v1/resources/"+created.ID, "", nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *RouterSuite) TestBookingLifecycle() {
	student := s.token("student-1", auth.RoleStudent)
	counsellor := s.token("counsellor-1", auth.RoleCounsellor)

	code, resp := s.do(http.MethodPost, "/api/v1/bookings", student, map[string]any{
		"counsellorId":  "counsellor-1",
		"studentName":   "Alex Kim",
		"studentEmail":  "alex@example.org",
		"requestedDate": "2026-11-02",
		"requestedTime": "14:30",
		"sessionType":   "Initial consultation",
		"notes":         "<script>alert(1)</script>Exam stress",
	})
	s.Require().Equal(http.StatusCreated, code, resp.Error)
	var booking models.BookingRequest
	s.Require().NoError(json.Unmarshal(resp.Data, &booking))
	s.Equal(models.BookingPending, booking.Status)
	s.Equal(60, booking.Duration)
	s.Require().NotNil(booking.Notes)
	s.Equal("Exam stress", *booking.Notes)

	// counsellor sees the request in the pending queue and is notified
	code, resp = s.do(http.MethodGet, "/api/v1/bookings/counsellor/counsellor-1", counsellor, nil)
	s.Equal(http.StatusOK, code)
	var queue []models.BookingRequest
	s.Require().NoError(json.Unmarshal(resp.Data, &queue))
	s.Len(queue, 1)

	code, resp = s.do(http.MethodGet, "/api/v1/notifications/unread", counsellor, nil)
	s.Equal(http.StatusOK, code)
	var notes []models.Notification
	s.Require().NoError(json.Unmarshal(resp.Data, &notes))
	s.Require().Len(notes, 1)
	s.Equal(models.NotificationBookingRequested, notes[0].Type)

	code, _ = s.do(http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d/read", notes[0].ID), counsellor, nil)
	s.Equal(http.StatusOK, code)

	// students cannot decide
	path := "/api/v1/bookings/" + booking.ID + "/decision"
	code, _ = s.do(http.MethodPatch, path, student, map[string]string{"action": "accept"})
	s.Equal(http.StatusForbidden, code)

	code, resp = s.do(http.MethodPatch, path, counsellor, map[string]string{"action": "reschedule"})
	s.Equal(http.StatusOK, code)
	s.Require().NoError(json.Unmarshal(resp.Data, &booking))
	s.Equal(models.BookingRescheduled, booking.Status)

	code, resp = s.do(http.MethodPatch, path, counsellor, map[string]string{"action": "accept"})
	s.Equal(http.StatusConflict, code)
	s.False(resp.Success)

	code, resp = s.do(http.MethodGet, "/api/v1/bookings/me", student, nil)
	s.Equal(http.StatusOK, code)
	var mine []models.BookingRequest
	s.Require().NoError(json.Unmarshal(resp.Data, &mine))
	s.Require().Len(mine, 1)
	s.Equal(models.BookingRescheduled, mine[0].Status)

	code, resp = s.do(http.MethodGet, "/api/v1/notifications/unread", student, nil)
	s.Equal(http.StatusOK, code)
	s.Require().NoError(json.Unmarshal(resp.Data, &notes))
	s.Len(notes, 1)

	code, _ = s.do(http.MethodPut, "/api/v1/notifications/read-all", student, nil)
	s.Equal(http.StatusOK, code)

	other := s.token("student-2", auth.RoleStudent)
	code, _ = s.do(http.MethodGet, "/api/v1/bookings/"+booking.ID, other, nil)
	s.Equal(http.StatusForbidden, code)
}

func (s *RouterSuite) TestAdminBookingAccess() {
	student := s.token("student-1", auth.RoleStudent)
	admin := s.token("admin-1", auth.RoleAdmin)
	otherCounsellor := s.token("counsellor-2", auth.RoleCounsellor)

	code, resp := s.do(http.MethodPost, "/api/v1/bookings", student, map[string]any{
		"counsellorId":  "counsellor-1",
		"studentName":   "Alex Kim",
		"studentEmail":  "alex@example.org",
		"requestedDate": "2026-11-02",
		"requestedTime": "09:00",
		"sessionType":   "Check-in",
	})
	s.Require().Equal(http.StatusCreated, code, resp.Error)
	var booking models.BookingRequest
	s.Require().NoError(json.Unmarshal(resp.Data, &booking))

	code, _ = s.do(http.MethodGet, "/api/v1/bookings/counsellor/counsellor-1", admin, nil)
	s.Equal(http.StatusOK, code)

	code, resp = s.do(http.MethodGet, "/api/v1/bookings/"+booking.ID, admin, nil)
	s.Equal(http.StatusOK, code, resp.Error)

	path := "/api/v1/bookings/" + booking.ID + "/decision"
	code, resp = s.do(http.MethodPatch, path, otherCounsellor, map[string]string{"action": "accept"})
	s.Equal(http.StatusForbidden, code)
	s.Equal("Booking belongs to another counsellor", resp.Error)

	code, resp = s.do(http.MethodPatch, path, admin, map[string]string{"action": "cancel"})
	s.Equal(http.StatusOK, code, resp.Error)
	s.Require().NoError(json.Unmarshal(resp.Data, &booking))
	s.Equal(models.BookingCancelled, booking.Status)
	s.Equal("counsellor-1", booking.CounsellorID)
}

func (s *RouterSuite) TestUnknownRoute() {
	code, resp := s.do(http.MethodGet, "/api/v1/nope", "", nil)
	s.Equal(http.StatusNotFound, code)
	s.False(resp.Success)
}

func TestRouter_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := MemoryRepositories(memory.NewStore())
	tokens := auth.NewTokenManager(testSecret, "")
	router := NewRouter(NewServices(repos, nil, logger), RouterConfig{
		Tokens:         tokens,
		Logger:         logger,
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
	})
	tok, err := tokens.Issue("student-1", auth.RoleStudent, time.Hour)
	require.NoError(t, err)

	status := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}
	require.Equal(t, http.StatusOK, status())
	require.Equal(t, http.StatusTooManyRequests, status())
}

func TestRouter_HealthReportsFailingDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(NewServices(MemoryRepositories(memory.NewStore()), nil, logger), RouterConfig{
		Tokens: auth.NewTokenManager(testSecret, ""),
		Logger: logger,
		Checks: map[string]handler.Check{
			"database": func(context.Context) error { return errors.New("down") },
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), `"database":"unavailable"`)
}
