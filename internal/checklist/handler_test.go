package checklist

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/checklist/store"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/metrics"
	fixtures "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/testutil"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/testutil/authstub"
)

type HandlerSuite struct {
	suite.Suite
	guard   *authstub.StubGuard
	router  chi.Router
	metrics *metrics.Metrics
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.metrics = metrics.New(prometheus.NewRegistry())
	svc := NewService(store.NewInMemory(), WithLogger(logger), WithMetrics(s.metrics))
	s.guard = &authstub.StubGuard{Admin: fixtures.NewAdminBuilder().WithRole(models.RoleManager).Build()}
	s.router = chi.NewRouter()
	New(svc, s.guard, logger).Register(s.router)
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) create(body string) string {
	rec := s.do(http.MethodPost, "/api/admin/checklist", body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Data.ID
}

func (s *HandlerSuite) TestPublicListIsOrdered() {
	s.create(`{"visa_type":"student","title":"Passport","sort_order":2}`)
	s.create(`{"visa_type":"student","title":"Birth certificate","sort_order":2}`)
	s.create(`{"visa_type":"student","title":"Offer letter","sort_order":1,"is_required":false}`)
	s.create(`{"visa_type":"work","title":"Contract"}`)

	s.guard.Admin = nil
	rec := s.do(http.MethodGet, "/api/checklist?visa_type=student", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			Title      string `json:"title"`
			IsRequired bool   `json:"is_required"`
		} `json:"data"`
		Total int `json:"total"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Equal(3, body.Total)
	s.Equal("Offer letter", body.Data[0].Title)
	s.False(body.Data[0].IsRequired)
	s.Equal("Birth certificate", body.Data[1].Title)
	s.True(body.Data[1].IsRequired)
	s.Equal("Passport", body.Data[2].Title)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/checklist?visa_type=tourist", "").Code)
}

func (s *HandlerSuite) TestUpdateAndDelete() {
	itemID := s.create(`{"visa_type":"work","title":"CV"}`)

	rec := s.do(http.MethodPut, "/api/admin/checklist/"+itemID, `{"title":"Curriculum vitae","sort_order":4}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"sort_order":4`)

	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/api/admin/checklist/"+itemID, "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/admin/checklist/"+itemID, "").Code)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ChecklistChanges.WithLabelValues("delete")))
}

func (s *HandlerSuite) TestWritesNeedPermission() {
	s.guard.Admin = fixtures.NewAdminBuilder().WithRole(models.RoleStaff).Build()
	rec := s.do(http.MethodPost, "/api/admin/checklist", `{"visa_type":"work","title":"CV"}`)
	s.Equal(http.StatusForbidden, rec.Code)
	s.Contains(rec.Body.String(), `"required":["checklist.manage","can_access_all_data"]`)

	s.guard.Admin = nil
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/admin/checklist", `{}`).Code)
}

func (s *HandlerSuite) TestCreateValidation() {
	rec := s.do(http.MethodPost, "/api/admin/checklist", `{"visa_type":"tourist","title":"x"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "visa_type must be one of")
}
