package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vytor/ergolog/internal/api"
	"github.com/vytor/ergolog/internal/metrics"
	"github.com/vytor/ergolog/internal/pace"
	"github.com/vytor/ergolog/internal/repository/sqlite"
	"github.com/vytor/ergolog/internal/services"
	"github.com/vytor/ergolog/internal/summarychart"
	"github.com/vytor/ergolog/internal/testutil"
	"github.com/vytor/ergolog/internal/testutil/mocks"
)

type ServerSuite struct {
	suite.Suite
	db        *sql.DB
	queue     *mocks.MockJobQueue
	summaries services.SummaryService
	workouts  services.WorkoutService
	handler   http.Handler
}

func (s *ServerSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.queue = new(mocks.MockJobQueue)
	s.queue.On("EnqueueSummaryRefresh").Return(nil).Maybe()

	workoutRepo := sqlite.NewWorkoutRepository(s.db)
	equipmentRepo := sqlite.NewEquipmentRepository(s.db)
	s.summaries = services.NewSummaryService(sqlite.NewSummaryRepository(s.db), nil, 0)
	s.workouts = services.NewWorkoutService(workoutRepo, equipmentRepo, s.queue)

	templates, err := api.LoadTemplates("../../web/templates", nil)
	s.Require().NoError(err)

	m, reg := metrics.NewTestManagerAndRegistry()
	srv := &api.Server{
		DB:        s.db,
		Workouts:  s.workouts,
		Imports:   services.NewImportService(workoutRepo, equipmentRepo, s.queue, m),
		Summaries: s.summaries,
		Charts:    summarychart.NewRenderer(summarychart.NewECharts, summarychart.WithObserver(m)),
		Metrics:   m,
		Gatherer:  reg,
		Templates: templates,
		PerPage:   10,
		Now:       func() time.Time { return time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC) },
	}
	s.handler = srv.Routes()
}

func (s *ServerSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ServerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) get(target string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (s *ServerSuite) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *ServerSuite) seedMonth() {
	ctx := context.Background()
	for _, in := range []services.ManualWorkout{
		{Date: "2024-01-10", Time: "8:00", Distance: "2000", Equipment: "rower"},
		{Date: "2024-02-14", Time: "20:00", Distance: "5000", Equipment: "rower"},
	} {
		_, err := s.workouts.Create(ctx, in)
		s.Require().NoError(err)
	}
	s.Require().NoError(s.summaries.RefreshSummaries(ctx))
}

func (s *ServerSuite) TestHealthAndReady() {
	rec := s.get("/health")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("OK", rec.Body.String())

	rec = s.get("/ready")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Ready", rec.Body.String())
}

func (s *ServerSuite) TestSecurityHeaders() {
	rec := s.get("/health")
	s.Equal("SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func (s *ServerSuite) TestPace() {
	rec := s.get("/api/pace?time=8:00&distance=2000")
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("02:00.00", body["pace"])

	rec = s.get("/api/pace?time=&distance=2000")
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(pace.Placeholder, body["pace"])

	rec = s.get("/api/pace?time=abc&distance=2000")
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(pace.InvalidTime, body["pace"])
}

func (s *ServerSuite) TestHome_PrefillsToday() {
	rec := s.get("/")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `value="2024-03-05"`)
}

func (s *ServerSuite) TestCreateWorkout_Redirects() {
	rec := s.postForm("/workouts", url.Values{
		"date":      {"2024-03-01"},
		"time":      {"7:30.5"},
		"distance":  {"2000"},
		"equipment": {"skillrow"},
	})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.True(strings.HasPrefix(rec.Header().Get("Location"), "/workouts/"))
	s.queue.AssertCalled(s.T(), "EnqueueSummaryRefresh")

	rec = s.get(rec.Header().Get("Location"))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "SKILLROW")
	s.Contains(rec.Body.String(), "1:52.6")
}

func (s *ServerSuite) TestCreateWorkout_InvalidRerendersForm() {
	rec := s.postForm("/workouts", url.Values{
		"date":      {"2024-03-01"},
		"time":      {"7:30"},
		"distance":  {"0"},
		"equipment": {"rower"},
		"notes":     {"kept"},
	})
	s.Equal(http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	s.Contains(body, `data-field="distance"`)
	s.Contains(body, "kept")
	s.Contains(body, `value="2024-03-01"`)
	s.queue.AssertNotCalled(s.T(), "EnqueueSummaryRefresh")
}

func (s *ServerSuite) TestCreateWorkout_InvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/workouts", strings.NewReader("date=bad&time=1:00&distance=100&equipment=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := s.do(req)

	s.Equal(http.StatusBadRequest, rec.Code)
	var body struct {
		Error struct {
			Code  string `json:"code"`
			Field string `json:"field"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("VALIDATION_ERROR", body.Error.Code)
	s.Equal("date", body.Error.Field)
}

func (s *ServerSuite) TestWorkoutDetail_NotFound() {
	rec := s.get("/workouts/999")
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.get("/workouts/abc")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestWorkouts_ListAndFilter() {
	s.seedMonth()

	rec := s.get("/workouts")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "2024-01-10")
	s.Contains(rec.Body.String(), "2024-02-14")

	rec = s.get("/workouts?from=2024-02-01")
	s.Equal(http.StatusOK, rec.Code)
	s.NotContains(rec.Body.String(), "2024-01-10")

	rec = s.get("/workouts?from=02/2024")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestDeleteWorkout() {
	w, err := s.workouts.Create(context.Background(), services.ManualWorkout{
		Date: "2024-03-01", Time: "4:00", Distance: "1000", Equipment: "rower",
	})
	s.Require().NoError(err)

	rec := s.postForm("/workouts/"+itoa(w.ID)+"/delete", nil)
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/workouts", rec.Header().Get("Location"))

	rec = s.postForm("/workouts/"+itoa(w.ID)+"/delete", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestEquipmentTotalsToggle() {
	equipment, err := s.workouts.Equipment(context.Background())
	s.Require().NoError(err)
	s.Require().NotEmpty(equipment)
	id := equipment[0].ID

	rec := s.postForm("/equipment/"+itoa(id)+"/totals", url.Values{"include": {"false"}})
	s.Equal(http.StatusSeeOther, rec.Code)

	equipment, err = s.workouts.Equipment(context.Background())
	s.Require().NoError(err)
	s.False(equipment[0].IncludeInTotals)

	rec = s.postForm("/equipment/999/totals", url.Values{"include": {"true"}})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestSummary_UnknownPeriod() {
	rec := s.get("/summary/fortnight")
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.get("/summary/fortnight/chart")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestSummary_Page() {
	s.seedMonth()

	rec := s.get("/summary/month?from=0&to=1&solo=pace")
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "Monthly Summary")
	s.Contains(body, "February 2024")
	s.Contains(body, "January 2024")
	s.Contains(body, "/summary/month/chart?from=0&amp;page=1&amp;solo=pace&amp;to=1")
}

func (s *ServerSuite) TestSummaryChart_NoData() {
	rec := s.get("/summary/week/chart")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "No data to chart yet.")
}

func (s *ServerSuite) TestSummaryChart_Renders() {
	s.seedMonth()

	rec := s.get("/summary/month/chart")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	s.Contains(body, "summary_chart_chart")
	s.Contains(body, "January 2024")
}

func (s *ServerSuite) TestSummaryChart_ReplaysSolo() {
	s.seedMonth()

	rec := s.get("/summary/month/chart?solo=pace&from=1&to=1")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "summary_chart_chart")

	rec = s.get("/summary/month/chart?solo=watts")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestImport_PastedJSON() {
	export := `{"data": {
		"cardioLogId": "abc-1",
		"date": "05/03/2024",
		"data": [
			{"property": "Duration", "rawValue": 480, "uM": "s"},
			{"property": "Distance", "rawValue": 2000, "uM": "m"}
		]
	}}`
	rec := s.postForm("/import", url.Values{"json": {export}})
	s.Equal(http.StatusSeeOther, rec.Code)

	rec = s.postForm("/import", url.Values{"json": {export}})
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.postForm("/import", url.Values{"json": {`{"data": {"cardioLogId": "x", "date": "2024-03-05"}}`}})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestImport_NoFile() {
	rec := s.postForm("/import", url.Values{})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestMetricsEndpoint() {
	s.get("/health")
	rec := s.get("/metrics")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ergolog_test_server_requests_total")
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
