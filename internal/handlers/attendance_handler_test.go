package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-attendance-punch/internal/attendance"
	"github.com/imrishuroy/go-attendance-punch/internal/testutil"
)

const testTable = "AttendanceTable"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(db *testutil.FakeDynamo) *gin.Engine {
	svc := attendance.NewService(attendance.NewStore(db, testTable))
	return NewRouter(HandlerConfig{Service: svc})
}

func do(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth_IndependentOfStore(t *testing.T) {
	db := testutil.NewFakeDynamo()
	db.PutErr = errors.New("unreachable")
	db.QueryErr = errors.New("unreachable")
	r := newTestRouter(db)

	w := do(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello from FastAPI Backend!"}`, w.Body.String())

	w = do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	puts, queries := db.Calls()
	assert.Zero(t, puts)
	assert.Zero(t, queries)
}

func TestRecordThenList(t *testing.T) {
	r := newTestRouter(testutil.NewFakeDynamo())
	body := `{"userId":"u1","timestamp":"2024-01-01T09:00:00Z","type":"clock-in"}`

	w := do(r, http.MethodPost, "/attendance", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Recorded successfully","data":`+body+`}`, w.Body.String())

	w = do(r, http.MethodGet, "/attendance/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[`+body+`]}`, w.Body.String())
}

func TestRecordThenList_ReadsBackEveryPunch(t *testing.T) {
	punches := []attendance.Punch{
		{UserID: "u1", Timestamp: "2024-01-01T09:00:00Z", Type: "clock-in"},
		{UserID: "u1", Timestamp: "2024-01-01T18:00:00Z", Type: "clock-out"},
		{UserID: "emp-042", Timestamp: "1704099600", Type: "break-start"},
		{UserID: "田中", Timestamp: "2024-04-01T09:00:00+09:00", Type: "出勤"},
		{UserID: "u-empty", Timestamp: "", Type: ""},
		{UserID: "u-spaces", Timestamp: "  ", Type: "clock in / out"},
	}

	r := newTestRouter(testutil.NewFakeDynamo())
	for _, p := range punches {
		body, err := json.Marshal(p)
		require.NoError(t, err)
		w := do(r, http.MethodPost, "/attendance", string(body))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	for _, p := range punches {
		t.Run(p.UserID+"/"+p.Timestamp, func(t *testing.T) {
			w := do(r, http.MethodGet, "/attendance/"+url.PathEscape(p.UserID), "")
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Items []attendance.Punch `json:"items"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp.Items, p)
			for _, got := range resp.Items {
				assert.Equal(t, p.UserID, got.UserID, "other users must not leak into the list")
			}
		})
	}
}

func TestRecord_SameKeyOverwrites(t *testing.T) {
	r := newTestRouter(testutil.NewFakeDynamo())

	w := do(r, http.MethodPost, "/attendance", `{"userId":"u1","timestamp":"2024-01-01T09:00:00Z","type":"clock-in"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/attendance", `{"userId":"u1","timestamp":"2024-01-01T09:00:00Z","type":"clock-out"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/attendance/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[{"userId":"u1","timestamp":"2024-01-01T09:00:00Z","type":"clock-out"}]}`, w.Body.String())
}

func TestList_UnknownUserReturnsEmptyItems(t *testing.T) {
	r := newTestRouter(testutil.NewFakeDynamo())

	w := do(r, http.MethodGet, "/attendance/unknown-user", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}

func TestRecord_EmptyStringsAccepted(t *testing.T) {
	db := testutil.NewFakeDynamo()
	r := newTestRouter(db)

	w := do(r, http.MethodPost, "/attendance", `{"userId":"u2","timestamp":"","type":""}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, db.Item(testTable, "u2", ""))
}

func TestRecord_RejectedBeforeStore(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"missing type", `{"userId":"u1","timestamp":"2024-01-01T09:00:00Z"}`, http.StatusUnprocessableEntity},
		{"empty object", `{}`, http.StatusUnprocessableEntity},
		{"null user", `{"userId":null,"timestamp":"t","type":"clock-in"}`, http.StatusUnprocessableEntity},
		{"number user", `{"userId":42,"timestamp":"t","type":"clock-in"}`, http.StatusBadRequest},
		{"not json", `clock-in please`, http.StatusBadRequest},
		{"trailing garbage", `{"userId":"u1","timestamp":"t","type":"x"} garbage`, http.StatusBadRequest},
		{"two documents", `{"userId":"u1","timestamp":"t","type":"x"}{"userId":"u2"}`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewFakeDynamo()
			r := newTestRouter(db)

			w := do(r, http.MethodPost, "/attendance", tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			puts, _ := db.Calls()
			assert.Zero(t, puts, "store must not be called")
		})
	}
}

func TestRecord_MissingFieldsReportedByJSONName(t *testing.T) {
	r := newTestRouter(testutil.NewFakeDynamo())

	w := do(r, http.MethodPost, "/attendance", `{"userId":"u1"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_failed","fields":{"timestamp":"required","type":"required"}}`, w.Body.String())
}

func TestStoreFailuresAreInternalErrors(t *testing.T) {
	db := testutil.NewFakeDynamo()
	db.PutErr = errors.New("AccessDeniedException: not authorized on table")
	db.QueryErr = errors.New("dial tcp: i/o timeout")
	r := newTestRouter(db)

	w := do(r, http.MethodPost, "/attendance", `{"userId":"u1","timestamp":"t","type":"clock-in"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())

	w = do(r, http.MethodGet, "/attendance/u1", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "timeout")
}

func TestCORS_EchoesOriginWithCredentials(t *testing.T) {
	r := newTestRouter(testutil.NewFakeDynamo())

	w := do(r, http.MethodGet, "/", "", "Origin", "http://localhost:3000")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = do(r, http.MethodOptions, "/attendance", "",
		"Origin", "https://app.example.org",
		"Access-Control-Request-Method", http.MethodPost,
		"Access-Control-Request-Headers", "x-tenant-id, content-type",
	)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.org", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Equal(t, "x-tenant-id, content-type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.NotContains(t, w.Header().Get("Access-Control-Allow-Headers"), "*")
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(testutil.NewFakeDynamo())

	w := do(r, http.MethodGet, "/", "", HeaderRequestID, "req-123")
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))

	w = do(r, http.MethodGet, "/", "")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}
