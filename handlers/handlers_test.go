package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"roster-lookup-go/db"
	"roster-lookup-go/models"
	"roster-lookup-go/render"
)

const rosterCSV = "Day,Name,Class,ClassNo,Activity\n" +
	"Mon,A,1A,1,Art\n" +
	"Tue,B,1A,2,Music\n" +
	"Mon,C,2B,,Chess\n"

var sessionIDPattern = regexp.MustCompile(`action="/s/([0-9a-f-]+)/upload"`)

func newTestRouter(t *testing.T) (*gin.Engine, *db.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := db.NewMemoryStore(time.Hour)
	router, err := SetupRouter(NewHandler(store, []string{"Mon", "Tue", "Wed"}, 1<<20))
	require.NoError(t, err)
	return router, store
}

func do(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func openPage(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := do(router, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	m := sessionIDPattern.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2, "page should carry a session id")
	return m[1]
}

func TestIndex_NewSessionPerLoad(t *testing.T) {
	router, store := newTestRouter(t)

	w := do(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `style="display: none"`)

	first := openPage(t, router)
	second := openPage(t, router)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 3, store.Len())
}

func TestPageFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	sid := openPage(t, router)
	base := "/s/" + sid

	w := do(router, uploadRequest(t, base+"/upload", "roster.csv", rosterCSV))
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, "Roster uploaded.")
	assert.Contains(t, page, `<div id="controls-container">`)
	assert.Contains(t, page, `<option value="2B">2B</option>`)

	w = do(router, formRequest(base+"/day", url.Values{"day": {"Mon"}}))
	require.Equal(t, http.StatusOK, w.Code)
	page = w.Body.String()
	assert.Contains(t, page, "<td>A</td>")
	assert.Contains(t, page, "<td>C</td>")
	assert.NotContains(t, page, "<td>B</td>")
	assert.Contains(t, page, `<option value="Mon" selected>Mon</option>`)

	// A rejected lookup leaves the table as it was.
	w = do(router, formRequest(base+"/lookup", url.Values{"class": {"1A"}, "classNo": {""}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	page = w.Body.String()
	assert.Contains(t, page, "Please select a class and enter a class number.")
	assert.Contains(t, page, "<td>A</td>")
	assert.Contains(t, page, "<td>C</td>")

	w = do(router, formRequest(base+"/lookup", url.Values{"class": {"1A"}, "classNo": {" 2 "}}))
	require.Equal(t, http.StatusOK, w.Code)
	page = w.Body.String()
	assert.Contains(t, page, "<td>B</td>")
	assert.NotContains(t, page, "<td>A</td>")
	assert.NotContains(t, page, `<option value="Mon" selected>`)

	w = do(router, formRequest(base+"/day", url.Values{"day": {"Wed"}}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<td colspan="5">`+render.NoDataText+`</td>`)
	assert.Contains(t, w.Body.String(), `<input id="classno-input" type="text" name="classNo" value="">`)

	w = do(router, formRequest(base+"/reset", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<td")
	assert.Contains(t, w.Body.String(), `<option value="1A">1A</option>`, "reset keeps the class index")
}

func TestPageUpload_Failures(t *testing.T) {
	router, _ := newTestRouter(t)
	sid := openPage(t, router)
	base := "/s/" + sid

	w := do(router, uploadRequest(t, base+"/upload", "", ""))
	assert.Equal(t, http.StatusOK, w.Code, "missing file is ignored")
	assert.Contains(t, w.Body.String(), `style="display: none"`)

	w = do(router, uploadRequest(t, base+"/upload", "bad.csv", "Day,Name\n\"Mon,A\nTue\"x,B\n"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to parse this file.")
	assert.Contains(t, w.Body.String(), `style="display: none"`, "failure from idle stays idle")

	w = do(router, uploadRequest(t, base+"/upload", "roster.csv", rosterCSV))
	require.Equal(t, http.StatusOK, w.Code)
	w = do(router, uploadRequest(t, base+"/upload", "bad.csv", "Day,Name\n\"Mon,A\nTue\"x,B\n"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="2B">2B</option>`, "prior roster kept")
}

func TestPageUpload_TruncatedBody(t *testing.T) {
	router, _ := newTestRouter(t)
	sid := openPage(t, router)

	full := uploadRequest(t, "/s/"+sid+"/upload", "roster.csv", rosterCSV)
	body, err := io.ReadAll(full.Body)
	require.NoError(t, err)

	// Cut the body before the closing boundary.
	req := httptest.NewRequest(http.MethodPost, "/s/"+sid+"/upload", bytes.NewReader(body[:len(body)/2]))
	req.Header.Set("Content-Type", full.Header.Get("Content-Type"))

	w := do(router, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to parse this file.")
	assert.Contains(t, w.Body.String(), `style="display: none"`)
}

func TestPage_UnknownSessionRedirects(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(router, formRequest("/s/nope/day", url.Values{"day": {"Mon"}}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestAPIFlow(t *testing.T) {
	router, store := newTestRouter(t)

	w := do(router, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]string
	decode(t, w, &created)
	base := "/api/sessions/" + created["sessionId"]

	w = do(router, uploadRequest(t, base+"/upload", "", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, uploadRequest(t, base+"/upload", "roster.csv", rosterCSV))
	require.Equal(t, http.StatusOK, w.Code)
	var uploaded struct {
		ImportedCount int      `json:"importedCount"`
		Classes       []string `json:"classes"`
	}
	decode(t, w, &uploaded)
	assert.Equal(t, 3, uploaded.ImportedCount)
	assert.Equal(t, []string{"1A", "2B"}, uploaded.Classes)

	w = do(router, httptest.NewRequest(http.MethodGet, base+"/classes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var classes []string
	decode(t, w, &classes)
	assert.Equal(t, []string{"1A", "2B"}, classes)

	w = do(router, httptest.NewRequest(http.MethodGet, base+"/records?day=Mon", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var rows []models.StudentRecord
	decode(t, w, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Name)
	assert.Equal(t, "C", rows[1].Name)

	w = do(router, httptest.NewRequest(http.MethodGet, base+"/records?day=Wed", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = do(router, httptest.NewRequest(http.MethodGet, base+"/lookup?class=1A&classNo=+2+", nil))
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].Name)

	w = do(router, httptest.NewRequest(http.MethodGet, base+"/lookup?class=1A", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var verr struct {
		Fields []string `json:"fields"`
	}
	decode(t, w, &verr)
	assert.Equal(t, []string{"ClassNo"}, verr.Fields)

	w = do(router, httptest.NewRequest(http.MethodPost, base+"/reset", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, httptest.NewRequest(http.MethodGet, base+"/records?day=Tue", nil))
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &rows)
	require.Len(t, rows, 1, "roster survives reset")

	w = do(router, httptest.NewRequest(http.MethodDelete, base, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, store.Len())

	w = do(router, httptest.NewRequest(http.MethodGet, base+"/classes", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIUpload_ParseFailure(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(router, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	var created map[string]string
	decode(t, w, &created)

	w = do(router, uploadRequest(t, "/api/sessions/"+created["sessionId"]+"/upload", "bad.xlsx", "not a workbook"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to parse this file.")
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(router, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Pong!"}`, w.Body.String())
}
