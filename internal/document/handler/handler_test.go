package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document/service"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/export"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/middleware"
	"github.com/stretchr/testify/require"
)

type recordingArchiver struct {
	keys []string
}

func (a *recordingArchiver) Put(_ context.Context, key string, _ []byte, _ string) error {
	a.keys = append(a.keys, key)
	return nil
}

type presigningArchiver struct {
	recordingArchiver
	expires time.Duration
}

func (a *presigningArchiver) PresignedURL(_ context.Context, key string, expires time.Duration) (string, error) {
	a.expires = expires
	return "https://objects.example/pakdocs/" + key + "?X-Amz-Signature=abc", nil
}

// newRouter authenticates every request as the user in the X-Test-User header.
func newRouter(svc service.Service, archiver export.Archiver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	api := g.Group("/api", func(c *gin.Context) {
		id, err := strconv.Atoi(c.GetHeader("X-Test-User"))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(middleware.UserIDKey, uint(id))
		c.Next()
	})
	New(svc, nil, archiver).RegisterRoutes(api)
	return g
}

func call(g http.Handler, user uint, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("X-Test-User", strconv.Itoa(int(user)))
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

const rtiBody = `{"title":"RTI Request","type":"RTI Request","content":"To the PIO ...","language":"English","department":"WASA"}`

func TestDocumentHandler_CRUD(t *testing.T) {
	g := newRouter(service.NewMemoryService(), nil)

	w := call(g, 1, http.MethodPost, "/api/documents", rtiBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created document.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, uint(1), created.UserID)
	require.False(t, created.CreatedAt.IsZero())
	require.NotNil(t, created.Department)
	require.Equal(t, "WASA", *created.Department)
	id := strconv.Itoa(int(created.ID))

	w = call(g, 1, http.MethodGet, "/api/documents/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = call(g, 1, http.MethodGet, "/api/documents", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []document.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, created.ID, list[0].ID)

	w = call(g, 1, http.MethodDelete, "/api/documents/"+id, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = call(g, 1, http.MethodGet, "/api/documents/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"message":"Document not found"}`, w.Body.String())
}

func TestDocumentHandler_EmptyListIsArray(t *testing.T) {
	g := newRouter(service.NewMemoryService(), nil)
	w := call(g, 9, http.MethodGet, "/api/documents", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", w.Body.String())
}

func TestDocumentHandler_OwnerIsolation(t *testing.T) {
	g := newRouter(service.NewMemoryService(), nil)

	w := call(g, 1, http.MethodPost, "/api/documents", rtiBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created document.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/api/documents/" + strconv.Itoa(int(created.ID))

	w = call(g, 2, http.MethodGet, "/api/documents", "")
	require.Equal(t, "[]", w.Body.String())

	for _, m := range []struct{ method, path string }{
		{http.MethodGet, path},
		{http.MethodGet, path + "/pdf"},
		{http.MethodDelete, path},
	} {
		w = call(g, 2, m.method, m.path, "")
		require.Equal(t, http.StatusForbidden, w.Code, "%s %s", m.method, m.path)
		require.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
	}

	// still there for the owner
	w = call(g, 1, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDocumentHandler_OwnerFromSessionNotBody(t *testing.T) {
	g := newRouter(service.NewMemoryService(), nil)
	body := `{"userId":2,"title":"t","type":"Affidavit","content":"c","language":"Urdu"}`
	w := call(g, 1, http.MethodPost, "/api/documents", body)
	require.Equal(t, http.StatusCreated, w.Code)
	var created document.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, uint(1), created.UserID)
}

func TestDocumentHandler_NotFound(t *testing.T) {
	g := newRouter(service.NewMemoryService(), nil)
	for _, p := range []string{"/api/documents/999", "/api/documents/abc", "/api/documents/0"} {
		w := call(g, 1, http.MethodGet, p, "")
		require.Equal(t, http.StatusNotFound, w.Code, p)
	}
	w := call(g, 1, http.MethodDelete, "/api/documents/999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentHandler_CreateValidation(t *testing.T) {
	g := newRouter(service.NewMemoryService(), nil)
	cases := []struct {
		body  string
		field string
	}{
		{`{"type":"Affidavit","content":"c","language":"Urdu"}`, "title"},
		{`{"title":"t","type":"Affidavit","content":"c","language":"French"}`, "language"},
		{`{"title":"t","type":"Affidavit","language":"Urdu"}`, "content"},
		{`{"title":5,"type":"Affidavit","content":"c","language":"Urdu"}`, "title"},
	}
	for _, tc := range cases {
		w := call(g, 1, http.MethodPost, "/api/documents", tc.body)
		require.Equal(t, http.StatusBadRequest, w.Code, tc.body)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, tc.field, resp["field"], tc.body)
		require.NotEmpty(t, resp["message"])
	}

	w := call(g, 1, http.MethodPost, "/api/documents", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandler_PDF(t *testing.T) {
	archiver := &recordingArchiver{}
	g := newRouter(service.NewMemoryService(), archiver)

	w := call(g, 4, http.MethodPost, "/api/documents", rtiBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created document.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = call(g, 4, http.MethodGet, "/api/documents/"+strconv.Itoa(int(created.ID))+"/pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename=RTI_Request.pdf`, w.Header().Get("Content-Disposition"))
	require.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	require.Equal(t, []string{"exports/4/" + strconv.Itoa(int(created.ID)) + ".pdf"}, archiver.keys)
	require.Empty(t, w.Header().Get(ArchiveURLHeader))
}

func TestDocumentHandler_PDFArchiveURL(t *testing.T) {
	archiver := &presigningArchiver{}
	g := newRouter(service.NewMemoryService(), archiver)

	w := call(g, 2, http.MethodPost, "/api/documents", rtiBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created document.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = call(g, 2, http.MethodGet, "/api/documents/"+strconv.Itoa(int(created.ID))+"/pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	key := "exports/2/" + strconv.Itoa(int(created.ID)) + ".pdf"
	require.Equal(t, "https://objects.example/pakdocs/"+key+"?X-Amz-Signature=abc", w.Header().Get(ArchiveURLHeader))
	require.Equal(t, export.URLTTL, archiver.expires)
	require.Equal(t, []string{key}, archiver.keys)
}
