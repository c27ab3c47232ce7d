package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"start-page/app/server/assets"
	"start-page/app/server/jwt"
	"start-page/app/server/models"
	"start-page/app/server/password"
	"start-page/app/server/store"
	"start-page/app/server/types"
	"strings"
	"testing"
	"time"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type testServer struct {
	e   *echo.Echo
	st  *store.Memory
	j   *jwt.JWT
	dir string
}

func newTestServer(t *testing.T, initial *models.Document) *testServer {
	t.Helper()
	l := zaptest.NewLogger(t)

	j, err := jwt.New("test-signing-key", time.Hour)
	require.NoError(t, err)

	dir := t.TempDir()
	repo, err := assets.NewLocal(dir)
	require.NoError(t, err)

	st := store.NewMemory(initial)
	e := echo.New()
	NewApp(l, st, nil, j, assets.NewPipeline(l, repo, nil)).RegisterHandlers(e)

	return &testServer{e: e, st: st, j: j, dir: dir}
}

func (s *testServer) token(t *testing.T, username string) string {
	t.Helper()
	token, err := s.j.Issue(username)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) upload(t *testing.T, filename string, data []byte, assetType, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	if assetType != "" {
		require.NoError(t, w.WriteField("type", assetType))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/assets/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func strp(s string) *string { return &s }

// seeded 返回带有管理员 admin(secret) 、成员 bob(hunter2) 和一个服务的文档
func seeded() *models.Document {
	doc := models.DefaultDocument()
	doc.Config.Users = []models.User{
		{Username: "admin", PasswordHash: strp(password.Hash("secret"))},
		{Username: "bob", PasswordHash: strp(password.Hash("hunter2"))},
	}
	doc.Services = []models.ServiceItem{
		{ID: "1", Name: "Grafana", URLInternal: "http://grafana.lan", Category: "Monitoring"},
		{ID: "2", Name: "Gitea", URLInternal: "http://git.lan", Category: "Dev"},
	}
	return doc
}

type redactedView struct {
	Config   map[string]json.RawMessage `json:"config"`
	Services []models.ServiceItem       `json:"services"`
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","cache":"disabled"}`, rec.Body.String())
}

func TestFirstRunLogin(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/login", `{"username":"admin","password":"1234"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[types.LoginToken](t, rec)
	require.Equal(t, "admin", res.Username)
	require.False(t, res.NeedsPasswordSetup)

	user, err := s.j.ParseUser(res.Token)
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)

	// 匿名读取只能看到脱敏视图
	rec = s.do(t, http.MethodGet, "/data", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[redactedView](t, rec)
	require.JSONEq(t, "true", string(view.Config["hasUsers"]))
	require.NotContains(t, view.Config, "users")
	require.NotNil(t, view.Services)
	require.Empty(t, view.Services)

	// 会话可以读取完整文档，管理员是第一个用户
	rec = s.do(t, http.MethodGet, "/data", "", res.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decode[models.Document](t, rec)
	require.Len(t, doc.Config.Users, 1)
	require.Equal(t, "admin", doc.Config.Admin())
	require.Equal(t, password.Hash("1234"), *doc.Config.Users[0].PasswordHash)
}

func TestFirstRunShortPassword(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/login", `{"username":"admin","password":"123"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, s.st.Read(context.Background()).Config.HasUsers())
}

func TestLoginValidation(t *testing.T) {
	s := newTestServer(t, seeded())

	for _, body := range []string{`{}`, `{"username":"admin"}`, `{"username":"  ","password":"secret"}`, `not json`} {
		rec := s.do(t, http.MethodPost, "/login", body, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestLoginOutcomes(t *testing.T) {
	s := newTestServer(t, seeded())

	rec := s.do(t, http.MethodPost, "/login", `{"username":"admin","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/login", `{"username":"admin","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	failure := decode[types.LoginFailure](t, rec)
	require.False(t, failure.IsNewUser)
	require.False(t, failure.NeedsPasswordSetup)

	rec = s.do(t, http.MethodPost, "/login", `{"username":"carol","password":"whatever"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	failure = decode[types.LoginFailure](t, rec)
	require.True(t, failure.IsNewUser)
}

func TestPendingUserSetsPassword(t *testing.T) {
	doc := seeded()
	doc.Config.Users = append(doc.Config.Users, models.User{Username: "bob2"})
	s := newTestServer(t, doc)

	rec := s.do(t, http.MethodPost, "/login", `{"username":"bob2","password":"abc"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.True(t, decode[types.LoginFailure](t, rec).NeedsPasswordSetup)
	_, u := s.st.Read(context.Background()).Config.FindUser("bob2")
	require.Nil(t, u.PasswordHash)

	rec = s.do(t, http.MethodPost, "/login", `{"username":"bob2","password":"abcd"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[types.LoginToken](t, rec).NeedsPasswordSetup)

	_, u = s.st.Read(context.Background()).Config.FindUser("bob2")
	require.NotNil(t, u.PasswordHash)
	require.Equal(t, password.Hash("abcd"), *u.PasswordHash)
}

func TestDataUpdateRequiresSession(t *testing.T) {
	s := newTestServer(t, seeded())
	before := s.st.Raw()

	rec := s.do(t, http.MethodPost, "/data", `{"services":[]}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, before, s.st.Raw())

	rec = s.do(t, http.MethodPost, "/data", `{"services":[]}`, "not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, before, s.st.Raw())
}

func TestDataUpdate(t *testing.T) {
	s := newTestServer(t, seeded())
	token := s.token(t, "bob")

	rec := s.do(t, http.MethodPost, "/data", `{"services":[{"id":"9","name":"Jellyfin","urlInternal":"http://media.lan","category":"Media"}]}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[struct {
		Success bool            `json:"success"`
		Data    models.Document `json:"data"`
	}](t, rec)
	require.True(t, res.Success)
	require.Len(t, res.Data.Services, 1)
	require.Equal(t, "Jellyfin", res.Data.Services[0].Name)

	// config 没有被这次写入影响
	doc := s.st.Read(context.Background())
	require.Equal(t, seeded().Config, doc.Config)
	require.Len(t, doc.Services, 1)
}

func TestDataUpdateEmptyBody(t *testing.T) {
	s := newTestServer(t, seeded())
	token := s.token(t, "admin")

	rec := s.do(t, http.MethodPost, "/data", `{}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/data", "", token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataUpdateBootstrapWithoutUsers(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/data", `{"config":{"users":[],"cardMinWidth":240}}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 240, s.st.Read(context.Background()).Config.CardMinWidth)
}

func TestDataUpdateUserListGuard(t *testing.T) {
	s := newTestServer(t, seeded())
	token := s.token(t, "admin")
	before := s.st.Raw()

	// 清空用户列表
	rec := s.do(t, http.MethodPost, "/data", `{"config":{"users":[]}}`, token)
	require.Equal(t, http.StatusConflict, rec.Code)

	// 删除自己
	rec = s.do(t, http.MethodPost, "/data", `{"config":{"users":[{"username":"bob","passwordHash":null}]}}`, token)
	require.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, before, s.st.Raw())
}

func TestDataUpdateStoreFailure(t *testing.T) {
	s := newTestServer(t, seeded())
	s.st.Err = os.ErrPermission

	rec := s.do(t, http.MethodPost, "/data", `{"services":[]}`, s.token(t, "admin"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGuestView(t *testing.T) {
	doc := seeded()
	doc.Config.EnableGuestAccess = true
	s := newTestServer(t, doc)

	rec := s.do(t, http.MethodGet, "/session", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[types.SessionInfo](t, rec)
	require.True(t, info.IsGuest)
	require.False(t, info.Authenticated)

	rec = s.do(t, http.MethodGet, "/data", "", "")
	view := decode[redactedView](t, rec)
	require.JSONEq(t, "true", string(view.Config["enableGuestAccess"]))
	require.Empty(t, view.Services)

	// 访客没有写权限
	rec = s.do(t, http.MethodPost, "/data", `{"services":[]}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionForDeletedUserIsAnonymous(t *testing.T) {
	s := newTestServer(t, seeded())

	rec := s.do(t, http.MethodGet, "/session", "", s.token(t, "ghost"))
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[types.SessionInfo](t, rec)
	require.False(t, info.Authenticated)
	require.Empty(t, info.Username)
}

func TestSessionGet(t *testing.T) {
	s := newTestServer(t, seeded())

	info := decode[types.SessionInfo](t, s.do(t, http.MethodGet, "/session", "", s.token(t, "admin")))
	require.True(t, info.Authenticated)
	require.True(t, info.IsAdmin)
	require.True(t, info.HasUsers)

	info = decode[types.SessionInfo](t, s.do(t, http.MethodGet, "/session", "", s.token(t, "bob")))
	require.True(t, info.Authenticated)
	require.False(t, info.IsAdmin)

	info = decode[types.SessionInfo](t, s.do(t, http.MethodGet, "/session", "", "garbage"))
	require.False(t, info.Authenticated)
	require.False(t, info.IsGuest)
}

func TestCategoryList(t *testing.T) {
	doc := seeded()
	doc.Config.CategoryOrder = []string{"Monitoring", "Missing"}
	s := newTestServer(t, doc)

	rec := s.do(t, http.MethodGet, "/categories", "", s.token(t, "bob"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"Monitoring", "Dev"}, decode[[]string](t, rec))

	rec = s.do(t, http.MethodGet, "/categories", "", "")
	require.Empty(t, decode[[]string](t, rec))
}

func TestUserManagement(t *testing.T) {
	s := newTestServer(t, seeded())
	admin := s.token(t, "admin")
	bob := s.token(t, "bob")

	rec := s.do(t, http.MethodPost, "/users", `{"username":"carol"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/users", `{"username":"carol"}`, bob)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/users", `{"username":"carol"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, decode[types.UserInfo](t, rec).PendingSetup)

	rec = s.do(t, http.MethodPost, "/users", `{"username":"carol"}`, admin)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/users", `{"username":" "}`, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/users/carol", "", bob)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/users/admin", "", admin)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodDelete, "/users/nobody", "", admin)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/users/carol", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)

	idx, _ := s.st.Read(context.Background()).Config.FindUser("carol")
	require.Equal(t, -1, idx)
}

func TestDeleteSoleUser(t *testing.T) {
	doc := seeded()
	doc.Config.Users = doc.Config.Users[:1]
	s := newTestServer(t, doc)

	rec := s.do(t, http.MethodDelete, "/users/admin", "", s.token(t, "admin"))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Len(t, s.st.Read(context.Background()).Config.Users, 1)
}

func TestUserPasswordUpdate(t *testing.T) {
	s := newTestServer(t, seeded())
	bob := s.token(t, "bob")

	rec := s.do(t, http.MethodPost, "/users/password", `{"currentPassword":"hunter2","newPassword":"n3w!"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/users/password", `{"currentPassword":"nope","newPassword":"n3w!"}`, bob)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/users/password", `{"currentPassword":"hunter2","newPassword":"abc"}`, bob)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/users/password", `{"currentPassword":"hunter2","newPassword":"n3w!"}`, bob)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/login", `{"username":"bob","password":"n3w!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAssetUpload(t *testing.T) {
	s := newTestServer(t, seeded())
	token := s.token(t, "admin")

	rec := s.upload(t, "logo.png", pngBytes, "icon", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.upload(t, "logo.png", pngBytes, "icon", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	asset := decode[models.Asset](t, rec)
	require.Regexp(t, `^asset-icon-\d+-\d+\.png$`, asset.Filename)
	require.Equal(t, "/uploads/"+asset.Filename, asset.URL)

	// createdAt 是 Unix 毫秒数字，客户端按数值排序
	raw := decode[map[string]interface{}](t, rec)
	require.IsType(t, float64(0), raw["createdAt"])
	require.InDelta(t, float64(time.Now().UnixMilli()), raw["createdAt"], float64(time.Minute.Milliseconds()))

	rec = s.do(t, http.MethodGet, "/assets", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.Asset](t, rec)
	require.Len(t, list, 1)
	require.Equal(t, asset.Filename, list[0].Filename)
	require.Equal(t, models.AssetTypeIcon, list[0].Type)

	// 公开读取
	rec = s.do(t, http.MethodGet, asset.URL, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	require.Equal(t, pngBytes, rec.Body.Bytes())
}

func TestAssetUploadValidation(t *testing.T) {
	s := newTestServer(t, seeded())
	token := s.token(t, "admin")

	rec := s.upload(t, "logo.png", pngBytes, "banner", token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.upload(t, "notes.txt", []byte("hello"), "icon", token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.upload(t, "big.jpg", make([]byte, 10<<20+1), "wallpaper", token)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestAssetUploadFromURL(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		_, _ = w.Write([]byte("RIFF....WEBP"))
	}))
	defer remote.Close()

	s := newTestServer(t, seeded())
	token := s.token(t, "admin")

	rec := s.do(t, http.MethodPost, "/assets/upload-from-url", `{"url":"`+remote.URL+`/bg","type":"wallpaper"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/assets/upload-from-url", `{"url":"`+remote.URL+`/bg","type":"wallpaper"}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Regexp(t, `^asset-wallpaper-\d+-\d+\.webp$`, decode[models.Asset](t, rec).Filename)

	rec = s.do(t, http.MethodPost, "/assets/upload-from-url", `{"url":"ftp://example.com/a.png"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/assets/upload-from-url", `{"type":"icon"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssetDelete(t *testing.T) {
	s := newTestServer(t, seeded())
	token := s.token(t, "admin")
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "asset-icon-1-2.png"), pngBytes, 0644))

	rec := s.do(t, http.MethodDelete, "/assets/asset-icon-1-2.png", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodDelete, "/assets/asset-icon-1-2.png", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"message":"Asset deleted"}`, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/assets/asset-icon-1-2.png", "", token)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/uploads/asset-icon-1-2.png", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFetchIconCandidates(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><link rel="apple-touch-icon" href="/touch.png"></head></html>`))
	}))
	defer page.Close()

	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/fetch-icon-candidates?url="+page.URL, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[assets.Candidates](t, rec)
	require.Equal(t, []string{page.URL + "/favicon.ico", page.URL + "/touch.png"}, res.Icons)
	require.Empty(t, res.Errors)

	rec = s.do(t, http.MethodGet, "/fetch-icon-candidates", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProxyImage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	defer upstream.Close()

	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/proxy-image?url="+upstream.URL+"/ok.png", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	require.Equal(t, pngBytes, rec.Body.Bytes())

	rec = s.do(t, http.MethodGet, "/proxy-image?url="+upstream.URL+"/broken", "", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	rec = s.do(t, http.MethodGet, "/proxy-image?url=ftp://example.com/x.png", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/proxy-image", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataUpdateMemberCannotTakeOverUsers(t *testing.T) {
	s := newTestServer(t, seeded())
	bob := s.token(t, "bob")
	before := s.st.Raw()

	adminHash := password.Hash("secret")
	bobHash := password.Hash("hunter2")

	// 调换顺序成为第一个用户
	rec := s.do(t, http.MethodPost, "/data", `{"config":{"users":[
		{"username":"bob","passwordHash":"`+bobHash+`"},
		{"username":"admin","passwordHash":"`+adminHash+`"}]}}`, bob)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// 改写管理员的密码
	rec = s.do(t, http.MethodPost, "/data", `{"config":{"users":[
		{"username":"admin","passwordHash":"`+password.Hash("mine")+`"},
		{"username":"bob","passwordHash":"`+bobHash+`"}]}}`, bob)
	require.Equal(t, http.StatusForbidden, rec.Code)

	require.Equal(t, before, s.st.Raw())

	rec = s.do(t, http.MethodPost, "/users", `{"username":"carol"}`, bob)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDataUpdateMemberChangesOwnPassword(t *testing.T) {
	s := newTestServer(t, seeded())
	bob := s.token(t, "bob")

	rec := s.do(t, http.MethodPost, "/data", `{"config":{"users":[
		{"username":"admin","passwordHash":"`+password.Hash("secret")+`"},
		{"username":"bob","passwordHash":"`+password.Hash("n3w!")+`"}]}}`, bob)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/login", `{"username":"bob","password":"n3w!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDataUpdateAdminRemovesUser(t *testing.T) {
	s := newTestServer(t, seeded())

	rec := s.do(t, http.MethodPost, "/data", `{"config":{"users":[
		{"username":"admin","passwordHash":"`+password.Hash("secret")+`"}]}}`, s.token(t, "admin"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, s.st.Read(context.Background()).Config.Users, 1)
}

func TestDataRoundTripsClientConfig(t *testing.T) {
	s := newTestServer(t, seeded())
	token := s.token(t, "admin")

	clientConfig := `{
		"users": [
			{"username":"admin","passwordHash":"` + password.Hash("secret") + `"},
			{"username":"bob","passwordHash":"` + password.Hash("hunter2") + `"}
		],
		"enableGuestAccess": false,
		"backgroundImageUrl": "/uploads/asset-wallpaper-1-2.jpg",
		"backgroundBlur": 8,
		"cardMinWidth": 220,
		"categoryColor": "#ff0000",
		"cardTitleColor": "#00ff00",
		"cardDescColor": "#0000ff",
		"clockColor": "#111111",
		"headerTitleColor": "#222222",
		"headerGreetingColor": "#333333",
		"categoryOrder": ["Dev", "Monitoring"],
		"headerColor": "#444444"
	}`

	rec := s.do(t, http.MethodPost, "/data", `{"config":`+clientConfig+`}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// 成员读回全部字段，包括不认识的旧字段
	rec = s.do(t, http.MethodGet, "/data", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	full := decode[struct {
		Config json.RawMessage `json:"config"`
	}](t, rec)
	require.JSONEq(t, clientConfig, string(full.Config))

	// 登录页需要的外观字段
	rec = s.do(t, http.MethodGet, "/data", "", "")
	view := decode[redactedView](t, rec)
	require.JSONEq(t, `"/uploads/asset-wallpaper-1-2.jpg"`, string(view.Config["backgroundImageUrl"]))
	require.JSONEq(t, `8`, string(view.Config["backgroundBlur"]))
	for key, value := range map[string]string{
		"categoryColor":       "#ff0000",
		"cardTitleColor":      "#00ff00",
		"cardDescColor":       "#0000ff",
		"clockColor":          "#111111",
		"headerTitleColor":    "#222222",
		"headerGreetingColor": "#333333",
	} {
		require.JSONEq(t, `"`+value+`"`, string(view.Config[key]), key)
	}
	require.NotContains(t, view.Config, "headerColor")
	require.NotContains(t, view.Config, "cardMinWidth")
}
