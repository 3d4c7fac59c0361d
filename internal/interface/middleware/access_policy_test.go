package middleware

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/movalle/proyectra/internal/domain/entity"
	"github.com/movalle/proyectra/pkg/helpers"
)

type fakeSessionStore struct {
	sessions map[string]*helpers.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*helpers.Session{}}
}

func (s *fakeSessionStore) Create(_ context.Context, sess *helpers.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*helpers.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, helpers.ErrSessionNotFound
	}
	return sess, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestRouter(store helpers.SessionStore, jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error").Parse(`{{define "error"}}{{.Status}}{{end}}`)))
	r.Use(AccessControl(store, jwt, DefaultPolicy()))

	ok := func(c *gin.Context) {
		username, _ := c.Get(CtxUsernameKey)
		c.String(http.StatusOK, "ok:%v", username)
	}
	r.GET("/login", ok)
	r.GET("/proyectos", ok)
	r.GET("/usuario/home", ok)
	r.GET("/admin/usuarios", ok)
	r.GET("/", ok)
	return r
}

func loginAs(t *testing.T, store *fakeSessionStore, jwt *helpers.JWTManager, username string, role entity.Role) *http.Cookie {
	t.Helper()
	sess := &helpers.Session{ID: "sess-" + username, UserID: 1, Username: username, Role: string(role)}
	if err := store.Create(context.Background(), sess); err != nil {
		t.Fatalf("session create: %v", err)
	}
	token, _, err := jwt.GenerateSessionToken(sess.ID)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &http.Cookie{Name: helpers.SessionCookieName, Value: token}
}

func TestAccessControlPublicPaths(t *testing.T) {
	store := newFakeSessionStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newTestRouter(store, jwt)

	for _, path := range []string{"/login", "/registro", "/static/style.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusFound {
			t.Errorf("%s: got redirect, want public access", path)
		}
	}
}

func TestAccessControlRedirectsAnonymous(t *testing.T) {
	store := newFakeSessionStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newTestRouter(store, jwt)

	for _, path := range []string{"/proyectos", "/admin/usuarios", "/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want 302", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: location = %q, want /login", path, loc)
		}
	}
}

func TestAccessControlRejectsTamperedToken(t *testing.T) {
	store := newFakeSessionStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newTestRouter(store, jwt)

	other := helpers.NewJWTManager("other-secret", time.Hour)
	token, _, err := other.GenerateSessionToken("sess-x")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/proyectos", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
}

func TestAccessControlRedirectsExpiredSession(t *testing.T) {
	store := newFakeSessionStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newTestRouter(store, jwt)

	// Valid token but the server-side session is gone.
	token, _, err := jwt.GenerateSessionToken("sess-missing")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/proyectos", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
}

func TestAccessControlRoleEnforcement(t *testing.T) {
	store := newFakeSessionStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newTestRouter(store, jwt)

	userCookie := loginAs(t, store, jwt, "alice", entity.RoleUser)
	adminCookie := loginAs(t, store, jwt, "root", entity.RoleAdmin)

	cases := []struct {
		name   string
		cookie *http.Cookie
		path   string
		want   int
	}{
		{"user on shared path", userCookie, "/proyectos", http.StatusOK},
		{"user on user area", userCookie, "/usuario/home", http.StatusOK},
		{"user on admin area", userCookie, "/admin/usuarios", http.StatusForbidden},
		{"admin on admin area", adminCookie, "/admin/usuarios", http.StatusOK},
		{"admin on user area", adminCookie, "/usuario/home", http.StatusOK},
		{"user on catch-all", userCookie, "/", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.AddCookie(tc.cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, w.Code, tc.want)
		}
	}
}

func TestAccessControlSetsPrincipal(t *testing.T) {
	store := newFakeSessionStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newTestRouter(store, jwt)
	cookie := loginAs(t, store, jwt, "alice", entity.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/proyectos", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "ok:alice" {
		t.Errorf("body = %q, want ok:alice", got)
	}
}

func TestMatchRuleFirstPrefixWins(t *testing.T) {
	rules := DefaultPolicy()

	if r := matchRule(rules, "/login"); !r.Public {
		t.Error("/login matched a non-public rule")
	}
	if r := matchRule(rules, "/admin/usuarios/editar/3"); len(r.Roles) != 1 || r.Roles[0] != entity.RoleAdmin {
		t.Errorf("/admin/... matched %+v, want admin-only rule", r)
	}
	// The catch-all has an empty prefix and matches anything left over.
	if r := matchRule(rules, "/otra"); r.Public || len(r.Roles) != 0 {
		t.Errorf("catch-all matched %+v, want authenticated-any rule", r)
	}
}

func TestRoleAllowed(t *testing.T) {
	if !roleAllowed(nil, entity.RoleUser) {
		t.Error("empty role set should admit any role")
	}
	if roleAllowed([]entity.Role{entity.RoleAdmin}, entity.RoleUser) {
		t.Error("USER admitted to an admin-only rule")
	}
	if !roleAllowed([]entity.Role{entity.RoleUser, entity.RoleAdmin}, entity.RoleAdmin) {
		t.Error("ADMIN rejected from a shared rule")
	}
}
