package sessions

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/config"
	"github.com/redis/go-redis/v9"
)

const loginUserKey = "LOGIN_USER_ID"

// NewStore returns a Redis-backed store when client is non-nil, otherwise an
// in-process memory store. Either way the cookie only carries the session id.
func NewStore(cfg config.SessionConfig, client *redis.Client) sessions.Store {
	var store sessions.Store
	if client != nil {
		store = NewRedisStore(client, "session:", []byte(cfg.Secret))
	} else {
		store = memstore.NewStore([]byte(cfg.Secret))
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge * time.Second
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Middleware attaches the session named cfg.CookieName to every request.
func Middleware(cfg config.SessionConfig, store sessions.Store) gin.HandlerFunc {
	name := cfg.CookieName
	if name == "" {
		name = "pakdocs.sid"
	}
	return sessions.Sessions(name, store)
}

// SetLoginUser marks the session as authenticated for userID. An existing
// session is emptied server-side and the user gets a new id.
func SetLoginUser(c *gin.Context, userID uint) error {
	s := sessions.Default(c)
	if s.ID() != "" {
		if err := revoke(s); err != nil {
			return err
		}
		if gs, ok := s.(interface{ Session() *gsessions.Session }); ok {
			raw := gs.Session()
			raw.ID = ""
			raw.IsNew = true
			raw.Values = make(map[interface{}]interface{})
		}
	}
	s.Set(loginUserKey, userID)
	return s.Save()
}

// GetLoginUserID returns the authenticated user id, if any.
func GetLoginUserID(c *gin.Context) (uint, bool) {
	s := sessions.Default(c)
	if id, ok := s.Get(loginUserKey).(uint); ok && id != 0 {
		return id, true
	}
	return 0, false
}

// ClearSession empties the stored session and expires the cookie, so a copy of
// the old cookie no longer authenticates.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	if s.ID() != "" {
		if err := revoke(s); err != nil {
			return err
		}
	}
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// revoke overwrites the stored copy of s with no values.
func revoke(s sessions.Session) error {
	s.Clear()
	return s.Save()
}
