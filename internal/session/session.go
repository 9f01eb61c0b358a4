// Package session implements the authentication session engine: it holds the
// bearer token and user id handed over after a login round-trip, derives
// identity claims from the token payload, and persists both values so a
// restart resumes the session.
//
// The token payload is decoded without signature verification, exactly as a
// browser client would. IsAdmin is therefore a display hint only: the backend
// must independently re-authorize every privileged operation.
package session

import (
	"errors"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/iahmedd-k/Canton-Store/internal/store"
)

// Store keys owned by this engine.
const (
	tokenKey  = "token"
	userIDKey = "userId"
)

// AdminEmail is the single account shown admin views. The role claim alone
// is not enough; both role and email must match.
const AdminEmail = "cantonstore@gmail.com"

const adminRole = "admin"

// Claims are the identity attributes derived from the token payload. When
// the payload cannot be decoded, only UserID is populated.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Engine owns the current session. It performs no network I/O; the login
// round-trip happens elsewhere and the resulting token and user id are
// handed to Login verbatim.
type Engine struct {
	mu     sync.Mutex
	kv     store.KV
	token  string
	userID string
	claims *Claims
}

// New creates a session engine, restoring any persisted token and user id.
// The engine starts Authenticated only when both were persisted non-empty.
func New(kv store.KV) *Engine {
	e := &Engine{kv: kv}

	token := readKey(kv, tokenKey)
	userID := readKey(kv, userIDKey)

	if token != "" && userID != "" {
		e.token = token
		e.userID = userID
		e.claims = decodeClaims(token, userID)
	}

	return e
}

// Login stores the token and user id and derives claims from the token
// payload. An empty token normalizes to an empty session instead of erroring.
// A payload that cannot be decoded degrades claims to the user id only.
func (e *Engine) Login(token, userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if token == "" {
		e.reset()
		return
	}

	e.token = token
	e.userID = userID
	e.claims = decodeClaims(token, userID)

	writeKey(e.kv, tokenKey, token)
	writeKey(e.kv, userIDKey, userID)
}

// Logout clears the token, user id, and claims together and removes the
// persisted values.
func (e *Engine) Logout() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()
}

// Token returns the current bearer token, or "" when Anonymous.
func (e *Engine) Token() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.token
}

// UserID returns the current user id, or "" when Anonymous.
func (e *Engine) UserID() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.userID
}

// Claims returns the derived claims. ok is false when Anonymous.
func (e *Engine) Claims() (Claims, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.claims == nil {
		return Claims{}, false
	}

	return *e.claims, true
}

// IsLoggedIn reports whether a token is present.
func (e *Engine) IsLoggedIn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.token != ""
}

// IsAdmin reports whether the session belongs to the administrator account.
// This gates UI only; the backend re-authorizes every admin request.
func (e *Engine) IsAdmin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.token != "" &&
		e.claims != nil &&
		e.claims.Role == adminRole &&
		e.claims.Email == AdminEmail
}

// reset clears in-memory state and the persisted keys. Callers hold e.mu.
func (e *Engine) reset() {
	e.token = ""
	e.userID = ""
	e.claims = nil

	deleteKey(e.kv, tokenKey)
	deleteKey(e.kv, userIDKey)
}

// decodeClaims parses the token payload without verifying the signature.
// Decode failures are non-fatal: the claims degrade to the user id only.
func decodeClaims(token, userID string) *Claims {
	c := &Claims{UserID: userID}

	payload := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, payload); err != nil {
		log.Debug().Err(err).Msg("token payload undecodable, using degraded claims")
		return c
	}

	if email, ok := payload["email"].(string); ok {
		c.Email = email
	}
	if role, ok := payload["role"].(string); ok {
		c.Role = role
	}

	return c
}

// Persistence helpers. Store failures are logged and absorbed: the in-memory
// session stays authoritative for the rest of the process.

func readKey(kv store.KV, key string) string {
	value, err := kv.Get(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("session state unavailable")
		}
		return ""
	}
	return value
}

func writeKey(kv store.KV, key, value string) {
	if err := kv.Set(key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("session not persisted, continuing in memory")
	}
}

func deleteKey(kv store.KV, key string) {
	if err := kv.Delete(key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("session not cleared from store")
	}
}
