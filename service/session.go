package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"retro-accessories/model"
	"retro-accessories/store"
)

// SessionKey is the store key the session is persisted under.
const SessionKey = "retro_accessory_auth_v1"

type persistedSession struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// SessionManager owns the current identity and is the only writer of
// SessionKey. Token and user always change together.
//
// Login and Register call the Authenticator without holding the lock.
// Overlapping calls are not queued or cancelled: whichever finishes last
// decides the session.
type SessionManager struct {
	mu       sync.Mutex
	store    store.Store
	auth     Authenticator
	log      *zap.Logger
	token    string
	user     *model.User
	errMsg   string
	inflight int
}

// NewSessionManager restores the session from st. Anything short of a
// token plus a user with an email is treated as a guest session.
func NewSessionManager(st store.Store, auth Authenticator, log *zap.Logger) *SessionManager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &SessionManager{store: st, auth: auth, log: log}
	m.restore()
	return m
}

func (m *SessionManager) restore() {
	data, found, err := m.store.Get(SessionKey)
	if err != nil {
		m.log.Warn("session restore failed, starting as guest", zap.Error(err))
		return
	}
	if !found {
		return
	}
	var ps persistedSession
	if err := json.Unmarshal(data, &ps); err != nil {
		m.log.Debug("ignoring malformed session data", zap.Error(err))
		return
	}
	if ps.Token == "" || ps.User == nil || ps.User.Email == "" {
		return
	}
	u := *ps.User
	if u.Role != model.RoleAdmin {
		u.Role = model.RoleUser
	}
	m.token, m.user = ps.Token, &u
}

// Login authenticates with the collaborator and, on success, replaces the
// session. On failure the session is untouched and the failure message
// becomes the current error. A returned error wrapping ErrNotPersisted
// means the login succeeded but could not be saved.
func (m *SessionManager) Login(ctx context.Context, email, password string) (model.AuthResult, error) {
	return m.authenticate(ctx, "login", "Login failed.", func(ctx context.Context) (model.AuthResult, error) {
		return m.auth.Login(ctx, email, password)
	})
}

// Register is Login for new accounts.
func (m *SessionManager) Register(ctx context.Context, email, password string) (model.AuthResult, error) {
	return m.authenticate(ctx, "register", "Registration failed.", func(ctx context.Context) (model.AuthResult, error) {
		return m.auth.Register(ctx, email, password)
	})
}

func (m *SessionManager) authenticate(
	ctx context.Context,
	op, fallback string,
	call func(context.Context) (model.AuthResult, error),
) (model.AuthResult, error) {
	m.mu.Lock()
	m.inflight++
	m.errMsg = ""
	m.mu.Unlock()

	res, err := call(ctx)
	if err == nil && (res.Token == "" || res.User.Email == "") {
		err = fmt.Errorf("%s: incomplete response from authenticator", op)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inflight--

	if err != nil {
		m.errMsg = err.Error()
		if m.errMsg == "" {
			m.errMsg = fallback
		}
		m.log.Info(op+" failed", zap.Error(err))
		return model.AuthResult{}, err
	}

	u := res.User
	m.token, m.user = res.Token, &u
	m.log.Info(op+" succeeded", zap.String("email", u.Email), zap.String("role", string(u.Role)))
	return res, m.persistLocked()
}

// Logout returns to the guest state and forgets any pending error.
func (m *SessionManager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token, m.user, m.errMsg = "", nil, ""
	return m.persistLocked()
}

// ClearError drops the current error message.
func (m *SessionManager) ClearError() {
	m.mu.Lock()
	m.errMsg = ""
	m.mu.Unlock()
}

// Token returns the current token, empty for guests.
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Loading reports whether a login or registration is in flight.
func (m *SessionManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inflight > 0
}

// State returns a snapshot of the session.
func (m *SessionManager) State() model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := model.SessionState{
		Token:    m.token,
		IsAuthed: m.token != "",
		Loading:  m.inflight > 0,
		Error:    m.errMsg,
	}
	if m.user != nil {
		u := *m.user
		st.User = &u
		st.IsAdmin = u.Role == model.RoleAdmin
	}
	return st
}

func (m *SessionManager) persistLocked() error {
	var err error
	if m.token != "" && m.user != nil {
		var data []byte
		data, err = json.Marshal(persistedSession{Token: m.token, User: m.user})
		if err == nil {
			err = m.store.Set(SessionKey, data)
		}
	} else {
		err = m.store.Delete(SessionKey)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}
