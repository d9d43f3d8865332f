package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"LoanPulse/internal/logger"
	"LoanPulse/internal/serviceiface"
)

type UserSession struct {
	SessionID     string
	UserID        string
	Name          string
	Email         string
	Role          string
	LastLoginTime string
	ClientIP      string
	IsLoggedIn    bool
}

// AuthService keeps active user sessions in memory; credentials are checked
// against the users table once at login.
type AuthService struct {
	db       *sql.DB
	maxUsers int
	sessions map[string]*UserSession
	mu       sync.Mutex
	stopCh   chan struct{}
}

func NewAuthService(db *sql.DB, maxUsers int) serviceiface.Service {
	if maxUsers <= 0 {
		maxUsers = 100
	}
	return &AuthService{
		db:       db,
		maxUsers: maxUsers,
		sessions: make(map[string]*UserSession),
		stopCh:   make(chan struct{}),
	}
}

func (a *AuthService) Name() string { return "auth" }

func (a *AuthService) Start() error {
	go a.sessionCleaner()
	return nil
}

func (a *AuthService) Stop() error {
	close(a.stopCh)
	return nil
}

func (a *AuthService) Login(username, password, clientIP string) (*UserSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, session := range a.sessions {
		if session.Email == username && session.IsLoggedIn {
			session.LastLoginTime = time.Now().Format(time.RFC3339)
			session.ClientIP = clientIP
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(fmt.Sprintf("User %s re-logged in, returning existing session", username))
			}
			return session, nil
		}
	}

	if len(a.sessions) >= a.maxUsers {
		return nil, errors.New("maximum concurrent users reached")
	}

	var (
		userID, name, email string
		role                sql.NullString
	)
	err := a.db.QueryRow(`
		SELECT u.id, u.employee_name, u.email, u.role
		FROM users u
		WHERE u.email = $1 AND u.password_hash = crypt($2, u.password_hash)`,
		username, password,
	).Scan(&userID, &name, &email, &role)
	if err != nil {
		return nil, errors.New("invalid credentials or user not found")
	}

	session := &UserSession{
		SessionID:     uuid.New().String(),
		UserID:        userID,
		Name:          name,
		Email:         email,
		Role:          role.String,
		LastLoginTime: time.Now().Format(time.RFC3339),
		ClientIP:      clientIP,
		IsLoggedIn:    true,
	}
	a.sessions[session.SessionID] = session

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("User logged in: " + username)
	}
	return session, nil
}

func (a *AuthService) Logout(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	session, exists := a.sessions[sessionID]
	if !exists {
		return errors.New("session not found")
	}
	delete(a.sessions, sessionID)

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("User logged out: " + session.UserID)
	}
	return nil
}

var globalAuthService *AuthService

// SetGlobalAuthService sets the global AuthService instance
func SetGlobalAuthService(svc *AuthService) {
	globalAuthService = svc
}

// GetActiveSessions returns active sessions from the global AuthService
func GetActiveSessions() []*UserSession {
	if globalAuthService == nil {
		return nil
	}
	return globalAuthService.GetActiveSessions()
}

func (a *AuthService) GetActiveSessions() []*UserSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	sessions := make([]*UserSession, 0, len(a.sessions))
	for _, s := range a.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// sessionIdleTimeout is how long a session may sit without a login before the
// cleaner drops it.
const sessionIdleTimeout = 8 * time.Hour

func (a *AuthService) sessionCleaner() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.expireIdleSessions(sessionIdleTimeout)
		}
	}
}

// expireIdleSessions drops sessions whose last login is older than maxIdle,
// or whose timestamp cannot be parsed at all, and returns how many were
// removed.
func (a *AuthService) expireIdleSessions(maxIdle time.Duration) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	expired := 0
	for id, session := range a.sessions {
		last, err := time.Parse(time.RFC3339, session.LastLoginTime)
		if err != nil || last.Before(cutoff) {
			delete(a.sessions, id)
			expired++
		}
	}
	if expired > 0 && logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Expired %d idle sessions", expired))
	}
	return expired
}
