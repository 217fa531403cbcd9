package server

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gumallc/loanspa-ssp-v2/internal/crypto"
	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/labstack/echo/v4"
)

const (
	sessionName      = "loanspa-session"
	sessionKeyUserID = "user_id"
)

// requireAuth resolves the user id from the session cookie. There is no
// fallback identity: requests without a valid session are rejected.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := s.sessionUserID(c)
		if !ok {
			return c.JSON(401, map[string]string{"message": "Not authenticated"})
		}
		c.Set("userID", userID)
		return next(c)
	}
}

// sessionUserID reads the authenticated user id from the session, if any.
func (s *Server) sessionUserID(c echo.Context) (int64, bool) {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return 0, false
	}
	userID, ok := session.Values[sessionKeyUserID].(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

func currentUserID(c echo.Context) int64 {
	userID, _ := c.Get("userID").(int64)
	return userID
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request"})
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(400, map[string]string{"message": "Username and password are required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(400, map[string]string{"message": "Password must be at least 8 characters"})
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	user, err := s.store.CreateUser(c.Request().Context(), domain.NewUser{
		Username:     req.Username,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Email:        req.Email,
	})
	if errors.Is(err, domain.ErrUsernameTaken) {
		return c.JSON(400, map[string]string{"message": "Username already taken"})
	}
	if err != nil {
		slog.Error("Failed to create user", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	if err := s.saveSession(c, user.ID); err != nil {
		slog.Error("Failed to save session", "error", err)
		return c.JSON(500, map[string]string{"message": "Failed to save session"})
	}

	return c.JSON(201, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request"})
	}

	user, err := s.store.GetUserByUsername(c.Request().Context(), req.Username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.JSON(401, map[string]string{"message": "Invalid username or password"})
	}
	if err != nil {
		slog.Error("Failed to look up user", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	ok, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		slog.Error("Failed to verify password", "user_id", user.ID, "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	if !ok {
		return c.JSON(401, map[string]string{"message": "Invalid username or password"})
	}

	if err := s.saveSession(c, user.ID); err != nil {
		slog.Error("Failed to save session", "error", err)
		return c.JSON(500, map[string]string{"message": "Failed to save session"})
	}

	return c.JSON(200, user)
}

func (s *Server) handleLogout(c echo.Context) error {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if session == nil {
		slog.Error("Failed to get session during logout", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	if err != nil {
		// A cookie that no longer decodes still needs to be expired, and the
		// fresh session Get returns alongside the error is enough for that.
		slog.Warn("Expiring undecodable session cookie during logout", "error", err)
	}

	session.Options.MaxAge = -1
	delete(session.Values, sessionKeyUserID)
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Error("Failed to save logout session", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	return c.NoContent(204)
}

func (s *Server) handleCurrentUser(c echo.Context) error {
	user, err := s.store.GetUser(c.Request().Context(), currentUserID(c))
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.JSON(401, map[string]string{"message": "Not authenticated"})
	}
	if err != nil {
		slog.Error("Failed to load user", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, user)
}

func (s *Server) saveSession(c echo.Context, userID int64) error {
	// An undecodable cookie (rotated secret, tampered value) makes Get return
	// an error, but it still returns a usable fresh session. Writing the user
	// id into that fresh session replaces the broken cookie on save.
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if session == nil {
		return err
	}
	if err != nil {
		slog.Warn("Replacing undecodable session cookie", "error", err)
	}
	session.Values[sessionKeyUserID] = userID
	return session.Save(c.Request(), c.Response().Writer)
}
