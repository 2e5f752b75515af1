package auth

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgallery/db"
	"eventgallery/respond"
	"eventgallery/types"
)

func HandleRegister(c *gin.Context) {
	var json struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}

	if err := c.ShouldBindJSON(&json); err != nil {
		respond.Error(c, 400, "Invalid request data")
		return
	}
	if json.Username == "" || json.Email == "" || json.Password == "" {
		respond.Error(c, 400, "Username, email and password are required")
		return
	}

	hashedPassword, err := hashPassword(json.Password)
	if err != nil {
		respond.Error(c, 500, "Failed to hash password")
		return
	}

	userID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	var fullName interface{}
	if json.FullName != "" {
		fullName = json.FullName
	}

	query := `INSERT INTO users (id, username, email, password, full_name, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = db.GalleryDB.Exec(query, userID, json.Username, json.Email, hashedPassword, fullName, now)
	if err != nil {
		if strings.Contains(err.Error(), "users.email") {
			respond.Error(c, 409, "Email is already taken")
			return
		}
		if strings.Contains(err.Error(), "users.username") {
			respond.Error(c, 409, "Username is already taken")
			return
		}
		respond.Error(c, 500, "Database error inserting user data")
		return
	}

	user, err := UserByID(userID)
	if err != nil {
		respond.Error(c, 500, "Database error reading user data")
		return
	}

	token, err := GenerateSessionToken(userID)
	if err != nil {
		respond.Error(c, 500, "Failed to create session")
		return
	}

	respond.Data(c, 201, types.AuthResponse{User: *user, SessionID: token})
}

func HandleLogin(c *gin.Context) {
	var json struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&json); err != nil {
		respond.Error(c, 400, "Invalid request data")
		return
	}

	var userID, hashed string
	query := `SELECT id, password FROM users WHERE email = ?`
	err := db.GalleryDB.QueryRow(query, json.Email).Scan(&userID, &hashed)
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 401, "Invalid credentials")
		} else {
			respond.Error(c, 500, "Database error extracting user data")
		}
		return
	}

	if !checkPassword(hashed, json.Password) {
		respond.Error(c, 401, "Invalid credentials")
		return
	}

	user, err := UserByID(userID)
	if err != nil {
		respond.Error(c, 500, "Database error reading user data")
		return
	}

	token, err := GenerateSessionToken(userID)
	if err != nil {
		respond.Error(c, 500, "Failed to create session")
		return
	}

	respond.Data(c, 200, types.AuthResponse{User: *user, SessionID: token})
}

// HandleLogout revokes the presented session server side.
func HandleLogout(c *gin.Context) {
	token := c.GetString("sessionToken")
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.GalleryDB.Exec(`INSERT OR IGNORE INTO revoked_sessions (token, revoked_at) VALUES (?, ?)`, token, now)
	if err != nil {
		respond.Error(c, 500, "Database error revoking session")
		return
	}

	respond.Message(c, 200, "Logged out")
}

func HandleMe(c *gin.Context) {
	user, err := UserByID(ViewerID(c))
	if err != nil {
		respond.Error(c, 401, "Invalid or expired session")
		return
	}
	respond.Data(c, 200, user)
}

func HandleValidateSession(c *gin.Context) {
	user, err := UserByID(ViewerID(c))
	if err != nil {
		respond.Error(c, 401, "Invalid or expired session")
		return
	}
	respond.Data(c, 200, types.SessionCheck{Valid: true, User: *user})
}
