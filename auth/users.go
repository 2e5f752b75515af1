package auth

import (
	"database/sql"

	"eventgallery/db"
	"eventgallery/types"
)

func UserByID(id string) (*types.User, error) {
	var user types.User
	var fullName, avatarURL, bio sql.NullString
	query := `SELECT id, username, email, full_name, avatar_url, bio, created_at FROM users WHERE id = ?`
	err := db.GalleryDB.QueryRow(query, id).Scan(
		&user.ID, &user.Username, &user.Email, &fullName, &avatarURL, &bio, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.FullName = db.NullStr(fullName)
	user.AvatarURL = db.NullStr(avatarURL)
	user.Bio = db.NullStr(bio)
	return &user, nil
}

func PublicUserByID(id string) (*types.UserPublic, error) {
	var user types.UserPublic
	var fullName, avatarURL sql.NullString
	query := `SELECT id, username, full_name, avatar_url FROM users WHERE id = ?`
	err := db.GalleryDB.QueryRow(query, id).Scan(&user.ID, &user.Username, &fullName, &avatarURL)
	if err != nil {
		return nil, err
	}
	user.FullName = db.NullStr(fullName)
	user.AvatarURL = db.NullStr(avatarURL)
	return &user, nil
}
