package types

// Records exchanged with the EventGallery API. Nullable columns are
// pointers so null round-trips without being confused with "".

type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
	Bio       *string `json:"bio"`
	CreatedAt string  `json:"createdAt"`
}

// UserPublic is the profile shape embedded on other people's content.
type UserPublic struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type AuthResponse struct {
	User      User   `json:"user"`
	SessionID string `json:"sessionId"`
}

type SessionCheck struct {
	Valid bool `json:"valid"`
	User  User `json:"user"`
}

type Event struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Description      *string     `json:"description"`
	CoverImageURL    *string     `json:"coverImageUrl"`
	CoverImageKey    *string     `json:"coverImageKey"`
	Location         *string     `json:"location"`
	StartDate        *string     `json:"startDate"`
	EndDate          *string     `json:"endDate"`
	IsPrivate        bool        `json:"isPrivate"`
	InviteCode       *string     `json:"inviteCode"`
	CreatedByID      string      `json:"createdById"`
	CreatedAt        string      `json:"createdAt"`
	UpdatedAt        string      `json:"updatedAt"`
	ParticipantCount int         `json:"participantCount"`
	ImageCount       int         `json:"imageCount"`
	IsParticipant    bool        `json:"isParticipant"`
	IsOwner          bool        `json:"isOwner"`
	CreatedBy        *UserPublic `json:"createdBy,omitempty"`
}

type GalleryImage struct {
	ID           string  `json:"id"`
	EventID      string  `json:"eventId"`
	UserID       string  `json:"userId"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	ImageURL     string  `json:"imageUrl"`
	ImageKey     string  `json:"imageKey"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	ThumbnailKey *string `json:"thumbnailKey"`
	Width        *int    `json:"width"`
	Height       *int    `json:"height"`
	FileSize     *int64  `json:"fileSize"`
	MimeType     *string `json:"mimeType"`
	UploadedAt   string  `json:"uploadedAt"`
	LikeCount    int     `json:"likeCount"`
	CommentCount int     `json:"commentCount"`
}

// ImageDetail adds the viewer-relative fields and the embedded comment
// list (newest first) returned by GET /images/{id}.
type ImageDetail struct {
	GalleryImage
	User                 UserPublic `json:"user"`
	IsLikedByCurrentUser bool       `json:"isLikedByCurrentUser"`
	Comments             []Comment  `json:"comments"`
}

type Comment struct {
	ID        string     `json:"id"`
	ImageID   string     `json:"imageId"`
	UserID    string     `json:"userId"`
	Content   string     `json:"content"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
	User      UserPublic `json:"user"`
}

type GalleryStats struct {
	TotalEvents   int `json:"totalEvents"`
	TotalImages   int `json:"totalImages"`
	TotalUsers    int `json:"totalUsers"`
	TotalLikes    int `json:"totalLikes"`
	TotalComments int `json:"totalComments"`
}

// PageMeta is computed server side; clients surface it unchanged.
type PageMeta struct {
	Total           int  `json:"total"`
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type Paginated[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// NewPageMeta derives the pagination block the server attaches to every
// paginated response.
func NewPageMeta(total, page, limit int) PageMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PageMeta{
		Total:           total,
		Page:            page,
		Limit:           limit,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// EventFilters are query parameters for GET /events. Zero values are
// omitted from the request entirely.
type EventFilters struct {
	Page      int
	Limit     int
	Search    string
	IsPrivate *bool
	SortBy    string
	SortOrder string
}

type ImageFilters struct {
	Page      int
	Limit     int
	EventID   string
	UserID    string
	Search    string
	SortBy    string
	SortOrder string
}

type JoinEventResult struct {
	Event   Event  `json:"event"`
	Message string `json:"message"`
}

type Participant struct {
	User     User   `json:"user"`
	JoinedAt string `json:"joinedAt"`
}

type EventStatistics struct {
	ImageCount       int `json:"imageCount"`
	ParticipantCount int `json:"participantCount"`
	LikeCount        int `json:"likeCount"`
	CommentCount     int `json:"commentCount"`
}

type ImageUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ImageUploadResult struct {
	Image   GalleryImage `json:"image"`
	Message string       `json:"message"`
}

type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// SearchResults carries only the sections requested by the type filter.
type SearchResults struct {
	Events []Event        `json:"events,omitempty"`
	Images []GalleryImage `json:"images,omitempty"`
	Users  []User         `json:"users,omitempty"`
}
