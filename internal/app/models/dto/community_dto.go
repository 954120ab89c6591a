package dto

// CommentRequest posts a comment on a startup
type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// RateRequest scores a startup. Rating again replaces the earlier score.
type RateRequest struct {
	Score    int     `json:"score" binding:"required,min=1,max=10"`
	Feedback *string `json:"feedback,omitempty" binding:"omitempty,max=2000"`
}

// FavoriteResponse reports a startup's favorite state and count
type FavoriteResponse struct {
	StartupID int64 `json:"startup_id"`
	Favorited *bool `json:"favorited,omitempty"`
	Likes     int   `json:"likes"`
}
