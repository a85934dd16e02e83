package models

import "time"

// SocialAccount is a connected publishing destination.
type SocialAccount struct {
	ID             int64     `json:"id"`
	Platform       string    `json:"platform"`
	AccountName    string    `json:"account_name"`
	Username       string    `json:"username,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Status         string    `json:"status"`
	ConnectedAt    time.Time `json:"connected_at"`
}

// SocialAccountInput is the create payload for manually attached accounts.
type SocialAccountInput struct {
	Platform    string `json:"platform"`
	AccountName string `json:"account_name"`
	Token       string `json:"token,omitempty"`
}

// VkIntegration is a connected VK community binding.
type VkIntegration struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	GroupName string    `json:"group_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// VkPhotoPostResult is the backend's response to a photo-post upload.
type VkPhotoPostResult struct {
	PostID   int64  `json:"post_id"`
	PostURL  string `json:"post_url,omitempty"`
	Uploaded int    `json:"uploaded"`
}
