package types

import "start-page/app/server/models"

type LoginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type UploadFromURLRequest struct {
	URL  string           `json:"url"`
	Type models.AssetType `json:"type"`
}

type UserCreateRequest struct {
	Username string `json:"username"`
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
