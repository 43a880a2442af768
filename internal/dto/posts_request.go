package dto

type CreatePostRequest struct {
	Content     string   `json:"content" binding:"required,min=1,max=1000"`
	Type        string   `json:"type" binding:"required,oneof=text image video audio"`
	Tags        []string `json:"tags"`
	AIGenerated bool     `json:"ai_generated"`
}
