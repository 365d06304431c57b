package profiles

import "github.com/MichIoan/DP-API-2024-sub000/pkg/enums"

// CreateProfileRequest is the body of POST /profiles. Name and Age are
// pointers so absent fields can be reported by name.
type CreateProfileRequest struct {
	Name                  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Age                   *int    `json:"age" validate:"omitempty,max=120"`
	ContentClassification string  `json:"content_classification"`
	Language              string  `json:"language" validate:"omitempty,min=2,max=10"`
	Autoplay              *bool   `json:"autoplay"`
	Subtitles             *bool   `json:"subtitles"`
}

// UpdateProfileRequest is the partial body of PUT /profiles/{profileId}.
type UpdateProfileRequest struct {
	Name                  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Age                   *int    `json:"age" validate:"omitempty,max=120"`
	ContentClassification *string `json:"content_classification"`
	Language              *string `json:"language" validate:"omitempty,min=2,max=10"`
	Autoplay              *bool   `json:"autoplay"`
	Subtitles             *bool   `json:"subtitles"`
}

// CreateInput is the resolved profile definition handed to the repository.
type CreateInput struct {
	UserID                uint
	Name                  string
	Age                   int
	ContentClassification enums.ContentClassification
	Language              string
	Autoplay              bool
	Subtitles             bool
}
