package entity

import "github.com/google/uuid"

type TeamMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RoleTitle string `json:"role_title"`
	Bio       string `json:"bio,omitempty"`
	PhotoURL  string `json:"photo_url"`
	SortOrder int    `json:"sort_order"`
	Published bool   `json:"published"`
}

func NewTeamMember(name, roleTitle, bio, photoURL string, sortOrder int) *TeamMember {
	return &TeamMember{
		ID:        uuid.New().String(),
		Name:      name,
		RoleTitle: roleTitle,
		Bio:       bio,
		PhotoURL:  photoURL,
		SortOrder: sortOrder,
		Published: true,
	}
}
