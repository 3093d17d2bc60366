package http

import "time"

// roomRequest creates or edits a room specification.
type roomRequest struct {
	Room string    `json:"room"`
	Date time.Time `json:"date,omitempty"`
}

// copySpecRequest duplicates a room specification into another room.
type copySpecRequest struct {
	Room  string `json:"room"`
	Depth string `json:"depth,omitempty"`
}

// importRequest copies all rooms from another project.
type importRequest struct {
	SourceProjectID string `json:"source_project_id"`
	Depth           string `json:"depth,omitempty"`
}

// copyCategoryRequest duplicates a category into a new type.
type copyCategoryRequest struct {
	Type string `json:"type"`
}

// resendRequest names the collaborator whose invite is re-sent.
type resendRequest struct {
	CollaboratorID string `json:"collaborator_id"`
}
