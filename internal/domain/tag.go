package domain

// Tag labels time entries and projects. System tags are seeded at startup and
// cannot be deleted. Tag names are unique within a workspace.
type Tag struct {
	ID          string
	WorkspaceID string
	Name        string
	Color       *string
	IsSystem    bool
}

// IsValid checks if the tag has valid data.
func (t Tag) IsValid() bool {
	return t.Name != ""
}
