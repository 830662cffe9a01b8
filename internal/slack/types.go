package slack

// Channel is a conversation as returned by the workspace API.
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsArchived bool   `json:"is_archived"`
	IsMember   bool   `json:"is_member"`
}

// SidebarSection is one sidebar section as returned by the workspace API.
type SidebarSection struct {
	ID         string   `json:"section_id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	ChannelIDs []string `json:"channel_ids"`
}

// apiEnvelope is the common ok/error wrapper on every API response.
type apiEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (e apiEnvelope) status() (bool, string) {
	return e.OK, e.Error
}

// envelope is implemented by every response type via apiEnvelope embedding.
type envelope interface {
	status() (ok bool, apiError string)
}

type sectionsListResponse struct {
	apiEnvelope
	Sections []SidebarSection `json:"sections"`
}

type conversationsListResponse struct {
	apiEnvelope
	Channels         []Channel `json:"channels"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

type moveRequest struct {
	ChannelID     string `json:"channel_id"`
	ToSectionID   string `json:"to_section_id"`
	FromSectionID string `json:"from_section_id,omitempty"`
}

type muteRequest struct {
	ChannelID string `json:"channel_id"`
}
