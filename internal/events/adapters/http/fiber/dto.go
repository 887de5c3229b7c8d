package fiber

// CreateEventRequest represents one daily GA report row
// @Description Daily event row DTO
type CreateEventRequest struct {
	Date      string `json:"date" example:"2025-10-17"`
	EventName string `json:"event_name" example:"page_view"`
	GroupID   string `json:"property_id" example:"263883430"`
	GeoLevel  string `json:"geo_level,omitempty" example:"country"`
	GeoValue  string `json:"geo_value,omitempty" example:"US"`
	Count     int64  `json:"event_count" example:"42"`
}

type CreateEventResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type BulkCreateEventsRequest struct {
	Events []CreateEventRequest `json:"events"`
}

type BulkCreateEventsResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_event"`
	Message string `json:"message" example:"Event payload is invalid"`
}
