package models

// Customer represents the authenticated visitor's upstream profile.
// Field names mirror the upstream API payloads.
type Customer struct {
	ID           string `json:"_id,omitempty"`
	CustomerID   string `json:"customerId,omitempty"`
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// EffectiveID returns the customer identifier, whichever field the
// upstream populated. OTP verification responses carry customerId,
// profile responses carry _id.
func (c *Customer) EffectiveID() string {
	if c.CustomerID != "" {
		return c.CustomerID
	}
	return c.ID
}

// UpdateProfileRequest carries profile fields plus an optional avatar
// upload, forwarded upstream as a multipart form.
type UpdateProfileRequest struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}
