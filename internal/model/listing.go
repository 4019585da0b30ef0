package model

// Listing mirrors one ad as returned by the backend's /api/ads endpoints.
// The backend owns the record; the frontend only ever holds a read-only
// snapshot of it. Optional attributes are pointers so that "not provided"
// and "empty" stay distinguishable when the ad is re-submitted.
//
// Fields:
//  ID         : backend identifier (uuid string).
//  UserID     : owner of the ad; every ad belongs to exactly one user.
//  UserName   : display name resolved by the backend ("Anonymous" if gone).
//  Age        : optional age of the poster.
//  Phone      : optional phone contact.
//  WhatsApp   : optional WhatsApp contact, free-form.
//  ImageURL   : optional path relative to the backend base URL.
//  Views      : view counter maintained by the backend.
type Listing struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Age         *int      `json:"age,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	WhatsApp    *string   `json:"whatsapp,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Views       int       `json:"views"`
	CreatedAt   Timestamp `json:"created_at"`
}

// HasContact reports whether the ad carries any contact detail worth
// rendering in the contact block.
func (l Listing) HasContact() bool {
	return (l.Phone != nil && *l.Phone != "") || (l.WhatsApp != nil && *l.WhatsApp != "")
}

// OwnedBy reports whether the ad belongs to the given user id.
func (l Listing) OwnedBy(userID string) bool {
	return userID != "" && l.UserID == userID
}
