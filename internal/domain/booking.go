package domain

import "time"

type BookingDraft struct {
	ListingID  int64  `json:"listingId" validate:"required"`
	GuestName  string `json:"guestName" validate:"notblank"`
	GuestEmail string `json:"guestEmail" validate:"notblank"`
	StayDate   string `json:"stayDate" validate:"notblank"`
}

type Booking struct {
	ID         int64     `json:"id"`
	ListingID  int64     `json:"listingId"`
	GuestName  string    `json:"guestName"`
	GuestEmail string    `json:"guestEmail"`
	StayDate   string    `json:"stayDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	UnknownListingName     = "Unknown Hotel"
	UnknownListingLocality = "Unknown City"
)

// EnrichedBooking is a booking joined with the listing it references.
type EnrichedBooking struct {
	Booking
	ListingName     string `json:"listingName"`
	ListingLocality string `json:"listingLocality"`
}
