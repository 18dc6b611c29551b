package model

import "time"

// Status is a contact lifecycle tag
type Status string

const (
	// StatusInterested means contact expressed initial interest
	StatusInterested Status = "Interested"
	// StatusFollowUp means contact requires a follow-up
	StatusFollowUp Status = "Follow-up"
	// StatusClosed means work with contact is finished
	StatusClosed Status = "Closed"
)

// DefaultStatus is assigned on creation when no status is provided
const DefaultStatus = StatusInterested

// Valid reports whether status is one of the known lifecycle tags
func (s Status) Valid() bool {
	switch s {
	case StatusInterested, StatusFollowUp, StatusClosed:
		return true
	}
	return false
}

// Contact is contact model entity
type Contact struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Company   string    `json:"company" bson:"company"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Status    Status    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Merge overwrites contact fields with the ones supplied in upd.
// ID and CreatedAt are never altered
func (c Contact) Merge(upd UpdateContact) Contact {
	if upd.Name != nil {
		c.Name = *upd.Name
	}

	if upd.Company != nil {
		c.Company = *upd.Company
	}

	if upd.Email != nil {
		c.Email = *upd.Email
	}

	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}

	if upd.Status != nil {
		c.Status = *upd.Status
	}
	return c
}

// NewContact is a create payload
type NewContact struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Status  Status `json:"status" validate:"omitempty,oneof=Interested Follow-up Closed"`
}

// UpdateContact is an update payload, absent fields keep their current values.
// ID travels in the url path only - it must never reach the json body, echo
// binds the body after path params and would overwrite the id otherwise
type UpdateContact struct {
	ID      string  `json:"-" param:"id"`
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Company *string `json:"company"`
	Email   *string `json:"email" validate:"omitempty,min=1"`
	Phone   *string `json:"phone"`
	Status  *Status `json:"status" validate:"omitempty,oneof=Interested Follow-up Closed"`
}
