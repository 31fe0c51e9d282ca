package models

import (
	"slices"
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAssigned  BookingStatus = "assigned"
	StatusCompleted BookingStatus = "completed"
)

type Booking struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Phone             string        `json:"phone"`
	Email             string        `json:"email"`
	Vehicle           string        `json:"vehicle"`
	ServiceType       string        `json:"serviceType"`
	Pickup            string        `json:"pickup"`
	Destination       string        `json:"destination,omitempty"`
	Datetime          time.Time     `json:"datetime"`
	Notes             string        `json:"notes,omitempty"`
	UserEmail         string        `json:"userEmail,omitempty"`
	Lat               *float64      `json:"lat"`
	Lng               *float64      `json:"lng"`
	Status            BookingStatus `json:"status"`
	ProviderEmail     string        `json:"providerEmail,omitempty"`
	DeclinedProviders []string      `json:"declinedProviders"`
	CreatedAt         time.Time     `json:"createdAt"`
}

// DeclinedBy reports whether the provider has opted out of this booking.
func (b *Booking) DeclinedBy(providerEmail string) bool {
	return slices.Contains(b.DeclinedProviders, providerEmail)
}

func (b *Booking) Assigned() bool {
	return b.Status == StatusAssigned || b.Status == StatusCompleted
}
