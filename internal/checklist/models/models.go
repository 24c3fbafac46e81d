package models

import (
	"time"

	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

type VisaType string

const (
	VisaStudent VisaType = "student"
	VisaWork    VisaType = "work"
)

func (v VisaType) IsValid() bool {
	return v == VisaStudent || v == VisaWork
}

// Item is one document or step applicants must prepare for a visa type.
type Item struct {
	ID          id.ChecklistItemID `json:"id"`
	VisaType    VisaType           `json:"visa_type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	IsRequired  bool               `json:"is_required"`
	SortOrder   int                `json:"sort_order"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Less orders items by sort order, then title.
func Less(a, b *Item) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.Title < b.Title
}
