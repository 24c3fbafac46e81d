package checklist

import (
	s "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/string"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/validation"
)

type CreateItemRequest struct {
	VisaType    string `json:"visa_type" validate:"required,oneof=student work"`
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=2000"`
	IsRequired  *bool  `json:"is_required"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
}

func (r *CreateItemRequest) Sanitize() {
	s.TrimStrings(&r.VisaType, &r.Title, &r.Description)
}

func (r *CreateItemRequest) Validate() error {
	return validation.Validate(r)
}

type UpdateItemRequest struct {
	VisaType    *string `json:"visa_type" validate:"omitempty,oneof=student work"`
	Title       *string `json:"title" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	IsRequired  *bool   `json:"is_required"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

func (r *UpdateItemRequest) Validate() error {
	return validation.Validate(r)
}
