package feedback

import (
	s "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/string"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/validation"
)

type SubmitRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Message string `json:"message" validate:"required,notblank,max=2000"`
}

func (r *SubmitRequest) Sanitize() {
	s.TrimStrings(&r.Name, &r.Email, &r.Message)
}

func (r *SubmitRequest) Validate() error {
	return validation.Validate(r)
}

type ModerateRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func (r *ModerateRequest) Validate() error {
	return validation.Validate(r)
}
