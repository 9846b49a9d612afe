package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateSchoolRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	AdminID     uint   `json:"admin_id"`
}

func (req *CreateSchoolRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Address, validation.Required),
		validation.Field(&req.AdminID, validation.Required),
	)
}

type UpdateSchoolRequest struct {
	Name               string `json:"name"`
	Address            string `json:"address"`
	Description        string `json:"description"`
	AdditionalAdminIDs []uint `json:"additional_admin_ids"`
}

func (req *UpdateSchoolRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Address, validation.Required),
	)
}
