package models

import "gorm.io/gorm"

type Transporter struct {
	gorm.Model
	TransporterName string `json:"transporter_name" gorm:"unique" validate:"required,min=3"`
	GSTNo           string `json:"gst_no"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	VehicleNumbers  string `json:"vehicle_numbers"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`
	CreatedBy       int
	UpdatedBy       int
	DeletedBy       int
}
