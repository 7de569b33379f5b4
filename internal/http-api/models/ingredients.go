package models

type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string `json:"name" gorm:"index;size:200;not null"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:200;default:'г';not null"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
