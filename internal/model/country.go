package model

import "time"

// countries
type Country struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	Name    string `gorm:"type:varchar(100);not null"`
	IsoCode string `gorm:"type:varchar(10);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
