package model

// Sector groups assets by industry.
type Sector struct {
	ID          uint   `json:"sectorID" gorm:"primaryKey"`
	Name        string `json:"sectorName" gorm:"size:255;not null;index"`
	Description string `json:"sectorDescription" gorm:"type:text"`
}
