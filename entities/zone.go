package entities

type Zone struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ZoneName string `gorm:"type:varchar(100);not null" json:"zone_name"`
	Location string `gorm:"type:varchar(255);not null" json:"location"`
	Status   string `gorm:"type:varchar(20);default:active" json:"status"`
}
