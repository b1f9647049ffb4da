package entities

// Motor belongs to exactly one Zone. InstallationDate is "YYYY-MM-DD" when known.
type Motor struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	MotorName        string  `gorm:"type:varchar(100);not null" json:"motor_name"`
	ZoneID           uint    `gorm:"index;not null" json:"zone_id"`
	Zone             *Zone   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	MotorType        string  `gorm:"type:varchar(50);not null" json:"motor_type"`
	RatedPowerKW     float64 `gorm:"type:decimal(5,2);not null" json:"rated_power_kw"`
	InstallationDate *string `gorm:"type:varchar(10)" json:"installation_date"`
	Status           string  `gorm:"type:varchar(20);default:running" json:"status"`
}
