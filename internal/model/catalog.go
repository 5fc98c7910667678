package model

type Category struct {
	SoftDeleteModel
	Name        string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description *string `gorm:"type:text" json:"description"`
}

type Supplier struct {
	SoftDeleteModel
	Name          string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	ContactPerson *string `gorm:"type:varchar(100)" json:"contact_person"`
	Email         *string `gorm:"type:varchar(100)" json:"email" validate:"omitempty,email"`
	Phone         *string `gorm:"type:varchar(20)" json:"phone"`
	Address       *string `gorm:"type:text" json:"address"`
}

type Customer struct {
	SoftDeleteModel
	Name                string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Email               *string `gorm:"type:varchar(100)" json:"email" validate:"omitempty,email"`
	Phone               *string `gorm:"type:varchar(20)" json:"phone"`
	Address             *string `gorm:"type:text" json:"address"`
	CompanyName         *string `gorm:"type:varchar(100)" json:"company_name"`
	RegistrationNumber  *string `gorm:"type:varchar(50)" json:"registration_number"`
	TradeRegisterNumber *string `gorm:"type:varchar(50)" json:"trade_register_number"`
	BankAccount         *string `gorm:"type:varchar(50)" json:"bank_account"`
	BankName            *string `gorm:"type:varchar(100)" json:"bank_name"`
}
