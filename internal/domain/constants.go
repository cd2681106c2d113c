package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ограничения на поля заявки и профиля
const (
	MaxFullNameLength         = 255
	MaxEmailLength            = 255
	MaxPhoneLength            = 32
	MaxMessageLength          = 2000
	MaxConsultationTypeLength = 64
	MaxVehicleTypeLength      = 64
	MaxPositionLength         = 255
	MaxImageURLLength         = 2048
)

// Значения-заглушки для отображения консультанта
// Реального источника рейтинга и опыта пока нет
const (
	DefaultAdvisorRating         = 5.0
	DefaultAdvisorExperience     = "N/A"
	DefaultAdvisorSpecialization = "General"
	DefaultAdvisorPhone          = "N/A"
	UnknownAdvisorName           = "Unknown Advisor"
)
