package httpapi

import (
	"mindwell/internal/microservices/http-api/repository"
	"mindwell/internal/microservices/http-api/repository/memory"

	"gorm.io/gorm"
)

func PostgresRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Resources:     repository.NewResourceRepository(db),
		Interactions:  repository.NewInteractionRepository(db),
		Bookings:      repository.NewBookingRepository(db),
		Notifications: repository.NewNotificationRepository(db),
	}
}

func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Resources:     memory.NewResourceRepository(s),
		Interactions:  memory.NewInteractionRepository(s),
		Bookings:      memory.NewBookingRepository(s),
		Notifications: memory.NewNotificationRepository(s),
	}
}
