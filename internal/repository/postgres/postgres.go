package postgres

import (
	"database/sql"

	"propertydesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.PropertyRepository
	repository.BookingRepository
	repository.PaymentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		UserRepository:     NewUserRepository(db),
		PropertyRepository: NewPropertyRepository(db),
		BookingRepository:  NewBookingRepository(db),
		PaymentRepository:  NewPaymentRepository(db),
	}
}
