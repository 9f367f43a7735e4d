package service

import (
	"context"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
)

type doctorService struct {
	doctors      repository.DoctorRepo
	availability repository.AvailabilityRepo
}

func NewDoctorService(doctors repository.DoctorRepo, availability repository.AvailabilityRepo) DoctorService {
	return &doctorService{doctors: doctors, availability: availability}
}

func (s *doctorService) List(ctx context.Context, activeOnly bool) ([]*domain.Doctor, error) {
	return s.doctors.List(ctx, activeOnly)
}

func (s *doctorService) Get(ctx context.Context, id string) (*domain.Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "doctor", id)
	}
	return d, nil
}

func (s *doctorService) Availability(ctx context.Context, id string) ([]string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.availability.ListByDoctor(ctx, id)
}
