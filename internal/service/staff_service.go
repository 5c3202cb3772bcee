package service

import (
	"context"
	stderrors "errors"
	"time"

	"inventory-service/internal/commands"
	"inventory-service/internal/domain"
	"inventory-service/internal/events"
	"inventory-service/internal/repository"
	"inventory-service/pkg/errors"

	"go.uber.org/zap"
)

// StaffService handles staff business logic
type StaffService struct {
	repo      repository.StaffRepository
	publisher events.EventPublisher
	logger    *zap.Logger
}

func NewStaffService(repo repository.StaffRepository, publisher events.EventPublisher, logger *zap.Logger) *StaffService {
	return &StaffService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *StaffService) CreateStaff(ctx context.Context, cmd commands.CreateStaffCommand) (*domain.StaffMember, error) {
	s.logger.Info("Creating new staff member", zap.String("email", cmd.Email))

	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, cmd.Email); err != nil {
		return nil, err
	}

	staff := &domain.StaffMember{
		Name:        cmd.Name,
		Email:       cmd.Email,
		Designation: cmd.Designation,
		Department:  cmd.Department,
		Rights:      cmd.Rights,
		PhoneNumber: cmd.PhoneNumber,
		Status:      cmd.Status.OrDefault(),
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		s.logger.Error("Failed to create staff", zap.Error(err))
		return nil, errors.NewDatabaseError("create staff", err)
	}

	s.logger.Info("Staff created successfully", zap.Uint("staff_id", staff.ID))
	s.publish(ctx, events.StaffCreatedEvent{
		StaffID:    staff.ID,
		Name:       staff.Name,
		Email:      staff.Email,
		Rights:     string(staff.Rights),
		Status:     string(staff.Status),
		OccurredAt: staff.CreatedAt,
	})
	return staff, nil
}

func (s *StaffService) GetAllStaff(ctx context.Context) ([]domain.StaffMember, error) {
	staff, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list staff", zap.Error(err))
		return nil, errors.NewDatabaseError("list staff", err)
	}
	return staff, nil
}

func (s *StaffService) GetStaffByID(ctx context.Context, id uint) (*domain.StaffMember, error) {
	return s.findStaff(ctx, id)
}

func (s *StaffService) UpdateStaff(ctx context.Context, cmd commands.UpdateStaffCommand) (*domain.StaffMember, error) {
	s.logger.Info("Updating staff", zap.Uint("staff_id", cmd.ID))

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	staff, err := s.findStaff(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if staff.Email != cmd.Email {
		if err := s.ensureEmailFree(ctx, cmd.Email); err != nil {
			return nil, err
		}
	}

	staff.Name = cmd.Name
	staff.Email = cmd.Email
	staff.Designation = cmd.Designation
	staff.Department = cmd.Department
	staff.Rights = cmd.Rights
	staff.PhoneNumber = cmd.PhoneNumber
	if cmd.Status != "" {
		staff.Status = cmd.Status
	}

	if err := s.repo.Save(ctx, staff); err != nil {
		s.logger.Error("Failed to update staff", zap.Uint("staff_id", cmd.ID), zap.Error(err))
		return nil, errors.NewDatabaseError("update staff", err)
	}

	s.logger.Info("Staff updated successfully", zap.Uint("staff_id", staff.ID))
	s.publish(ctx, events.StaffUpdatedEvent{
		StaffID:    staff.ID,
		Name:       staff.Name,
		Email:      staff.Email,
		Rights:     string(staff.Rights),
		Status:     string(staff.Status),
		OccurredAt: staff.UpdatedAt,
	})
	return staff, nil
}

func (s *StaffService) DeleteStaff(ctx context.Context, cmd commands.DeleteStaffCommand) error {
	s.logger.Info("Deleting staff", zap.Uint("staff_id", cmd.ID))

	if err := s.repo.Delete(ctx, cmd.ID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewStaffNotFound(cmd.ID)
		}
		s.logger.Error("Failed to delete staff", zap.Uint("staff_id", cmd.ID), zap.Error(err))
		return errors.NewDatabaseError("delete staff", err)
	}

	s.logger.Info("Staff deleted successfully", zap.Uint("staff_id", cmd.ID))
	s.publish(ctx, events.StaffDeletedEvent{StaffID: cmd.ID, OccurredAt: time.Now().UTC()})
	return nil
}

func (s *StaffService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return errors.NewDuplicateEmail(email)
	case stderrors.Is(err, repository.ErrNotFound):
		return nil
	default:
		s.logger.Error("Failed to check email", zap.String("email", email), zap.Error(err))
		return errors.NewDatabaseError("check email", err)
	}
}

func (s *StaffService) findStaff(ctx context.Context, id uint) (*domain.StaffMember, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewStaffNotFound(id)
		}
		s.logger.Error("Failed to load staff", zap.Uint("staff_id", id), zap.Error(err))
		return nil, errors.NewDatabaseError("find staff", err)
	}
	return staff, nil
}

func (s *StaffService) publish(ctx context.Context, event interface{}) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", zap.String("event", events.EventType(event)), zap.Error(err))
	}
}
