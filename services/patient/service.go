package patient

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"
)

const tokenDuration = 72 * time.Hour

// Service manages patient accounts and authentication.
type Service interface {
	Register(reg models.PatientRegistration) (*models.Patient, string, error)
	Login(creds models.Credentials) (*models.Patient, string, error)
	GetByID(id string) (*models.Patient, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Repo patientRepo.PatientRepository
}

// Register creates a patient account and returns it with a signed token.
func (s *DefaultService) Register(reg models.PatientRegistration) (*models.Patient, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", utils.NewDependencyError("hash password", err)
	}

	patient := &models.Patient{
		ID:           uuid.New().String(),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PasswordHash: string(hash),
		Phone:        reg.Phone,
	}
	if err := s.Repo.Create(patient); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(patient.ID, utils.RolePatient, tokenDuration)
	if err != nil {
		return nil, "", utils.NewDependencyError("sign token", err)
	}
	return patient, token, nil
}

// Login authenticates a patient by email and password.
func (s *DefaultService) Login(creds models.Credentials) (*models.Patient, string, error) {
	patient, err := s.Repo.GetByEmail(creds.Email)
	if err != nil {
		return nil, "", &utils.AuthError{Message: "invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, "", &utils.AuthError{Message: "invalid email or password"}
	}

	token, err := utils.GenerateToken(patient.ID, utils.RolePatient, tokenDuration)
	if err != nil {
		return nil, "", utils.NewDependencyError("sign token", err)
	}
	return patient, token, nil
}

// GetByID fetches a patient profile.
func (s *DefaultService) GetByID(id string) (*models.Patient, error) {
	return s.Repo.GetByID(id)
}
