package doctor

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/utils"
)

const tokenDuration = 72 * time.Hour

// Registration is the payload for creating a doctor account.
type Registration struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	Gender          string  `json:"gender"`
	Specialization  string  `json:"specialization" binding:"required"`
	Qualification   string  `json:"qualification"`
	Hospital        string  `json:"hospital"`
	Fees            float64 `json:"fees"`
	ExperienceYears int     `json:"experienceYears"`
}

// Service manages doctor accounts and authentication.
type Service interface {
	Register(reg Registration) (*models.Doctor, string, error)
	Login(creds models.Credentials) (*models.Doctor, string, error)
	GetByID(id string) (*models.Doctor, error)
	ListPublic() ([]models.DoctorPublic, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Repo doctorRepo.DoctorRepository
}

// Register creates a doctor account with an empty availability calendar.
func (s *DefaultService) Register(reg Registration) (*models.Doctor, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", utils.NewDependencyError("hash password", err)
	}

	doc := &models.Doctor{
		ID:              uuid.New().String(),
		Name:            reg.Name,
		Email:           reg.Email,
		PasswordHash:    string(hash),
		Gender:          reg.Gender,
		Specialization:  reg.Specialization,
		Qualification:   reg.Qualification,
		Hospital:        reg.Hospital,
		Fees:            reg.Fees,
		ExperienceYears: reg.ExperienceYears,
		Availability:    models.Availability{IsAvailable: false, Schedules: []models.DaySchedule{}},
	}
	if err := s.Repo.Create(doc); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(doc.ID, utils.RoleDoctor, tokenDuration)
	if err != nil {
		return nil, "", utils.NewDependencyError("sign token", err)
	}
	return doc, token, nil
}

// Login authenticates a doctor by email and password.
func (s *DefaultService) Login(creds models.Credentials) (*models.Doctor, string, error) {
	doc, err := s.Repo.GetByEmail(creds.Email)
	if err != nil {
		return nil, "", &utils.AuthError{Message: "invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, "", &utils.AuthError{Message: "invalid email or password"}
	}

	token, err := utils.GenerateToken(doc.ID, utils.RoleDoctor, tokenDuration)
	if err != nil {
		return nil, "", utils.NewDependencyError("sign token", err)
	}
	return doc, token, nil
}

// GetByID fetches a doctor profile.
func (s *DefaultService) GetByID(id string) (*models.Doctor, error) {
	return s.Repo.GetByID(id)
}

// ListPublic returns the patient-facing doctor directory.
func (s *DefaultService) ListPublic() ([]models.DoctorPublic, error) {
	doctors, err := s.Repo.GetAll()
	if err != nil {
		return nil, err
	}
	public := make([]models.DoctorPublic, 0, len(doctors))
	for i := range doctors {
		public = append(public, doctors[i].PublicProfile())
	}
	return public, nil
}
