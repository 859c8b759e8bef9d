package services

import (
	"time"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/configs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/repositories"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/utils"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/validators"
)

type AuthenticationService struct {
	authRepo *repositories.AuthenticationRepository
	config   *configs.Config
}

func NewAuthenticationService(
	authRepo *repositories.AuthenticationRepository,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		authRepo: authRepo,
		config:   config,
	}
}

func (as *AuthenticationService) JwtKey() []byte {
	return []byte(as.config.Viper.GetString("jwt.secret"))
}

func (as *AuthenticationService) Register(user *models.User) (*models.User, []error) {
	var errors []error
	if as.CheckIfUserExists(user.Email) {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}
	validationErrs := validators.ValidateUser(user)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}
	password, err := utils.HashPassword(user.Password)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	user.PasswordHash = password
	return as.authRepo.CreateUser(user)
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error

	user, loginErrs := as.authRepo.Login(loginData)
	if len(loginErrs) > 0 {
		errors = append(errors, loginErrs...)
		return nil, errors
	}

	expiration := time.Now().Add(time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second)
	token, jwtErr := utils.CreateJwtToken(models.NewClaims(user, expiration), as.JwtKey())
	if jwtErr != nil {
		errors = append(errors, jwtErr)
		return nil, errors
	}

	return &models.LoginResponse{
		User:  *user.ToProfileResponse(),
		Token: token,
	}, nil
}

func (as *AuthenticationService) CheckIfUserExists(email string) bool {
	return as.authRepo.CheckIfUserExists(email) != nil
}

func (as *AuthenticationService) GetSingleUser(userID uint) (*models.UserResponse, []error) {
	user, err := as.authRepo.GetUserByID(userID)
	if err != nil {
		return nil, []error{err}
	}
	return user.ToUserResponse(), nil
}

func (as *AuthenticationService) GetProfile(userID uint) (*models.ProfileResponse, []error) {
	user, err := as.authRepo.GetUserByID(userID)
	if err != nil {
		return nil, []error{err}
	}
	return user.ToProfileResponse(), nil
}

func (as *AuthenticationService) GetAllUsersWithPagination(page, size int) (*models.GetUsersResponse, []error) {
	var errors []error
	if page < 1 || size < 1 {
		errors = append(errors, errs.ErrInvalidPageOrSize)
		return nil, errors
	}
	offset := (page - 1) * size
	return as.authRepo.GetAllUsersWithPagination(page, size, offset)
}

func (as *AuthenticationService) UpdateUserProfilePhoto(userID uint, url string) []error {
	return as.authRepo.UpdateUserProfilePhoto(userID, url)
}
